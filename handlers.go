package tabletop

// handler pairs a callback with the id used to remove it.
type handler[T any] struct {
	id uint32
	fn func(T)
}

// handlerList is an ordered set of callbacks for one notification type.
// Callbacks fire in registration order.
type handlerList[T any] struct {
	entries []handler[T]
	nextID  uint32
	firing  int
}

func (l *handlerList[T]) add(fn func(T)) CallbackHandle {
	if fn == nil {
		return CallbackHandle{}
	}
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handler[T]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.remove(id) }}
}

// remove drops the entry from the slice so firing never iterates dead slots.
func (l *handlerList[T]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			if l.firing > 0 {
				// The slice is being iterated; leave its backing array alone.
				next := make([]handler[T], 0, len(l.entries)-1)
				next = append(next, l.entries[:i]...)
				l.entries = append(next, l.entries[i+1:]...)
				return
			}
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = handler[T]{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

// fire invokes every callback. A callback removed by an earlier one during
// the same fire still runs; one added during the fire does not.
func (l *handlerList[T]) fire(arg T) {
	entries := l.entries
	l.firing++
	defer func() { l.firing-- }()
	for i := range entries {
		entries[i].fn(arg)
	}
}

// notify adapts a no-argument callback to a handler list entry.
func notify(fn func()) func(struct{}) {
	if fn == nil {
		return nil
	}
	return func(struct{}) { fn() }
}

func (l *handlerList[T]) len() int {
	return len(l.entries)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}

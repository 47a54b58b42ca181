package tabletop

// InjectMove queues a pointer motion to viewport position (x, y). Queued
// events are consumed one per Simulate call, before the ray is cast, so a
// motion and the tick that picks with it happen in the same frame.
func (t *Table) InjectMove(x, y float64) {
	t.injectQueue = append(t.injectQueue, MotionEvent(x, y))
}

// InjectPress queues a primary button press.
func (t *Table) InjectPress() {
	t.injectQueue = append(t.injectQueue, ButtonEvent(MouseButtonLeft, true))
}

// InjectRelease queues a primary button release.
func (t *Table) InjectRelease() {
	t.injectQueue = append(t.injectQueue, ButtonEvent(MouseButtonLeft, false))
}

// InjectClick is a convenience that queues a move to (x, y), a press, and a
// release. Consumes three frames.
func (t *Table) InjectClick(x, y float64) {
	t.InjectMove(x, y)
	t.InjectPress()
	t.InjectRelease()
}

// InjectDrag queues a full drag: a move to (fromX, fromY), a press, moves
// linearly interpolated over the remaining frames ending at (toX, toY), and a
// release. The sequence consumes frames+3 frames; frames below 1 is treated
// as 1.
func (t *Table) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	t.InjectMove(fromX, fromY)
	t.InjectPress()
	for i := 1; i <= frames; i++ {
		f := float64(i) / float64(frames)
		t.InjectMove(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f)
	}
	t.InjectRelease()
}

// Injecting reports whether synthetic events are still queued.
func (t *Table) Injecting() bool {
	return len(t.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it
// through HandlePointer. Returns true if an event was consumed.
func (t *Table) processInjectedInput() bool {
	if len(t.injectQueue) == 0 {
		return false
	}
	ev := t.injectQueue[0]
	copy(t.injectQueue, t.injectQueue[1:])
	t.injectQueue = t.injectQueue[:len(t.injectQueue)-1]

	t.HandlePointer(ev)
	return true
}

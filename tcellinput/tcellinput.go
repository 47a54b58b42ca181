// Package tcellinput turns terminal mouse events from tcell into tabletop
// pointer events, so a table can be driven from a text-mode front end.
package tcellinput

import (
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/tabletop"
)

// Sink receives translated pointer events. *tabletop.Table implements it.
type Sink interface {
	HandlePointer(ev tabletop.PointerEvent)
}

var buttonMap = [...]struct {
	mask   tcell.ButtonMask
	button tabletop.MouseButton
}{
	{tcell.ButtonPrimary, tabletop.MouseButtonLeft},
	{tcell.ButtonSecondary, tabletop.MouseButtonRight},
	{tcell.ButtonMiddle, tabletop.MouseButtonMiddle},
}

// Translator converts tcell mouse events into pointer events. Terminal cells
// are mapped to viewport space by their centre, scaled by CellWidth and
// CellHeight. tcell reports button state rather than transitions, so the
// translator remembers the previous mask to detect presses and releases.
type Translator struct {
	CellWidth  float64
	CellHeight float64

	prevButtons tcell.ButtonMask
	prevCell    [2]int
	seen        bool
}

// New returns a translator for cells of the given size in viewport units.
// Non-positive sizes default to 1.
func New(cellWidth, cellHeight float64) *Translator {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return &Translator{CellWidth: cellWidth, CellHeight: cellHeight}
}

// CellToViewport returns the viewport position of the centre of cell (x, y).
func (t *Translator) CellToViewport(x, y int) tabletop.Vec2 {
	return tabletop.Vec2{
		X: (float64(x) + 0.5) * t.CellWidth,
		Y: (float64(y) + 0.5) * t.CellHeight,
	}
}

func modifiers(m tcell.ModMask) tabletop.KeyModifiers {
	var mods tabletop.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= tabletop.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= tabletop.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= tabletop.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= tabletop.ModMeta
	}
	return mods
}

// Translate returns the pointer events for ev: a motion event when the cell
// changed (or on the first event), followed by one button event per button
// whose state changed.
func (t *Translator) Translate(ev *tcell.EventMouse) []tabletop.PointerEvent {
	x, y := ev.Position()
	pos := t.CellToViewport(x, y)
	mods := modifiers(ev.Modifiers())

	var out []tabletop.PointerEvent
	cell := [2]int{x, y}
	if !t.seen || cell != t.prevCell {
		out = append(out, tabletop.PointerEvent{Kind: tabletop.PointerMotion, Position: pos, Modifiers: mods})
		t.prevCell = cell
		t.seen = true
	}

	btns := ev.Buttons()
	for _, b := range buttonMap {
		was := t.prevButtons&b.mask != 0
		is := btns&b.mask != 0
		if was == is {
			continue
		}
		out = append(out, tabletop.PointerEvent{
			Kind:      tabletop.PointerButton,
			Position:  pos,
			Button:    b.button,
			Pressed:   is,
			Modifiers: mods,
		})
	}
	t.prevButtons = btns
	return out
}

// Feed translates ev and delivers the results to sink. Events other than
// mouse events are ignored. It reports whether ev was a mouse event.
func (t *Translator) Feed(sink Sink, ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	for _, pe := range t.Translate(m) {
		sink.HandlePointer(pe)
	}
	return true
}

package tabletop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollState remembers the last cursor position seen by PollInput so motion is
// only reported when the pointer actually moves.
type pollState struct {
	cursor Vec2
	seen   bool
}

var polledButtons = [...]struct {
	from ebiten.MouseButton
	to   MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// readModifiers returns the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// buttonEdge reports whether a button went down or up this frame.
type buttonEdge func(b MouseButton) bool

// translate turns one frame of polled pointer state into events: a motion
// event when the cursor moved (or on the first poll), then one button event
// per button that was just pressed or just released.
func (p *pollState) translate(cursor Vec2, mods KeyModifiers, justPressed, justReleased buttonEdge) []PointerEvent {
	var out []PointerEvent
	if !p.seen || cursor != p.cursor {
		p.cursor = cursor
		p.seen = true
		out = append(out, PointerEvent{Kind: PointerMotion, Position: cursor, Modifiers: mods})
	}
	for _, b := range polledButtons {
		switch {
		case justPressed(b.to):
			out = append(out, PointerEvent{Kind: PointerButton, Position: cursor, Button: b.to, Pressed: true, Modifiers: mods})
		case justReleased(b.to):
			out = append(out, PointerEvent{Kind: PointerButton, Position: cursor, Button: b.to, Modifiers: mods})
		}
	}
	return out
}

// ebitenButton maps a MouseButton back to ebiten's.
func ebitenButton(b MouseButton) ebiten.MouseButton {
	for _, pb := range polledButtons {
		if pb.to == b {
			return pb.from
		}
	}
	return ebiten.MouseButtonLeft
}

// PollInput reads the ebiten mouse state and feeds it to the table as pointer
// events. Call it from ebiten.Game.Update before Table.Update. Polling is
// suspended while injected events are queued.
func (t *Table) PollInput() {
	if t.Injecting() {
		return
	}
	mx, my := ebiten.CursorPosition()
	evs := t.poll.translate(Vec2{X: float64(mx), Y: float64(my)}, readModifiers(),
		func(b MouseButton) bool { return inpututil.IsMouseButtonJustPressed(ebitenButton(b)) },
		func(b MouseButton) bool { return inpututil.IsMouseButtonJustReleased(ebitenButton(b)) },
	)
	for _, ev := range evs {
		t.HandlePointer(ev)
	}
}

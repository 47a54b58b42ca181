package tabletop

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recordStore struct {
	events []CardEvent
}

func (r *recordStore) EmitEvent(ev CardEvent) {
	r.events = append(r.events, ev)
}

func (r *recordStore) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func centre() (float64, float64) {
	return testScreenW / 2, testScreenH / 2
}

func TestTableHoverAndClick(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)
	if card.Collider == 0 {
		t.Fatal("card has no collider after NewCard")
	}

	var enters, presses, releases int
	card.OnEnter(func() { enters++ })
	card.OnPress(func() { presses++ })
	card.OnRelease(func() { releases++ })

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)

	if res := tbl.LastDispatch(); res.Outcome != DispatchAccepted || res.Target != card {
		t.Fatalf("LastDispatch() = %+v, want accepted by ace", res)
	}
	if !card.Hovered() || enters != 1 {
		t.Fatalf("hovered=%v enters=%d, want true, 1", card.Hovered(), enters)
	}
	if !approx32(card.Transform.Position.Z(), DefaultHoverOffset, 1e-6) {
		t.Errorf("Z = %v, want lifted by %v", card.Transform.Position.Z(), DefaultHoverOffset)
	}

	tbl.InjectPress()
	tbl.Update(1.0 / 60)
	if !card.Held() || presses != 1 {
		t.Errorf("held=%v presses=%d, want true, 1", card.Held(), presses)
	}

	tbl.InjectRelease()
	tbl.Update(1.0 / 60)
	if card.Held() || releases != 1 {
		t.Errorf("held=%v releases=%d, want false, 1", card.Held(), releases)
	}
}

func TestTableIdleStability(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)

	x, y := centre()
	tbl.InjectMove(x+20, y-10)
	tbl.Update(1.0 / 60)
	if !card.Hovered() {
		t.Fatal("card not hovered")
	}

	var notifications int
	card.OnEnter(func() { notifications++ })
	card.OnExit(func() { notifications++ })
	card.OnInput(func(HitContext) { notifications++ })

	before := card.Transform
	for i := 0; i < 30; i++ {
		tbl.Update(1.0 / 60)
		if res := tbl.LastDispatch(); res.Outcome != DispatchIdle {
			t.Fatalf("tick %d outcome = %s, want idle", i, res.Outcome)
		}
	}
	if card.Transform != before {
		t.Errorf("Transform = %+v after idle ticks, want %+v", card.Transform, before)
	}
	if notifications != 0 {
		t.Errorf("%d notifications during idle ticks, want 0", notifications)
	}
	if !card.Hovered() {
		t.Error("hover lost during idle ticks")
	}
}

func TestTableExitRestoresCard(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)

	s := screenOf(t, tbl.Camera(), mgl32.Vec3{0.3, 0.3, 0.005})
	tbl.InjectMove(s.X, s.Y)
	tbl.Update(1.0 / 60)
	if card.Transform.Rotation == (mgl32.Vec3{}) {
		t.Fatal("card did not tilt toward an off-centre hit")
	}

	tbl.InjectMove(5, 5)
	tbl.Update(1.0 / 60)
	if card.Hovered() {
		t.Fatal("card still hovered after the pointer left")
	}
	if res := tbl.LastDispatch(); res.Outcome != DispatchMiss {
		t.Errorf("outcome = %s, want miss", res.Outcome)
	}
	if !approx32(card.Transform.Position.Z(), 0, 1e-6) {
		t.Errorf("Z = %v after exit, want 0", card.Transform.Position.Z())
	}

	for i := 0; i < 30 && card.Returning(); i++ {
		tbl.Update(1.0 / 60)
	}
	if card.Returning() || card.Transform.Rotation != (mgl32.Vec3{}) {
		t.Errorf("rotation = %v, returning = %v; want rest", card.Transform.Rotation, card.Returning())
	}
}

func TestTableFrontCardWins(t *testing.T) {
	tbl := newTestTable()
	back := tbl.NewCard("back", 1, 1.4)
	front := tbl.NewCard("front", 1, 1.4)
	front.Transform.Position = mgl32.Vec3{0, 0, 0.5}

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)

	if !front.Hovered() || back.Hovered() {
		t.Errorf("front hovered=%v back hovered=%v, want true, false", front.Hovered(), back.Hovered())
	}
}

func TestTableBlocker(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)
	tbl.AddBlocker(Box{Center: mgl32.Vec3{0, 0, 1}, HalfExtents: mgl32.Vec3{2, 2, 0.1}}, LayerAll)

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)

	if res := tbl.LastDispatch(); res.Outcome != DispatchBlocked || res.Queries != 1 {
		t.Errorf("LastDispatch() = %+v, want blocked after one query", res)
	}
	if card.Hovered() {
		t.Error("card hovered through a blocker")
	}
}

func TestTableDispatchMask(t *testing.T) {
	tbl := NewTable(newTestCamera(), TableConfig{Dispatcher: DispatcherConfig{Mask: 2}})
	card := tbl.NewCard("ace", 1, 1.4)

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if card.Hovered() {
		t.Error("card on layer 1 hovered by a layer-2 ray")
	}

	tbl.Space().SetLayer(card.Collider, 2)
	tbl.InjectMove(x+1, y)
	tbl.Update(1.0 / 60)
	if !card.Hovered() {
		t.Error("card not hovered after moving it onto the ray's layer")
	}
}

func TestTableEntityStore(t *testing.T) {
	tbl := newTestTable()
	store := &recordStore{}
	tbl.SetEntityStore(store)
	card := tbl.NewCard("ace", 1, 1.4)
	card.EntityID = 9

	x, y := centre()
	tbl.InjectClick(x, y)
	for tbl.Injecting() {
		tbl.Update(1.0 / 60)
	}

	want := []EventType{EventInput, EventEnter, EventPress, EventRelease}
	got := store.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	ev := store.events[0]
	if ev.EntityID != 9 || ev.Card != "ace" {
		t.Errorf("event identity = %d %q, want 9 \"ace\"", ev.EntityID, ev.Card)
	}
	if !approxVec(ev.Normal, mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("input normal = %v, want (0, 0, 1)", ev.Normal)
	}
}

func TestTableRemoveCard(t *testing.T) {
	tbl := newTestTable()
	store := &recordStore{}
	tbl.SetEntityStore(store)
	card := tbl.NewCard("ace", 1, 1.4)

	if !tbl.RemoveCard(card) {
		t.Fatal("RemoveCard returned false")
	}
	if tbl.RemoveCard(card) {
		t.Error("RemoveCard returned true twice")
	}
	if len(tbl.Cards()) != 0 || tbl.Space().Len() != 0 {
		t.Errorf("cards=%d colliders=%d after remove, want 0, 0", len(tbl.Cards()), tbl.Space().Len())
	}

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if res := tbl.LastDispatch(); res.Outcome != DispatchMiss {
		t.Errorf("outcome = %s, want miss", res.Outcome)
	}

	// The card's own listeners still work, but the table no longer forwards them.
	card.AcceptHit(HitContext{})
	card.Reconcile()
	if len(store.events) != 0 {
		t.Errorf("store received %d events from a removed card", len(store.events))
	}
}

func TestTableAddCardTwice(t *testing.T) {
	tbl := newTestTable()
	card := NewCard("ace", 1, 1, DefaultCardConfig())
	id := tbl.AddCard(card)
	if again := tbl.AddCard(card); again != id {
		t.Errorf("second AddCard = %d, want %d", again, id)
	}
	if len(tbl.Cards()) != 1 || tbl.Space().Len() != 1 {
		t.Errorf("cards=%d colliders=%d, want 1, 1", len(tbl.Cards()), tbl.Space().Len())
	}
}

func TestTableWithoutCamera(t *testing.T) {
	tbl := NewTable(nil, TableConfig{})
	card := tbl.NewCard("ace", 1, 1.4)

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if res := tbl.LastDispatch(); res.Outcome != DispatchSkipped {
		t.Errorf("outcome = %s, want skipped", res.Outcome)
	}
	if tbl.Dispatcher().Pending() {
		t.Fatal("motion kept pending without a camera")
	}

	tbl.SetCamera(newTestCamera())
	tbl.Update(1.0 / 60)
	if card.Hovered() {
		t.Error("motion from before the camera existed was picked")
	}

	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if !card.Hovered() {
		t.Error("fresh motion not picked once a camera was set")
	}
}

func TestTableCardConfig(t *testing.T) {
	cfg := DefaultCardConfig()
	cfg.Lift = false
	tbl := NewTable(newTestCamera(), TableConfig{Card: cfg})
	card := tbl.NewCard("ace", 1, 1.4)

	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if !card.Hovered() || card.Transform.Position != (mgl32.Vec3{}) {
		t.Errorf("hovered=%v position=%v, want hovered without lift", card.Hovered(), card.Transform.Position)
	}
}

func TestTableSimulateThenPresent(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)

	s := screenOf(t, tbl.Camera(), mgl32.Vec3{0.3, 0, 0.005})
	tbl.InjectMove(s.X, s.Y)
	tbl.Simulate()
	tbl.InjectMove(5, 5)
	tbl.Simulate()
	rot := card.Transform.Rotation

	// Simulation alone never advances the return animation.
	tbl.Simulate()
	if card.Transform.Rotation != rot {
		t.Error("Simulate advanced the return animation")
	}
	tbl.Present(1.0 / 60)
	if card.Transform.Rotation.Y() >= rot.Y() {
		t.Errorf("Present did not relax rotation: %v -> %v", rot, card.Transform.Rotation)
	}
}

func TestTableHoverClickDragScenario(t *testing.T) {
	tbl := newTestTable()
	card := tbl.NewCard("ace", 1, 1.4)
	cam := tbl.Camera()

	var enters, exits int
	card.OnEnter(func() { enters++ })
	card.OnExit(func() { exits++ })

	// Tick 1: pointer onto the card.
	x, y := centre()
	tbl.InjectMove(x, y)
	tbl.Update(1.0 / 60)
	if enters != 1 || !card.Hovered() {
		t.Fatalf("enters=%d hovered=%v, want 1, true", enters, card.Hovered())
	}
	if !approx32(card.Transform.Position.Z(), 0.1, 1e-6) {
		t.Fatalf("Z = %v, want lifted to 0.1", card.Transform.Position.Z())
	}
	grab := card.LastHit()

	// Press while hovered.
	tbl.InjectPress()
	tbl.Update(1.0 / 60)
	if !card.Held() {
		t.Fatal("card not held after press")
	}

	// Move to a new point on the card.
	s := screenOf(t, cam, mgl32.Vec3{0.2, 0, 0.105})
	tbl.InjectMove(s.X, s.Y)
	tbl.Update(1.0 / 60)
	hit := card.LastHit()
	dx := hit.X() - grab.X()
	dy := hit.Y() - grab.Y()
	if dx <= 0 {
		t.Fatalf("dx = %v, want > 0", dx)
	}
	wantPos := mgl32.Vec3{dx, dy, 0.1}
	if !approxVec(card.Transform.Position, wantPos, 1e-5) {
		t.Errorf("Position = %v, want %v", card.Transform.Position, wantPos)
	}
	if !approx32(card.Transform.Rotation.Z(), -dx*DefaultDragScale, 1e-5) {
		t.Errorf("roll = %v, want %v", card.Transform.Rotation.Z(), -dx*DefaultDragScale)
	}

	// Release freezes the transform.
	tbl.InjectRelease()
	tbl.Update(1.0 / 60)
	if card.Held() {
		t.Fatal("card still held after release")
	}
	frozen := card.Transform

	tbl.Update(1.0 / 60)
	if card.Transform != frozen {
		t.Errorf("Transform changed after release without input: %+v -> %+v", frozen, card.Transform)
	}

	// Pointer off the card: exit, drop, and return to rest.
	tbl.InjectMove(5, 5)
	tbl.Update(1.0 / 60)
	if exits != 1 || card.Hovered() {
		t.Fatalf("exits=%d hovered=%v, want 1, false", exits, card.Hovered())
	}
	if !approx32(card.Transform.Position.Z(), 0, 1e-6) {
		t.Errorf("Z = %v after exit, want 0", card.Transform.Position.Z())
	}
	if !card.Returning() {
		t.Error("return animation not started for a rolled card")
	}
	if enters != 1 {
		t.Errorf("enters = %d over the whole scenario, want 1", enters)
	}
}

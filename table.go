package tabletop

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// LayerCards is the default collision layer for card colliders.
const LayerCards LayerMask = 1

// cardThickness is the depth of a card's collider box.
const cardThickness = 0.01

// EntityStore is the interface for optional ECS integration. When set on a
// Table, card notifications are forwarded to it.
type EntityStore interface {
	EmitEvent(event CardEvent)
}

// CardEvent carries a card notification for the ECS bridge.
type CardEvent struct {
	Type     EventType
	EntityID uint32
	Card     string
	// Position is the card's position after the response was applied.
	Position mgl32.Vec3
	// Point and Normal are valid for EventInput.
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// TableConfig configures a Table.
type TableConfig struct {
	Dispatcher DispatcherConfig
	// Card is the config used by Table.NewCard. The zero value means
	// DefaultCardConfig.
	Card CardConfig
	// CardLayer is the collision layer card colliders are placed on. Zero
	// means LayerCards.
	CardLayer LayerMask
	Debug     bool
}

// Table is the scene glue for a set of cards: it owns the collision space and
// the dispatcher, maps colliders back to cards, routes button events, and runs
// the two per-tick phases.
type Table struct {
	space      *Space
	camera     *Camera
	dispatcher *RayDispatcher
	cfg        TableConfig

	cards   []*Card
	owners  map[ColliderID]*Card
	wiring  map[*Card][]CallbackHandle
	store   EntityStore
	debug   bool
	last    DispatchResult
	lastDur time.Duration

	poll        pollState
	injectQueue []PointerEvent
	testRunner  *TestRunner
}

// NewTable creates a table viewed through camera. camera may be nil; picking
// is skipped until SetCamera provides one.
func NewTable(camera *Camera, cfg TableConfig) *Table {
	if cfg.Card == (CardConfig{}) {
		cfg.Card = DefaultCardConfig()
	}
	if cfg.CardLayer == 0 {
		cfg.CardLayer = LayerCards
	}
	t := &Table{
		space:  NewSpace(),
		cfg:    cfg,
		owners: make(map[ColliderID]*Card),
		wiring: make(map[*Card][]CallbackHandle),
		debug:  cfg.Debug,
	}
	t.dispatcher = NewRayDispatcher(nil, t.space, ResolverFunc(t.owner), cfg.Dispatcher)
	t.SetCamera(camera)
	t.dispatcher.OnRayProcessed(t.reconcile)
	return t
}

// Space returns the table's collision space.
func (t *Table) Space() *Space { return t.space }

// Camera returns the table's camera, which may be nil.
func (t *Table) Camera() *Camera { return t.camera }

// Dispatcher returns the table's ray dispatcher.
func (t *Table) Dispatcher() *RayDispatcher { return t.dispatcher }

// Cards returns the cards on the table. The returned slice MUST NOT be mutated.
func (t *Table) Cards() []*Card { return t.cards }

// LastDispatch returns the result of the most recent simulation tick.
func (t *Table) LastDispatch() DispatchResult { return t.last }

// SetCamera replaces the camera used for picking.
func (t *Table) SetCamera(c *Camera) {
	t.camera = c
	if c == nil {
		t.dispatcher.SetViewport(nil)
		return
	}
	t.dispatcher.SetViewport(c)
}

// SetEntityStore sets the optional ECS bridge.
func (t *Table) SetEntityStore(store EntityStore) {
	t.store = store
}

// SetDebugMode enables or disables per-tick dispatch stats on stderr.
func (t *Table) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// NewCard creates a card with the table's card config and adds it.
func (t *Table) NewCard(name string, width, height float32) *Card {
	c := NewCard(name, width, height, t.cfg.Card)
	t.AddCard(c)
	return c
}

// AddCard places c on the table: a box collider following its transform is
// added to the space and mapped back to c.
func (t *Table) AddCard(c *Card) ColliderID {
	if _, ok := t.wiring[c]; ok {
		log.Printf("tabletop: card %q already on table", c.Name)
		return c.Collider
	}
	box := Box{HalfExtents: mgl32.Vec3{c.Width / 2, c.Height / 2, cardThickness / 2}}
	id := t.space.Add(box, t.cfg.CardLayer)
	t.space.Follow(id, &c.Transform)
	c.Collider = id
	t.owners[id] = c
	t.cards = append(t.cards, c)

	t.wiring[c] = []CallbackHandle{
		c.OnEnter(func() { t.emit(EventEnter, c, HitContext{}) }),
		c.OnExit(func() { t.emit(EventExit, c, HitContext{}) }),
		c.OnInput(func(ctx HitContext) { t.emit(EventInput, c, ctx) }),
		c.OnPress(func() { t.emit(EventPress, c, HitContext{}) }),
		c.OnRelease(func() { t.emit(EventRelease, c, HitContext{}) }),
	}
	return id
}

// RemoveCard takes c off the table. It reports whether c was on it.
func (t *Table) RemoveCard(c *Card) bool {
	handles, ok := t.wiring[c]
	if !ok {
		log.Printf("tabletop: remove of unknown card %q", c.Name)
		return false
	}
	for _, h := range handles {
		h.Remove()
	}
	delete(t.wiring, c)
	delete(t.owners, c.Collider)
	t.space.Remove(c.Collider)
	for i, other := range t.cards {
		if other == c {
			t.cards = append(t.cards[:i], t.cards[i+1:]...)
			break
		}
	}
	c.Collider = 0
	return true
}

// AddBlocker adds a collider that belongs to no card. It stops the pointer ray
// without notifying anything.
func (t *Table) AddBlocker(shape Shape, layer LayerMask) ColliderID {
	return t.space.Add(shape, layer)
}

func (t *Table) owner(id ColliderID) (HitTarget, bool) {
	c, ok := t.owners[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// HandlePointer feeds a raw pointer event to the table. Motion is buffered for
// the next simulation tick; primary button events go to every card.
func (t *Table) HandlePointer(ev PointerEvent) {
	if ev.Kind == PointerMotion {
		t.dispatcher.HandlePointer(ev)
		return
	}
	for _, c := range t.cards {
		c.HandleButton(ev)
	}
}

// reconcile is the tick-complete broadcast.
func (t *Table) reconcile() {
	for _, c := range t.cards {
		c.Reconcile()
	}
}

// Simulate runs the simulation phase: one injected event is consumed if any
// are queued, then the dispatcher casts the pointer ray and every card
// reconciles its hover state.
func (t *Table) Simulate() DispatchResult {
	if t.testRunner != nil {
		t.testRunner.step(t)
	}
	t.processInjectedInput()

	var start time.Time
	if t.debug {
		start = time.Now()
	}
	t.last = t.dispatcher.Tick()
	if t.debug {
		t.lastDur = time.Since(start)
		t.debugLog(t.last, t.lastDur)
	}
	return t.last
}

// Present runs the presentation phase, advancing card animations by dt seconds.
func (t *Table) Present(dt float32) {
	for _, c := range t.cards {
		c.Update(dt)
	}
}

// Update runs both phases in order.
func (t *Table) Update(dt float32) {
	t.Simulate()
	t.Present(dt)
}

func (t *Table) emit(typ EventType, c *Card, ctx HitContext) {
	if t.store == nil {
		return
	}
	t.store.EmitEvent(CardEvent{
		Type:     typ,
		EntityID: c.EntityID,
		Card:     c.Name,
		Position: c.Transform.Position,
		Point:    ctx.Point,
		Normal:   ctx.Normal,
	})
}

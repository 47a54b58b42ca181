package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/tabletop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CardEventType is the Donburi event type for tabletop card events.
// Subscribe to this in your ECS systems to receive hover and hold changes.
var CardEventType = events.NewEventType[tabletop.CardEvent]()

// CardStateData is the per-card state mirrored by a tracking store.
type CardStateData struct {
	Name     string
	EntityID uint32
	Hovered  bool
	Held     bool
	Position mgl32.Vec3
	// LastPoint is the world-space point of the most recent input event.
	LastPoint mgl32.Vec3
}

// CardState is the component holding CardStateData.
var CardState = donburi.NewComponentType[CardStateData]()

type donburiStore struct {
	world    donburi.World
	track    bool
	entities map[string]donburi.Entity
	byID     map[uint32]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Card events are published to CardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) tabletop.EntityStore {
	return &donburiStore{world: world}
}

// NewTrackingStore is like NewDonburiStore, and additionally keeps one entity
// per card whose CardState component follows the card's events. Cards are
// told apart by EntityID when it is non-zero and by name otherwise, so cards
// sharing a name need distinct EntityIDs. The returned Lookup finds an entity
// by card name.
func NewTrackingStore(world donburi.World) (tabletop.EntityStore, Lookup) {
	s := &donburiStore{
		world:    world,
		track:    true,
		entities: make(map[string]donburi.Entity),
		byID:     make(map[uint32]donburi.Entity),
	}
	return s, s.lookup
}

// Lookup returns the entity tracking the named card. When several cards share
// the name, the most recently tracked one is returned.
type Lookup func(card string) (donburi.Entity, bool)

func (s *donburiStore) lookup(card string) (donburi.Entity, bool) {
	e, ok := s.entities[card]
	return e, ok
}

func (s *donburiStore) EmitEvent(event tabletop.CardEvent) {
	if s.track {
		s.apply(event)
	}
	CardEventType.Publish(s.world, event)
}

// entity returns the entity tracking the card that sent event, creating it on
// first sight.
func (s *donburiStore) entity(event tabletop.CardEvent) donburi.Entity {
	if event.EntityID != 0 {
		if e, ok := s.byID[event.EntityID]; ok && s.world.Valid(e) {
			s.entities[event.Card] = e
			return e
		}
		// Adopt an entity created from id-less events for the same name.
		if e, ok := s.entities[event.Card]; ok && s.world.Valid(e) &&
			CardState.Get(s.world.Entry(e)).EntityID == 0 {
			s.byID[event.EntityID] = e
			return e
		}
		e := s.world.Create(CardState)
		s.byID[event.EntityID] = e
		s.entities[event.Card] = e
		return e
	}
	if e, ok := s.entities[event.Card]; ok && s.world.Valid(e) {
		return e
	}
	e := s.world.Create(CardState)
	s.entities[event.Card] = e
	return e
}

func (s *donburiStore) apply(event tabletop.CardEvent) {
	state := CardState.Get(s.world.Entry(s.entity(event)))
	state.Name = event.Card
	if event.EntityID != 0 {
		state.EntityID = event.EntityID
	}
	state.Position = event.Position

	switch event.Type {
	case tabletop.EventEnter:
		state.Hovered = true
	case tabletop.EventExit:
		state.Hovered = false
	case tabletop.EventInput:
		state.LastPoint = event.Point
	case tabletop.EventPress:
		state.Held = true
	case tabletop.EventRelease:
		state.Held = false
	}
}

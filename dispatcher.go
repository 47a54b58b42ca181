package tabletop

import "github.com/go-gl/mathgl/mgl32"

// DefaultRayLength is the maximum pick distance in world units.
const DefaultRayLength = 1000

// HitContext is delivered to the object that owns a hit collider.
type HitContext struct {
	// Source is the dispatcher that cast the ray.
	Source *RayDispatcher
	// Event is the buffered pointer event the ray was cast for.
	Event    PointerEvent
	Collider ColliderID
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// HitTarget is an object that can be picked. AcceptHit returns false to let
// the ray continue to the next collider behind it.
type HitTarget interface {
	AcceptHit(ctx HitContext) bool
}

// Resolver maps a collider to the object that owns it.
type Resolver interface {
	Owner(id ColliderID) (HitTarget, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id ColliderID) (HitTarget, bool)

// Owner calls f(id).
func (f ResolverFunc) Owner(id ColliderID) (HitTarget, bool) {
	return f(id)
}

// DispatchOutcome describes how a tick's dispatch cycle ended.
type DispatchOutcome uint8

const (
	DispatchIdle     DispatchOutcome = iota // no pointer motion was pending
	DispatchSkipped                         // motion dropped because the viewport was not ready
	DispatchMiss                            // the ray hit nothing eligible
	DispatchBlocked                         // the ray stopped at a collider with no owner
	DispatchAccepted                        // an owner accepted the hit
)

func (o DispatchOutcome) String() string {
	switch o {
	case DispatchIdle:
		return "idle"
	case DispatchSkipped:
		return "skipped"
	case DispatchMiss:
		return "miss"
	case DispatchBlocked:
		return "blocked"
	case DispatchAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// DispatchResult reports what one Tick did.
type DispatchResult struct {
	Outcome DispatchOutcome
	// Queries is the number of oracle queries issued.
	Queries int
	// Hit is the final hit for DispatchBlocked and DispatchAccepted.
	Hit Hit
	// Target is the accepting owner for DispatchAccepted.
	Target HitTarget
}

// DispatcherConfig configures a RayDispatcher. Zero fields use defaults.
type DispatcherConfig struct {
	// Mask selects the collision layers the pointer ray tests. Zero means LayerAll.
	Mask LayerMask
	// RayLength is the maximum pick distance. Zero means DefaultRayLength.
	RayLength float32
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Mask == 0 {
		c.Mask = LayerAll
	}
	if c.RayLength <= 0 {
		c.RayLength = DefaultRayLength
	}
	return c
}

// RayDispatcher buffers pointer motion and, once per simulation tick, casts a
// single ray through the latest pointer position to find the first object
// that accepts it.
type RayDispatcher struct {
	viewport Viewport
	oracle   CollisionOracle
	owners   Resolver
	cfg      DispatcherConfig

	pending bool
	event   PointerEvent

	processed handlerList[struct{}]
}

// NewRayDispatcher creates a dispatcher. viewport may be nil until a camera
// exists; ticks are skipped while it is.
func NewRayDispatcher(viewport Viewport, oracle CollisionOracle, owners Resolver, cfg DispatcherConfig) *RayDispatcher {
	return &RayDispatcher{
		viewport: viewport,
		oracle:   oracle,
		owners:   owners,
		cfg:      cfg.withDefaults(),
	}
}

// SetViewport replaces the viewport used to build rays.
func (d *RayDispatcher) SetViewport(vp Viewport) {
	d.viewport = vp
}

// Viewport returns the current viewport, which may be nil.
func (d *RayDispatcher) Viewport() Viewport {
	return d.viewport
}

// Config returns the effective configuration.
func (d *RayDispatcher) Config() DispatcherConfig {
	return d.cfg
}

// HandlePointer buffers a motion event for the next tick, replacing any motion
// already pending. Button events are ignored here.
func (d *RayDispatcher) HandlePointer(ev PointerEvent) {
	if ev.Kind != PointerMotion {
		return
	}
	d.event = ev
	d.pending = true
}

// Pending reports whether a motion event is waiting for the next tick.
func (d *RayDispatcher) Pending() bool {
	return d.pending
}

// OnRayProcessed registers a callback fired after every dispatch cycle that
// ran, whether or not anything was hit.
func (d *RayDispatcher) OnRayProcessed(fn func()) CallbackHandle {
	return d.processed.add(notify(fn))
}

// Tick runs one dispatch cycle. With no motion pending it does nothing. If the
// viewport is not ready the pending motion is dropped and nothing is cast; the
// next motion event picks again. Otherwise the ray is cast, at most one owner is handed the hit, the pending
// flag is cleared, and the ray-processed callbacks fire.
func (d *RayDispatcher) Tick() DispatchResult {
	if !d.pending {
		return DispatchResult{Outcome: DispatchIdle}
	}
	if d.viewport == nil || d.oracle == nil || !d.viewport.Ready() {
		d.pending = false
		return DispatchResult{Outcome: DispatchSkipped}
	}

	res := d.cast()
	d.pending = false
	d.processed.fire(struct{}{})
	return res
}

// cast walks the ray, excluding each collider whose owner declines the hit.
func (d *RayDispatcher) cast() DispatchResult {
	pos := d.event.Position
	from := d.viewport.ProjectRayOrigin(pos)
	to := from.Add(d.viewport.ProjectRayNormal(pos).Mul(d.cfg.RayLength))

	q := RayQuery{From: from, To: to, Mask: d.cfg.Mask}
	var res DispatchResult
	for {
		hit, ok := d.oracle.IntersectRay(q)
		res.Queries++
		if !ok {
			res.Outcome = DispatchMiss
			return res
		}
		res.Hit = hit
		// An oracle that ignores the exclusion set would loop forever.
		if q.Exclude.Contains(hit.Collider) {
			res.Outcome = DispatchBlocked
			return res
		}

		var target HitTarget
		if d.owners != nil {
			target, ok = d.owners.Owner(hit.Collider)
		}
		if target == nil || !ok {
			res.Outcome = DispatchBlocked
			return res
		}

		ctx := HitContext{
			Source:   d,
			Event:    d.event,
			Collider: hit.Collider,
			Point:    hit.Point,
			Normal:   hit.Normal,
		}
		if target.AcceptHit(ctx) {
			res.Outcome = DispatchAccepted
			res.Target = target
			return res
		}
		q.Exclude.Add(hit.Collider)
	}
}

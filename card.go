package tabletop

import "github.com/go-gl/mathgl/mgl32"

// Default response constants for cards.
const (
	DefaultHoverOffset = 0.1
	DefaultPushScale   = 0.15
	DefaultDragScale   = 1.2
)

// Transform is a card's placement. Rotation holds Euler angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// Matrix returns the local-to-world matrix: rotation about X, then Y, then Z,
// followed by the translation.
func (t Transform) Matrix() mgl32.Mat4 {
	r := t.Rotation
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl32.HomogRotate3DZ(r.Z())).
		Mul4(mgl32.HomogRotate3DY(r.Y())).
		Mul4(mgl32.HomogRotate3DX(r.X()))
}

// CardConfig selects which responses a card performs. The simpler card
// behaviors (tint-only hover, lift-and-tilt hover, plain drag) are this one
// state machine with some toggles off. Start from DefaultCardConfig; zero
// numeric fields fall back to their defaults.
type CardConfig struct {
	// HoverOffset is how far the card lifts along Facing while hovered.
	HoverOffset float32
	// PushScale scales the lean toward the pointer while hovered.
	PushScale float32
	// DragScale scales the roll applied from horizontal drag motion.
	DragScale float32
	// ReturnRate is the return-to-rest speed in progress units per second.
	ReturnRate float32
	// Facing is the lift direction. Zero means +Z.
	Facing mgl32.Vec3

	Lift          bool // lift by HoverOffset on enter, drop on exit
	Tilt          bool // lean toward the pointer while hovered and not held
	Drag          bool // follow the pointer laterally while held
	DragTilt      bool // roll with horizontal drag motion
	ReturnToRest  bool // animate tilt back to zero after exit instead of snapping
	Tint          bool // recolor on enter, press, release and exit
	ReleaseOnExit bool // drop a held card when the pointer leaves it

	NeutralTint Color
	HoverTint   Color
	HeldTint    Color
}

// DefaultCardConfig returns the full behavior set: lift, tilt, drag with roll,
// animated return, and hover tint.
func DefaultCardConfig() CardConfig {
	return CardConfig{
		HoverOffset:  DefaultHoverOffset,
		PushScale:    DefaultPushScale,
		DragScale:    DefaultDragScale,
		ReturnRate:   DefaultReturnRate,
		Facing:       axisZ,
		Lift:         true,
		Tilt:         true,
		Drag:         true,
		DragTilt:     true,
		ReturnToRest: true,
		Tint:         true,
		NeutralTint:  ColorWhite,
		HoverTint:    Color{R: 1, G: 0.95, B: 0.8, A: 1},
		HeldTint:     Color{R: 0.85, G: 0.95, B: 1, A: 1},
	}
}

func (c CardConfig) withDefaults() CardConfig {
	if c.HoverOffset == 0 {
		c.HoverOffset = DefaultHoverOffset
	}
	if c.PushScale == 0 {
		c.PushScale = DefaultPushScale
	}
	if c.DragScale == 0 {
		c.DragScale = DefaultDragScale
	}
	if c.ReturnRate <= 0 {
		c.ReturnRate = DefaultReturnRate
	}
	if c.Facing.Len() == 0 {
		c.Facing = axisZ
	} else {
		c.Facing = c.Facing.Normalize()
	}
	return c
}

// Card is a pickable object with its own hover, press, drag and return-to-rest
// state. Hits arrive from a RayDispatcher through AcceptHit; hover changes are
// applied only in Reconcile, once per dispatch cycle.
type Card struct {
	Name string
	// EntityID links the card to an external entity store. Zero means none.
	EntityID uint32

	Transform Transform
	Tint      Color
	// Width and Height are the card face size in world units.
	Width, Height float32

	// Collider is the collider this card owns, set when added to a Table.
	Collider ColliderID

	cfg CardConfig

	hitThisTick bool
	hovered     bool
	held        bool
	lastHit     mgl32.Vec3
	returning   *returnTween

	enter   handlerList[struct{}]
	exit    handlerList[struct{}]
	input   handlerList[HitContext]
	press   handlerList[struct{}]
	release handlerList[struct{}]
}

// NewCard creates a card of the given face size with the given config.
func NewCard(name string, width, height float32, cfg CardConfig) *Card {
	c := &Card{
		Name:   name,
		Width:  width,
		Height: height,
		cfg:    cfg.withDefaults(),
	}
	c.Tint = c.cfg.NeutralTint
	if c.Tint == (Color{}) {
		c.Tint = ColorWhite
	}
	// The card's own response is the first input listener; user listeners
	// registered later observe the already-updated transform.
	c.input.add(c.respond)
	return c
}

// Config returns the card's effective configuration.
func (c *Card) Config() CardConfig { return c.cfg }

// Hovered reports whether the card was hit on the last completed tick.
func (c *Card) Hovered() bool { return c.hovered }

// Held reports whether the primary button is holding the card.
func (c *Card) Held() bool { return c.held }

// Returning reports whether the return-to-rest animation is running.
func (c *Card) Returning() bool { return c.returning != nil }

// ReturnProgress returns the return animation's interpolation factor. The
// second result is false when no animation is running.
func (c *Card) ReturnProgress() (float32, bool) {
	if c.returning == nil {
		return 0, false
	}
	return c.returning.Progress(), true
}

// LastHit returns the world-space point of the most recent accepted hit.
func (c *Card) LastHit() mgl32.Vec3 { return c.lastHit }

// OnEnter registers a callback fired when the card becomes hovered.
func (c *Card) OnEnter(fn func()) CallbackHandle {
	return c.enter.add(notify(fn))
}

// OnExit registers a callback fired when the card stops being hovered.
func (c *Card) OnExit(fn func()) CallbackHandle {
	return c.exit.add(notify(fn))
}

// OnInput registers a callback fired for every hit the card accepts.
func (c *Card) OnInput(fn func(HitContext)) CallbackHandle {
	return c.input.add(fn)
}

// OnPress registers a callback fired when the card is picked up.
func (c *Card) OnPress(fn func()) CallbackHandle {
	return c.press.add(notify(fn))
}

// OnRelease registers a callback fired when a held card is let go.
func (c *Card) OnRelease(fn func()) CallbackHandle {
	return c.release.add(notify(fn))
}

// AcceptHit implements HitTarget. Cards always accept; the hit is recorded
// for the next Reconcile and the input listeners run immediately.
func (c *Card) AcceptHit(ctx HitContext) bool {
	c.hitThisTick = true
	c.input.fire(ctx)
	return true
}

// respond applies the geometric response to a hit. Tilt is recomputed from the
// absolute offset each time; drag moves by the delta since the previous hit.
func (c *Card) respond(ctx HitContext) {
	if c.held {
		if c.cfg.Drag {
			delta := ctx.Point.Sub(c.lastHit)
			c.Transform.Position = c.Transform.Position.Add(mgl32.Vec3{delta.X(), delta.Y(), 0})
			if c.cfg.DragTilt {
				c.Transform.Rotation = mgl32.Vec3{0, 0, -delta.X() * c.cfg.DragScale}
			}
		}
	} else if c.cfg.Tilt {
		rel := ctx.Point.Sub(c.Transform.Position)
		c.Transform.Rotation = mgl32.Vec3{-rel.Y(), rel.X(), 0}.Mul(c.cfg.PushScale)
	}
	c.lastHit = ctx.Point
}

// HandleButton reacts to primary button events. A press only takes hold while
// the card is hovered; a release always lets go.
func (c *Card) HandleButton(ev PointerEvent) {
	switch {
	case ev.isPrimaryPress():
		if !c.hovered || c.held {
			return
		}
		c.held = true
		c.returning = nil
		c.Transform.Rotation = mgl32.Vec3{}
		if c.cfg.Tint {
			c.Tint = c.cfg.HeldTint
		}
		c.press.fire(struct{}{})
	case ev.isPrimaryRelease():
		if !c.held {
			return
		}
		c.held = false
		if c.cfg.Tint {
			if c.hovered {
				c.Tint = c.cfg.HoverTint
			} else {
				c.Tint = c.cfg.NeutralTint
			}
		}
		c.release.fire(struct{}{})
	}
}

// Reconcile compares this tick's hit against the hover state, applies the
// enter or exit response, and clears the per-tick hit flag. It runs once per
// dispatch cycle, after the dispatcher has delivered its hit.
func (c *Card) Reconcile() {
	switch {
	case c.hitThisTick && !c.hovered:
		c.hovered = true
		c.returning = nil
		if c.cfg.Lift {
			c.Transform.Position = c.Transform.Position.Add(c.cfg.Facing.Mul(c.cfg.HoverOffset))
		}
		if c.cfg.Tint && !c.held {
			c.Tint = c.cfg.HoverTint
		}
		c.enter.fire(struct{}{})
	case !c.hitThisTick && c.hovered:
		c.hovered = false
		if c.cfg.Lift {
			c.Transform.Position = c.Transform.Position.Sub(c.cfg.Facing.Mul(c.cfg.HoverOffset))
		}
		wasHeld := c.held
		if c.cfg.ReleaseOnExit {
			c.held = false
		}
		if c.cfg.Tint && !c.held {
			c.Tint = c.cfg.NeutralTint
		}
		if c.Transform.Rotation != (mgl32.Vec3{}) {
			if c.cfg.ReturnToRest {
				c.returning = newReturnTween(c.cfg.ReturnRate)
			} else {
				c.Transform.Rotation = mgl32.Vec3{}
			}
		}
		if wasHeld && !c.held {
			c.release.fire(struct{}{})
		}
		c.exit.fire(struct{}{})
	}
	c.hitThisTick = false
}

// Update advances the return-to-rest animation by dt seconds.
func (c *Card) Update(dt float32) {
	if c.returning == nil {
		return
	}
	rot, done := c.returning.step(c.Transform.Rotation, dt)
	c.Transform.Rotation = rot
	if done {
		c.returning = nil
	}
}

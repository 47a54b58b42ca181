package tabletop

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for viewport-space pointer positions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in viewport space. The origin is at the
// top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ColliderID identifies a collider registered with a CollisionOracle.
// Zero is never handed out and means "no collider".
type ColliderID uint32

// LayerMask is a bitset of collision layers. A collider is eligible for a ray
// query when its layer bits intersect the query mask.
type LayerMask uint32

// LayerAll selects every collision layer.
const LayerAll LayerMask = 0xFFFFFFFF

// Has reports whether m shares at least one bit with other.
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerKind distinguishes motion-class events from button events.
type PointerKind uint8

const (
	PointerMotion PointerKind = iota // carries a new viewport position
	PointerButton                    // a button was pressed or released
)

// PointerEvent is a raw event from the windowing/input layer. Button events
// carry the pointer position at the time of the press as well, but only motion
// events are buffered for raycasting.
type PointerEvent struct {
	Kind      PointerKind
	Position  Vec2
	Button    MouseButton
	Pressed   bool
	Modifiers KeyModifiers
}

// MotionEvent returns a motion event at viewport position (x, y).
func MotionEvent(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMotion, Position: Vec2{X: x, Y: y}}
}

// ButtonEvent returns a button event for the given button and state.
func ButtonEvent(button MouseButton, pressed bool) PointerEvent {
	return PointerEvent{Kind: PointerButton, Button: button, Pressed: pressed}
}

// isPrimaryPress reports whether e is a press of the primary button.
func (e PointerEvent) isPrimaryPress() bool {
	return e.Kind == PointerButton && e.Button == MouseButtonLeft && e.Pressed
}

// isPrimaryRelease reports whether e is a release of the primary button.
func (e PointerEvent) isPrimaryRelease() bool {
	return e.Kind == PointerButton && e.Button == MouseButtonLeft && !e.Pressed
}

// EventType identifies a kind of card notification.
type EventType uint8

const (
	EventEnter   EventType = iota // the pointer ray started hitting the card this tick
	EventExit                     // the pointer ray stopped hitting the card this tick
	EventInput                    // the card accepted a ray hit
	EventPress                    // primary button pressed while the card was hovered
	EventRelease                  // primary button released while the card was held
)

func (t EventType) String() string {
	switch t {
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	case EventInput:
		return "input"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Axis vectors used throughout the package. Cards lie in the XY plane and the
// default camera looks down -Z, so Z is both the facing and the depth axis.
var (
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

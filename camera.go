package tabletop

import "github.com/go-gl/mathgl/mgl32"

// Viewport turns a viewport-space pointer position into a world-space ray.
// Ready reports whether projection is currently possible; the dispatcher skips
// the tick when it is not.
type Viewport interface {
	Ready() bool
	ProjectRayOrigin(pos Vec2) mgl32.Vec3
	ProjectRayNormal(pos Vec2) mgl32.Vec3
}

// Projection selects the camera projection model.
type Projection uint8

const (
	ProjectionPerspective  Projection = iota // rays fan out from the camera position
	ProjectionOrthographic                   // parallel rays along the view direction
)

// Camera is a 3D camera looking at the table. It implements Viewport.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// FovY is the vertical field of view in degrees (perspective only).
	FovY float32
	// Size is the visible height in world units (orthographic only).
	Size float32

	Near, Far  float32
	Projection Projection

	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect
}

// NewCamera creates a perspective camera at position looking at target,
// rendering into viewport.
func NewCamera(position, target mgl32.Vec3, viewport Rect) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       axisY,
		FovY:     45,
		Size:     10,
		Near:     0.05,
		Far:      4000,
		Viewport: viewport,
	}
}

// Ready reports whether the camera has a usable viewport and orientation.
func (c *Camera) Ready() bool {
	if c == nil || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return false
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return false
	}
	fwd := c.Target.Sub(c.Position)
	return fwd.Len() > 0 && fwd.Cross(c.Up).Len() > 0
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

func (c *Camera) viewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) projectionMatrix() mgl32.Mat4 {
	aspect := float32(c.Viewport.Width / c.Viewport.Height)
	if c.Projection == ProjectionOrthographic {
		h := c.Size / 2
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ndc converts a viewport position to normalized device coordinates.
func (c *Camera) ndc(pos Vec2) (float32, float32) {
	nx := 2*(pos.X-c.Viewport.X)/c.Viewport.Width - 1
	ny := 1 - 2*(pos.Y-c.Viewport.Y)/c.Viewport.Height
	return float32(nx), float32(ny)
}

// unproject returns the world-space points on the near and far planes under
// the viewport position.
func (c *Camera) unproject(pos Vec2) (mgl32.Vec3, mgl32.Vec3) {
	inv := c.projectionMatrix().Mul4(c.viewMatrix()).Inv()
	nx, ny := c.ndc(pos)
	near := mgl32.TransformCoordinate(mgl32.Vec3{nx, ny, -1}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{nx, ny, 1}, inv)
	return near, far
}

// ProjectRayOrigin returns the ray origin for a viewport position. For a
// perspective camera that is the camera position; for an orthographic camera
// it is the point on the near plane under the pointer.
func (c *Camera) ProjectRayOrigin(pos Vec2) mgl32.Vec3 {
	if c.Projection == ProjectionOrthographic {
		near, _ := c.unproject(pos)
		return near
	}
	return c.Position
}

// ProjectRayNormal returns the unit ray direction for a viewport position.
func (c *Camera) ProjectRayNormal(pos Vec2) mgl32.Vec3 {
	if c.Projection == ProjectionOrthographic {
		return c.Forward()
	}
	near, far := c.unproject(pos)
	return far.Sub(near).Normalize()
}

// WorldToScreen projects a world-space point into viewport space. The second
// result is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (Vec2, bool) {
	clip := c.projectionMatrix().Mul4(c.viewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := c.Viewport.X + (float64(ndc.X())*0.5+0.5)*c.Viewport.Width
	y := c.Viewport.Y + (1-(float64(ndc.Y())*0.5+0.5))*c.Viewport.Height
	return Vec2{X: x, Y: y}, true
}

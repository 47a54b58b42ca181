package tabletop

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	testScreenW = 640
	testScreenH = 480
)

// newTestCamera returns a perspective camera five units above the origin
// looking straight down -Z, so the viewport centre picks the origin.
func newTestCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, Rect{Width: testScreenW, Height: testScreenH})
}

func newTestTable() *Table {
	return NewTable(newTestCamera(), TableConfig{})
}

// screenOf returns the viewport position of a world point.
func screenOf(t *testing.T, c *Camera, p mgl32.Vec3) Vec2 {
	t.Helper()
	s, ok := c.WorldToScreen(p)
	if !ok {
		t.Fatalf("WorldToScreen(%v) behind camera", p)
	}
	return s
}

func approx32(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return approx32(a[0], b[0], eps) && approx32(a[1], b[1], eps) && approx32(a[2], b[2], eps)
}

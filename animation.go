package tabletop

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultReturnRate is how fast a card's tilt relaxes after hover ends, in
// progress units per second.
const DefaultReturnRate = 4.0

// returnTween eases a rotation back to rest. Progress runs linearly from 0 to
// 1 at rate units per second, and each step moves the current rotation that
// fraction of the way to zero, so the motion slows as it settles and lands on
// exactly zero once progress reaches 1.
type returnTween struct {
	progress *gween.Tween
	value    float32
}

// newReturnTween starts a return animation at the given rate.
func newReturnTween(rate float32) *returnTween {
	if rate <= 0 {
		rate = DefaultReturnRate
	}
	return &returnTween{progress: gween.New(0, 1, 1/rate, ease.Linear)}
}

// step advances progress by dt seconds and returns the relaxed rotation. done
// is true when the result is exactly zero.
func (r *returnTween) step(rot mgl32.Vec3, dt float32) (next mgl32.Vec3, done bool) {
	p, _ := r.progress.Update(dt)
	r.value = p
	next = lerpVec3(rot, mgl32.Vec3{}, clamp01(p))
	return next, next == mgl32.Vec3{}
}

// Progress returns the most recent interpolation factor.
func (r *returnTween) Progress() float32 {
	return r.value
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

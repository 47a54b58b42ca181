package tabletop

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a collision primitive that can be tested against a ray. Shapes are
// positioned in world space, or relative to an anchor when the collider
// follows a Transform.
type Shape interface {
	// intersect returns the distance along the unit direction dir at which the
	// ray first enters the shape, and the surface normal there.
	intersect(origin, dir, offset mgl32.Vec3, maxDist float32) (float32, mgl32.Vec3, bool)
}

// Box is an axis-aligned box. Rotation of the anchor is ignored; the tilt
// applied to cards is small enough that the upright box is a good fit.
type Box struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Sphere is a sphere collider.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

type collider struct {
	id     ColliderID
	layer  LayerMask
	shape  Shape
	anchor *Transform
}

// Space is a brute-force CollisionOracle. Every query tests every collider, so
// it is meant for tables with tens of cards, not thousands.
type Space struct {
	colliders []collider
	nextID    ColliderID
}

// NewSpace creates an empty Space.
func NewSpace() *Space {
	return &Space{}
}

// Add registers a shape on the given layers and returns its collider id.
func (s *Space) Add(shape Shape, layer LayerMask) ColliderID {
	s.nextID++
	s.colliders = append(s.colliders, collider{id: s.nextID, layer: layer, shape: shape})
	return s.nextID
}

// Follow makes the collider's shape relative to t.Position, so the collider
// moves with whatever owns t. Passing nil detaches it.
func (s *Space) Follow(id ColliderID, t *Transform) bool {
	c := s.find(id)
	if c == nil {
		return false
	}
	c.anchor = t
	return true
}

// SetLayer changes the layers a collider belongs to.
func (s *Space) SetLayer(id ColliderID, layer LayerMask) bool {
	c := s.find(id)
	if c == nil {
		return false
	}
	c.layer = layer
	return true
}

// Remove unregisters a collider. It reports whether the id was known.
func (s *Space) Remove(id ColliderID) bool {
	for i := range s.colliders {
		if s.colliders[i].id == id {
			copy(s.colliders[i:], s.colliders[i+1:])
			s.colliders[len(s.colliders)-1] = collider{}
			s.colliders = s.colliders[:len(s.colliders)-1]
			return true
		}
	}
	return false
}

// Len returns the number of registered colliders.
func (s *Space) Len() int {
	return len(s.colliders)
}

func (s *Space) find(id ColliderID) *collider {
	for i := range s.colliders {
		if s.colliders[i].id == id {
			return &s.colliders[i]
		}
	}
	return nil
}

// IntersectRay implements CollisionOracle. It returns the closest collider
// along q.From→q.To that matches q.Mask and is not excluded.
func (s *Space) IntersectRay(q RayQuery) (Hit, bool) {
	seg := q.To.Sub(q.From)
	length := seg.Len()
	if length == 0 {
		return Hit{}, false
	}
	dir := seg.Mul(1 / length)

	var best Hit
	bestDist := length
	found := false
	for i := range s.colliders {
		c := &s.colliders[i]
		if !c.layer.Has(q.Mask) || q.Exclude.Contains(c.id) {
			continue
		}
		var offset mgl32.Vec3
		if c.anchor != nil {
			offset = c.anchor.Position
		}
		t, normal, ok := c.shape.intersect(q.From, dir, offset, length)
		if !ok || t > bestDist {
			continue
		}
		// Ties go to the collider registered first.
		if found && t == bestDist {
			continue
		}
		bestDist = t
		best = Hit{Collider: c.id, Point: q.From.Add(dir.Mul(t)), Normal: normal}
		found = true
	}
	return best, found
}

func (b Box) intersect(origin, dir, offset mgl32.Vec3, maxDist float32) (float32, mgl32.Vec3, bool) {
	center := b.Center.Add(offset)
	half := mgl32.Vec3{abs32(b.HalfExtents[0]), abs32(b.HalfExtents[1]), abs32(b.HalfExtents[2])}
	lo := center.Sub(half)
	hi := center.Add(half)

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	enterAxis := -1
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = axis
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl32.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl32.Vec3{}, false
	}

	// Origin inside the box: report the exit face.
	t := tmin
	if t < 0 {
		t = tmax
		enterAxis = -1
	}
	if t > maxDist {
		return 0, mgl32.Vec3{}, false
	}

	var normal mgl32.Vec3
	if enterAxis >= 0 {
		normal[enterAxis] = -sign32(dir[enterAxis])
	} else {
		p := origin.Add(dir.Mul(t))
		normal = boxFaceNormal(p, lo, hi)
	}
	return t, normal, true
}

// boxFaceNormal picks the face of [lo, hi] closest to p.
func boxFaceNormal(p, lo, hi mgl32.Vec3) mgl32.Vec3 {
	best := float32(math.MaxFloat32)
	var normal mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if d := abs32(p[axis] - lo[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if d := abs32(p[axis] - hi[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal
}

func (sp Sphere) intersect(origin, dir, offset mgl32.Vec3, maxDist float32) (float32, mgl32.Vec3, bool) {
	center := sp.Center.Add(offset)
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - sp.Radius*sp.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, mgl32.Vec3{}, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 || t > maxDist {
		return 0, mgl32.Vec3{}, false
	}
	p := origin.Add(dir.Mul(t))
	return t, p.Sub(center).Normalize(), true
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sign32(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

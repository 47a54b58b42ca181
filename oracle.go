package tabletop

import "github.com/go-gl/mathgl/mgl32"

// RayQuery describes one collision query: the segment From→To, the layers to
// test, and the colliders to skip.
type RayQuery struct {
	From    mgl32.Vec3
	To      mgl32.Vec3
	Mask    LayerMask
	Exclude ExclusionSet
}

// Hit is the result of a successful ray query.
type Hit struct {
	Collider ColliderID
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// CollisionOracle performs ray-versus-shape intersection. Implementations
// return the first hit along From→To whose collider matches Mask and is not in
// Exclude, or false when nothing qualifies.
type CollisionOracle interface {
	IntersectRay(q RayQuery) (Hit, bool)
}

// ExclusionSet is the set of colliders a ray query must skip. The zero value
// is an empty set ready to use.
type ExclusionSet struct {
	ids map[ColliderID]struct{}
}

// Add inserts id into the set.
func (s *ExclusionSet) Add(id ColliderID) {
	if s.ids == nil {
		s.ids = make(map[ColliderID]struct{})
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s ExclusionSet) Contains(id ColliderID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of excluded colliders.
func (s ExclusionSet) Len() int {
	return len(s.ids)
}

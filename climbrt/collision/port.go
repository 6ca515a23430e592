package collision

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ShapeId identifies a collision shape without owning it. Holders must go
// through SpatialQuery.Lookup and cope with the shape having disappeared.
type ShapeId string

// NoShape is the invalid-handle sentinel.
const NoShape ShapeId = ""

func NewShapeId() ShapeId {
	return ShapeId(uuid.NewString())
}

func (id ShapeId) Valid() bool {
	return id != NoShape
}

type Tag uint32

const (
	// TagClimbable marks shapes that take part in grab-point discovery.
	TagClimbable Tag = 1 << iota
	// TagBody marks the climber's own collider.
	TagBody
)

// Shape is the read-only view of a collision shape handed out by queries.
type Shape struct {
	Id      ShapeId
	Bounds  AABB
	Trigger bool
	Tags    Tag
}

func (s Shape) HasTag(tag Tag) bool {
	return s.Tags&tag != 0
}

func (s Shape) Climbable() bool {
	return s.HasTag(TagClimbable)
}

type RaycastHit struct {
	Shape    ShapeId
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// SpatialQuery is everything the climbing core needs from the collision
// world. Implementations are synchronous and side-effect free. Raycasts
// ignore trigger shapes and shapes the ray starts inside of.
type SpatialQuery interface {
	OverlapSphere(center mgl32.Vec3, radius float32) []Shape
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool)
	ClosestPoint(shape ShapeId, point mgl32.Vec3) (mgl32.Vec3, bool)
	Lookup(id ShapeId) (Shape, bool)
}

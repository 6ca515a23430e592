package grab

import (
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
)

// scanFunc extracts candidate points of one feature kind from one shape.
type scanFunc func(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint

// scanTable is indexed by FeatureKind; iteration order is scan order.
var scanTable = [featureKindCount]scanFunc{
	Ledge:   scanLedges,
	Indent:  scanIndents,
	Outdent: scanOutdents,
	Crack:   scanCracks,
	Corner:  scanCorners,
}

// Detector discovers grab points on arbitrary static geometry using only
// spatial queries. It holds no state between calls.
type Detector struct {
	query   collision.SpatialQuery
	cfg     Config
	exclude collision.ShapeId
}

// NewDetector builds a detector over query. exclude is the climber's own
// shape (or collision.NoShape) and never yields points.
func NewDetector(query collision.SpatialQuery, cfg Config, exclude collision.ShapeId) *Detector {
	return &Detector{
		query:   query,
		cfg:     cfg,
		exclude: exclude,
	}
}

func (d *Detector) Config() Config {
	return d.cfg
}

// eligible filters out triggers, the climber, and shapes that are not
// tagged climbable.
func (d *Detector) eligible(s collision.Shape) bool {
	if s.Trigger || s.HasTag(collision.TagBody) {
		return false
	}
	if d.exclude.Valid() && s.Id == d.exclude {
		return false
	}
	return s.Climbable()
}

// FindGrabPoints runs all five scans over every eligible shape overlapping
// the search sphere. Results are grouped per shape, then per scan. The same
// location may appear under several kinds.
func (d *Detector) FindGrabPoints(center mgl32.Vec3, radius float32) []GrabPoint {
	if d == nil || d.query == nil || radius <= 0 {
		return nil
	}

	var points []GrabPoint
	for _, shape := range d.query.OverlapSphere(center, radius) {
		if !d.eligible(shape) || shape.Bounds.Degenerate() {
			continue
		}
		for _, scan := range scanTable {
			points = append(points, scan(d, shape, center, radius)...)
		}
	}
	return points
}

// Scan runs a single feature scan against one shape.
func (d *Detector) Scan(kind FeatureKind, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	if kind < 0 || kind >= featureKindCount || shape.Bounds.Degenerate() || radius <= 0 {
		return nil
	}
	return scanTable[kind](d, shape, center, radius)
}

// hits reports whether a ray strikes the given shape first.
func (d *Detector) hits(shape collision.ShapeId, origin, dir mgl32.Vec3, maxDistance float32) (collision.RaycastHit, bool) {
	hit, ok := d.query.Raycast(origin, dir, maxDistance)
	if !ok || hit.Shape != shape {
		return hit, false
	}
	return hit, true
}

package grab

import (
	"fmt"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
)

// FeatureKind is the geometric category of a grab point. The declaration
// order is also the scan order and the tie-break order for selection.
type FeatureKind int

const (
	Ledge FeatureKind = iota
	Indent
	Outdent
	Crack
	Corner
	featureKindCount
)

var featureKindNames = [featureKindCount]string{
	Ledge:   "ledge",
	Indent:  "indent",
	Outdent: "outdent",
	Crack:   "crack",
	Corner:  "corner",
}

func (k FeatureKind) String() string {
	if k < 0 || k >= featureKindCount {
		return fmt.Sprintf("FeatureKind(%d)", int(k))
	}
	return featureKindNames[k]
}

// AllKinds lists every feature kind in scan order.
func AllKinds() []FeatureKind {
	kinds := make([]FeatureKind, featureKindCount)
	for i := range kinds {
		kinds[i] = FeatureKind(i)
	}
	return kinds
}

// GrabPoint is recomputed on every query and never stored beyond a grab.
type GrabPoint struct {
	Position mgl32.Vec3
	Shape    collision.ShapeId
	Kind     FeatureKind
}

func (p GrabPoint) String() string {
	return fmt.Sprintf("%s@(%.2f, %.2f, %.2f)", p.Kind, p.Position.X(), p.Position.Y(), p.Position.Z())
}

// Nearest picks the point closest to hand among those within acceptance.
// Equal distances go to the earlier feature kind, then to the earlier point.
func Nearest(points []GrabPoint, hand mgl32.Vec3, acceptance float32) (GrabPoint, float32, bool) {
	var best GrabPoint
	bestDist := float32(0)
	found := false

	for _, p := range points {
		d := p.Position.Sub(hand).Len()
		if d > acceptance {
			continue
		}
		if !found || d < bestDist || (d == bestDist && p.Kind < best.Kind) {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, bestDist, found
}

// Within keeps the points no farther than radius from center, preserving order.
func Within(points []GrabPoint, center mgl32.Vec3, radius float32) []GrabPoint {
	var out []GrabPoint
	for _, p := range points {
		if p.Position.Sub(center).Len() <= radius {
			out = append(out, p)
		}
	}
	return out
}

package grab

import (
	"math"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// scanLedges samples the top of the shape on a grid and keeps the samples
// whose forward neighbour finds nothing below it: a walkable top with a drop
// beyond its edge.
func scanLedges(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	cfg := d.cfg
	if cfg.LedgeStep <= 0 {
		return nil
	}
	b := shape.Bounds

	// Only the part of the grid that can fall inside the search sphere.
	// Samples stay aligned to b.Min so results don't depend on the center.
	x0, x1 := gridRange(b.Min.X(), b.Max.X(), center.X()-radius, center.X()+radius, cfg.LedgeStep)
	z0, z1 := gridRange(b.Min.Z(), b.Max.Z(), center.Z()-radius, center.Z()+radius, cfg.LedgeStep)
	y := b.Max.Y() + cfg.LedgeLift

	var points []GrabPoint
	for ix := x0; ix <= x1; ix++ {
		x := b.Min.X() + float32(ix)*cfg.LedgeStep
		for iz := z0; iz <= z1; iz++ {
			z := b.Min.Z() + float32(iz)*cfg.LedgeStep
			sample := mgl32.Vec3{x, y, z}
			if sample.Sub(center).Len() > radius {
				continue
			}

			hit, ok := d.hits(shape.Id, sample, core.Down, cfg.LedgeProbe)
			if !ok {
				continue
			}

			beyond := hit.Point.Add(core.Forward.Mul(cfg.LedgeForward)).Add(core.Up.Mul(cfg.LedgeLift))
			if _, blocked := d.query.Raycast(beyond, core.Down, cfg.LedgeProbe); blocked {
				continue
			}
			points = append(points, GrabPoint{
				Position: hit.Point.Add(core.Up.Mul(cfg.LedgeEpsilon)),
				Shape:    shape.Id,
				Kind:     Ledge,
			})
		}
	}
	return points
}

// gridRange returns the inclusive sample index range of a grid starting at
// lo with the given step that overlaps [qlo, qhi] and stays within [lo, hi].
func gridRange(lo, hi, qlo, qhi, step float32) (int, int) {
	n := int(math.Floor(float64((hi-lo)/step) + 1e-4))
	first := int(math.Ceil(float64((max(qlo, lo) - lo) / step)))
	last := int(math.Floor(float64((min(qhi, hi) - lo) / step)))
	return max(first, 0), min(last, n)
}

// scanIndents looks for concavities: two parallel rays aimed at the shape
// center from the same compass direction, the upper one travelling farther.
func scanIndents(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	cfg := d.cfg
	c := shape.Bounds.Center()

	var points []GrabPoint
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		dir := mgl32.Vec3{float32(math.Cos(angle)), 0, float32(math.Sin(angle))}
		origin := c.Add(dir.Mul(cfg.IndentOffset))
		inward := dir.Mul(-1)

		low, ok := d.hits(shape.Id, origin, inward, cfg.IndentRange)
		if !ok {
			continue
		}
		high, ok := d.hits(shape.Id, origin.Add(core.Up.Mul(cfg.IndentRise)), inward, cfg.IndentRange)
		if !ok {
			continue
		}
		if high.Distance <= low.Distance+cfg.IndentMargin {
			continue
		}
		if low.Point.Sub(center).Len() > radius {
			continue
		}
		points = append(points, GrabPoint{Position: low.Point, Shape: shape.Id, Kind: Indent})
	}
	return points
}

// scanOutdents tests the four side-face midpoints for protrusions: a hit
// with at least OutdentMinOpen open cardinal directions around it.
func scanOutdents(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	cfg := d.cfg
	c := shape.Bounds.Center()
	ext := shape.Bounds.Extents()

	faces := [4]mgl32.Vec3{
		c.Add(mgl32.Vec3{ext.X(), 0, 0}),
		c.Sub(mgl32.Vec3{ext.X(), 0, 0}),
		c.Add(mgl32.Vec3{0, 0, ext.Z()}),
		c.Sub(mgl32.Vec3{0, 0, ext.Z()}),
	}
	cardinals := [4]mgl32.Vec3{core.Forward, core.Back, core.Right, core.Left}

	var points []GrabPoint
	for _, face := range faces {
		if face.Sub(center).Len() > radius {
			continue
		}
		toCenter := core.SafeNormalize(c.Sub(face))
		if toCenter.Len() == 0 {
			continue
		}

		hit, ok := d.hits(shape.Id, face.Sub(toCenter.Mul(cfg.OutdentBackoff)), toCenter, cfg.OutdentRange)
		if !ok {
			continue
		}

		open := 0
		for _, dir := range cardinals {
			probe := hit.Point.Add(dir.Mul(cfg.OutdentProbe))
			if _, blocked := d.query.Raycast(probe, dir.Mul(-1), cfg.OutdentProbe); !blocked {
				open++
			}
		}
		if open >= cfg.OutdentMinOpen {
			points = append(points, GrabPoint{Position: hit.Point, Shape: shape.Id, Kind: Outdent})
		}
	}
	return points
}

// scanCracks measures the gap between this shape and each neighbour with a
// ray out and a ray back, keeping gaps narrower than a hand.
func scanCracks(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	cfg := d.cfg
	c := shape.Bounds.Center()

	var points []GrabPoint
	for _, other := range d.query.OverlapSphere(c, cfg.CrackNeighbourhood) {
		if other.Id == shape.Id || other.Trigger || other.HasTag(collision.TagBody) {
			continue
		}
		if d.exclude.Valid() && other.Id == d.exclude {
			continue
		}
		if other.Bounds.Degenerate() {
			continue
		}

		dir := core.SafeNormalize(other.Bounds.Center().Sub(c))
		if dir.Len() == 0 {
			continue
		}

		far, ok := d.hits(other.Id, c, dir, cfg.CrackRange)
		if !ok {
			continue
		}
		near, ok := d.hits(shape.Id, far.Point, dir.Mul(-1), cfg.CrackRange)
		if !ok {
			continue
		}

		gap := near.Distance
		if gap <= cfg.CrackMinGap || gap >= cfg.CrackMaxGap {
			continue
		}
		mid := far.Point.Add(near.Point).Mul(0.5)
		if mid.Sub(center).Len() > radius {
			continue
		}
		points = append(points, GrabPoint{Position: mid, Shape: shape.Id, Kind: Crack})
	}
	return points
}

var axisDirections = [6]mgl32.Vec3{
	core.Right, core.Left, core.Up, core.Down, core.Forward, core.Back,
}

// scanCorners probes the six axis directions around each bounding-box
// corner. A corner touched from CornerMinFaces sides counts, positioned at
// the last surface hit.
func scanCorners(d *Detector, shape collision.Shape, center mgl32.Vec3, radius float32) []GrabPoint {
	cfg := d.cfg

	var points []GrabPoint
	for _, corner := range shape.Bounds.Corners() {
		if corner.Sub(center).Len() > radius {
			continue
		}

		faces := 0
		refined := corner
		for _, dir := range axisDirections {
			origin := corner.Add(dir.Mul(cfg.CornerProbe))
			if hit, ok := d.hits(shape.Id, origin, dir.Mul(-1), cfg.CornerProbe*2); ok {
				faces++
				refined = hit.Point
			}
		}
		if faces >= cfg.CornerMinFaces {
			points = append(points, GrabPoint{Position: refined, Shape: shape.Id, Kind: Corner})
		}
	}
	return points
}

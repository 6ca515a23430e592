package grab

import (
	"testing"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// near compares vectors by distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func ofKind(points []GrabPoint, kind FeatureKind) []GrabPoint {
	var out []GrabPoint
	for _, p := range points {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func boxWorld(opts ...collision.ShapeOption) (*collision.World, collision.ShapeId) {
	w := collision.NewWorld(2)
	id := w.AddBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), opts...)
	return w, id
}

func TestDetector_LedgeOnFarTopEdge(t *testing.T) {
	w, id := boxWorld(collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	ledges := ofKind(d.FindGrabPoints(mgl32.Vec3{0, 1, 1}, 1.5), Ledge)
	require.NotEmpty(t, ledges)
	for _, p := range ledges {
		assert.Equal(t, id, p.Shape)
		assert.InDelta(t, 1.05, p.Position.Y(), 1e-4)
		assert.InDelta(t, 1.0, p.Position.Z(), 1e-4, "ledge away from the open edge: %v", p)
	}
}

func TestDetector_LedgeBlockedByWallBeyond(t *testing.T) {
	w, _ := boxWorld(collision.Climbable())
	// A slab behind the edge, flush with the top, leaves no drop.
	w.AddBox(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	ledges := ofKind(d.FindGrabPoints(mgl32.Vec3{0, 1, 1}, 1.5), Ledge)
	assert.Empty(t, ledges)
}

func TestDetector_CornerRefinedToSurface(t *testing.T) {
	w, id := boxWorld(collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	corners := ofKind(d.FindGrabPoints(mgl32.Vec3{1, 1, 1}, 0.5), Corner)
	require.Len(t, corners, 1)
	assert.Equal(t, id, corners[0].Shape)
	assert.True(t, near(corners[0].Position, mgl32.Vec3{1, 1, 1}, 1e-4))
}

func TestDetector_OutdentOnFaceMidpoint(t *testing.T) {
	w, _ := boxWorld(collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	outdents := ofKind(d.FindGrabPoints(mgl32.Vec3{2, 0, 0}, 1.5), Outdent)
	require.Len(t, outdents, 1)
	assert.True(t, near(outdents[0].Position, mgl32.Vec3{1, 0, 0}, 1e-4))
}

func TestDetector_IndentOnCurvedSurface(t *testing.T) {
	w := collision.NewWorld(2)
	center := mgl32.Vec3{0, 2, 0}
	w.AddSphere(center, 0.22, collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	indents := ofKind(d.FindGrabPoints(center, 1), Indent)
	require.Len(t, indents, 8)
	for _, p := range indents {
		assert.InDelta(t, 0.22, p.Position.Sub(center).Len(), 1e-3)
		assert.InDelta(t, center.Y(), p.Position.Y(), 1e-4)
	}

	// A flat-faced box has no concavity.
	bw, _ := boxWorld(collision.Climbable())
	bd := NewDetector(bw, DefaultConfig(), collision.NoShape)
	assert.Empty(t, ofKind(bd.FindGrabPoints(mgl32.Vec3{0, 0, 0}, 3), Indent))
}

func TestDetector_CrackBetweenNeighbours(t *testing.T) {
	w := collision.NewWorld(2)
	half := mgl32.Vec3{0.5, 1, 0.5}
	a := w.AddBox(mgl32.Vec3{0, 0, 0}, half, mgl32.QuatIdent(), collision.Climbable())
	w.AddBox(mgl32.Vec3{1.2, 0, 0}, half, mgl32.QuatIdent())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	cracks := ofKind(d.FindGrabPoints(mgl32.Vec3{0.6, 0, 0}, 1), Crack)
	require.Len(t, cracks, 1, "only the climbable side reports the crack")
	assert.Equal(t, a, cracks[0].Shape)
	assert.True(t, near(cracks[0].Position, mgl32.Vec3{0.6, 0, 0}, 1e-3))
}

func TestDetector_CrackGapBand(t *testing.T) {
	tests := []struct {
		name  string
		gap   float32
		crack bool
	}{
		{"narrow", 0.2, true},
		{"touching", 0.02, false},
		{"too wide", 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := collision.NewWorld(2)
			half := mgl32.Vec3{0.5, 1, 0.5}
			w.AddBox(mgl32.Vec3{0, 0, 0}, half, mgl32.QuatIdent(), collision.Climbable())
			w.AddBox(mgl32.Vec3{1 + tt.gap, 0, 0}, half, mgl32.QuatIdent(), collision.Climbable())
			d := NewDetector(w, DefaultConfig(), collision.NoShape)

			cracks := ofKind(d.FindGrabPoints(mgl32.Vec3{0.5 + tt.gap/2, 0, 0}, 1), Crack)
			if tt.crack {
				assert.Len(t, cracks, 2)
			} else {
				assert.Empty(t, cracks)
			}
		})
	}
}

func TestDetector_CrackIgnoresTriggerNeighbour(t *testing.T) {
	w := collision.NewWorld(2)
	half := mgl32.Vec3{0.5, 1, 0.5}
	w.AddBox(mgl32.Vec3{0, 0, 0}, half, mgl32.QuatIdent(), collision.Climbable())
	w.AddBox(mgl32.Vec3{1.2, 0, 0}, half, mgl32.QuatIdent(), collision.AsTrigger())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)

	assert.Empty(t, ofKind(d.FindGrabPoints(mgl32.Vec3{0.6, 0, 0}, 1), Crack))
}

func TestDetector_SkipsIneligibleShapes(t *testing.T) {
	probe := mgl32.Vec3{1, 1, 1}

	w, _ := boxWorld()
	assert.Empty(t, NewDetector(w, DefaultConfig(), collision.NoShape).FindGrabPoints(probe, 2), "untagged")

	w, _ = boxWorld(collision.Climbable(), collision.AsTrigger())
	assert.Empty(t, NewDetector(w, DefaultConfig(), collision.NoShape).FindGrabPoints(probe, 2), "trigger")

	w, id := boxWorld(collision.Climbable())
	assert.Empty(t, NewDetector(w, DefaultConfig(), id).FindGrabPoints(probe, 2), "excluded")

	w, _ = boxWorld(collision.Climbable(), collision.WithTags(collision.TagBody))
	assert.Empty(t, NewDetector(w, DefaultConfig(), collision.NoShape).FindGrabPoints(probe, 2), "body")
}

func TestDetector_DegenerateAndNonPositiveRadius(t *testing.T) {
	w := collision.NewWorld(2)
	w.AddBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 1}, mgl32.QuatIdent(), collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)
	assert.Empty(t, d.FindGrabPoints(mgl32.Vec3{0, 1, 1}, 3))

	w, _ = boxWorld(collision.Climbable())
	d = NewDetector(w, DefaultConfig(), collision.NoShape)
	assert.Nil(t, d.FindGrabPoints(mgl32.Vec3{1, 1, 1}, 0))
	assert.Nil(t, d.FindGrabPoints(mgl32.Vec3{1, 1, 1}, -1))
}

// blindQuery knows about shapes but cannot raycast against them.
type blindQuery struct {
	shapes []collision.Shape
}

func (q blindQuery) OverlapSphere(mgl32.Vec3, float32) []collision.Shape { return q.shapes }
func (q blindQuery) Raycast(mgl32.Vec3, mgl32.Vec3, float32) (collision.RaycastHit, bool) {
	return collision.RaycastHit{}, false
}
func (q blindQuery) ClosestPoint(_ collision.ShapeId, p mgl32.Vec3) (mgl32.Vec3, bool) {
	return p, false
}
func (q blindQuery) Lookup(collision.ShapeId) (collision.Shape, bool) { return collision.Shape{}, false }

func TestDetector_UnsupportedShapeIsSkipped(t *testing.T) {
	q := blindQuery{shapes: []collision.Shape{{
		Id:     collision.NewShapeId(),
		Bounds: collision.AABBFromCenter(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}),
		Tags:   collision.TagClimbable,
	}}}
	d := NewDetector(q, DefaultConfig(), collision.NoShape)
	assert.Empty(t, d.FindGrabPoints(mgl32.Vec3{1, 1, 1}, 2))
}

func TestDetector_ScanSingleKind(t *testing.T) {
	w, id := boxWorld(collision.Climbable())
	d := NewDetector(w, DefaultConfig(), collision.NoShape)
	shape, ok := w.Lookup(id)
	require.True(t, ok)

	for _, p := range d.Scan(Corner, shape, mgl32.Vec3{0, 0, 0}, 3) {
		assert.Equal(t, Corner, p.Kind)
	}
	assert.Len(t, d.Scan(Corner, shape, mgl32.Vec3{0, 0, 0}, 3), 8)
	assert.Nil(t, d.Scan(FeatureKind(42), shape, mgl32.Vec3{}, 3))
}

func TestNearest_DistanceThenKind(t *testing.T) {
	hand := mgl32.Vec3{0, 0, 0}
	points := []GrabPoint{
		{Position: mgl32.Vec3{1, 0, 0}, Kind: Corner},
		{Position: mgl32.Vec3{0, 1, 0}, Kind: Outdent},
		{Position: mgl32.Vec3{0, 0, 2}, Kind: Ledge},
	}

	best, dist, ok := Nearest(points, hand, 1.5)
	require.True(t, ok)
	assert.Equal(t, Outdent, best.Kind)
	assert.InDelta(t, 1.0, dist, 1e-6)

	_, _, ok = Nearest(points, hand, 0.5)
	assert.False(t, ok)

	best, _, ok = Nearest(points[2:], hand, 2)
	require.True(t, ok, "acceptance radius is inclusive")
	assert.Equal(t, Ledge, best.Kind)
}

func TestWithin(t *testing.T) {
	points := []GrabPoint{
		{Position: mgl32.Vec3{3, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
	}
	got := Within(points, mgl32.Vec3{}, 2)
	require.Len(t, got, 1)
	assert.Equal(t, float32(1), got[0].Position.X())
}

func TestFeatureKindString(t *testing.T) {
	assert.Equal(t, "crack", Crack.String())
	assert.Equal(t, "FeatureKind(9)", FeatureKind(9).String())
	assert.Len(t, AllKinds(), 5)
}

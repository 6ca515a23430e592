package debugviz

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Project(t *testing.T) {
	r := New(200, 100, 10)
	x, y := r.Project(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(30), y)

	r.View = Top
	_, y = r.Project(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, float32(20), y)
}

func TestRenderer_DrawsIndicators(t *testing.T) {
	r := New(64, 64, 8)
	r.Labels = false
	frame := &feedback.Frame{
		Number: 1,
		Indicators: []feedback.Indicator{{
			Point: grab.GrabPoint{Position: mgl32.Vec3{0, 0, 0}, Kind: grab.Ledge},
			Size:  1,
			Color: feedback.ColorRed,
		}},
		Gizmos: []feedback.Gizmo{
			feedback.NewGizmoLine(mgl32.Vec3{-3, -3, 0}, mgl32.Vec3{3, -3, 0}, feedback.ColorGreen),
			feedback.NewGizmoCube(mgl32.Vec3{}, mgl32.Vec3{6, 6, 6}, feedback.ColorGrey),
			feedback.NewGizmoSphere(mgl32.Vec3{}, 2, feedback.ColorBlue),
		},
	}
	r.Present(frame)

	center := r.Image().RGBAAt(32, 32)
	assert.Greater(t, center.R, uint8(150), "indicator should cover the center")
	assert.Less(t, center.G, uint8(40))

	corner := r.Image().RGBAAt(1, 1)
	assert.Equal(t, r.Background, corner)

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestToRGBA(t *testing.T) {
	c := toRGBA([4]float32{1, 0, 0, 0.5})
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(128), c.R)
	assert.Equal(t, uint8(0), c.G)
}

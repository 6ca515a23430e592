package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// near compares vectors by distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestSlopeDeg(t *testing.T) {
	tests := []struct {
		name   string
		normal mgl32.Vec3
		want   float32
	}{
		{"flat", mgl32.Vec3{0, 1, 0}, 0},
		{"wall", mgl32.Vec3{1, 0, 0}, 90},
		{"ramp45", mgl32.Vec3{1, 1, 0}, 45},
		{"ceiling", mgl32.Vec3{0, -1, 0}, 180},
		{"zero", mgl32.Vec3{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SlopeDeg(tt.normal), 1e-3)
		})
	}
}

func TestClampLength(t *testing.T) {
	v := ClampLength(mgl32.Vec3{3, 4, 0}, 2.5)
	assert.InDelta(t, 2.5, v.Len(), 1e-5)
	assert.InDelta(t, 0.6, v.Normalize().X(), 1e-5)

	short := mgl32.Vec3{0.1, 0, 0}
	assert.Equal(t, short, ClampLength(short, 1))
}

func TestLerpClampsT(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{2, 0, 0}
	assert.Equal(t, b, Lerp(a, b, 5))
	assert.Equal(t, a, Lerp(a, b, -1))
	assert.InDelta(t, 1.0, Lerp(a, b, 0.5).X(), 1e-6)
}

func TestTransformBasis(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{}, 0)
	assert.True(t, near(tr.Forward(), Forward, 1e-5))
	assert.True(t, near(tr.Right(), Right, 1e-5))

	tr.SetYaw(90)
	if !near(tr.Forward(), mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("yaw 90 forward = %v, want +X", tr.Forward())
	}
	if !near(tr.Right(), mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("yaw 90 right = %v, want -Z", tr.Right())
	}
}

func TestFlatten(t *testing.T) {
	f := Flatten(mgl32.Vec3{1, 5, 0})
	assert.InDelta(t, 0, f.Y(), 1e-6)
	assert.InDelta(t, 1, f.Len(), 1e-5)

	vertical := Flatten(mgl32.Vec3{0, 1, 0})
	assert.Equal(t, mgl32.Vec3{}, vertical)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(mgl32.Vec3{1, 2, 3}))
	nan := float32(0)
	nan = nan / nan
	assert.False(t, IsFinite(mgl32.Vec3{nan, 0, 0}))
}

package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon below which vectors are treated as zero length.
const Epsilon = 1e-6

// AngleDeg returns the unsigned angle between a and b in degrees.
// Zero-length inputs yield 0.
func AngleDeg(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	cos = mgl32.Clamp(cos, -1, 1)
	return mgl32.RadToDeg(float32(math.Acos(float64(cos))))
}

// SlopeDeg is the angle between a surface normal and world up.
func SlopeDeg(normal mgl32.Vec3) float32 {
	return AngleDeg(normal, Up)
}

func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Flatten drops the vertical component and renormalizes. Vectors that were
// (nearly) vertical come back unnormalized and short.
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() > 0.01 {
		return v.Normalize()
	}
	return v
}

// ClampLength rescales v down to max when longer.
func ClampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	l := v.Len()
	if l > max && l > Epsilon {
		return v.Mul(max / l)
	}
	return v
}

// Lerp interpolates with t clamped to [0,1].
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

func Distance(a, b mgl32.Vec3) float32 {
	return a.Sub(b).Len()
}

func IsFinite(v mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		f := float64(v[i])
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func MinVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a.X(), b.X()), min(a.Y(), b.Y()), min(a.Z(), b.Z())}
}

func MaxVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a.X(), b.X()), max(a.Y(), b.Y()), max(a.Z(), b.Z())}
}

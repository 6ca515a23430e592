package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MinExtent is the smallest bounds size on any axis that still counts as a
// real volume.
const MinExtent = 1e-4

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func AABBFromCenter(center, halfExtents mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Extents() mgl32.Vec3 {
	return b.Size().Mul(0.5)
}

// Degenerate reports bounds that are flat or point-like on some axis, or
// not finite at all.
func (b AABB) Degenerate() bool {
	size := b.Size()
	for a := 0; a < 3; a++ {
		f := float64(size[a])
		if math.IsNaN(f) || math.IsInf(f, 0) || size[a] < MinExtent {
			return true
		}
	}
	return false
}

func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

func (b AABB) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p.X(), b.Min.X(), b.Max.X()),
		mgl32.Clamp(p.Y(), b.Min.Y(), b.Max.Y()),
		mgl32.Clamp(p.Z(), b.Min.Z(), b.Max.Z()),
	}
}

// Corners returns the eight corners, min-x first, then min-y, then min-z:
// bit 2 selects max x, bit 1 max y, bit 0 max z.
func (b AABB) Corners() [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&4 != 0 {
			c[0] = b.Max.X()
		}
		if i&2 != 0 {
			c[1] = b.Max.Y()
		}
		if i&1 != 0 {
			c[2] = b.Max.Z()
		}
		corners[i] = c
	}
	return corners
}

func (b AABB) Expand(margin float32) AABB {
	m := mgl32.Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

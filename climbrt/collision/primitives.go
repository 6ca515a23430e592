package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// surfaceEpsilon lets rays that graze a face or edge register as hits
// despite float error in the local-space transform.
const surfaceEpsilon = 1e-4

// primitive is the narrow-phase geometry behind a Shape.
type primitive interface {
	bounds() AABB
	// raycast expects a normalized direction. Rays that start inside the
	// primitive report no hit.
	raycast(origin, dir mgl32.Vec3, maxDistance float32) (float32, mgl32.Vec3, bool)
	closestPoint(p mgl32.Vec3) mgl32.Vec3
	contains(p mgl32.Vec3) bool
}

// Box is an oriented box.
type Box struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Quat
}

func (b Box) axes() [3]mgl32.Vec3 {
	rot := b.Rotation.Mat4()
	return [3]mgl32.Vec3{
		rot.Col(0).Vec3(),
		rot.Col(1).Vec3(),
		rot.Col(2).Vec3(),
	}
}

func (b Box) corners() [8]mgl32.Vec3 {
	axes := b.axes()
	var corners [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		p := b.Center
		if i&1 != 0 {
			p = p.Add(axes[0].Mul(b.HalfExtents.X()))
		} else {
			p = p.Sub(axes[0].Mul(b.HalfExtents.X()))
		}
		if i&2 != 0 {
			p = p.Add(axes[1].Mul(b.HalfExtents.Y()))
		} else {
			p = p.Sub(axes[1].Mul(b.HalfExtents.Y()))
		}
		if i&4 != 0 {
			p = p.Add(axes[2].Mul(b.HalfExtents.Z()))
		} else {
			p = p.Sub(axes[2].Mul(b.HalfExtents.Z()))
		}
		corners[i] = p
	}
	return corners
}

func (b Box) bounds() AABB {
	corners := b.corners()
	out := AABB{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		out.Min = mgl32.Vec3{min(out.Min.X(), c.X()), min(out.Min.Y(), c.Y()), min(out.Min.Z(), c.Z())}
		out.Max = mgl32.Vec3{max(out.Max.X(), c.X()), max(out.Max.Y(), c.Y()), max(out.Max.Z(), c.Z())}
	}
	return out
}

func (b Box) toLocal(p mgl32.Vec3) mgl32.Vec3 {
	return b.Rotation.Conjugate().Rotate(p.Sub(b.Center))
}

func (b Box) toWorld(local mgl32.Vec3) mgl32.Vec3 {
	return b.Rotation.Rotate(local).Add(b.Center)
}

func (b Box) raycast(origin, dir mgl32.Vec3, maxDistance float32) (float32, mgl32.Vec3, bool) {
	inv := b.Rotation.Conjugate()
	lo := inv.Rotate(origin.Sub(b.Center))
	ld := inv.Rotate(dir)
	h := b.HalfExtents

	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	nearAxis := -1
	var nearSign float32

	for a := 0; a < 3; a++ {
		if math.Abs(float64(ld[a])) < 1e-8 {
			if lo[a] < -h[a]-surfaceEpsilon || lo[a] > h[a]+surfaceEpsilon {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		invD := 1.0 / ld[a]
		t0 := (-h[a] - lo[a]) * invD
		t1 := (h[a] - lo[a]) * invD
		sign := float32(-1)
		if t0 > t1 {
			t0, t1 = t1, t0
			sign = 1
		}
		if t0 > tNear {
			tNear = t0
			nearAxis = a
			nearSign = sign
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return 0, mgl32.Vec3{}, false
		}
	}

	// Origin inside, or on the surface of, the box.
	if nearAxis < 0 || tNear < surfaceEpsilon || tNear > maxDistance {
		return 0, mgl32.Vec3{}, false
	}

	var localNormal mgl32.Vec3
	localNormal[nearAxis] = nearSign
	return tNear, b.Rotation.Rotate(localNormal), true
}

func (b Box) closestPoint(p mgl32.Vec3) mgl32.Vec3 {
	lo := b.toLocal(p)
	h := b.HalfExtents
	clamped := mgl32.Vec3{
		mgl32.Clamp(lo.X(), -h.X(), h.X()),
		mgl32.Clamp(lo.Y(), -h.Y(), h.Y()),
		mgl32.Clamp(lo.Z(), -h.Z(), h.Z()),
	}
	return b.toWorld(clamped)
}

func (b Box) contains(p mgl32.Vec3) bool {
	lo := b.toLocal(p)
	for a := 0; a < 3; a++ {
		if float32(math.Abs(float64(lo[a]))) > b.HalfExtents[a] {
			return false
		}
	}
	return true
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) bounds() AABB {
	return AABBFromCenter(s.Center, mgl32.Vec3{s.Radius, s.Radius, s.Radius})
}

func (s Sphere) raycast(origin, dir mgl32.Vec3, maxDistance float32) (float32, mgl32.Vec3, bool) {
	m := origin.Sub(s.Center)
	c := m.Dot(m) - s.Radius*s.Radius
	if c <= 0 {
		return 0, mgl32.Vec3{}, false
	}
	b := m.Dot(dir)
	if b > 0 {
		return 0, mgl32.Vec3{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, mgl32.Vec3{}, false
	}
	t := -b - float32(math.Sqrt(float64(disc)))
	if t < 0 || t > maxDistance {
		return 0, mgl32.Vec3{}, false
	}
	point := origin.Add(dir.Mul(t))
	return t, point.Sub(s.Center).Normalize(), true
}

func (s Sphere) closestPoint(p mgl32.Vec3) mgl32.Vec3 {
	d := p.Sub(s.Center)
	l := d.Len()
	if l <= s.Radius {
		return p
	}
	return s.Center.Add(d.Mul(s.Radius / l))
}

func (s Sphere) contains(p mgl32.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius
}

package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayAABB returns the entry distance of the ray into [min,max], or false if
// the ray misses or the box lies entirely behind the origin or beyond tMax.
func RayAABB(origin, dir mgl32.Vec3, tMax float32, bmin, bmax mgl32.Vec3) (float32, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))

	for a := 0; a < 3; a++ {
		if math.Abs(float64(dir[a])) < 1e-8 {
			if origin[a] < bmin[a] || origin[a] > bmax[a] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[a]
		t0 := (bmin[a] - origin[a]) * inv
		t1 := (bmax[a] - origin[a]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return 0, false
		}
	}

	if tFar < 0 || tNear > tMax {
		return 0, false
	}
	return tNear, true
}

// OverlapsAABB reports whether two boxes intersect (touching counts).
func OverlapsAABB(aMin, aMax, bMin, bMax mgl32.Vec3) bool {
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y() &&
		aMin.Z() <= bMax.Z() && aMax.Z() >= bMin.Z()
}

// Raycast visits every leaf whose bounds the ray crosses within tMax. The
// visitor returns the hit distance it found (if any); traversal then shrinks
// tMax so farther subtrees are skipped.
func (t *Tree) Raycast(origin, dir mgl32.Vec3, tMax float32, visit func(index int, tMax float32) (float32, bool)) {
	if t.Empty() {
		return
	}

	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.Nodes[idx]

		if _, ok := RayAABB(origin, dir, tMax, node.Min, node.Max); !ok {
			continue
		}

		if node.IsLeaf() {
			if hitT, ok := visit(int(node.LeafFirst), tMax); ok && hitT < tMax {
				tMax = hitT
			}
			continue
		}
		stack = append(stack, node.Left, node.Right)
	}
}

// QueryAABB visits every leaf whose bounds overlap [min,max].
func (t *Tree) QueryAABB(bmin, bmax mgl32.Vec3, visit func(index int)) {
	if t.Empty() {
		return
	}

	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.Nodes[idx]

		if !OverlapsAABB(node.Min, node.Max, bmin, bmax) {
			continue
		}
		if node.IsLeaf() {
			visit(int(node.LeafFirst))
			continue
		}
		stack = append(stack, node.Left, node.Right)
	}
}

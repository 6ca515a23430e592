package collision

import (
	"slices"

	"github.com/gekko3d/ascent/climbrt/bvh"
	"github.com/go-gl/mathgl/mgl32"
)

type entry struct {
	shape Shape
	prim  primitive
}

// World is a static collision world made of oriented boxes and spheres. It
// implements SpatialQuery. Shapes may be added and removed between ticks;
// acceleration structures are rebuilt lazily on the next query.
type World struct {
	entries []entry
	index   map[ShapeId]int
	grid    *SpatialHashGrid
	tree    *bvh.Tree
	dirty   bool
}

type ShapeOption func(*Shape)

func Climbable() ShapeOption {
	return func(s *Shape) { s.Tags |= TagClimbable }
}

func AsTrigger() ShapeOption {
	return func(s *Shape) { s.Trigger = true }
}

func WithTags(tags Tag) ShapeOption {
	return func(s *Shape) { s.Tags |= tags }
}

func NewWorld(cellSize float32) *World {
	return &World{
		index: make(map[ShapeId]int),
		grid:  NewSpatialHashGrid(cellSize),
		tree:  &bvh.Tree{},
	}
}

func (w *World) add(prim primitive, opts ...ShapeOption) ShapeId {
	shape := Shape{Id: NewShapeId(), Bounds: prim.bounds()}
	for _, opt := range opts {
		opt(&shape)
	}
	w.index[shape.Id] = len(w.entries)
	w.entries = append(w.entries, entry{shape: shape, prim: prim})
	w.dirty = true
	return shape.Id
}

func (w *World) AddBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat, opts ...ShapeOption) ShapeId {
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return w.add(Box{Center: center, HalfExtents: halfExtents, Rotation: rotation.Normalize()}, opts...)
}

func (w *World) AddSphere(center mgl32.Vec3, radius float32, opts ...ShapeOption) ShapeId {
	return w.add(Sphere{Center: center, Radius: radius}, opts...)
}

// Remove destroys a shape. Handles held elsewhere simply stop resolving.
func (w *World) Remove(id ShapeId) bool {
	i, ok := w.index[id]
	if !ok {
		return false
	}
	w.entries = slices.Delete(w.entries, i, i+1)
	delete(w.index, id)
	for j := i; j < len(w.entries); j++ {
		w.index[w.entries[j].shape.Id] = j
	}
	w.dirty = true
	return true
}

func (w *World) Len() int {
	return len(w.entries)
}

// Shapes lists every shape in insertion order.
func (w *World) Shapes() []Shape {
	out := make([]Shape, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.shape
	}
	return out
}

// Primitive exposes the geometry behind a shape for debug drawing.
func (w *World) Primitive(id ShapeId) (any, bool) {
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.entries[i].prim, true
}

func (w *World) rebuild() {
	if !w.dirty {
		return
	}
	w.grid.Clear()
	aabbs := make([][2]mgl32.Vec3, len(w.entries))
	for i, e := range w.entries {
		w.grid.Insert(i, e.shape.Bounds)
		// Padded so rays the narrowphase accepts as grazing reach it.
		b := e.shape.Bounds.Expand(surfaceEpsilon)
		aabbs[i] = [2]mgl32.Vec3{b.Min, b.Max}
	}
	w.tree = bvh.Build(aabbs)
	w.dirty = false
}

func (w *World) Lookup(id ShapeId) (Shape, bool) {
	i, ok := w.index[id]
	if !ok {
		return Shape{}, false
	}
	return w.entries[i].shape, true
}

// OverlapSphere returns every shape (triggers included) whose surface or
// interior lies within radius of center, in insertion order.
func (w *World) OverlapSphere(center mgl32.Vec3, radius float32) []Shape {
	if radius <= 0 {
		return nil
	}
	w.rebuild()

	candidates := w.grid.QueryRadius(center, radius)
	slices.Sort(candidates)

	var out []Shape
	for _, slot := range candidates {
		e := w.entries[slot]
		if e.prim.closestPoint(center).Sub(center).Len() <= radius {
			out = append(out, e.shape)
		}
	}
	return out
}

func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	l := direction.Len()
	if l < 1e-8 || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	dir := direction.Mul(1 / l)
	w.rebuild()

	best := RaycastHit{Distance: maxDistance}
	found := false
	w.tree.Raycast(origin, dir, maxDistance, func(slot int, tMax float32) (float32, bool) {
		e := w.entries[slot]
		if e.shape.Trigger {
			return 0, false
		}
		t, normal, ok := e.prim.raycast(origin, dir, tMax)
		if !ok || t > best.Distance || (found && t == best.Distance) {
			return 0, false
		}
		best = RaycastHit{
			Shape:    e.shape.Id,
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Distance: t,
		}
		found = true
		return t, true
	})
	return best, found
}

func (w *World) ClosestPoint(id ShapeId, point mgl32.Vec3) (mgl32.Vec3, bool) {
	i, ok := w.index[id]
	if !ok {
		return point, false
	}
	return w.entries[i].prim.closestPoint(point), true
}

func (w *World) Contains(id ShapeId, point mgl32.Vec3) bool {
	i, ok := w.index[id]
	if !ok {
		return false
	}
	return w.entries[i].prim.contains(point)
}

var _ SpatialQuery = (*World)(nil)

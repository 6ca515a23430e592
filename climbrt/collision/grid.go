package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SpatialHashGrid is the overlap broadphase: shapes are bucketed by every
// cell their bounds touch. It only knows shape slots, never geometry.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]int
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = 4.0
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(slot int, aabb AABB) {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())
	minZ, maxZ := grid.getCellIndex(aabb.Min.Z()), grid.getCellIndex(aabb.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				grid.cells[key] = append(grid.cells[key], slot)
			}
		}
	}
}

// QueryAABB returns broadphase candidates, each once, in first-seen order.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []int {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())
	minZ, maxZ := grid.getCellIndex(aabb.Min.Z()), grid.getCellIndex(aabb.Max.Z())

	unique := make(map[int]struct{})
	var results []int

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				for _, slot := range grid.cells[key] {
					if _, ok := unique[slot]; !ok {
						unique[slot] = struct{}{}
						results = append(results, slot)
					}
				}
			}
		}
	}
	return results
}

// QueryRadius is QueryAABB over the sphere's bounding box; callers do the
// exact distance test.
func (grid *SpatialHashGrid) QueryRadius(center mgl32.Vec3, radius float32) []int {
	return grid.QueryAABB(AABBFromCenter(center, mgl32.Vec3{radius, radius, radius}))
}

func (grid *SpatialHashGrid) getCellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}

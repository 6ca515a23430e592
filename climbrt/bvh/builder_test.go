package bvh

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTwoObjectsSplit(t *testing.T) {
	aabbs := [][2]mgl32.Vec3{
		{{-100, -1, -1}, {-98, 1, 1}},
		{{100, -1, -1}, {102, 1, 1}},
	}

	tree := Build(aabbs)

	// Root, Left, Right
	if len(tree.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(tree.Nodes))
	}

	root := tree.Nodes[0]
	if root.Min.X() > -100 {
		t.Errorf("Root min X should be <= -100, got %f", root.Min.X())
	}
	if root.Max.X() < 100 {
		t.Errorf("Root max X should be >= 100, got %f", root.Max.X())
	}

	if root.Left == -1 || root.Right == -1 {
		t.Fatal("Root should point at two children")
	}
	if root.Left == root.Right {
		t.Error("Left and right indices should be different")
	}
	if !tree.Nodes[root.Left].IsLeaf() || !tree.Nodes[root.Right].IsLeaf() {
		t.Error("Both children should be leaves")
	}
}

func TestSingleObject(t *testing.T) {
	tree := Build([][2]mgl32.Vec3{{{0, 0, 0}, {1, 1, 1}}})

	if len(tree.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(tree.Nodes))
	}
	root := tree.Nodes[0]
	if !root.IsLeaf() {
		t.Error("Root should be a leaf")
	}
	if root.LeafFirst != 0 || root.LeafCount != 1 {
		t.Errorf("Leaf should reference object 0, got first=%d count=%d", root.LeafFirst, root.LeafCount)
	}
}

func TestEmptyBVH(t *testing.T) {
	tree := Build(nil)
	if !tree.Empty() {
		t.Fatalf("Expected empty tree, got %d nodes", len(tree.Nodes))
	}

	called := false
	tree.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, func(int, float32) (float32, bool) {
		called = true
		return 0, false
	})
	tree.QueryAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, func(int) { called = true })
	if called {
		t.Error("Empty tree should never visit")
	}
}

func TestRaycastVisitsOnlyCrossedLeaves(t *testing.T) {
	aabbs := [][2]mgl32.Vec3{
		{{4, -1, -1}, {6, 1, 1}},
		{{-6, -1, -1}, {-4, 1, 1}},
		{{4, 10, -1}, {6, 12, 1}},
	}
	tree := Build(aabbs)

	var visited []int
	tree.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 100, func(index int, tMax float32) (float32, bool) {
		visited = append(visited, index)
		return 0, false
	})

	if len(visited) != 1 || visited[0] != 0 {
		t.Errorf("Expected only box 0 to be visited, got %v", visited)
	}
}

func TestQueryAABB(t *testing.T) {
	aabbs := [][2]mgl32.Vec3{
		{{0, 0, 0}, {1, 1, 1}},
		{{3, 3, 3}, {4, 4, 4}},
		{{0.5, 0.5, 0.5}, {2, 2, 2}},
	}
	tree := Build(aabbs)

	var hits []int
	tree.QueryAABB(mgl32.Vec3{0.9, 0.9, 0.9}, mgl32.Vec3{1.1, 1.1, 1.1}, func(index int) {
		hits = append(hits, index)
	})
	sort.Ints(hits)

	if len(hits) != 2 || hits[0] != 0 || hits[1] != 2 {
		t.Errorf("Expected boxes 0 and 2, got %v", hits)
	}
}

func TestRayAABB(t *testing.T) {
	bmin := mgl32.Vec3{-1, -1, -1}
	bmax := mgl32.Vec3{1, 1, 1}

	if tHit, ok := RayAABB(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 0, 0}, 10, bmin, bmax); !ok || tHit != 4 {
		t.Errorf("Expected entry at 4, got %f ok=%v", tHit, ok)
	}
	if _, ok := RayAABB(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 0, 0}, 3, bmin, bmax); ok {
		t.Error("Box beyond tMax should miss")
	}
	if _, ok := RayAABB(mgl32.Vec3{-5, 3, 0}, mgl32.Vec3{1, 0, 0}, 10, bmin, bmax); ok {
		t.Error("Parallel ray outside slab should miss")
	}
	if _, ok := RayAABB(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 0, 0}, 10, bmin, bmax); ok {
		t.Error("Box behind origin should miss")
	}
}

package bvh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one entry of the flattened tree. Leaves have Left == Right == -1
// and reference a single item through LeafFirst/LeafCount.
type Node struct {
	Min       mgl32.Vec3
	Max       mgl32.Vec3
	Left      int32
	Right     int32
	LeafFirst int32
	LeafCount int32
}

func (n *Node) IsLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

type Item struct {
	Min      mgl32.Vec3
	Max      mgl32.Vec3
	Centroid mgl32.Vec3
	Index    int
}

// Tree is a median-split bounding volume hierarchy over static AABBs.
type Tree struct {
	Nodes []Node
}

func Build(aabbs [][2]mgl32.Vec3) *Tree {
	tree := &Tree{}
	if len(aabbs) == 0 {
		return tree
	}

	items := make([]Item, len(aabbs))
	for i, bounds := range aabbs {
		items[i] = Item{
			Min:      bounds[0],
			Max:      bounds[1],
			Centroid: bounds[0].Add(bounds[1]).Mul(0.5),
			Index:    i,
		}
	}

	tree.recursiveBuild(items)
	return tree
}

func (t *Tree) Empty() bool {
	return len(t.Nodes) == 0
}

func (t *Tree) recursiveBuild(items []Item) int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, LeafFirst: -1, LeafCount: 0})

	minB := mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	maxB := mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}

	for _, it := range items {
		minB = mgl32.Vec3{min(minB.X(), it.Min.X()), min(minB.Y(), it.Min.Y()), min(minB.Z(), it.Min.Z())}
		maxB = mgl32.Vec3{max(maxB.X(), it.Max.X()), max(maxB.Y(), it.Max.Y()), max(maxB.Z(), it.Max.Z())}
	}

	t.Nodes[idx].Min = minB
	t.Nodes[idx].Max = maxB

	if len(items) == 1 {
		t.Nodes[idx].LeafFirst = int32(items[0].Index)
		t.Nodes[idx].LeafCount = 1
		return idx
	}

	// Split along the widest axis at the centroid median.
	extent := maxB.Sub(minB)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Centroid[axis] < items[j].Centroid[axis]
	})

	mid := len(items) / 2
	left := t.recursiveBuild(items[:mid])
	right := t.recursiveBuild(items[mid:])
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right

	return idx
}

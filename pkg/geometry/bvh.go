package geometry

import (
	"sort"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/log"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

var logger = log.New("bvh")

// maxLeafPrimitives is the largest primitive count stored in a single leaf
const maxLeafPrimitives = 2

// bvhNode is a node of the flattened tree. Inner nodes reference their
// children by index into BVH.nodes; leaves hold up to two primitives.
type bvhNode struct {
	box         core.AABB
	left, right int32
	prims       [maxLeafPrimitives]Handle
	count       uint8
}

func (n *bvhNode) isLeaf() bool {
	return n.count > 0
}

// BVHStats summarizes the shape of a built tree.
type BVHStats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	Primitives int
}

// BVH is a bounding volume hierarchy over arena primitives. It is immutable
// after construction and safe for concurrent queries.
type BVH struct {
	arena *Arena
	nodes []bvhNode
	stats BVHStats
}

type buildEntry struct {
	handle Handle
	box    core.AABB
}

// NewBVH builds a hierarchy over handles. The split axis cycles X, Y, Z with
// depth; each level sorts its primitives by bounding box minimum on that axis
// and splits them at the midpoint index. An empty input yields a tree that
// never reports a hit.
func NewBVH(arena *Arena, handles []Handle) *BVH {
	bvh := &BVH{arena: arena}
	if len(handles) == 0 {
		return bvh
	}

	entries := make([]buildEntry, len(handles))
	for i, h := range handles {
		entries[i] = buildEntry{handle: h, box: arena.BoundingBox(h)}
	}

	bvh.nodes = make([]bvhNode, 0, 2*len(handles))
	bvh.build(entries, 0)
	bvh.stats.Nodes = len(bvh.nodes)
	bvh.stats.Primitives = len(handles)

	logger.Debugf("built BVH: %d primitives, %d nodes, %d leaves, max depth %d",
		bvh.stats.Primitives, bvh.stats.Nodes, bvh.stats.Leaves, bvh.stats.MaxDepth)

	return bvh
}

// build appends the subtree for entries and returns its root index
func (b *BVH) build(entries []buildEntry, depth int) int32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{left: -1, right: -1})

	if len(entries) <= maxLeafPrimitives {
		node := bvhNode{left: -1, right: -1, box: entries[0].box}
		for i, e := range entries {
			node.prims[i] = e.handle
			node.box = core.SurroundingBox(node.box, e.box)
		}
		node.count = uint8(len(entries))
		b.nodes[index] = node
		b.stats.Leaves++
		return index
	}

	axis := depth % 3
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].box.Min.Axis(axis) < entries[j].box.Min.Axis(axis)
	})

	mid := len(entries) / 2
	left := b.build(entries[:mid], depth+1)
	right := b.build(entries[mid:], depth+1)

	b.nodes[index] = bvhNode{
		box:   core.SurroundingBox(b.nodes[left].box, b.nodes[right].box),
		left:  left,
		right: right,
	}
	return index
}

// Hit returns the closest intersection in [tMin, tMax]
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if len(b.nodes) == 0 {
		return false
	}
	return b.hitNode(0, ray, tMin, tMax, rec)
}

func (b *BVH) hitNode(index int32, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	node := &b.nodes[index]
	if !node.box.Hit(ray, tMin, tMax) {
		return false
	}

	if node.isLeaf() {
		hitAnything := false
		closestSoFar := tMax
		for i := uint8(0); i < node.count; i++ {
			if b.arena.Hit(node.prims[i], ray, tMin, closestSoFar, rec) {
				hitAnything = true
				closestSoFar = rec.T
			}
		}
		return hitAnything
	}

	hitLeft := b.hitNode(node.left, ray, tMin, tMax, rec)
	if hitLeft {
		tMax = rec.T
	}
	hitRight := b.hitNode(node.right, ray, tMin, tMax, rec)

	return hitLeft || hitRight
}

// BoundingBox returns the root box, or the zero box for an empty tree
func (b *BVH) BoundingBox() core.AABB {
	if len(b.nodes) == 0 {
		return core.AABB{}
	}
	return b.nodes[0].box
}

// Stats returns the node, leaf, depth and primitive counts of the tree
func (b *BVH) Stats() BVHStats {
	return b.stats
}

package accel

import (
	"math"
	"sort"
	"time"

	"github.com/achilleasa/go-bvh/log"
	"github.com/achilleasa/go-bvh/types"
)

const (
	// Traversal stack capacity. The builder always splits ranges into
	// two non-empty halves so tree depth stays far below this bound for
	// any practical primitive count; overflowing the stack indicates a
	// broken builder invariant rather than a runtime data condition.
	bvhStackSize = 64

	// Marks a node slot that references no child/primitive.
	nilIndex int32 = -1
)

func init() {
	register("bvh", func() Accelerator { return NewBVH() })
}

// A BVH tree node. Nodes live in a flat arena and reference their
// children by arena index. A node is a leaf iff both child slots are nil
// and prim is set; internal nodes carry the exact union of their
// children's bounds.
type bvhNode struct {
	bounds types.Box

	left  int32
	right int32

	prim int32
}

func (n *bvhNode) isLeaf() bool {
	return n.left == nilIndex && n.right == nilIndex && n.prim != nilIndex
}

// Build-time snapshot of a primitive. The slice of these records is
// discarded once the tree has been built.
type bvhPrim struct {
	bounds   types.Box
	centroid types.Vec3
	index    int32
}

// A bounding volume hierarchy over an opaque primitive set. Instances
// are created via NewBVH and start out unbuilt; Build must complete
// before Intersect is called. After a successful build the node arena is
// immutable and any number of goroutines may query it concurrently.
type BVH struct {
	logger log.Logger

	// Tree nodes stored as a contiguous arena; the root is node 0.
	nodes []bvhNode

	// The primitive set the tree was built from.
	set PrimitiveSet
}

// Create a new unbuilt BVH accelerator.
func NewBVH() *BVH {
	return &BVH{
		logger: log.New("bvh"),
	}
}

// Get the accelerator name used for registry lookups.
func (bvh *BVH) Name() string {
	return "bvh"
}

// Build the tree from a primitive set. Each primitive is snapshotted as a
// bounds/centroid record and the records are recursively partitioned by
// sorting along a rotating axis and splitting at the position nearest the
// midpoint of the first and last centroid values. Any previously built
// tree is replaced.
func (bvh *BVH) Build(set PrimitiveSet) error {
	count := set.Count()
	if count == 0 {
		return ErrEmptyPrimitiveSet
	}

	prims := make([]bvhPrim, count)
	for i := 0; i < count; i++ {
		bounds := set.Bounds(i)
		prims[i] = bvhPrim{
			bounds:   bounds,
			centroid: bounds.Centroid(),
			index:    int32(i),
		}
	}

	b := &bvhBuilder{
		// A tree with N leaves always has exactly 2N-1 nodes.
		nodes: make([]bvhNode, 0, 2*count-1),
	}

	start := time.Now()
	b.partition(prims, 0, count, 0, 0)
	bvh.nodes = b.nodes
	bvh.set = set

	bvh.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d\n",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, len(b.nodes)-b.stats.leafs, b.stats.leafs,
	)

	return nil
}

type bvhStats struct {
	leafs    int
	maxDepth int
}

type bvhBuilder struct {
	nodes []bvhNode
	stats bvhStats
}

// Partition prims[begin:end) into a subtree and return its arena index.
// The axis rotates x -> y -> z -> x as the recursion deepens.
func (b *bvhBuilder) partition(prims []bvhPrim, begin, end, axis, depth int) int32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	if end-begin == 1 {
		nodeIndex := int32(len(b.nodes))
		b.nodes = append(b.nodes, bvhNode{
			bounds: prims[begin].bounds,
			left:   nilIndex,
			right:  nilIndex,
			prim:   prims[begin].index,
		})
		b.stats.leafs++
		return nodeIndex
	}

	// Order the range by ascending centroid coordinate along the split
	// axis. Ties may break in any order; the split below only depends on
	// the scalar keys.
	section := prims[begin:end]
	sort.Slice(section, func(i, j int) bool {
		return section[i].centroid[axis] < section[j].centroid[axis]
	})

	median := findSplit(prims, begin, end, axis)

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{
		left:  nilIndex,
		right: nilIndex,
		prim:  nilIndex,
	})

	left := b.partition(prims, begin, median, (axis+1)%3, depth+1)
	right := b.partition(prims, median, end, (axis+1)%3, depth+1)

	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right
	b.nodes[nodeIndex].bounds = b.nodes[left].bounds.Union(b.nodes[right].bounds)

	return nodeIndex
}

// Locate the split position for a sorted range by binary-searching toward
// the midpoint of the first and last centroid keys. The search converges
// low/high until they meet, exiting early on an exact key match at the
// probed position. Integer arithmetic keeps the returned position inside
// (begin, end) so both halves are always non-empty for ranges of two or
// more primitives.
func findSplit(prims []bvhPrim, begin, end, axis int) int {
	low := begin
	high := end - 1
	mid := -1
	key := (prims[low].centroid[axis] + prims[high].centroid[axis]) / 2

	for low != mid {
		mid = (low + high) / 2
		if key < prims[mid].centroid[axis] {
			high = mid
		} else if prims[mid].centroid[axis] < key {
			low = mid
		} else {
			break
		}
	}

	return mid + 1
}

// Find the nearest primitive intersection along a ray. Traversal is
// iterative with a fixed-capacity local node stack so query cost never
// grows the call stack; all mutable state is local to the call.
func (bvh *BVH) Intersect(sampleTime float32, ray types.Ray) (Intersection, bool) {
	if len(bvh.nodes) == 0 {
		return Intersection{}, false
	}

	var stack [bvhStackSize]int32
	stackDepth := 0

	best := Intersection{THit: math.MaxFloat32}
	hit := false

	node := int32(0)
	for {
		n := &bvh.nodes[node]

		if n.isLeaf() {
			if isect, primHit := primRayIntersect(bvh.set, int(n.prim), sampleTime, ray); primHit && isect.THit < best.THit {
				best = isect
				hit = true
			}

			if stackDepth == 0 {
				break
			}
			stackDepth--
			node = stack[stackDepth]
			continue
		}

		hitLeft, _, _ := bvh.nodes[n.left].bounds.IntersectRay(ray)
		hitRight, _, _ := bvh.nodes[n.right].bounds.IntersectRay(ray)

		switch {
		case hitLeft && hitRight:
			if stackDepth == bvhStackSize {
				panic("accel: bvh traversal stack overflow")
			}
			stack[stackDepth] = n.right
			stackDepth++
			node = n.left

		case hitLeft:
			node = n.left

		case hitRight:
			node = n.right

		default:
			if stackDepth == 0 {
				if !hit {
					return Intersection{}, false
				}
				return best, true
			}
			stackDepth--
			node = stack[stackDepth]
		}
	}

	if !hit {
		return Intersection{}, false
	}
	return best, true
}

// Recursive reference formulation of the nearest-hit query. It must
// produce identical results to Intersect for identical inputs; it exists
// for cross-checking the iterative traversal and is not used on any hot
// path.
func (bvh *BVH) intersectRecursive(node int32, sampleTime float32, ray types.Ray) (Intersection, bool) {
	n := &bvh.nodes[node]

	boxHit, _, _ := n.bounds.IntersectRay(ray)
	if !boxHit {
		return Intersection{THit: math.MaxFloat32}, false
	}

	if n.isLeaf() {
		return primRayIntersect(bvh.set, int(n.prim), sampleTime, ray)
	}

	isectLeft, hitLeft := bvh.intersectRecursive(n.left, sampleTime, ray)
	isectRight, hitRight := bvh.intersectRecursive(n.right, sampleTime, ray)

	// Never trust a child hit below the ray's validity interval.
	if isectLeft.THit < ray.TMin {
		isectLeft.THit = math.MaxFloat32
	}
	if isectRight.THit < ray.TMin {
		isectRight.THit = math.MaxFloat32
	}

	if !hitLeft && !hitRight {
		return Intersection{THit: math.MaxFloat32}, false
	}

	if isectLeft.THit <= isectRight.THit {
		return isectLeft, true
	}
	return isectRight, true
}

package iconwall

import (
	"math"
	"sort"
)

// ClusterSet is an immutable set of cluster centers indexed by a 2-d tree
// for nearest-center lookups. A nil *ClusterSet is an empty set.
type ClusterSet struct {
	centers []ClusterCenter
	root    *clusterNode
}

// clusterNode is a node of the 2-d tree. Each node splits its subtree
// along the X (0) or Y (1) axis.
type clusterNode struct {
	Center      ClusterCenter
	Left, Right *clusterNode
	SplitAxis   int
}

// NewClusterSet builds the tree over a copy of centers.
func NewClusterSet(centers []ClusterCenter) *ClusterSet {
	owned := append([]ClusterCenter(nil), centers...)
	work := append([]ClusterCenter(nil), centers...)
	return &ClusterSet{
		centers: owned,
		root:    buildClusterTree(work),
	}
}

// Centers returns a copy of the centers in placement order.
func (s *ClusterSet) Centers() []ClusterCenter {
	if s == nil {
		return nil
	}
	return append([]ClusterCenter(nil), s.centers...)
}

// Len returns the number of centers.
func (s *ClusterSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.centers)
}

// Nearest returns the center closest to (x, y) and its Euclidean distance.
// ok is false when the set is empty.
func (s *ClusterSet) Nearest(x, y float64) (center ClusterCenter, dist float64, ok bool) {
	if s == nil || s.root == nil {
		return ClusterCenter{}, math.Inf(1), false
	}
	best, bestSq := s.root.nearest(x, y, nil, math.Inf(1))
	return *best, math.Sqrt(bestSq), true
}

// buildClusterTree constructs a 2-d tree from centers, reordering the
// slice in place.
func buildClusterTree(centers []ClusterCenter) *clusterNode {
	if len(centers) == 0 {
		return nil
	}

	axis := chooseSplitAxis(centers)
	sort.Slice(centers, func(i, j int) bool {
		return axisValue(centers[i], axis) < axisValue(centers[j], axis)
	})

	median := len(centers) / 2
	return &clusterNode{
		Center:    centers[median],
		Left:      buildClusterTree(centers[:median]),
		Right:     buildClusterTree(centers[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns the axis with the larger spread of positions.
func chooseSplitAxis(centers []ClusterCenter) int {
	var meanX, meanY float64
	for _, c := range centers {
		meanX += c.X
		meanY += c.Y
	}
	meanX /= float64(len(centers))
	meanY /= float64(len(centers))

	var varX, varY float64
	for _, c := range centers {
		varX += (c.X - meanX) * (c.X - meanX)
		varY += (c.Y - meanY) * (c.Y - meanY)
	}
	if varY > varX {
		return 1
	}
	return 0
}

func axisValue(c ClusterCenter, axis int) float64 {
	if axis == 0 {
		return c.X
	}
	return c.Y
}

// nearest walks the tree keeping the best center so far. Distances are
// squared.
func (node *clusterNode) nearest(x, y float64, best *ClusterCenter, bestSq float64) (*ClusterCenter, float64) {
	if node == nil {
		return best, bestSq
	}

	dx, dy := node.Center.X-x, node.Center.Y-y
	if d := dx*dx + dy*dy; d < bestSq || best == nil {
		best = &node.Center
		bestSq = d
	}

	target := x
	if node.SplitAxis == 1 {
		target = y
	}
	axisDist := target - axisValue(node.Center, node.SplitAxis)

	next, other := node.Right, node.Left
	if axisDist < 0 {
		next, other = node.Left, node.Right
	}

	best, bestSq = next.nearest(x, y, best, bestSq)
	if axisDist*axisDist < bestSq {
		best, bestSq = other.nearest(x, y, best, bestSq)
	}
	return best, bestSq
}

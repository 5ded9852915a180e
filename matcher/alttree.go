package matcher

import "github.com/katalvlaran/sparseblossom/matchgraph"

// AltTreeChildEdge is one entry in a tree node's child list: Child is the
// child tree node, and Edge connects this node's outer region to Child's
// inner region.
type AltTreeChildEdge struct {
	Child matchgraph.AltTreeIdx
	Edge  matchgraph.CompressedEdge
}

// AltTreeNode is one node of an alternating tree. A root node (the very
// first detection event of its tree) has InnerRegion == matchgraph.NoRegion
// and Parent == matchgraph.NoAltTreeNode; every other node pairs an inner
// region with an outer region across InnerToOuterEdge, and reaches its tree
// parent's outer region via ParentEdge landing on InnerRegion.
type AltTreeNode struct {
	InnerRegion      matchgraph.RegionIdx
	OuterRegion      matchgraph.RegionIdx
	InnerToOuterEdge matchgraph.CompressedEdge

	Parent     matchgraph.AltTreeIdx
	ParentEdge matchgraph.CompressedEdge

	Children []AltTreeChildEdge

	visited bool // LCA scratch flag, always false outside findLCA
}

// AltTreeArena is a free-list arena of AltTreeNode values, mirroring
// matchgraph.RegionArena's shape for the matcher's own index space.
type AltTreeArena struct {
	nodes []AltTreeNode
	free  []matchgraph.AltTreeIdx
}

// NewAltTreeArena returns an empty arena.
func NewAltTreeArena() *AltTreeArena {
	return &AltTreeArena{}
}

func newFreeAltTreeNode() AltTreeNode {
	return AltTreeNode{
		InnerRegion: matchgraph.NoRegion,
		OuterRegion: matchgraph.NoRegion,
		Parent:      matchgraph.NoAltTreeNode,
	}
}

// Alloc returns the index of a freshly zeroed AltTreeNode, reusing a freed
// slot when one is available.
func (a *AltTreeArena) Alloc() matchgraph.AltTreeIdx {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[idx] = newFreeAltTreeNode()

		return idx
	}

	a.nodes = append(a.nodes, newFreeAltTreeNode())

	return matchgraph.AltTreeIdx(len(a.nodes) - 1)
}

// Free returns idx's slot to the free list.
func (a *AltTreeArena) Free(idx matchgraph.AltTreeIdx) {
	a.free = append(a.free, idx)
}

// Get returns a mutable pointer to the node at idx.
func (a *AltTreeArena) Get(idx matchgraph.AltTreeIdx) *AltTreeNode {
	return &a.nodes[idx]
}

// Reset discards all allocated nodes, readying the arena for the next
// decode.
func (a *AltTreeArena) Reset() {
	a.nodes = a.nodes[:0]
	a.free = a.free[:0]
}

func removeChildEdge(list []AltTreeChildEdge, child matchgraph.AltTreeIdx) []AltTreeChildEdge {
	out := list[:0]
	for _, e := range list {
		if e.Child != child {
			out = append(out, e)
		}
	}

	return out
}

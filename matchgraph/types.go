package matchgraph

import (
	"errors"

	"github.com/katalvlaran/sparseblossom/varying"
)

// Sentinel errors for matching-graph construction. Callers branch on these
// with errors.Is; they are never stringified at the definition site.
var (
	// ErrNodeIndexOutOfRange indicates an edge referenced a detector index
	// outside [0, numDetectors).
	ErrNodeIndexOutOfRange = errors.New("matchgraph: node index out of range")

	// ErrObservableIndexOutOfRange indicates an observable index >= 64, or
	// >= the graph's configured observable count.
	ErrObservableIndexOutOfRange = errors.New("matchgraph: observable index out of range")

	// ErrWeightNaN indicates a NaN edge weight was supplied.
	ErrWeightNaN = errors.New("matchgraph: edge weight is NaN")

	// ErrSelfLoop indicates an edge's two endpoints are the same detector
	// node; zero-length edges are not meaningful in a matching graph.
	ErrSelfLoop = errors.New("matchgraph: self-loop edge not allowed")

	// ErrTooManyObservables indicates a graph was constructed requesting
	// more than 64 logical observables, exceeding the 64-bit mask budget.
	ErrTooManyObservables = errors.New("matchgraph: more than 64 observables requested")

	// ErrNegativeDimension indicates a negative numDetectors/numObservables.
	ErrNegativeDimension = errors.New("matchgraph: negative dimension")
)

// NodeIdx identifies a detector node. NoNode is the sentinel used wherever
// an edge endpoint is the boundary.
type NodeIdx int32

// NoNode is the boundary sentinel for an edge endpoint.
const NoNode NodeIdx = -1

// RegionIdx identifies a fill region within a RegionArena. NoRegion means
// "no region" (a node not yet reached, or a match against the boundary).
type RegionIdx int32

// NoRegion is the "no region" / "boundary match" sentinel.
const NoRegion RegionIdx = -1

// AltTreeIdx identifies an alternating-tree node within the matcher
// package's arena. Defined here (rather than in matcher) so FillRegion can
// hold a back-reference without an import cycle.
type AltTreeIdx int32

// NoAltTreeNode means a region is not currently attached to any
// alternating-tree node.
const NoAltTreeNode AltTreeIdx = -1

// CompressedEdge summarizes a (possibly long) path between two regions as
// a (from, to, observable-mask) triple. Either endpoint may be NoNode,
// meaning the boundary.
type CompressedEdge struct {
	From NodeIdx
	To   NodeIdx
	Obs  uint64
}

// Reversed swaps the endpoints, leaving the observable mask untouched.
// Reversed is its own inverse: e.Reversed().Reversed() == e.
func (e CompressedEdge) Reversed() CompressedEdge {
	return CompressedEdge{From: e.To, To: e.From, Obs: e.Obs}
}

// Merged concatenates e and other at their shared endpoint, XORing the
// observable masks and cancelling the shared node out of the result. The
// two edges must share exactly one endpoint; behavior is undefined (but
// deterministic) if they don't, since callers only ever merge edges known
// to be adjacent along a tree or cycle.
func (e CompressedEdge) Merged(other CompressedEdge) CompressedEdge {
	obs := e.Obs ^ other.Obs
	switch {
	case e.To == other.From:
		return CompressedEdge{From: e.From, To: other.To, Obs: obs}
	case e.To == other.To:
		return CompressedEdge{From: e.From, To: other.From, Obs: obs}
	case e.From == other.From:
		return CompressedEdge{From: e.To, To: other.To, Obs: obs}
	case e.From == other.To:
		return CompressedEdge{From: e.To, To: other.From, Obs: obs}
	default:
		return CompressedEdge{From: e.From, To: other.To, Obs: obs}
	}
}

// Match records that a region is matched to a partner region (or the
// boundary, when Partner == NoRegion) via Edge.
type Match struct {
	Partner RegionIdx
	Edge    CompressedEdge
}

// BlossomChild is one slot in a fill region's cyclic-ordered child list:
// Child is a region index, and Edge is the compressed edge connecting
// Child to the next child in the cycle (invariant 2 in the spec).
type BlossomChild struct {
	Child RegionIdx
	Edge  CompressedEdge
}

// Node is a detector node: permanent topology plus ephemeral per-decode
// state. Permanent fields are set once by the graph builder and never
// mutated by a decode; ephemeral fields are reset before each decode via
// resetEphemeral.
type Node struct {
	// Permanent: parallel neighbor/weight/observable-mask arrays. A
	// neighbor entry of NoNode denotes a boundary edge.
	Neighbors   []NodeIdx
	Weights     []int32
	Observables []uint64

	// Ephemeral, reset before each decode.
	RegionArrived    RegionIdx // innermost region owning this node
	RegionArrivedTop RegionIdx // outermost blossom ancestor of RegionArrived
	Predecessor      NodeIdx   // node the wave arrived from (NoNode at the seed)
	ObsFromSource    uint64    // observable mask accumulated from the source
	ArrivalTime      int64     // absolute time this node was claimed
	WrappedRadius    int64     // sum of enclosing blossom radii above the immediate owner
	Tracker          varying.EventTracker
}

func (n *Node) resetEphemeral() {
	n.RegionArrived = NoRegion
	n.RegionArrivedTop = NoRegion
	n.Predecessor = NoNode
	n.ObsFromSource = 0
	n.ArrivalTime = 0
	n.WrappedRadius = 0
	n.Tracker.Reset()
}

// LocalRadius returns the Varying equal to the current owning top region's
// radius, shifted by this node's cached wrapped radius (spec 4.3): the
// current distance from the node back to the source(s) of its region.
func (n *Node) LocalRadius(arena *RegionArena) varying.Varying {
	if n.RegionArrivedTop == NoRegion {
		return varying.Varying{}
	}

	top := arena.Get(n.RegionArrivedTop)

	return top.Radius.ShiftedBy(n.WrappedRadius)
}

// FillRegion is a dual variable shaped like a growing disk on the graph.
type FillRegion struct {
	BlossomParent    RegionIdx
	BlossomParentTop RegionIdx
	AltTreeNode      AltTreeIdx

	Radius        varying.Varying
	ShrinkTracker varying.EventTracker

	Match *Match

	// Children is the cyclic-ordered blossom-child list (invariant 2): the
	// edge in slot i connects Children[i].Child to Children[(i+1)%n].Child.
	Children []BlossomChild

	// ShellArea lists, in claim order, the node indices this region owned
	// before (if ever) being wrapped into a parent blossom.
	ShellArea []NodeIdx

	// AnchorInParent/AnchorInChild are the two detector-node anchors
	// recorded when this region was formed as a blossom: the node
	// connecting it to its alternating-tree parent, and the node
	// connecting it to its tree inner-child. Used to locate in_parent/
	// in_child on BlossomShatter (spec 4.4).
	AnchorInParent NodeIdx
	AnchorInChild  NodeIdx
}

func newFreeRegion() FillRegion {
	return FillRegion{
		BlossomParent:    NoRegion,
		BlossomParentTop: NoRegion,
		AltTreeNode:      NoAltTreeNode,
		AnchorInParent:   NoNode,
		AnchorInChild:    NoNode,
	}
}

// IsMatched reports whether the region currently has an external match.
func (r *FillRegion) IsMatched() bool { return r.Match != nil }

// IsBlossom reports whether the region has blossom children.
func (r *FillRegion) IsBlossom() bool { return len(r.Children) > 0 }

package matcher

import (
	"github.com/katalvlaran/sparseblossom/flooder"
	"github.com/katalvlaran/sparseblossom/matchgraph"
)

// Mwpm drives one decode: it owns the flooder (graph + region arena +
// event queue) and the alternating-tree arena, and dispatches every
// MatcherEvent the flooder surfaces until the queue runs dry.
type Mwpm struct {
	Graph  *matchgraph.Graph
	Region *matchgraph.RegionArena
	Trees  *AltTreeArena
	Flood  *flooder.Flooder
}

// NewMwpm returns an Mwpm over an already-finalized graph, with its own
// fresh region arena, alternating-tree arena and flooder.
func NewMwpm(g *matchgraph.Graph) *Mwpm {
	arena := matchgraph.NewRegionArena()

	return &Mwpm{
		Graph:  g,
		Region: arena,
		Trees:  NewAltTreeArena(),
		Flood:  flooder.NewFlooder(g, arena),
	}
}

// Reset discards all per-decode state so the same Mwpm can be reused for
// the next syndrome.
func (m *Mwpm) Reset() {
	m.Graph.ResetEphemeral()
	m.Region.Reset()
	m.Trees.Reset()
	m.Flood.Queue.Reset()
}

// AddDetectionEvent seeds a fresh alternating-tree root at node: a growing
// region with no inner companion.
func (m *Mwpm) AddDetectionEvent(node matchgraph.NodeIdx) matchgraph.RegionIdx {
	region := m.Flood.CreateDetectionEvent(node)

	treeIdx := m.Trees.Alloc()
	tree := m.Trees.Get(treeIdx)
	tree.OuterRegion = region
	tree.InnerRegion = matchgraph.NoRegion
	tree.Parent = matchgraph.NoAltTreeNode

	m.Region.Get(region).AltTreeNode = treeIdx

	return region
}

// RunToCompletion drains the flooder's event stream, dispatching every
// MatcherEvent until none remain: every detection event has then been
// matched, directly or as part of a blossom.
func (m *Mwpm) RunToCompletion() {
	for {
		ev, ok := m.Flood.RunUntilNextMwpmNotification()
		if !ok {
			return
		}

		switch ev.Kind {
		case flooder.RegionHitRegion:
			m.onRegionHitRegion(ev)
		case flooder.RegionHitBoundary:
			m.onRegionHitBoundary(ev)
		case flooder.BlossomShatter:
			m.onBlossomShatter(ev)
		}
	}
}

func (m *Mwpm) onRegionHitRegion(ev flooder.MatcherEvent) {
	node1 := m.Region.Get(ev.Region1).AltTreeNode
	r2 := m.Region.Get(ev.Region2)

	// The scanning side is always a live tree member (the flooder only
	// surfaces RegionHitRegion off a growing, hence tree-attached, region).
	// The far side may instead be an already-matched pair with no tree of
	// its own: growing into it extends the tree through the match rather
	// than colliding two trees together.
	if r2.AltTreeNode == matchgraph.NoAltTreeNode && r2.IsMatched() {
		m.growTreeThroughMatch(node1, ev.Region2, ev.Edge)
		return
	}

	node2 := r2.AltTreeNode
	if m.sameTree(node1, node2) {
		m.formBlossom(ev.Region1, ev.Region2, ev.Edge)
		return
	}

	m.matchAndCollapse(node1, node2, ev.Edge)
}

// growTreeThroughMatch absorbs an already-matched pair (innerRegion and its
// partner) into parent's tree as a new child node: innerRegion becomes the
// new node's inner region (reached via parentEdge), and its former match
// partner becomes the new node's outer region (reached via what was the
// match edge, now reinterpreted as the inner-to-outer edge). If innerRegion
// was matched directly to the boundary, the new node has no outer region
// and the tree simply ends there.
func (m *Mwpm) growTreeThroughMatch(parent matchgraph.AltTreeIdx, innerRegion matchgraph.RegionIdx, parentEdge matchgraph.CompressedEdge) {
	ir := m.Region.Get(innerRegion)
	match := ir.Match
	outerRegion := match.Partner
	innerToOuterEdge := match.Edge

	ir.Match = nil
	if outerRegion != matchgraph.NoRegion {
		m.Region.Get(outerRegion).Match = nil
	}

	node := m.Trees.Alloc()
	m.Trees.Get(node).Parent = parent
	pt := m.Trees.Get(parent)
	pt.Children = append(pt.Children, AltTreeChildEdge{Child: node, Edge: parentEdge})

	m.attachInner(node, innerRegion, parentEdge, innerToOuterEdge)
	if outerRegion != matchgraph.NoRegion {
		m.attachOuter(node, outerRegion)
	}
}

func (m *Mwpm) onRegionHitBoundary(ev flooder.MatcherEvent) {
	node1 := m.Region.Get(ev.Region1).AltTreeNode
	r1 := m.Trees.Get(node1).OuterRegion

	m.setMatched(r1, matchgraph.NoRegion, ev.Edge)
	m.dismantleTreeAbove(node1)
}

// attachOuter makes region the outer region of tree node, and turns it
// growing: a live outer region is always the growing wavefront of some
// tree.
func (m *Mwpm) attachOuter(node matchgraph.AltTreeIdx, region matchgraph.RegionIdx) {
	m.Trees.Get(node).OuterRegion = region
	m.Region.Get(region).AltTreeNode = node
	m.Flood.SetRegionGrowing(region)
}

// attachInner makes region the inner region of tree node, reached via
// parentEdge from the tree parent and connected onward to the node's own
// outer region via innerToOuterEdge, and turns it shrinking. If region is a
// blossom, its shatter anchors are (re)recorded here: whenever a blossom
// becomes someone's inner region, the detector nodes where the parent edge
// and the inner-to-outer edge land inside it are exactly the two anchors
// regionOneLevelBelow needs at shatter time.
func (m *Mwpm) attachInner(node matchgraph.AltTreeIdx, region matchgraph.RegionIdx, parentEdge, innerToOuterEdge matchgraph.CompressedEdge) {
	tree := m.Trees.Get(node)
	tree.InnerRegion = region
	tree.ParentEdge = parentEdge
	tree.InnerToOuterEdge = innerToOuterEdge

	r := m.Region.Get(region)
	r.AltTreeNode = node
	if r.IsBlossom() {
		r.AnchorInParent = parentEdge.To
		r.AnchorInChild = innerToOuterEdge.From
	}
	m.Flood.SetRegionShrinking(region)
}

// setMatched records a and b (or a and the boundary, when b == NoRegion)
// as matched via edge, detaches both from any alternating tree, and
// freezes them.
func (m *Mwpm) setMatched(a, b matchgraph.RegionIdx, edge matchgraph.CompressedEdge) {
	ra := m.Region.Get(a)
	ra.Match = &matchgraph.Match{Partner: b, Edge: edge}
	ra.AltTreeNode = matchgraph.NoAltTreeNode
	m.Flood.SetRegionFrozen(a)

	if b != matchgraph.NoRegion {
		rb := m.Region.Get(b)
		rb.Match = &matchgraph.Match{Partner: a, Edge: edge.Reversed()}
		rb.AltTreeNode = matchgraph.NoAltTreeNode
		m.Flood.SetRegionFrozen(b)
	}
}

package matcher

import (
	"github.com/katalvlaran/sparseblossom/flooder"
	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/varying"
)

// formBlossom contracts the odd cycle running from r1 up to the two
// regions' lowest common tree ancestor and back down to r2 (closed by
// hitEdge) into a single new blossom region. The cycle's children are
// recorded in invariant-2 cyclic order; every one of them is frozen and
// wrapped into the new blossom before it starts growing in their place.
// The lowest common ancestor's own tree node is reused for the blossom:
// every other tree node along the cycle is discarded, since its region is
// now a blossom child rather than an independent tree member.
func (m *Mwpm) formBlossom(r1, r2 matchgraph.RegionIdx, hitEdge matchgraph.CompressedEdge) {
	node1 := m.Region.Get(r1).AltTreeNode
	node2 := m.Region.Get(r2).AltTreeNode
	lca := m.findLCA(node1, node2)

	aRegions, aEdges := m.pathToAncestor(node1, lca)
	bRegions, bEdges := m.pathToAncestor(node2, lca)
	chain1 := m.collectAncestorChain(node1, lca)
	chain2 := m.collectAncestorChain(node2, lca)

	k := len(aRegions) - 1
	children := make([]matchgraph.BlossomChild, 0, k+len(bRegions))
	for i := k; i >= 1; i-- {
		children = append(children, matchgraph.BlossomChild{Child: aRegions[i], Edge: aEdges[i-1].Reversed()})
	}
	children = append(children, matchgraph.BlossomChild{Child: aRegions[0], Edge: hitEdge})
	for i := 0; i < len(bRegions)-1; i++ {
		children = append(children, matchgraph.BlossomChild{Child: bRegions[i], Edge: bEdges[i]})
	}

	lcaTree := m.Trees.Get(lca)
	if len(chain1) > 0 {
		lcaTree.Children = removeChildEdge(lcaTree.Children, chain1[len(chain1)-1])
	}
	if len(chain2) > 0 {
		lcaTree.Children = removeChildEdge(lcaTree.Children, chain2[len(chain2)-1])
	}

	now := m.Flood.Queue.CurrentTime()
	blossomIdx := m.Region.Alloc()
	blossom := m.Region.Get(blossomIdx)
	blossom.Children = children
	blossom.Radius = varying.NewVarying(varying.Growing, -now)

	for _, c := range children {
		m.Flood.SetRegionFrozen(c.Child)
	}
	for _, c := range children {
		matchgraph.WrapIntoBlossom(m.Graph, m.Region, c.Child, blossomIdx)
		m.Region.Get(c.Child).AltTreeNode = matchgraph.NoAltTreeNode
	}

	for _, n := range chain1 {
		m.Trees.Free(n)
	}
	for _, n := range chain2 {
		m.Trees.Free(n)
	}

	m.attachOuter(lca, blossomIdx)
}

// detachChildFromBlossom reverses matchgraph.WrapIntoBlossom for one direct
// child of a shattering blossom: it frees child (and its own nested
// descendants) back to top-level status, subtracting the frozen radius
// value WrapIntoBlossom had added to every node's cached wrapped radius and
// pointing their RegionArrivedTop back at child.
func (m *Mwpm) detachChildFromBlossom(child matchgraph.RegionIdx) {
	r := m.Region.Get(child)
	delta := r.Radius.Intercept
	r.BlossomParent = matchgraph.NoRegion
	r.BlossomParentTop = matchgraph.NoRegion

	var walk func(idx matchgraph.RegionIdx)
	walk = func(idx matchgraph.RegionIdx) {
		region := m.Region.Get(idx)
		for _, nodeIdx := range region.ShellArea {
			n := m.Graph.Node(nodeIdx)
			n.WrappedRadius -= delta
			n.RegionArrivedTop = child
		}
		for _, bc := range region.Children {
			walk(bc.Child)
		}
	}
	walk(child)
}

// onBlossomShatter dissolves a shrunk-to-zero blossom back into its
// children. The arc of children running from in_parent to in_child
// (forward in cyclic order) re-forms the alternating-tree path that used
// to pass through the blossom: in_parent inherits the blossom's old parent
// edge, the arc's children alternate inner/outer via their own connecting
// edges, and the blossom's original tree node (call it u) is reused for
// the final inner slot, keeping its own outer region, inner-to-outer edge
// and further tree children untouched. The remaining children (the other
// arc, from in_child back around to in_parent) are paired off directly
// into matches via their own connecting edges.
func (m *Mwpm) onBlossomShatter(ev flooder.MatcherEvent) {
	blossomIdx := ev.Blossom
	blossom := m.Region.Get(blossomIdx)
	u := blossom.AltTreeNode
	uTree := m.Trees.Get(u)
	originalParent := uTree.Parent
	originalParentEdge := uTree.ParentEdge

	children := blossom.Children
	n := len(children)
	indexOf := func(r matchgraph.RegionIdx) int {
		for i, c := range children {
			if c.Child == r {
				return i
			}
		}
		return -1
	}
	ip := indexOf(ev.InParent)
	ic := indexOf(ev.InChild)

	var arc []int
	for i := ip; ; i = (i + 1) % n {
		arc = append(arc, i)
		if i == ic {
			break
		}
	}
	k := len(arc)

	for _, c := range children {
		m.detachChildFromBlossom(c.Child)
	}

	numPairs := (k - 1) / 2
	prevNode := originalParent
	prevEdge := originalParentEdge
	for p := 0; p < numPairs; p++ {
		innerRegion := children[arc[2*p]].Child
		outerRegion := children[arc[2*p+1]].Child
		innerToOuterEdge := children[arc[2*p]].Edge

		node := m.Trees.Alloc()
		m.Trees.Get(node).Parent = prevNode
		m.attachInner(node, innerRegion, prevEdge, innerToOuterEdge)
		m.attachOuter(node, outerRegion)

		pt := m.Trees.Get(prevNode)
		pt.Children = append(pt.Children, AltTreeChildEdge{Child: node, Edge: prevEdge})

		prevNode = node
		prevEdge = children[arc[2*p+1]].Edge
	}

	finalInnerEdge := originalParentEdge
	if numPairs > 0 {
		finalInnerEdge = children[arc[k-2]].Edge
	}
	uTree.Parent = prevNode
	if prevNode != originalParent {
		pt := m.Trees.Get(prevNode)
		pt.Children = append(pt.Children, AltTreeChildEdge{Child: u, Edge: finalInnerEdge})
	}
	m.attachInner(u, children[arc[k-1]].Child, finalInnerEdge, uTree.InnerToOuterEdge)

	var remainder []int
	for i := (ic + 1) % n; i != ip; i = (i + 1) % n {
		remainder = append(remainder, i)
	}
	for j := 0; j+1 < len(remainder); j += 2 {
		a := children[remainder[j]].Child
		b := children[remainder[j+1]].Child
		edge := children[remainder[j]].Edge
		m.setMatched(a, b, edge)
	}

	m.Region.Get(blossomIdx).Children = nil
	m.Region.Free(blossomIdx)
}

package matcher

import "github.com/katalvlaran/sparseblossom/matchgraph"

// matchAndCollapse handles a RegionHitRegion between two different trees:
// the two colliding regions are matched directly to each other via hitEdge,
// and each side's whole tree is then dismantled into matched pairs.
func (m *Mwpm) matchAndCollapse(node1, node2 matchgraph.AltTreeIdx, hitEdge matchgraph.CompressedEdge) {
	r1 := m.Trees.Get(node1).OuterRegion
	r2 := m.Trees.Get(node2).OuterRegion

	m.setMatched(r1, r2, hitEdge)
	m.dismantleTreeAbove(node1)
	m.dismantleTreeAbove(node2)
}

// dismantleTreeAbove collapses nodeX's tree root side: conceptually, the
// tree is rotated so nodeX becomes its root (its own outer region has
// already been matched by the caller) and then entirely shattered into
// matched pairs. Rather than materializing the rotation, this walks
// nodeX's ancestor chain directly: for each node on the chain, its inner
// region is matched with the next ancestor's outer region via the node's
// own parent edge (the pairing rotation would produce), while every
// off-chain child subtree shatters normally via its own inner-to-outer
// edge.
func (m *Mwpm) dismantleTreeAbove(nodeX matchgraph.AltTreeIdx) {
	var chain []matchgraph.AltTreeIdx
	for cur := nodeX; cur != matchgraph.NoAltTreeNode; cur = m.Trees.Get(cur).Parent {
		chain = append(chain, cur)
	}

	for i, node := range chain {
		tree := m.Trees.Get(node)

		skip := matchgraph.NoAltTreeNode
		if i > 0 {
			skip = chain[i-1]
		}
		for _, ce := range tree.Children {
			if ce.Child == skip {
				continue
			}
			m.shatterIntoMatches(ce.Child)
		}

		if i+1 < len(chain) {
			next := m.Trees.Get(chain[i+1])
			m.setMatched(tree.InnerRegion, next.OuterRegion, tree.ParentEdge)
		}

		m.Trees.Free(node)
	}
}

// shatterIntoMatches dismantles an off-spine tree node: its own inner and
// outer regions are matched directly via its own inner-to-outer edge
// (discarding the edge that used to connect it to its tree parent, since
// that direction of the tree is moot once everything below it collapses),
// and every child recurses the same way.
func (m *Mwpm) shatterIntoMatches(node matchgraph.AltTreeIdx) {
	tree := m.Trees.Get(node)
	if tree.InnerRegion != matchgraph.NoRegion {
		m.setMatched(tree.InnerRegion, tree.OuterRegion, tree.InnerToOuterEdge)
	}
	for _, ce := range tree.Children {
		m.shatterIntoMatches(ce.Child)
	}
	m.Trees.Free(node)
}

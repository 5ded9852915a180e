package matcher

import "github.com/katalvlaran/sparseblossom/matchgraph"

// treeRoot walks n's parent chain up to its tree's root.
func (m *Mwpm) treeRoot(n matchgraph.AltTreeIdx) matchgraph.AltTreeIdx {
	for {
		p := m.Trees.Get(n).Parent
		if p == matchgraph.NoAltTreeNode {
			return n
		}
		n = p
	}
}

func (m *Mwpm) sameTree(a, b matchgraph.AltTreeIdx) bool {
	return m.treeRoot(a) == m.treeRoot(b)
}

// findLCA returns the lowest common ancestor of a and b within the same
// tree, via a mark-then-sweep walk: a's ancestors (including itself) are
// flagged visited, then b's chain is walked until a flagged node is found.
// Callers only call this once sameTree(a, b) is known to hold.
func (m *Mwpm) findLCA(a, b matchgraph.AltTreeIdx) matchgraph.AltTreeIdx {
	for cur := a; cur != matchgraph.NoAltTreeNode; cur = m.Trees.Get(cur).Parent {
		m.Trees.Get(cur).visited = true
	}

	lca := matchgraph.NoAltTreeNode
	for cur := b; cur != matchgraph.NoAltTreeNode; cur = m.Trees.Get(cur).Parent {
		if m.Trees.Get(cur).visited {
			lca = cur
			break
		}
	}

	for cur := a; cur != matchgraph.NoAltTreeNode; cur = m.Trees.Get(cur).Parent {
		m.Trees.Get(cur).visited = false
	}

	return lca
}

// pathToAncestor returns the alternating sequence of regions from node's
// own outer region up to (and including) ancestor's outer region, and the
// compressed edges connecting consecutive regions in that sequence
// (len(edges) == len(regions)-1).
func (m *Mwpm) pathToAncestor(node, ancestor matchgraph.AltTreeIdx) ([]matchgraph.RegionIdx, []matchgraph.CompressedEdge) {
	regions := []matchgraph.RegionIdx{m.Trees.Get(node).OuterRegion}
	var edges []matchgraph.CompressedEdge

	cur := node
	for cur != ancestor {
		t := m.Trees.Get(cur)
		edges = append(edges, t.InnerToOuterEdge.Reversed())
		regions = append(regions, t.InnerRegion)

		parent := t.Parent
		edges = append(edges, t.ParentEdge.Reversed())
		regions = append(regions, m.Trees.Get(parent).OuterRegion)

		cur = parent
	}

	return regions, edges
}

// collectAncestorChain returns node and every strict ancestor up to (but
// excluding) ancestor, nearest-first.
func (m *Mwpm) collectAncestorChain(node, ancestor matchgraph.AltTreeIdx) []matchgraph.AltTreeIdx {
	var chain []matchgraph.AltTreeIdx
	for cur := node; cur != ancestor; cur = m.Trees.Get(cur).Parent {
		chain = append(chain, cur)
	}

	return chain
}

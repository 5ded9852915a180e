package matchgraph

// WrapIntoBlossom makes region child an immediate child of blossom, per
// spec 4.3. child must already be Frozen (the matcher freezes every cycle
// member before contracting it): child's frozen radius value is added to
// the cached WrappedRadius of every node in child's shell area and in
// every nested descendant's shell area, so Node.LocalRadius keeps
// returning the correct current distance once blossom (not child) is the
// outermost growing region. BlossomParentTop is updated across the whole
// subtree; BlossomParent (the immediate parent) only on child itself.
func WrapIntoBlossom(g *Graph, arena *RegionArena, child, blossom RegionIdx) {
	r := arena.Get(child)
	frozenValue := r.Radius.Intercept // valid since Radius.Slope == Frozen here
	r.BlossomParent = blossom
	r.BlossomParentTop = blossom

	var walk func(idx RegionIdx)
	walk = func(idx RegionIdx) {
		region := arena.Get(idx)
		region.BlossomParentTop = blossom
		for _, nodeIdx := range region.ShellArea {
			node := &g.nodes[nodeIdx]
			node.WrappedRadius += frozenValue
			node.RegionArrivedTop = blossom
		}
		for _, bc := range region.Children {
			walk(bc.Child)
		}
	}
	walk(child)
}

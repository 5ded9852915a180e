package matcher

import "github.com/katalvlaran/sparseblossom/matchgraph"

// regionOneLevelBelow walks node's region_that_arrived chain up through
// BlossomParent pointers until it finds the region whose direct
// BlossomParent is blossom. Mirrors flooder's own helper of the same name;
// match extraction runs after the flooder has stopped driving the decode,
// so it needs its own copy over the same region arena.
func (m *Mwpm) regionOneLevelBelow(node matchgraph.NodeIdx, blossom matchgraph.RegionIdx) matchgraph.RegionIdx {
	r := m.Graph.Node(node).RegionArrived
	for {
		region := m.Region.Get(r)
		if region.BlossomParent == blossom {
			return r
		}
		r = region.BlossomParent
	}
}

// ExtractMatches walks every top-level matched region exactly once and
// returns the full set of resolved detector-to-detector (or
// detector-to-boundary) compressed edges making up the perfect matching,
// together with the total matching weight (the sum of every region's
// y-intercept at every nesting level, leaf and blossom alike).
func (m *Mwpm) ExtractMatches() ([]matchgraph.CompressedEdge, int64) {
	var edges []matchgraph.CompressedEdge
	var weight int64

	processed := make([]bool, m.Region.Len())
	for i := 0; i < m.Region.Len(); i++ {
		idx := matchgraph.RegionIdx(i)
		r := m.Region.Get(idx)
		if r.BlossomParent != matchgraph.NoRegion || !r.IsMatched() || processed[i] {
			continue
		}
		processed[i] = true
		if r.Match.Partner != matchgraph.NoRegion {
			processed[r.Match.Partner] = true
		}

		if r.IsBlossom() {
			m.shatterAndExtract(idx, true, &edges, &weight)
		} else {
			weight += r.Radius.Intercept
			edges = append(edges, r.Match.Edge)
		}

		if r.Match.Partner != matchgraph.NoRegion {
			pr := m.Region.Get(r.Match.Partner)
			if pr.IsBlossom() {
				// The pair's edge was already emitted from r's side.
				m.shatterAndExtract(r.Match.Partner, false, &edges, &weight)
			} else {
				weight += pr.Radius.Intercept
			}
		}
	}

	return edges, weight
}

// shatterAndExtract dismantles one matched blossom at extraction time (the
// blossom may have stayed growing for the whole decode and only now needs
// shattering, unlike the shrink-triggered onBlossomShatter). Its own
// y-intercept is added to weight; the child that currently carries the
// node where the blossom's external match edge lands (the heir, found by
// walking that node's region-arrived chain one level down) inherits that
// external match, and the other nChild-1 children are paired off
// cyclically starting right after the heir, each pair matched via its
// stored cycle edge. Every child then resolves recursively. emit reports
// whether the blossom's external match edge is to be appended (false when
// the other end of that match has already appended it); each internal pair
// appends its edge once.
func (m *Mwpm) shatterAndExtract(blossomIdx matchgraph.RegionIdx, emit bool, edges *[]matchgraph.CompressedEdge, weight *int64) {
	blossom := m.Region.Get(blossomIdx)
	*weight += blossom.Radius.Intercept
	match := blossom.Match
	children := blossom.Children
	nChild := len(children)

	heirIdx := 0
	if match != nil {
		heirRegion := m.regionOneLevelBelow(match.Edge.From, blossomIdx)
		for i, c := range children {
			if c.Child == heirRegion {
				heirIdx = i
				break
			}
		}
	}

	for _, c := range children {
		m.detachChildFromBlossom(c.Child)
	}

	m.resolveChild(children[heirIdx].Child, match, emit, edges, weight)

	for step := 1; step+1 <= nChild-1; step += 2 {
		i := (heirIdx + step) % nChild
		j := (heirIdx + step + 1) % nChild
		edge := children[i].Edge
		m.resolveChild(children[i].Child, &matchgraph.Match{Partner: children[j].Child, Edge: edge}, true, edges, weight)
		m.resolveChild(children[j].Child, &matchgraph.Match{Partner: children[i].Child, Edge: edge.Reversed()}, false, edges, weight)
	}
}

// resolveChild assigns region its final match (computed by the parent
// blossom's shatter-and-extract step) and either recurses, if region is
// itself a blossom, or, if it's a leaf, emits its resolved edge directly
// when emit is true.
func (m *Mwpm) resolveChild(region matchgraph.RegionIdx, match *matchgraph.Match, emit bool, edges *[]matchgraph.CompressedEdge, weight *int64) {
	r := m.Region.Get(region)
	r.Match = match

	if r.IsBlossom() {
		m.shatterAndExtract(region, emit, edges, weight)
		return
	}

	*weight += r.Radius.Intercept
	if emit {
		*edges = append(*edges, match.Edge)
	}
}

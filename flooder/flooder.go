package flooder

import (
	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/varying"
)

// Flooder grows, freezes and shrinks fill regions over a matching graph,
// surfacing MatcherEvents as wavefronts interact (spec 4.4).
type Flooder struct {
	Graph *matchgraph.Graph
	Arena *matchgraph.RegionArena
	Queue *varying.RadixQueue
}

// NewFlooder returns a Flooder over the given (already finalized) graph
// and a fresh region arena, with an empty event queue at time zero.
func NewFlooder(g *matchgraph.Graph, arena *matchgraph.RegionArena) *Flooder {
	return &Flooder{
		Graph: g,
		Arena: arena,
		Queue: varying.NewRadixQueue(),
	}
}

// scheduleLookAtNode enqueues a LookAtNode event for node at time t, unless
// node's tracker reports an equivalent one already queued.
func (f *Flooder) scheduleLookAtNode(node matchgraph.NodeIdx, t int64) {
	n := f.Graph.Node(node)
	tag, mustEnqueue := n.Tracker.SetDesiredEvent(t)
	if mustEnqueue {
		f.Queue.Enqueue(FloodCheckEvent{Kind: LookAtNode, Node: node, At: t, Tag: tag})
	}
}

// scheduleLookAtShrinkingRegion enqueues a LookAtShrinkingRegion event for
// region at time t, unless an equivalent one is already queued.
func (f *Flooder) scheduleLookAtShrinkingRegion(region matchgraph.RegionIdx, t int64) {
	r := f.Arena.Get(region)
	tag, mustEnqueue := r.ShrinkTracker.SetDesiredEvent(t)
	if mustEnqueue {
		f.Queue.Enqueue(FloodCheckEvent{Kind: LookAtShrinkingRegion, Region: region, At: t, Tag: tag})
	}
}

// CreateDetectionEvent allocates a fresh growing region seeded at node,
// claims node into it, and schedules node's first look-at-node check. It
// is how the matcher turns a fired detector into a new alternating-tree
// leaf at the start of a decode (spec 4.4/4.5).
func (f *Flooder) CreateDetectionEvent(node matchgraph.NodeIdx) matchgraph.RegionIdx {
	idx := f.Arena.Alloc()
	region := f.Arena.Get(idx)
	now := f.Queue.CurrentTime()
	region.Radius = varying.NewVarying(varying.Growing, -now)

	n := f.Graph.Node(node)
	n.RegionArrived = idx
	n.RegionArrivedTop = idx
	n.ArrivalTime = now
	n.WrappedRadius = 0
	n.Predecessor = matchgraph.NoNode
	n.ObsFromSource = 0

	region.ShellArea = append(region.ShellArea, node)
	f.scheduleLookAtNode(node, now)

	return idx
}

// SetRegionGrowing transitions region to Growing as of the current time
// and reschedules a look-at-node check for every node in its total area (its
// own shell plus the shells of every nested blossom child): any of them may
// now have a new, sooner interaction to detect.
func (f *Flooder) SetRegionGrowing(region matchgraph.RegionIdx) {
	r := f.Arena.Get(region)
	now := f.Queue.CurrentTime()
	r.Radius = r.Radius.Grow(now)
	var reschedule func(idx matchgraph.RegionIdx)
	reschedule = func(idx matchgraph.RegionIdx) {
		sub := f.Arena.Get(idx)
		for _, node := range sub.ShellArea {
			f.scheduleLookAtNode(node, now)
		}
		for _, c := range sub.Children {
			reschedule(c.Child)
		}
	}
	reschedule(region)
}

// SetRegionFrozen transitions region to Frozen as of the current time. A
// frozen region's own wavefront no longer advances, so no new look-at-node
// checks are needed from it; any already-queued ones harmlessly find
// nothing due once they fire (or are invalidated by a later transition).
func (f *Flooder) SetRegionFrozen(region matchgraph.RegionIdx) {
	r := f.Arena.Get(region)
	r.Radius = r.Radius.Freeze(f.Queue.CurrentTime())
}

// SetRegionShrinking transitions region to Shrinking as of the current
// time and schedules a look-at-shrinking-region check for when its radius
// is due to reach zero.
func (f *Flooder) SetRegionShrinking(region matchgraph.RegionIdx) {
	r := f.Arena.Get(region)
	now := f.Queue.CurrentTime()
	r.Radius = r.Radius.Shrink(now)
	f.scheduleLookAtShrinkingRegion(region, r.Radius.TimeWhenZero())
}

// radiusOrBoundaryZero returns the Varying a neighbor m presents to the
// collision-time formula: m's own local radius if it's a claimed,
// non-boundary node, or a Varying frozen at zero otherwise (the boundary,
// a boundary-equivalent node, and an unclaimed node all behave, from the
// scanning node's point of view, like a fixed point at distance zero that
// hasn't grown to meet it yet).
func (f *Flooder) radiusOrBoundaryZero(m matchgraph.NodeIdx) varying.Varying {
	if m == matchgraph.NoNode || f.Graph.IsBoundaryLike(m) {
		return varying.NewVarying(varying.Frozen, 0)
	}
	mn := f.Graph.Node(m)
	if mn.RegionArrived == matchgraph.NoRegion {
		return varying.NewVarying(varying.Frozen, 0)
	}

	return mn.LocalRadius(f.Arena)
}

// RunUntilNextMwpmNotification drains the flood-check queue, discarding
// stale events and reacting to live ones, until it finds an interaction
// that is already due. It returns that MatcherEvent and true, or a zero
// MatcherEvent and false once the queue runs dry with nothing left to
// report.
func (f *Flooder) RunUntilNextMwpmNotification() (MatcherEvent, bool) {
	for {
		raw, ok := f.Queue.Dequeue()
		if !ok {
			return MatcherEvent{}, false
		}
		e := raw.(FloodCheckEvent)

		var live bool
		switch e.Kind {
		case LookAtNode:
			live = f.Graph.Node(e.Node).Tracker.ValidateOnDequeue(e.Tag, e.At)
		case LookAtShrinkingRegion:
			live = f.Arena.Get(e.Region).ShrinkTracker.ValidateOnDequeue(e.Tag, e.At)
		}
		if !live {
			continue
		}

		switch e.Kind {
		case LookAtNode:
			if me, ok := f.handleLookAtNode(e.Node); ok {
				return me, true
			}
		case LookAtShrinkingRegion:
			if me, ok := f.handleLookAtShrinkingRegion(e.Region); ok {
				return me, true
			}
		}
	}
}

// handleLookAtNode rescans node's neighbors for the earliest interaction
// (boundary hit, claim of a virgin node, or collision with a different
// top region), ignoring neighbors already claimed by the same top region.
// If the earliest is still in the future, it reschedules node's
// look-at-node check for then. If it's already due, it resolves it: a
// virgin neighbor is claimed on the spot (wave arrival) and scanning
// continues from there; a boundary or foreign-region hit is surfaced as a
// MatcherEvent.
func (f *Flooder) handleLookAtNode(node matchgraph.NodeIdx) (MatcherEvent, bool) {
	n := f.Graph.Node(node)
	if n.RegionArrivedTop == matchgraph.NoRegion {
		return MatcherEvent{}, false
	}
	top := f.Arena.Get(n.RegionArrivedTop)
	if top.Radius.Slope != varying.Growing {
		return MatcherEvent{}, false
	}

	nLocal := n.LocalRadius(f.Arena)
	now := f.Queue.CurrentTime()

	bestTime := varying.Never
	bestPos := -1
	bestTerminal := false
	for i, m := range n.Neighbors {
		terminal := true
		if m != matchgraph.NoNode && !f.Graph.IsBoundaryLike(m) {
			mn := f.Graph.Node(m)
			if mn.RegionArrived != matchgraph.NoRegion && mn.RegionArrivedTop == n.RegionArrivedTop {
				continue
			}
			terminal = mn.RegionArrived != matchgraph.NoRegion
		}
		t := varying.CollisionTime(nLocal, f.radiusOrBoundaryZero(m), int64(n.Weights[i]))
		// On an exact tie, prefer resolving a match now (boundary hit or
		// collision with a foreign region) over extending the same region
		// into a virgin node: both are equally due, but only the terminal
		// one settles anything.
		if t < bestTime || (t == bestTime && terminal && !bestTerminal) {
			bestTime = t
			bestPos = i
			bestTerminal = terminal
		}
	}

	if bestPos < 0 || bestTime == varying.Never {
		return MatcherEvent{}, false
	}
	if bestTime > now {
		f.scheduleLookAtNode(node, bestTime)
		return MatcherEvent{}, false
	}

	m := n.Neighbors[bestPos]
	obs := n.Observables[bestPos]

	if m == matchgraph.NoNode || f.Graph.IsBoundaryLike(m) {
		edge := matchgraph.CompressedEdge{From: node, To: matchgraph.NoNode, Obs: n.ObsFromSource ^ obs}
		return MatcherEvent{Kind: RegionHitBoundary, Region1: n.RegionArrivedTop, Edge: edge}, true
	}

	mn := f.Graph.Node(m)
	if mn.RegionArrived == matchgraph.NoRegion {
		mn.RegionArrived = n.RegionArrived
		mn.RegionArrivedTop = n.RegionArrivedTop
		mn.Predecessor = node
		mn.ObsFromSource = n.ObsFromSource ^ obs
		mn.ArrivalTime = now
		mn.WrappedRadius = n.WrappedRadius

		owner := f.Arena.Get(n.RegionArrived)
		owner.ShellArea = append(owner.ShellArea, m)
		f.scheduleLookAtNode(m, now)

		return MatcherEvent{}, false
	}

	edge := matchgraph.CompressedEdge{From: node, To: m, Obs: n.ObsFromSource ^ mn.ObsFromSource ^ obs}

	return MatcherEvent{Kind: RegionHitRegion, Region1: n.RegionArrivedTop, Region2: mn.RegionArrivedTop, Edge: edge}, true
}

// handleLookAtShrinkingRegion checks whether region's radius has actually
// reached zero (it may have been reshaped since the event was scheduled)
// and, only for a blossom, surfaces a BlossomShatter MatcherEvent with its
// two tree anchors walked down to the level directly below region.
func (f *Flooder) handleLookAtShrinkingRegion(region matchgraph.RegionIdx) (MatcherEvent, bool) {
	r := f.Arena.Get(region)
	if r.Radius.ValueAt(f.Queue.CurrentTime()) != 0 {
		return MatcherEvent{}, false
	}
	if !r.IsBlossom() {
		return MatcherEvent{}, false
	}

	inParent := f.regionOneLevelBelow(r.AnchorInParent, region)
	inChild := f.regionOneLevelBelow(r.AnchorInChild, region)

	return MatcherEvent{Kind: BlossomShatter, Blossom: region, InParent: inParent, InChild: inChild}, true
}

// regionOneLevelBelow walks node's region_that_arrived chain up through
// BlossomParent pointers until it finds the region whose direct
// BlossomParent is blossom: the anchor one level below the shattering
// blossom, well-defined by the cyclic-children invariant.
func (f *Flooder) regionOneLevelBelow(node matchgraph.NodeIdx, blossom matchgraph.RegionIdx) matchgraph.RegionIdx {
	r := f.Graph.Node(node).RegionArrived
	for {
		region := f.Arena.Get(r)
		if region.BlossomParent == blossom {
			return r
		}
		r = region.BlossomParent
	}
}

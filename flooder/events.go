package flooder

import (
	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/varying"
)

// FloodCheckKind distinguishes the two reasons a node or region can be
// scheduled for re-inspection.
type FloodCheckKind int

const (
	// LookAtNode means: recompute this node's earliest future interaction
	// with its neighbors, since last computed.
	LookAtNode FloodCheckKind = iota
	// LookAtShrinkingRegion means: check whether this region's radius has
	// reached zero and, if it's a blossom, must shatter.
	LookAtShrinkingRegion
)

// FloodCheckEvent is the Event type enqueued on the Flooder's RadixQueue.
// Only one of Node/Region is meaningful, depending on Kind.
type FloodCheckEvent struct {
	Kind   FloodCheckKind
	Node   matchgraph.NodeIdx
	Region matchgraph.RegionIdx
	At     int64
	Tag    varying.CyclicTime
}

// Time implements varying.Event.
func (e FloodCheckEvent) Time() int64 { return e.At }

// MatcherEventKind distinguishes the three notifications the flooder can
// surface to the matcher.
type MatcherEventKind int

const (
	// NoMatcherEvent is the zero value: RunUntilNextMwpmNotification's
	// second return value is false whenever it's returned.
	NoMatcherEvent MatcherEventKind = iota
	// RegionHitRegion: two distinct top-level regions' wavefronts touched
	// along Edge.
	RegionHitRegion
	// RegionHitBoundary: a region's wavefront reached the boundary (or a
	// boundary-equivalent node) along Edge.
	RegionHitBoundary
	// BlossomShatter: a shrinking blossom region's radius reached zero and
	// must be dissolved back into its cyclic children.
	BlossomShatter
)

// MatcherEvent is what RunUntilNextMwpmNotification returns when it finds
// an already-due interaction. Field meaning depends on Kind:
//
//   - RegionHitRegion: Region1 and Region2 are the two top regions that
//     collided; Edge connects the two claiming nodes (From in Region1's
//     territory, To in Region2's).
//   - RegionHitBoundary: Region1 is the region that hit the boundary; Edge
//     connects the claiming node (From) to the boundary (To == NoNode).
//   - BlossomShatter: Blossom is the region shattering; InParent and
//     InChild are the two direct children (one level below Blossom) that
//     anchor the tree edges into and out of the blossom.
type MatcherEvent struct {
	Kind     MatcherEventKind
	Region1  matchgraph.RegionIdx
	Region2  matchgraph.RegionIdx
	Edge     matchgraph.CompressedEdge
	Blossom  matchgraph.RegionIdx
	InParent matchgraph.RegionIdx
	InChild  matchgraph.RegionIdx
}

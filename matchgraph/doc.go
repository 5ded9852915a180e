// Package matchgraph defines the detector-node matching graph and the fill
// regions that grow over it during a decode.
//
// The matching graph is index-array based rather than map-based: detector
// nodes are identified by a dense NodeIdx in [0, numDetectors), and each
// node carries parallel neighbor/weight/observable-mask slices. This is
// deliberate — the flooder's hot loop (look-at-node, O(1) neighbor scans
// per event) needs array indexing, not map lookups, to meet the
// near-linear-time behavior Sparse Blossom is built for.
//
// Fill regions live in a RegionArena, a free-list arena of RegionIdx handles
// over a single backing slice: pointer graphs become arenas plus indices,
// so nested blossom trees and match back-references are RegionIdx/NodeIdx/
// AltTreeIdx values rather than pointers, with NoRegion/NoNode/NoAltTreeNode
// standing in for Option<Idx>.
package matchgraph

// Package matcher implements the Mwpm alternating-tree driver: it consumes
// MatcherEvents surfaced by the flooder and grows, contracts and collapses
// alternating trees of fill regions until every detection event has been
// matched (spec 4.5).
//
// Mwpm owns a Flooder and an AltTreeArena. Each alternating-tree node pairs
// an inner region with an outer region (the tree's root node is a bare
// outer region, with no inner companion) connected by an inner-to-outer
// edge, and attaches to its tree parent via a parent edge landing on its
// inner region. RegionHitRegion either contracts an odd cycle into a new
// blossom (same tree: found via a mark-and-sweep lowest-common-ancestor
// walk) or rotates and collapses two whole trees into matched pairs
// (different trees). RegionHitBoundary matches a tree's region to the
// boundary and collapses the rest of its tree the same way.
// BlossomShatter dissolves a blossom back into its cyclic children,
// reinserting the alternating-tree path between its two recorded anchors
// and pairing off the remaining children directly.
//
// Concurrency: a Mwpm is reused across decodes (Reset clears its
// per-decode state) and is not safe for concurrent use.
package matcher

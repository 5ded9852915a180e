// Package sparseblossom is a decoder for quantum error correction: given a
// detector error model and a fired-detector syndrome, it computes a
// minimum-weight perfect matching over the model's fault-mechanism graph
// and returns the XOR of the logical observables the matching crosses.
//
// What is sparseblossom?
//
//	Sparse Blossom: an event-driven variant of Edmonds' blossom algorithm
//	that grows dual regions outward from detection events on a sparse
//	graph until they collide, maintaining alternating trees and
//	contracting odd cycles into nested blossoms.
//
//	  • Region growth: a monotonic radix queue drives collision detection
//	  • Alternating trees: blossom formation and shatter, heir-anchored
//	  • Path reconstruction: bidirectional Dijkstra over a search graph
//
// Why this shape?
//
//   - Single-threaded   — no locks on the hot path, one decode at a time per Matching
//   - Arena-of-indices  — regions/nodes/tree-nodes are int32 indices, not pointers
//   - Sparse            — memory is O(nodes + edges + live events)
//
// Under the hood, everything is organized into single-concern packages:
//
//	varying/    — time-varying linear values + the monotonic radix queue
//	matchgraph/ — the detector-node graph, fill regions, compressed edges
//	flooder/    — event-driven region growth over the matching graph
//	matcher/    — alternating trees, blossom formation/shatter, Mwpm
//	search/     — bidirectional Dijkstra path reconstruction
//	decoder/    — the solve loop: syndrome in, observable prediction out
//	dem/        — the detector error model text parser
//	cmd/blossomdecode/ — a batch-decode CLI over a DEM file and syndromes
//
// Quick example: a two-node graph with a single fault mechanism between
// two detectors, each also wired to the boundary.
//
//	m, _ := decoder.NewMatching(2, 1)
//	_ = m.AddEdge(0, 1, 2.2, []int{0}, 0.1)
//	_ = m.AddBoundaryEdge(0, 2.2, []int{0}, 0.1)
//	_ = m.AddBoundaryEdge(1, 2.2, nil, 0.1)
//	prediction, _ := m.Decode([]byte{1, 0})
//
// See DESIGN.md for how each package grounds its algorithm and dependency
// choices in the wider decoder ecosystem.
package sparseblossom

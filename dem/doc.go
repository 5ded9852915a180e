// Package dem parses the detector error model text format into calls
// against a decoder.Matching (spec 6: "a straightforward lexical
// translator into graph-builder calls").
//
// The format is line-oriented: blank lines and lines starting with '#' are
// ignored, a `detector D<i>` line documents a detector index without
// affecting the graph, `error(p) D<i>[ D<j>][ L<k>]*` lines add a fault
// mechanism (an edge if two detector indices are present, a boundary edge
// if one), and `repeat N { ... }` blocks replay their body N times with
// detector indices shifted by a configurable per-iteration offset. The `^`
// correlated-matching separator is accepted and ignored, matching the
// core's dropped support for multi-arity hyperedges (spec 9).
package dem

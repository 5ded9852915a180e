// Package search reconstructs shortest paths between matched detector
// nodes to compute the final observable XOR for a decode (spec 4.6).
//
// The matcher's ExtractMatches only needs to get the PAIRING right; it
// does not need to carry a correct observable mask through every blossom
// formation and shatter. Once the pairing is known, a Flooder here runs a
// simultaneous bidirectional wave from the two matched nodes (or from one
// node toward the boundary) over the same matching-graph topology, using
// its own monotonic RadixQueue exactly as the decode-time flooder does,
// and walks the resulting predecessor chains back to the meeting point,
// XOR-accumulating observable masks edge by edge.
//
// Concurrency: a Flooder is built fresh per decode (or Reset between
// decodes) and is not safe for concurrent use.
package search

// Package decoder glues the matching graph, flooder, matcher and search
// components into one decode: syndrome in, predicted observables out
// (spec 4 driver, spec 6 external interfaces).
//
// Matching owns a matchgraph.Graph (permanent topology), an Mwpm (the
// per-decode alternating-tree driver) and a search.Flooder (path
// reconstruction), plus the negative-weight bookkeeping the graph already
// tracks. Decode turns a syndrome into detection events, runs the Mwpm to
// completion, extracts the matched pairs, reconstructs each pair's shortest
// path via search, and XORs the resulting observable masks together —
// applying negative-weight normalization on the way in and out.
//
// Concurrency: graph construction (AddEdge/AddBoundaryEdge/SetBoundary,
// and the read-only NumDetectors/NumObservables) is guarded by matchgraph.Graph's own
// sync.RWMutex and is safe to call concurrently with introspection from
// another goroutine. Decode and DecodeBatch are NOT safe for concurrent
// use on the same Matching (spec 5: single-threaded, one decode at a
// time); the Mwpm and search.Flooder buffers are owned exclusively by one
// Matching and are not shareable across goroutines.
package decoder

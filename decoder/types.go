package decoder

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced synchronously by the decode surface (spec 7:
// "Malformed input" / "Syndrome length mismatch"). Graph-builder errors
// (node/observable index range, NaN weight) are matchgraph's own
// sentinels and propagate unwrapped through Matching's builder methods.
var (
	// ErrSyndromeLengthMismatch indicates a syndrome byte slice whose
	// length does not equal the graph's detector count.
	ErrSyndromeLengthMismatch = errors.New("decoder: syndrome length does not match detector count")

	// ErrObservableBufferLengthMismatch indicates a prediction buffer whose
	// length does not equal the graph's observable count. No function in
	// this package returns it.
	ErrObservableBufferLengthMismatch = errors.New("decoder: prediction buffer length does not match observable count")
)

// InvariantError reports a structurally impossible state encountered
// while matching or extracting (spec 7: "Logic-invariant violation"). It
// indicates a correctness bug in the solver, not an expected runtime
// condition; callers should treat it as fatal to the current decode.
//
// Mirrors flow.EdgeError's pattern of a typed error carrying the
// diagnostic fields a maintainer needs rather than a bare string.
type InvariantError struct {
	// Event names the stage during which the violation was detected; the
	// decoder's panic recovery sets it to "decode".
	Event string
	// Detail describes which invariant failed; when built from a recovered
	// panic it holds the panic value's text.
	Detail string
	// RegionOrNode identifies the offending region or node index, when
	// known; the decoder's panic recovery leaves it 0.
	RegionOrNode int
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("decoder: invariant violation during %s: %s (region/node %d)", e.Event, e.Detail, e.RegionOrNode)
}

package search

import "errors"

// ErrNoPath indicates the search wave exhausted its queue without the two
// sides meeting (or, for a boundary search, without reaching any
// boundary-like node). This signals a malformed matching graph (a
// matched pair with no connecting path) rather than an ordinary decode
// outcome; spec 7 classifies it with the "logic-invariant violation"
// class of error.
var ErrNoPath = errors.New("search: no path found between matched nodes")

// side identifies which of the two simultaneous waves reached a node.
type side int8

const (
	unreached side = -1
	sourceA   side = 0
	sourceB   side = 1
)

package decoder_test

import (
	"math"

	"github.com/katalvlaran/sparseblossom/matchgraph"
)

func int32Idx(i int) matchgraph.NodeIdx { return matchgraph.NodeIdx(i) }

// weightFromProbability mirrors the DEM format's weight derivation (spec
// 6): w = ln((1-p)/p).
func weightFromProbability(p float64) float64 {
	return math.Log((1 - p) / p)
}

package decoder

import (
	"fmt"

	"github.com/katalvlaran/sparseblossom/matchgraph"
)

// MatchedEdge is one resolved pair in a decode's perfect matching:
// NodeB == -1 denotes a boundary match (spec 6: decode_to_edges).
type MatchedEdge struct {
	NodeA int
	NodeB int
}

// Decode runs one full decode: syndrome in, predicted observable bits out
// (spec 4 driver, spec 6 decode surface). syndrome must have length
// NumDetectors(); the returned slice has length NumObservables().
//
// Concurrency: not safe to call concurrently with another Decode/
// DecodeBatch call on the same Matching, nor with AddEdge/AddBoundaryEdge/
// SetBoundary (spec 5).
func (m *Matching) Decode(syndrome []byte) ([]byte, error) {
	edges, weight, err := m.decodeToCompressedEdges(syndrome)
	if err != nil {
		return nil, err
	}

	prediction := make([]byte, m.graph.NumObservables())
	var predMask uint64
	for _, e := range edges {
		predMask ^= e.Obs
	}
	predMask ^= m.graph.NegativeWeightObservableMask()
	for i := range prediction {
		if predMask&(uint64(1)<<uint(i)) != 0 {
			prediction[i] = 1
		}
	}

	m.logger.Debug().
		Int("detectors_fired", countFired(syndrome)).
		Int("matches", len(edges)).
		Int64("weight", weight).
		Msg("decode complete")

	m.reporter.ReportDecode(len(syndrome), weight, prediction)

	return prediction, nil
}

// DecodeBatch decodes every syndrome in syndromes in turn, resetting
// ephemeral per-decode state between calls (spec 5, spec 6.4). Equivalent
// to calling Decode once per syndrome on a freshly reset Matching.
func (m *Matching) DecodeBatch(syndromes [][]byte) ([][]byte, error) {
	predictions := make([][]byte, len(syndromes))
	for i, s := range syndromes {
		p, err := m.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("decoder: batch entry %d: %w", i, err)
		}
		predictions[i] = p
	}

	return predictions, nil
}

// DecodeToEdges runs one decode and returns the raw matched detector-node
// pairs (NodeB == -1 for a boundary match) instead of the XORed
// observable prediction (spec 6). XOR-ing the shortest-path observables
// of the returned edges reproduces the same bits Decode would return
// (spec 8 scenario 6) when the graph has no negative-weight edges; Decode
// additionally XORs in the observables of those edges.
func (m *Matching) DecodeToEdges(syndrome []byte) ([]MatchedEdge, error) {
	edges, _, err := m.decodeToCompressedEdges(syndrome)
	if err != nil {
		return nil, err
	}

	out := make([]MatchedEdge, len(edges))
	for i, e := range edges {
		out[i] = MatchedEdge{NodeA: int(e.From), NodeB: nodeOrBoundary(e.To)}
	}

	return out, nil
}

func nodeOrBoundary(n matchgraph.NodeIdx) int {
	if n == matchgraph.NoNode {
		return -1
	}

	return int(n)
}

func countFired(syndrome []byte) int {
	n := 0
	for _, b := range syndrome {
		if b != 0 {
			n++
		}
	}

	return n
}

// decodeToCompressedEdges runs the shared solve loop: validate the
// syndrome, normalize it for negative weights, seed detection events, run
// the Mwpm to completion, extract matched pairs, then reconstruct each
// pair's true shortest path via search so the returned edges carry correct
// observable masks (spec 4.6, the search component's whole reason to
// exist: the matcher only needs to get the pairing right).
func (m *Matching) decodeToCompressedEdges(syndrome []byte) (edges []matchgraph.CompressedEdge, weight int64, err error) {
	m.ensureReady()

	if len(syndrome) != m.graph.NumDetectors() {
		return nil, 0, ErrSyndromeLengthMismatch
	}

	defer func() {
		if r := recover(); r != nil {
			err = InvariantError{Event: "decode", Detail: fmt.Sprint(r)}
		}
	}()

	m.mwpm.Reset()

	normalized := make([]bool, len(syndrome))
	for i, b := range syndrome {
		normalized[i] = b != 0
	}
	m.graph.NegativeWeightDetectionEvents(normalized)

	negExercised := false
	for i, fired := range normalized {
		if fired {
			m.mwpm.AddDetectionEvent(matchgraph.NodeIdx(i))
		}
		if normalized[i] != (syndrome[i] != 0) {
			negExercised = true
		}
	}
	if negExercised {
		m.logger.Warn().Msg("negative-weight normalization flipped the syndrome before matching")
	}

	m.mwpm.RunToCompletion()

	matched, matchWeight := m.mwpm.ExtractMatches()

	resolved := make([]matchgraph.CompressedEdge, len(matched))
	for i, pair := range matched {
		resolved[i], err = m.srch.FindPath(pair.From, pair.To)
		if err != nil {
			return nil, 0, err
		}
	}

	return resolved, matchWeight, nil
}

package decoder

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/matcher"
	"github.com/katalvlaran/sparseblossom/search"
)

// Matching is the decode surface's top-level handle: a built matching
// graph plus the reusable per-decode machinery (Mwpm, search Flooder) that
// every Decode call drives to completion and then resets (spec 4 driver,
// spec 5 concurrency model).
type Matching struct {
	graph *matchgraph.Graph
	mwpm  *matcher.Mwpm
	srch  *search.Flooder

	logger   zerolog.Logger
	reporter Reporter
}

// NewMatching constructs an empty Matching over numDetectors detector
// nodes and numObservables logical observables (<= 64). Edges are added
// afterward via AddEdge/AddBoundaryEdge/SetBoundary; Decode finalizes the
// graph automatically on first use.
func NewMatching(numDetectors, numObservables int, opts ...Option) (*Matching, error) {
	g, err := matchgraph.NewGraph(numDetectors, numObservables)
	if err != nil {
		return nil, err
	}

	m := &Matching{
		graph:    g,
		logger:   zerolog.Nop(),
		reporter: noopReporter{},
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// NumDetectors returns the number of detector nodes.
func (m *Matching) NumDetectors() int { return m.graph.NumDetectors() }

// NumObservables returns the number of logical observables.
func (m *Matching) NumObservables() int { return m.graph.NumObservables() }

// AddEdge adds a fault mechanism between detector nodes u and v with the
// given (possibly negative) weight, crossing the observables named by
// obsIndices, with the given error probability (spec 6.1). Safe to call
// concurrently with NumDetectors/NumObservables; not safe to call while a
// Decode is in flight.
func (m *Matching) AddEdge(u, v matchgraph.NodeIdx, weight float64, obsIndices []int, errorProbability float64) error {
	return m.graph.AddEdge(u, v, weight, obsIndices, errorProbability)
}

// AddBoundaryEdge adds a fault mechanism between detector node u and the
// boundary. See AddEdge.
func (m *Matching) AddBoundaryEdge(u matchgraph.NodeIdx, weight float64, obsIndices []int, errorProbability float64) error {
	return m.graph.AddBoundaryEdge(u, weight, obsIndices, errorProbability)
}

// SetBoundary marks the given detector nodes as boundary-equivalent.
func (m *Matching) SetBoundary(nodeIndices []matchgraph.NodeIdx) error {
	return m.graph.SetBoundary(nodeIndices)
}

// ensureReady finalizes the graph and lazily constructs the Mwpm/search
// machinery sized to it, the first time a decode is requested after
// construction or after new edges were added.
func (m *Matching) ensureReady() {
	m.graph.Finalize()
	if m.mwpm == nil {
		m.mwpm = matcher.NewMwpm(m.graph)
	}
	if m.srch == nil {
		m.srch = search.NewFlooder(m.graph)
	}
}

package matchgraph

import (
	"math"
	"sync"
)

// DefaultNumDistinctWeights is the discretization resolution used when the
// caller doesn't override it via WithNumDistinctWeights. Matches the order
// of magnitude a typical DEM's error-probability range needs to separate
// distinct weights after quantization to int32.
const DefaultNumDistinctWeights = 1000

// GraphOption configures a Graph at construction time, using the usual
// WithX functional-option convention.
type GraphOption func(*Graph)

// WithNumDistinctWeights overrides the discretization resolution used by
// Finalize when converting floating-point edge weights to the integer
// weights the flooder operates on.
func WithNumDistinctWeights(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.numDistinctWeights = n
		}
	}
}

type pendingEdge struct {
	u, v             NodeIdx // v == NoNode for a boundary edge
	absWeight        float64
	obsMask          uint64
	errorProbability float64
}

// Graph is the permanent matching-graph topology: detector nodes plus their
// neighbor/weight/observable-mask lists, and the bookkeeping needed for
// negative-weight normalization (spec 4.2). It is built once via
// AddEdge/AddBoundaryEdge/SetBoundary and then reused, unchanged, across
// many decodes; only the ephemeral Node fields are reset per decode.
//
// Concurrency: mu guards the pending-edge list and finalized topology, so
// construction calls are safe to interleave with read-only introspection
// (NumDetectors, NumObservables) from another goroutine, mirroring
// core.Graph's muVert/muEdgeAdj split. Decode-time traversal (owned
// exclusively by a flooder/Mwpm for the duration of one decode) takes no
// lock; callers must not mutate the graph while a decode is in flight.
type Graph struct {
	mu sync.RWMutex

	numDetectors       int
	numObservables     int
	numDistinctWeights int

	nodes     []Node
	pending   []pendingEdge
	finalized bool

	boundary map[NodeIdx]bool

	negWeightObsMask   uint64
	negWeightSum       float64
	negWeightDetEvents []bool
}

// NewGraph constructs an empty matching graph over numDetectors detector
// nodes and numObservables logical observables (<= 64).
func NewGraph(numDetectors, numObservables int, opts ...GraphOption) (*Graph, error) {
	if numDetectors < 0 || numObservables < 0 {
		return nil, ErrNegativeDimension
	}
	if numObservables > 64 {
		return nil, ErrTooManyObservables
	}

	g := &Graph{
		numDetectors:       numDetectors,
		numObservables:     numObservables,
		numDistinctWeights: DefaultNumDistinctWeights,
		nodes:              make([]Node, numDetectors),
		boundary:           make(map[NodeIdx]bool),
		negWeightDetEvents: make([]bool, numDetectors),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// NumDetectors returns the number of detector nodes.
func (g *Graph) NumDetectors() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.numDetectors
}

// NumObservables returns the number of logical observables.
func (g *Graph) NumObservables() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.numObservables
}

func (g *Graph) validNode(n NodeIdx) bool {
	return n >= 0 && int(n) < g.numDetectors
}

func obsMaskOf(obsIndices []int, numObservables int) (uint64, error) {
	var mask uint64
	for _, idx := range obsIndices {
		if idx < 0 || idx >= 64 || idx >= numObservables {
			return 0, ErrObservableIndexOutOfRange
		}
		mask |= uint64(1) << uint(idx)
	}

	return mask, nil
}

// AddEdge adds a fault mechanism between detector nodes u and v with the
// given (possibly negative) weight, crossing the observables named by
// obsIndices. errorProbability is retained for diagnostics/DEM round-trips
// but does not otherwise affect the matching graph. Negative weights are
// normalized per spec 4.2 at the time the edge is added; the integer
// weight used by the flooder is computed lazily by Finalize.
func (g *Graph) AddEdge(u, v NodeIdx, weightF float64, obsIndices []int, errorProbability float64) error {
	return g.addEdge(u, v, weightF, obsIndices, errorProbability)
}

// AddBoundaryEdge adds a fault mechanism between detector node u and the
// boundary. See AddEdge.
func (g *Graph) AddBoundaryEdge(u NodeIdx, weightF float64, obsIndices []int, errorProbability float64) error {
	return g.addEdge(u, NoNode, weightF, obsIndices, errorProbability)
}

func (g *Graph) addEdge(u, v NodeIdx, weightF float64, obsIndices []int, errorProbability float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validNode(u) {
		return ErrNodeIndexOutOfRange
	}
	if v != NoNode {
		if !g.validNode(v) {
			return ErrNodeIndexOutOfRange
		}
		if u == v {
			return ErrSelfLoop
		}
	}
	if math.IsNaN(weightF) {
		return ErrWeightNaN
	}

	mask, err := obsMaskOf(obsIndices, g.numObservables)
	if err != nil {
		return err
	}

	absWeight := weightF
	if weightF < 0 {
		absWeight = -weightF
		g.negWeightObsMask ^= mask
		g.negWeightSum += weightF
		g.negWeightDetEvents[u] = !g.negWeightDetEvents[u]
		if v != NoNode {
			g.negWeightDetEvents[v] = !g.negWeightDetEvents[v]
		}
	}

	g.pending = append(g.pending, pendingEdge{
		u: u, v: v, absWeight: absWeight, obsMask: mask, errorProbability: errorProbability,
	})
	g.finalized = false

	return nil
}

// SetBoundary marks the given detector nodes as boundary-equivalent: edges
// incident to them are treated as boundary edges for flooder purposes even
// though the node itself still participates as an ordinary detector.
func (g *Graph) SetBoundary(nodeIndices []NodeIdx) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, n := range nodeIndices {
		if !g.validNode(n) {
			return ErrNodeIndexOutOfRange
		}
	}
	for _, n := range nodeIndices {
		g.boundary[n] = true
	}

	return nil
}

// IsBoundaryLike reports whether n is NoNode (the true boundary sentinel)
// or was marked boundary-equivalent via SetBoundary.
func (g *Graph) IsBoundaryLike(n NodeIdx) bool {
	return n == NoNode || g.boundary[n]
}

// discretize applies the spec 6 quantization formula:
//
//	round(|weight_f| / normalisingConstant * (numDistinctWeights * 2))
//
// where normalisingConstant = maxAbsWeight / numDistinctWeights.
func discretize(absWeight, maxAbsWeight float64, numDistinctWeights int) int32 {
	if maxAbsWeight == 0 {
		return 0
	}
	normalisingConstant := maxAbsWeight / float64(numDistinctWeights)
	scaled := absWeight / normalisingConstant * float64(numDistinctWeights*2)

	return int32(math.Round(scaled))
}

// Finalize converts all pending floating-point edges into the integer
// neighbor/weight/observable arrays the flooder reads. It is idempotent
// and safe to call multiple times (e.g. once per decode, or once before a
// batch of decodes); subsequent AddEdge calls mark the graph unfinalized
// again and a later Finalize rebuilds from scratch.
func (g *Graph) Finalize() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finalized {
		return
	}

	for i := range g.nodes {
		g.nodes[i].Neighbors = g.nodes[i].Neighbors[:0]
		g.nodes[i].Weights = g.nodes[i].Weights[:0]
		g.nodes[i].Observables = g.nodes[i].Observables[:0]
	}

	var maxAbsWeight float64
	for _, e := range g.pending {
		if e.absWeight > maxAbsWeight {
			maxAbsWeight = e.absWeight
		}
	}

	for _, e := range g.pending {
		w := discretize(e.absWeight, maxAbsWeight, g.numDistinctWeights)
		g.nodes[e.u].Neighbors = append(g.nodes[e.u].Neighbors, e.v)
		g.nodes[e.u].Weights = append(g.nodes[e.u].Weights, w)
		g.nodes[e.u].Observables = append(g.nodes[e.u].Observables, e.obsMask)

		if e.v != NoNode {
			g.nodes[e.v].Neighbors = append(g.nodes[e.v].Neighbors, e.u)
			g.nodes[e.v].Weights = append(g.nodes[e.v].Weights, w)
			g.nodes[e.v].Observables = append(g.nodes[e.v].Observables, e.obsMask)
		}
	}

	g.finalized = true
}

// Node returns a pointer to the finalized node at idx. Callers must call
// Finalize first; decode entry points do so automatically.
func (g *Graph) Node(idx NodeIdx) *Node {
	return &g.nodes[idx]
}

// ResetEphemeral clears every node's per-decode state, readying the graph
// for another Decode call (spec 5: "between decodes, all ephemeral...
// state is reset; the permanent graph structure is retained").
func (g *Graph) ResetEphemeral() {
	for i := range g.nodes {
		g.nodes[i].resetEphemeral()
	}
}

// NegativeWeightObservableMask returns the XOR of observable masks of
// every negative-weight edge added so far.
func (g *Graph) NegativeWeightObservableMask() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.negWeightObsMask
}

// NegativeWeightSum returns the accumulated sum of original (negative)
// edge weights, informational only: it is not required to reproduce any
// of the spec's testable properties, which are scoped to non-negative
// weight graphs.
func (g *Graph) NegativeWeightSum() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.negWeightSum
}

// NegativeWeightDetectionEvents XORs into syndrome (len == NumDetectors())
// the membership vector accumulated from negative-weight edges. Per spec
// 4.2, the caller's syndrome must be adjusted this way before detection
// events are created.
func (g *Graph) NegativeWeightDetectionEvents(syndrome []bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i, flip := range g.negWeightDetEvents {
		if flip {
			syndrome[i] = !syndrome[i]
		}
	}
}

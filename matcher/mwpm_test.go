package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/matcher"
)

// newUniformGraph builds a graph where every edge discretizes to weight 2
// (matchgraph.WithNumDistinctWeights(1) makes every edge's discretized
// weight equal 2*numDistinctWeights regardless of its float value, as long
// as all edges share the same magnitude), which keeps the arithmetic in
// these tests exact and easy to check against mass conservation.
func newUniformGraph(t *testing.T, numDetectors, numObservables int) *matchgraph.Graph {
	t.Helper()
	g, err := matchgraph.NewGraph(numDetectors, numObservables, matchgraph.WithNumDistinctWeights(1))
	require.NoError(t, err)

	return g
}

func TestMwpm_DirectMatch(t *testing.T) {
	g := newUniformGraph(t, 2, 1)
	require.NoError(t, g.AddEdge(0, 1, 2.0, []int{0}, 0.1))
	g.Finalize()

	m := matcher.NewMwpm(g)
	m.AddDetectionEvent(0)
	m.AddDetectionEvent(1)
	m.RunToCompletion()

	edges, weight := m.ExtractMatches()
	require.Len(t, edges, 1)
	require.Equal(t, int64(2), weight)
	require.ElementsMatch(t, []matchgraph.NodeIdx{0, 1}, []matchgraph.NodeIdx{edges[0].From, edges[0].To})
}

func TestMwpm_BoundaryMatch(t *testing.T) {
	g := newUniformGraph(t, 1, 0)
	require.NoError(t, g.AddBoundaryEdge(0, 2.0, nil, 0.1))
	g.Finalize()

	m := matcher.NewMwpm(g)
	m.AddDetectionEvent(0)
	m.RunToCompletion()

	edges, weight := m.ExtractMatches()
	require.Len(t, edges, 1)
	require.Equal(t, int64(2), weight)
	require.Equal(t, matchgraph.NodeIdx(0), edges[0].From)
	require.Equal(t, matchgraph.NoNode, edges[0].To)
}

// Three detection events on a triangle force an odd cycle: the matcher
// must contract a blossom, then shatter it again once the boundary match
// resolves the tree. Mass conservation must hold regardless of which two
// nodes end up directly matched and which one reaches the boundary.
func TestMwpm_TriangleBlossomMassConservation(t *testing.T) {
	g := newUniformGraph(t, 3, 1)
	require.NoError(t, g.AddEdge(0, 1, 2.0, []int{0}, 0.1))
	require.NoError(t, g.AddEdge(1, 2, 2.0, nil, 0.1))
	require.NoError(t, g.AddEdge(0, 2, 2.0, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(0, 2.0, []int{0}, 0.1))
	require.NoError(t, g.AddBoundaryEdge(1, 2.0, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(2, 2.0, nil, 0.1))
	g.Finalize()

	m := matcher.NewMwpm(g)
	m.AddDetectionEvent(0)
	m.AddDetectionEvent(1)
	m.AddDetectionEvent(2)
	m.RunToCompletion()

	edges, weight := m.ExtractMatches()
	require.Len(t, edges, 2) // one direct match, one boundary match
	require.Equal(t, int64(4), weight)

	seen := map[matchgraph.NodeIdx]bool{}
	for _, e := range edges {
		seen[e.From] = true
		if e.To != matchgraph.NoNode {
			seen[e.To] = true
		}
	}
	require.Len(t, seen, 3)
}

// Mwpm.Reset must discard every scrap of per-decode state so the same
// instance can drive a second, independent decode.
func TestMwpm_ResetAllowsReuse(t *testing.T) {
	g := newUniformGraph(t, 2, 0)
	require.NoError(t, g.AddEdge(0, 1, 2.0, nil, 0.1))
	g.Finalize()

	m := matcher.NewMwpm(g)
	m.AddDetectionEvent(0)
	m.AddDetectionEvent(1)
	m.RunToCompletion()
	firstEdges, firstWeight := m.ExtractMatches()
	require.Len(t, firstEdges, 1)

	m.Reset()
	m.AddDetectionEvent(0)
	m.AddDetectionEvent(1)
	m.RunToCompletion()
	secondEdges, secondWeight := m.ExtractMatches()

	require.Equal(t, firstWeight, secondWeight)
	require.Equal(t, len(firstEdges), len(secondEdges))
}

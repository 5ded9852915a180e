package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/matchgraph"
)

func buildLine(t *testing.T, n int) *matchgraph.Graph {
	t.Helper()
	g, err := matchgraph.NewGraph(n, 1)
	require.NoError(t, err)
	for i := 0; i < n-1; i++ {
		require.NoError(t, g.AddEdge(matchgraph.NodeIdx(i), matchgraph.NodeIdx(i+1), 1, []int{0}, 0.1))
	}
	g.Finalize()

	return g
}

func TestFindPath_DirectEdge(t *testing.T) {
	g := buildLine(t, 2)
	f := NewFlooder(g)

	edge, err := f.FindPath(0, 1)
	require.NoError(t, err)
	require.Equal(t, matchgraph.NodeIdx(0), edge.From)
	require.Equal(t, matchgraph.NodeIdx(1), edge.To)
	require.Equal(t, uint64(1), edge.Obs)
}

func TestFindPath_XorsObservablesAlongChain(t *testing.T) {
	// Each edge crosses L0, so an even number of hops cancels the mask
	// back to zero: four edges (0-1,1-2,2-3,3-4) XOR to 0, not 1.
	g := buildLine(t, 5)
	f := NewFlooder(g)

	edge, err := f.FindPath(0, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(0), edge.Obs)
}

func TestFindPath_ReversedIsInvolution(t *testing.T) {
	g := buildLine(t, 3)
	f := NewFlooder(g)

	edge, err := f.FindPath(0, 2)
	require.NoError(t, err)
	require.Equal(t, edge, edge.Reversed().Reversed())
}

func TestFindPath_ToBoundary(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1, []int{0}, 0.1))
	require.NoError(t, g.AddBoundaryEdge(1, 1, nil, 0.1))
	g.Finalize()

	f := NewFlooder(g)
	edge, err := f.FindPath(0, matchgraph.NoNode)
	require.NoError(t, err)
	require.Equal(t, matchgraph.NodeIdx(0), edge.From)
	require.Equal(t, matchgraph.NoNode, edge.To)
	require.Equal(t, uint64(1), edge.Obs)
}

func TestFindPath_PicksShortestOfTwoRoutes(t *testing.T) {
	g, err := matchgraph.NewGraph(4, 1)
	require.NoError(t, err)
	// Direct edge 0-1 is cheap; the 0-2-3-1 detour is expensive and must
	// not be chosen.
	require.NoError(t, g.AddEdge(0, 1, 1, []int{0}, 0.4))
	require.NoError(t, g.AddEdge(0, 2, 1, nil, 0.4))
	require.NoError(t, g.AddEdge(2, 3, 1, nil, 0.4))
	require.NoError(t, g.AddEdge(3, 1, 1, nil, 0.4))
	g.Finalize()

	f := NewFlooder(g)
	edge, err := f.FindPath(0, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), edge.Obs, "shortest path is the direct edge, which crosses L0")
}

func TestFindPath_NoPathIsError(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 0)
	require.NoError(t, err)
	g.Finalize()

	f := NewFlooder(g)
	_, err = f.FindPath(0, 1)
	require.ErrorIs(t, err, ErrNoPath)
}

// A node's own direct boundary edge must win over a longer path to the
// boundary through a neighbor, even when that neighbor is finalized first.
func TestFindPath_ToBoundary_PrefersCheaperRouteFinalizedLater(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1, []int{0}, 0.1))
	require.NoError(t, g.AddBoundaryEdge(0, 1, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(1, 1, nil, 0.1))
	g.Finalize()

	f := NewFlooder(g)
	edge, err := f.FindPath(0, matchgraph.NoNode)
	require.NoError(t, err)
	require.Equal(t, matchgraph.NodeIdx(0), edge.From)
	require.Equal(t, matchgraph.NoNode, edge.To)
	require.Equal(t, uint64(0), edge.Obs, "must reach the boundary via node 0's own edge, not via node 1")
}

func TestFlooder_ReusableAcrossCalls(t *testing.T) {
	g := buildLine(t, 3)
	f := NewFlooder(g)

	_, err := f.FindPath(0, 1)
	require.NoError(t, err)

	edge, err := f.FindPath(1, 2)
	require.NoError(t, err)
	require.Equal(t, matchgraph.NodeIdx(1), edge.From)
	require.Equal(t, matchgraph.NodeIdx(2), edge.To)
}

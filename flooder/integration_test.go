package flooder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/flooder"
	"github.com/katalvlaran/sparseblossom/matchgraph"
)

func TestRunUntilNextMwpmNotification_TwoRegionsCollide(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 0)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 2.0, nil, 0.1))
	g.Finalize() // single edge: discretized weight is always 2*numDistinctWeights^2 (2,000,000 by default)

	arena := matchgraph.NewRegionArena()
	f := flooder.NewFlooder(g, arena)
	regionA := f.CreateDetectionEvent(0)
	regionB := f.CreateDetectionEvent(1)

	ev, ok := f.RunUntilNextMwpmNotification()
	require.True(t, ok)
	require.Equal(t, flooder.RegionHitRegion, ev.Kind)
	require.ElementsMatch(t, []matchgraph.RegionIdx{regionA, regionB}, []matchgraph.RegionIdx{ev.Region1, ev.Region2})
	require.Equal(t, int64(1000000), f.Queue.CurrentTime())
}

func TestRunUntilNextMwpmNotification_RegionHitsBoundary(t *testing.T) {
	g, err := matchgraph.NewGraph(1, 0)
	require.NoError(t, err)
	require.NoError(t, g.AddBoundaryEdge(0, 2.0, nil, 0.1))
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	f := flooder.NewFlooder(g, arena)
	region := f.CreateDetectionEvent(0)

	ev, ok := f.RunUntilNextMwpmNotification()
	require.True(t, ok)
	require.Equal(t, flooder.RegionHitBoundary, ev.Kind)
	require.Equal(t, region, ev.Region1)
	require.Equal(t, matchgraph.NodeIdx(0), ev.Edge.From)
	require.Equal(t, matchgraph.NoNode, ev.Edge.To)
}

func TestRunUntilNextMwpmNotification_WaveArrivalThenBoundary(t *testing.T) {
	g, err := matchgraph.NewGraph(3, 0, matchgraph.WithNumDistinctWeights(1))
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1.0, nil, 0.1))
	require.NoError(t, g.AddEdge(1, 2, 1.0, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(2, 2.0, nil, 0.1))
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	f := flooder.NewFlooder(g, arena)
	region := f.CreateDetectionEvent(0)

	ev, ok := f.RunUntilNextMwpmNotification()
	require.True(t, ok)
	require.Equal(t, flooder.RegionHitBoundary, ev.Kind)
	require.Equal(t, region, ev.Region1)
	require.Equal(t, matchgraph.NodeIdx(2), ev.Edge.From)
	require.Equal(t, int64(2), f.Queue.CurrentTime())

	// Both intermediate nodes were claimed into the same region along the way.
	require.Equal(t, region, g.Node(1).RegionArrived)
	require.Equal(t, region, g.Node(2).RegionArrived)
}

// When a node's own boundary edge and an unclaimed neighbor become due at
// the exact same time, the boundary hit must win: it settles a match, while
// claiming the neighbor would just keep growing without resolving anything.
func TestRunUntilNextMwpmNotification_TiedBoundaryWinsOverArrival(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 0)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 2.0, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(0, 2.0, nil, 0.1))
	require.NoError(t, g.AddBoundaryEdge(1, 2.0, nil, 0.1))
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	f := flooder.NewFlooder(g, arena)
	region := f.CreateDetectionEvent(0)

	ev, ok := f.RunUntilNextMwpmNotification()
	require.True(t, ok)
	require.Equal(t, flooder.RegionHitBoundary, ev.Kind)
	require.Equal(t, region, ev.Region1)
	require.Equal(t, matchgraph.NodeIdx(0), ev.Edge.From)

	// Node 1 was never claimed: the region settled via its own boundary
	// edge instead of absorbing the neighbor first.
	require.Equal(t, matchgraph.NoRegion, g.Node(1).RegionArrived)
}

func TestRunUntilNextMwpmNotification_NoEventsLeftReturnsFalse(t *testing.T) {
	g, err := matchgraph.NewGraph(1, 0)
	require.NoError(t, err)
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	f := flooder.NewFlooder(g, arena)

	_, ok := f.RunUntilNextMwpmNotification()
	require.False(t, ok)
}

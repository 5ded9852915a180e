package flooder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/varying"
)

func TestRegionOneLevelBelow_WalksMultipleLevels(t *testing.T) {
	g, err := matchgraph.NewGraph(1, 0)
	require.NoError(t, err)
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	blossom := arena.Alloc()
	child := arena.Alloc()
	grandchild := arena.Alloc()
	arena.Get(child).BlossomParent = blossom
	arena.Get(grandchild).BlossomParent = child

	g.Node(0).RegionArrived = grandchild

	f := NewFlooder(g, arena)
	require.Equal(t, child, f.regionOneLevelBelow(0, blossom))
}

func TestHandleLookAtShrinkingRegion_NotYetZero(t *testing.T) {
	g, err := matchgraph.NewGraph(1, 0)
	require.NoError(t, err)
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	blossom := arena.Alloc()
	arena.Get(blossom).Radius = varying.NewVarying(varying.Shrinking, 5)
	arena.Get(blossom).Children = []matchgraph.BlossomChild{{Child: arena.Alloc()}}

	f := NewFlooder(g, arena)
	_, ok := f.handleLookAtShrinkingRegion(blossom)
	require.False(t, ok, "radius hasn't reached zero yet")
}

func TestHandleLookAtShrinkingRegion_LeafNeverShatters(t *testing.T) {
	g, err := matchgraph.NewGraph(1, 0)
	require.NoError(t, err)
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	leaf := arena.Alloc()
	arena.Get(leaf).Radius = varying.NewVarying(varying.Shrinking, 0)

	f := NewFlooder(g, arena)
	_, ok := f.handleLookAtShrinkingRegion(leaf)
	require.False(t, ok, "a region with no children never shatters")
}

func TestHandleLookAtShrinkingRegion_ShattersWithAnchors(t *testing.T) {
	g, err := matchgraph.NewGraph(2, 0)
	require.NoError(t, err)
	g.Finalize()

	arena := matchgraph.NewRegionArena()
	blossom := arena.Alloc()
	childA := arena.Alloc()
	childB := arena.Alloc()
	grandchildOfA := arena.Alloc()

	arena.Get(childA).BlossomParent = blossom
	arena.Get(childB).BlossomParent = blossom
	arena.Get(grandchildOfA).BlossomParent = childA
	arena.Get(blossom).Children = []matchgraph.BlossomChild{{Child: childA}, {Child: childB}}
	arena.Get(blossom).Radius = varying.NewVarying(varying.Shrinking, 0)

	g.Node(0).RegionArrived = grandchildOfA // anchor climbs two levels
	g.Node(1).RegionArrived = childB        // anchor is already one level down
	arena.Get(blossom).AnchorInParent = 0
	arena.Get(blossom).AnchorInChild = 1

	f := NewFlooder(g, arena)
	ev, ok := f.handleLookAtShrinkingRegion(blossom)
	require.True(t, ok)
	require.Equal(t, BlossomShatter, ev.Kind)
	require.Equal(t, blossom, ev.Blossom)
	require.Equal(t, childA, ev.InParent)
	require.Equal(t, childB, ev.InChild)
}

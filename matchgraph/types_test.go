package matchgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/matchgraph"
)

func TestCompressedEdge_ReversedInvolution(t *testing.T) {
	e := matchgraph.CompressedEdge{From: 1, To: 2, Obs: 0b101}
	require.Equal(t, e, e.Reversed().Reversed())
}

func TestCompressedEdge_MergedXorsObservables(t *testing.T) {
	ab := matchgraph.CompressedEdge{From: 1, To: 2, Obs: 0b01}
	bc := matchgraph.CompressedEdge{From: 2, To: 3, Obs: 0b10}
	ac := ab.Merged(bc)
	require.Equal(t, matchgraph.NodeIdx(1), ac.From)
	require.Equal(t, matchgraph.NodeIdx(3), ac.To)
	require.Equal(t, uint64(0b11), ac.Obs)
}

func TestCompressedEdge_MergedCommutativeObservables(t *testing.T) {
	ab := matchgraph.CompressedEdge{From: 1, To: 2, Obs: 0b01}
	bc := matchgraph.CompressedEdge{From: 2, To: 3, Obs: 0b10}
	require.Equal(t, ab.Merged(bc).Obs, bc.Reversed().Merged(ab.Reversed()).Obs)
}

func TestRegionArena_AllocFreeReuse(t *testing.T) {
	a := matchgraph.NewRegionArena()
	r0 := a.Alloc()
	r1 := a.Alloc()
	require.NotEqual(t, r0, r1)

	a.Free(r0)
	r2 := a.Alloc()
	require.Equal(t, r0, r2, "freed slots are reused")
}

func TestRegionArena_FreshRegionHasSentinels(t *testing.T) {
	a := matchgraph.NewRegionArena()
	r := a.Get(a.Alloc())
	require.Equal(t, matchgraph.NoRegion, r.BlossomParent)
	require.Equal(t, matchgraph.NoRegion, r.BlossomParentTop)
	require.Equal(t, matchgraph.NoAltTreeNode, r.AltTreeNode)
	require.False(t, r.IsMatched())
	require.False(t, r.IsBlossom())
}

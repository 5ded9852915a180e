package matchgraph

// RegionArena is a free-list arena of FillRegion values, indexed by
// RegionIdx. It replaces the raw-pointer region graphs a reference
// implementation would use with a flat slice plus a reusable free list, per
// the spec's arena-of-indices design note.
type RegionArena struct {
	regions []FillRegion
	free    []RegionIdx
}

// NewRegionArena returns an empty arena.
func NewRegionArena() *RegionArena {
	return &RegionArena{}
}

// Alloc returns the index of a freshly zeroed FillRegion, reusing a freed
// slot when one is available.
func (a *RegionArena) Alloc() RegionIdx {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.regions[idx] = newFreeRegion()

		return idx
	}

	a.regions = append(a.regions, newFreeRegion())

	return RegionIdx(len(a.regions) - 1)
}

// Free returns idx's slot to the free list. The caller must not use idx
// again until a later Alloc reissues it.
func (a *RegionArena) Free(idx RegionIdx) {
	a.free = append(a.free, idx)
}

// Get returns a mutable pointer to the region at idx. idx must be a
// currently-allocated index.
func (a *RegionArena) Get(idx RegionIdx) *FillRegion {
	return &a.regions[idx]
}

// Reset discards all allocated regions, readying the arena for the next
// decode.
func (a *RegionArena) Reset() {
	a.regions = a.regions[:0]
	a.free = a.free[:0]
}

// Len returns the number of slots ever allocated, including ones since
// freed. Callers walking "every region touched this decode" (match
// extraction) range over [0, Len()) and skip freed/irrelevant slots
// themselves; the arena does not track liveness beyond its own free list.
func (a *RegionArena) Len() int {
	return len(a.regions)
}

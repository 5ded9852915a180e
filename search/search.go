package search

import (
	"github.com/katalvlaran/sparseblossom/matchgraph"
	"github.com/katalvlaran/sparseblossom/varying"
)

// waveEvent is the Event the search Flooder schedules on its RadixQueue:
// "node n might be reachable from side s at absolute distance At; confirm
// at pop time".
type waveEvent struct {
	Node matchgraph.NodeIdx
	Side side
	At   int64
}

// Time implements varying.Event.
func (e waveEvent) Time() int64 { return e.At }

// predEdge records the best known predecessor of a node during relaxation:
// the node it was reached from, and the observable mask of the traversed
// edge.
type predEdge struct {
	node matchgraph.NodeIdx
	obs  uint64
}

// Flooder runs simultaneous Dijkstra waves over a matching graph's
// permanent topology to reconstruct the shortest path between two matched
// nodes (spec 4.6). It is independent of the decode-time flooder package's
// region machinery: no regions, no blossoms, just plain shortest paths
// over a shared monotonic queue.
type Flooder struct {
	graph *matchgraph.Graph
	queue *varying.RadixQueue

	finalized     []bool
	finalizedSide []side
	bestDist      []int64
	pred          []predEdge

	// The true boundary sentinel (matchgraph.NoNode) has no array slot of
	// its own, so it gets a single scalar "virtual node" slot instead,
	// relaxed and finalized through the same queue as everything else.
	boundaryFinalized bool
	boundaryBestDist  int64
	boundaryPred      predEdge
}

// NewFlooder returns a search Flooder over g, with per-node buffers sized
// to g's detector count. Reuse one Flooder across every match in a decode
// via Reset rather than allocating a fresh one per match.
func NewFlooder(g *matchgraph.Graph) *Flooder {
	n := g.NumDetectors()
	f := &Flooder{
		graph:         g,
		queue:         varying.NewRadixQueue(),
		finalized:     make([]bool, n),
		finalizedSide: make([]side, n),
		bestDist:      make([]int64, n),
		pred:          make([]predEdge, n),
	}
	f.Reset()

	return f
}

// Reset clears all per-search state, readying the Flooder to resolve
// another matched pair.
func (f *Flooder) Reset() {
	f.queue.Reset()
	for i := range f.finalized {
		f.finalized[i] = false
		f.finalizedSide[i] = unreached
		f.bestDist[i] = varying.Never
		f.pred[i] = predEdge{node: matchgraph.NoNode}
	}
	f.boundaryFinalized = false
	f.boundaryBestDist = varying.Never
	f.boundaryPred = predEdge{node: matchgraph.NoNode}
}

// relax records a candidate shorter distance to m and enqueues a wave
// event for it, if it actually improves on the best known distance so
// far. Already-finalized nodes are never relaxed again.
func (f *Flooder) relax(from, m matchgraph.NodeIdx, obs uint64, dist int64, s side) {
	if f.finalized[m] || dist >= f.bestDist[m] {
		return
	}
	f.bestDist[m] = dist
	f.pred[m] = predEdge{node: from, obs: obs}
	f.queue.Enqueue(waveEvent{Node: m, Side: s, At: dist})
}

// relaxBoundary is relax's counterpart for the true boundary sentinel: a
// single scalar slot rather than a per-node array entry, but otherwise
// finalized through the same priority queue so a cheap boundary edge
// discovered through a farther node can still beat one discovered first.
func (f *Flooder) relaxBoundary(from matchgraph.NodeIdx, obs uint64, dist int64, s side) {
	if f.boundaryFinalized || dist >= f.boundaryBestDist {
		return
	}
	f.boundaryBestDist = dist
	f.boundaryPred = predEdge{node: from, obs: obs}
	f.queue.Enqueue(waveEvent{Node: matchgraph.NoNode, Side: s, At: dist})
}

// FindPath reconstructs the shortest path between u and v (v == NoNode
// meaning "to the boundary") and returns the compressed edge (u, v or the
// first boundary-like node reached, XOR of observables along the path).
// It resets internal state first, so a single Flooder may be reused
// across every matched pair in a decode.
func (f *Flooder) FindPath(u, v matchgraph.NodeIdx) (matchgraph.CompressedEdge, error) {
	f.Reset()

	boundaryMode := v == matchgraph.NoNode

	f.bestDist[u] = 0
	f.queue.Enqueue(waveEvent{Node: u, Side: sourceA, At: 0})
	if !boundaryMode {
		f.bestDist[v] = 0
		f.queue.Enqueue(waveEvent{Node: v, Side: sourceB, At: 0})
	}

	for {
		raw, ok := f.queue.Dequeue()
		if !ok {
			return matchgraph.CompressedEdge{}, ErrNoPath
		}
		e := raw.(waveEvent)

		if e.Node == matchgraph.NoNode {
			if f.boundaryFinalized || e.At != f.boundaryBestDist {
				continue // stale: superseded by a cheaper boundary relaxation
			}
			f.boundaryFinalized = true

			return f.reconstructBoundaryEdge(f.boundaryPred.node, f.boundaryPred.obs)
		}

		if f.finalized[e.Node] || e.At != f.bestDist[e.Node] {
			continue // stale: superseded by a shorter relaxation already
		}
		f.finalized[e.Node] = true
		f.finalizedSide[e.Node] = e.Side

		if boundaryMode && e.Node != u && f.graph.IsBoundaryLike(e.Node) {
			return f.reconstructToBoundary(e.Node)
		}

		n := f.graph.Node(e.Node)
		for i, m := range n.Neighbors {
			w := int64(n.Weights[i])
			obs := n.Observables[i]

			if m == matchgraph.NoNode {
				if boundaryMode {
					f.relaxBoundary(e.Node, obs, e.At+w, e.Side)
				}
				continue
			}

			if f.finalized[m] {
				if !boundaryMode && f.finalizedSide[m] != e.Side {
					return f.reconstructMeeting(e.Node, e.Side, m, obs)
				}
				continue
			}

			f.relax(e.Node, m, obs, e.At+w, e.Side)
		}
	}
}

// reconstructMeeting stitches the predecessor chain from nearNode back to
// its source, the chain from farNode back to its source, and the single
// connecting edge (nearNode, farNode, obs) between them, into one
// from-u-to-v compressed edge.
func (f *Flooder) reconstructMeeting(nearNode matchgraph.NodeIdx, nearSide side, farNode matchgraph.NodeIdx, obs uint64) (matchgraph.CompressedEdge, error) {
	nearChain, err := f.walkToSource(nearNode)
	if err != nil {
		return matchgraph.CompressedEdge{}, err
	}
	farChain, err := f.walkToSource(farNode)
	if err != nil {
		return matchgraph.CompressedEdge{}, err
	}

	connecting := matchgraph.CompressedEdge{From: nearNode, To: farNode, Obs: obs}
	merged := nearChain.Reversed().Merged(connecting).Merged(farChain)

	if nearSide == sourceB {
		merged = merged.Reversed()
	}

	return merged, nil
}

// reconstructBoundaryEdge handles the true-boundary sentinel: node hits
// the boundary directly via an edge carrying the given observable mask.
func (f *Flooder) reconstructBoundaryEdge(node matchgraph.NodeIdx, obs uint64) (matchgraph.CompressedEdge, error) {
	chain, err := f.walkToSource(node)
	if err != nil {
		return matchgraph.CompressedEdge{}, err
	}

	return chain.Reversed().Merged(matchgraph.CompressedEdge{From: node, To: matchgraph.NoNode, Obs: obs}), nil
}

// reconstructToBoundary handles a boundary-equivalent detector node being
// the first one finalized by the wave: the path ends there, treated as
// the boundary.
func (f *Flooder) reconstructToBoundary(node matchgraph.NodeIdx) (matchgraph.CompressedEdge, error) {
	chain, err := f.walkToSource(node)
	if err != nil {
		return matchgraph.CompressedEdge{}, err
	}

	merged := chain.Reversed()
	merged.To = matchgraph.NoNode

	return merged, nil
}

// walkToSource walks node's predecessor chain back to its source (pred ==
// NoNode), returning the compressed edge (source, node, obs) XOR-
// accumulated along the way.
func (f *Flooder) walkToSource(node matchgraph.NodeIdx) (matchgraph.CompressedEdge, error) {
	if !f.finalized[node] {
		return matchgraph.CompressedEdge{}, ErrNoPath
	}

	edge := matchgraph.CompressedEdge{From: node, To: node, Obs: 0}
	cur := node
	for {
		p := f.pred[cur]
		if p.node == matchgraph.NoNode {
			edge.From = cur

			return edge, nil
		}
		edge = matchgraph.CompressedEdge{From: p.node, To: edge.To, Obs: edge.Obs ^ p.obs}
		cur = p.node
	}
}

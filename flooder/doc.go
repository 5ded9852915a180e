// Package flooder implements the event-driven flood fill that grows,
// freezes and shrinks fill regions across a matching graph (spec 4.4).
//
// A Flooder owns the matching graph, its region arena, and a RadixQueue of
// FloodCheckEvents. Growth itself is never "stepped" directly: the
// Flooder's RunUntilNextMwpmNotification drains flood-check events,
// recomputing each node's earliest future interaction from its current
// local radius and its neighbors' current local radii, until one is found
// to already be due. At that point it surfaces a MatcherEvent describing
// what happened (two regions collided, a region hit the boundary, or a
// shrinking blossom reached zero radius and must shatter) and returns
// control to the caller, which is expected to be the matcher package:
// flooder never resolves a MatcherEvent itself, only detects and reports
// it.
//
// Complexity: amortized O(1) per flood-check event thanks to RadixQueue;
// each LookAtNode handler does O(degree) work rescanning neighbors.
//
// Concurrency: a Flooder is built fresh per decode (or reset via its
// Graph/Arena's own reset calls) and is not safe for concurrent use; it is
// owned exclusively by the matcher driving one decode.
package flooder

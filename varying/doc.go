// Package varying implements time-varying linear values and the monotonic
// radix queue used to schedule events against them.
//
// A Varying is a linear function of absolute simulated time with slope in
// {-1, 0, +1}: value(t) = intercept + slope*t. Fill regions grow, freeze and
// shrink by swapping a Varying's slope while preserving its value at the
// instant of the transition. The RadixQueue pops scheduled events in
// non-decreasing time order in O(1) amortized time, and EventTracker
// suppresses redundant re-scheduling when a region's growth rate changes
// before its previously queued wake-up fires.
//
// Complexity:
//   - Varying arithmetic: O(1) per operation.
//   - RadixQueue Enqueue/Dequeue: O(1) amortized (33-bucket radix heap).
//
// Concurrency: none of these types are safe for concurrent use; they are
// owned exclusively by a single decode's Flooder/Mwpm/search runner.
package varying

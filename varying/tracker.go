package varying

// CyclicTime is a wrapping 32-bit counter used to validate a dequeued event
// against the latest intent recorded for its target. Comparisons are
// equality-only (wrapped equality), never ordering: the counter is
// monotonic modulo 2^32 over a single decode and is reset between decodes.
type CyclicTime uint32

// EventTracker tracks, for one node or one shrinking region, the latest
// desired absolute inspection time and the absolute time of whatever event
// is currently enqueued on its behalf. It lets a caller avoid enqueueing a
// redundant flood-check event when an already-queued one will serve, and
// lets the queue consumer recognize and discard stale events cheaply.
type EventTracker struct {
	hasDesired  bool
	desiredTime int64
	desiredTag  CyclicTime

	hasQueued bool
	queuedTime int64
	queuedTag  CyclicTime

	nextTag CyclicTime
}

// SetDesiredEvent records that the owner wants to be inspected at time t.
// It returns the tag the caller must stamp onto the flood-check event it
// enqueues, and whether the caller actually needs to enqueue one: if an
// event already queued for the same time can serve, mustEnqueue is false
// and the existing queue entry is retagged to remain valid.
func (t *EventTracker) SetDesiredEvent(time int64) (tag CyclicTime, mustEnqueue bool) {
	t.nextTag++
	tag = t.nextTag
	t.hasDesired = true
	t.desiredTime = time
	t.desiredTag = tag

	if t.hasQueued && t.queuedTime == time {
		// The event already in the queue will fire at the same time;
		// retag it so ValidateOnDequeue recognizes it as live.
		t.queuedTag = tag
		return tag, false
	}

	t.hasQueued = true
	t.queuedTime = time
	t.queuedTag = tag

	return tag, true
}

// ClearDesiredEvent records that the owner no longer wants to be
// inspected. Any previously queued event for this tracker is now stale.
func (t *EventTracker) ClearDesiredEvent() {
	t.hasDesired = false
}

// ValidateOnDequeue reports whether a dequeued event carrying tag,
// originally scheduled for absolute time queuedAt, is still live. A false
// result means the event is stale and must be discarded without producing
// a matcher event.
func (t *EventTracker) ValidateOnDequeue(tag CyclicTime, queuedAt int64) bool {
	if !t.hasQueued || tag != t.queuedTag || queuedAt != t.queuedTime {
		return false
	}
	// This is the event the tracker had queued; it has now left the queue.
	t.hasQueued = false

	return t.hasDesired && tag == t.desiredTag && queuedAt == t.desiredTime
}

// Reset clears all tracked state, ready for reuse in the next decode.
func (t *EventTracker) Reset() {
	*t = EventTracker{}
}

package varying

import "math/bits"

// numBuckets is the bucket count of the radix heap: an event with absolute
// time t sits in bucket bit_width(t XOR currentTime), capped to the top
// bucket when the raw bit-width would exceed it. 33 buckets cover a 32-bit
// span of outstanding time deltas, which bounds every weight-derived delta
// the flooder and search components ever schedule.
const numBuckets = 33

// Event is anything the RadixQueue can schedule: a flood-check event, or a
// search-wave event. Time reports the absolute simulated time at which the
// event is due.
type Event interface {
	Time() int64
}

// RadixQueue is a monotonic priority queue over Events keyed by absolute
// time. It never moves current time backwards (Enqueue/Dequeue together
// maintain that invariant), and amortizes to O(1) per operation via the
// classic radix-heap bucket-redistribution trick.
type RadixQueue struct {
	buckets     [numBuckets][]Event
	currentTime int64
}

// NewRadixQueue returns an empty queue with current time zero.
func NewRadixQueue() *RadixQueue {
	return &RadixQueue{}
}

// CurrentTime returns the time of the most recently dequeued event (or zero
// if nothing has been dequeued yet).
func (q *RadixQueue) CurrentTime() int64 {
	return q.currentTime
}

// bucketIndex computes bit_width(t XOR currentTime), capped to numBuckets-1.
func bucketIndex(t, currentTime int64) int {
	idx := bits.Len64(uint64(t) ^ uint64(currentTime))
	if idx >= numBuckets {
		idx = numBuckets - 1
	}

	return idx
}

// Enqueue schedules e for its own Time(). e.Time() must be >= CurrentTime();
// the radix-heap bucketing assumes no event is enqueued in the past.
func (q *RadixQueue) Enqueue(e Event) {
	idx := bucketIndex(e.Time(), q.currentTime)
	q.buckets[idx] = append(q.buckets[idx], e)
}

// Dequeue removes and returns the event with the smallest Time(), advancing
// CurrentTime() to that value. It returns (nil, false) when the queue is
// empty.
func (q *RadixQueue) Dequeue() (Event, bool) {
	for {
		k := -1
		for i := range q.buckets {
			if len(q.buckets[i]) > 0 {
				k = i
				break
			}
		}
		if k == -1 {
			return nil, false
		}

		if k == 0 {
			b := q.buckets[0]
			last := len(b) - 1
			e := b[last]
			q.buckets[0] = b[:last]

			return e, true
		}

		// Find the minimum time in bucket k and advance current time to
		// it, then redistribute every element of bucket k: they'll land
		// in lower-indexed buckets because currentTime moved toward them.
		b := q.buckets[k]
		minT := b[0].Time()
		for _, e := range b[1:] {
			if e.Time() < minT {
				minT = e.Time()
			}
		}
		q.currentTime = minT
		q.buckets[k] = nil

		for _, e := range b {
			idx := bucketIndex(e.Time(), q.currentTime)
			q.buckets[idx] = append(q.buckets[idx], e)
		}
	}
}

// Clear empties the queue without resetting current time.
func (q *RadixQueue) Clear() {
	for i := range q.buckets {
		q.buckets[i] = nil
	}
}

// Reset empties the queue and resets current time to zero, ready for reuse
// in the next decode.
func (q *RadixQueue) Reset() {
	q.Clear()
	q.currentTime = 0
}

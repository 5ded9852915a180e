package varying_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/varying"
)

type testEvent struct {
	at  int64
	tag string
}

func (e testEvent) Time() int64 { return e.at }

func TestRadixQueue_DequeuesInTimeOrder(t *testing.T) {
	q := varying.NewRadixQueue()
	times := []int64{50, 3, 17, 0, 42, 9}
	for _, at := range times {
		q.Enqueue(testEvent{at: at})
	}

	var last int64 = -1
	var count int
	for {
		e, ok := q.Dequeue()
		if !ok {
			break
		}
		ev := e.(testEvent)
		require.GreaterOrEqual(t, ev.at, last)
		last = ev.at
		require.Equal(t, ev.at, q.CurrentTime())
		count++
	}
	require.Equal(t, len(times), count)
}

func TestRadixQueue_EmptyDequeue(t *testing.T) {
	q := varying.NewRadixQueue()
	_, ok := q.Dequeue()
	require.False(t, ok)
}

func TestRadixQueue_ClearAndReset(t *testing.T) {
	q := varying.NewRadixQueue()
	q.Enqueue(testEvent{at: 5})
	q.Clear()
	_, ok := q.Dequeue()
	require.False(t, ok)

	q.Enqueue(testEvent{at: 100})
	q.Dequeue()
	require.Equal(t, int64(100), q.CurrentTime())
	q.Reset()
	require.Equal(t, int64(0), q.CurrentTime())
}

func TestRadixQueue_MonotonicCurrentTime(t *testing.T) {
	q := varying.NewRadixQueue()
	for _, at := range []int64{1, 1, 2, 2, 2, 3} {
		q.Enqueue(testEvent{at: at})
	}
	var prev int64 = -1
	for {
		_, ok := q.Dequeue()
		if !ok {
			break
		}
		require.GreaterOrEqual(t, q.CurrentTime(), prev)
		prev = q.CurrentTime()
	}
}

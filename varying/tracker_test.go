package varying_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparseblossom/varying"
)

func TestEventTracker_FirstSetAlwaysEnqueues(t *testing.T) {
	var tr varying.EventTracker
	tag, mustEnqueue := tr.SetDesiredEvent(10)
	require.True(t, mustEnqueue)
	require.True(t, tr.ValidateOnDequeue(tag, 10))
}

func TestEventTracker_SameTimeSuppressesEnqueue(t *testing.T) {
	var tr varying.EventTracker
	tag1, _ := tr.SetDesiredEvent(10)
	tag2, mustEnqueue := tr.SetDesiredEvent(10)
	require.False(t, mustEnqueue)
	require.NotEqual(t, tag1, tag2)
	// Only the retagged entry is live; the original tag is now stale.
	require.False(t, tr.ValidateOnDequeue(tag1, 10))
	require.True(t, tr.ValidateOnDequeue(tag2, 10))
}

func TestEventTracker_NewTimeSupersedesOld(t *testing.T) {
	var tr varying.EventTracker
	tag1, _ := tr.SetDesiredEvent(10)
	tag2, mustEnqueue := tr.SetDesiredEvent(5)
	require.True(t, mustEnqueue)
	require.False(t, tr.ValidateOnDequeue(tag1, 10), "stale event must be rejected")
	require.True(t, tr.ValidateOnDequeue(tag2, 5))
}

func TestEventTracker_Reset(t *testing.T) {
	var tr varying.EventTracker
	tag, _ := tr.SetDesiredEvent(1)
	tr.Reset()
	require.False(t, tr.ValidateOnDequeue(tag, 1))
}

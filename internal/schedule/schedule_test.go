package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsPeriodicTask(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.EveryRebuild(30*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}))

	s.Start()
	defer func() { _ = s.Stop() }()

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 3*time.Second, 10*time.Millisecond)
}

func TestSchedulerStop(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.EveryRebuild(20*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}))

	s.Start()
	require.NoError(t, s.Stop())

	settled := runs.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, runs.Load())
}

package poll

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReplacesExistingLoop(t *testing.T) {
	c := NewController()
	var firstEpochFetches, secondEpochFetches atomic.Int64

	e1 := c.Start("threads:1", 10*time.Millisecond, nil, func(epoch int64) {
		if epoch == 1 {
			firstEpochFetches.Add(1)
		}
	})
	e2 := c.Start("threads:1", 10*time.Millisecond, nil, func(epoch int64) {
		if epoch == 2 {
			secondEpochFetches.Add(1)
		}
	})
	require.Equal(t, int64(1), e1)
	require.Equal(t, int64(2), e2)

	// The replacement loop keeps ticking; the first loop may have fired its
	// immediate fetch but must not tick again.
	require.Eventually(t, func() bool { return secondEpochFetches.Load() >= 2 }, time.Second, time.Millisecond)
	settled := firstEpochFetches.Load()
	assert.LessOrEqual(t, settled, int64(1))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, settled, firstEpochFetches.Load(), "cancelled loop kept ticking")

	c.StopAll()
}

func TestImmediateFetchThenTicks(t *testing.T) {
	c := NewController()
	var fetches atomic.Int64
	c.Start("activity:9", 10*time.Millisecond, nil, func(int64) { fetches.Add(1) })

	require.Eventually(t, func() bool { return fetches.Load() >= 1 }, time.Second, time.Millisecond,
		"immediate fetch never fired")
	require.Eventually(t, func() bool { return fetches.Load() >= 3 }, time.Second, time.Millisecond,
		"ticks never fired")
	c.Stop("activity:9")
}

func TestSelfStopWhenContextInvalid(t *testing.T) {
	c := NewController()
	var valid atomic.Bool
	valid.Store(true)
	var fetches atomic.Int64

	c.Start("threads:2", 10*time.Millisecond, valid.Load, func(int64) { fetches.Add(1) })
	require.Eventually(t, func() bool { return fetches.Load() >= 2 }, time.Second, time.Millisecond)

	valid.Store(false)
	require.Eventually(t, func() bool { return !c.Active("threads:2") }, time.Second, time.Millisecond,
		"loop did not self-stop after context invalidation")

	settled := fetches.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, fetches.Load(), "fetch fired after context invalidation")
}

func TestStopIsIdempotent(t *testing.T) {
	c := NewController()
	assert.NotPanics(t, func() {
		c.Stop("never-started")
		c.Stop("never-started")
	})

	c.Start("x", time.Hour, nil, func(int64) {})
	c.Stop("x")
	assert.NotPanics(t, func() { c.Stop("x") })
	assert.False(t, c.Active("x"))
}

func TestValidRejectsStaleEpoch(t *testing.T) {
	c := NewController()
	e1 := c.Start("board:5", time.Hour, nil, func(int64) {})
	assert.True(t, c.Valid("board:5", e1))

	e2 := c.Start("board:5", time.Hour, nil, func(int64) {})
	assert.False(t, c.Valid("board:5", e1), "stale epoch still valid after restart")
	assert.True(t, c.Valid("board:5", e2))

	c.Stop("board:5")
	assert.False(t, c.Valid("board:5", e2))
}

func TestStopAll(t *testing.T) {
	c := NewController()
	c.Start("a", time.Hour, nil, func(int64) {})
	c.Start("b", time.Hour, nil, func(int64) {})
	c.StopAll()
	assert.False(t, c.Active("a"))
	assert.False(t, c.Active("b"))
}

package cleaner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/order-wizard/ow-api/config"
)

type countingSweeper struct {
	calls atomic.Int64
	err   error
}

func (c *countingSweeper) CleanupExpired(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestNewRunnerRequiresSweeper(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)

	r, err := NewRunner(RunnerOptions{
		Sweeper: &countingSweeper{},
		Config:  config.CleanupConfig{Interval: time.Minute},
	})
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRunnerSweepsPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	r, err := NewRunner(RunnerOptions{
		Sweeper: sweeper,
		Config:  config.CleanupConfig{Interval: 20 * time.Millisecond},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Wait for the initial pass plus at least one tick.
	require.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case runErr := <-done:
		assert.NoError(t, runErr, "cancellation is a graceful shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

func TestRunnerKeepsRunningOnSweepError(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("store unavailable")}
	r, err := NewRunner(RunnerOptions{
		Sweeper: sweeper,
		Config:  config.CleanupConfig{Interval: 20 * time.Millisecond},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	require.Eventually(t, func() bool {
		return sweeper.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "errors must not stop the loop")
}

func TestRunnerStopsDuringJitter(t *testing.T) {
	sweeper := &countingSweeper{}
	r, err := NewRunner(RunnerOptions{
		Sweeper: sweeper,
		Config:  config.CleanupConfig{Interval: time.Hour},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	cancel()
	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop during jitter wait")
	}
}

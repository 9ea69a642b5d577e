package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatch_RejectsBadSpec(t *testing.T) {
	_, err := NewWatch("every now and then", func(context.Context) error { return nil }, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestWatch_FirstRunErrorStops(t *testing.T) {
	boom := errors.New("backend down")
	w, err := NewWatch("@every 1s", func(context.Context) error { return boom }, nil)
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, w.Runs())
}

func TestWatch_RunsImmediatelyAndOnSchedule(t *testing.T) {
	var calls atomic.Int32
	w, err := NewWatch("@every 1s", func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))

	assert.GreaterOrEqual(t, int(calls.Load()), 2, "initial run plus at least one tick")
}

func TestWatch_TickSkipsWhileRunning(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	w, err := NewWatch("@every 1s", func(context.Context) error {
		close(started)
		<-release
		return nil
	}, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.tick(context.Background()) }()
	<-started

	require.NoError(t, w.tick(context.Background()), "overlapping tick is skipped")
	assert.Equal(t, 0, w.Runs())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, w.Runs())
}

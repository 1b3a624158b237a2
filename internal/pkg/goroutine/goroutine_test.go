package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GoAndWait(t *testing.T) {
	m := NewManager(4)
	errBoom := errors.New("boom")

	var ran atomic.Int32
	for i := range 3 {
		err := m.Go(context.Background(), func(ctx context.Context) error {
			ran.Add(1)
			if i == 1 {
				return errBoom
			}
			return nil
		})
		require.NoError(t, err)
	}

	err := m.Wait()

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int32(3), ran.Load())
	assert.Equal(t, 0, m.Running())
}

func TestManager_LimitReached(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, m.Go(context.Background(), func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	err := m.Go(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrLimitReached)
	assert.Equal(t, 1, m.Running())

	close(release)
	assert.NoError(t, m.Wait())
}

func TestManager_Closed(t *testing.T) {
	m := NewManager(0)
	require.NoError(t, m.Wait())

	err := m.Go(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrClosed)
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)

	require.NoError(t, m.Go(context.Background(), func(ctx context.Context) error {
		panic("stream producer exploded")
	}))

	assert.NoError(t, m.Wait())
	assert.Equal(t, 0, m.Running(), "slot released after panic")
}

func TestManager_CanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	require.NoError(t, m.Go(ctx, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))

	assert.NoError(t, m.Wait())
	assert.False(t, ran.Load())
}

package writequeue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SerializesSameUser(t *testing.T) {
	m := New(Config{}, nil)
	defer m.Shutdown(context.Background())

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), 1, func(ctx context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&maxRunning)
					if n <= old || atomic.CompareAndSwapInt32(&maxRunning, old, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestExecute_ReturnsFnError(t *testing.T) {
	m := New(Config{}, nil)
	defer m.Shutdown(context.Background())

	want := errors.New("boom")
	err := m.Execute(context.Background(), 7, func(ctx context.Context) error { return want })
	assert.Equal(t, want, err)
}

func TestExecute_RecoversPanic(t *testing.T) {
	m := New(Config{}, nil)
	defer m.Shutdown(context.Background())

	err := m.Execute(context.Background(), 7, func(ctx context.Context) error { panic("bad") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")

	// lane keeps working after a panic
	assert.NoError(t, m.Execute(context.Background(), 7, func(ctx context.Context) error { return nil }))
}

func TestExecute_Timeout(t *testing.T) {
	m := New(Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	go m.Execute(context.Background(), 3, func(ctx context.Context) error {
		<-release
		return nil
	})
	time.Sleep(5 * time.Millisecond)

	err := m.Execute(context.Background(), 3, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWriteTimeout)
	close(release)
}

func TestExecute_CancelledContextSkipsFn(t *testing.T) {
	m := New(Config{}, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Execute(ctx, 1, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestIdleWorkerExits(t *testing.T) {
	m := New(Config{IdleTimeout: 10 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	require.NoError(t, m.Execute(context.Background(), 9, func(ctx context.Context) error { return nil }))
	assert.Eventually(t, func() bool { return m.QueueCount() == 0 }, time.Second, 5*time.Millisecond)

	// a fresh lane is created on demand
	assert.NoError(t, m.Execute(context.Background(), 9, func(ctx context.Context) error { return nil }))
}

func TestShutdown(t *testing.T) {
	m := New(Config{}, nil)
	require.NoError(t, m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil }))

	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, m.IsClosed())

	err := m.Execute(context.Background(), 1, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestExecute_TimedOutQueuedWriteNeverRuns(t *testing.T) {
	m := New(Config{WriteTimeout: 50 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	// slow op holds the lane past the second caller's timeout
	slowDone := make(chan error, 1)
	go func() {
		slowDone <- m.Execute(context.Background(), 4, func(ctx context.Context) error {
			time.Sleep(150 * time.Millisecond)
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	var applied atomic.Bool
	err := m.Execute(context.Background(), 4, func(ctx context.Context) error {
		applied.Store(true)
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)

	// the slow op committed, so its caller is told so
	assert.NoError(t, <-slowDone)

	// the lane is free again; the abandoned op must have been skipped
	require.NoError(t, m.Execute(context.Background(), 4, func(ctx context.Context) error { return nil }))
	assert.False(t, applied.Load())
}

func TestExecute_TimeoutCancelsRunningWrite(t *testing.T) {
	m := New(Config{WriteTimeout: 30 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	var rolledBack atomic.Bool
	err := m.Execute(context.Background(), 5, func(ctx context.Context) error {
		<-ctx.Done()
		rolledBack.Store(true)
		return ctx.Err()
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)
	assert.True(t, rolledBack.Load())
}

func TestExecute_CallerDeadlineReportsContextError(t *testing.T) {
	m := New(Config{WriteTimeout: time.Second}, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Execute(ctx, 6, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

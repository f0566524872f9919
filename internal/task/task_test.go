package task

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/note-graph-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTask struct {
	name     string
	interval time.Duration
	startup  bool
	runs     atomic.Int32
	fn       func(ctx context.Context) error
}

func (t *countingTask) Name() string                { return t.name }
func (t *countingTask) LoopInterval() time.Duration { return t.interval }
func (t *countingTask) IsStartupRun() bool          { return t.startup }
func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	if t.fn != nil {
		return t.fn(ctx)
	}
	return nil
}

func TestScheduler_StartupAndLoop(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	once := &countingTask{name: "once", startup: true}
	loop := &countingTask{name: "loop", interval: time.Second}
	failing := &countingTask{name: "failing", startup: true, fn: func(context.Context) error {
		return errors.New("boom")
	}}
	panicking := &countingTask{name: "panicking", startup: true, fn: func(context.Context) error {
		panic("boom")
	}}
	for _, task := range []Task{once, loop, failing, panicking} {
		s.AddTask(task)
	}
	s.Start()

	assert.Eventually(t, func() bool { return once.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return loop.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool { return failing.runs.Load() == 1 && panicking.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())

	// no further runs once closed
	n := loop.runs.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, n, loop.runs.Load())
	assert.Equal(t, int32(1), once.runs.Load())
}

func TestScheduler_NoTasks(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	s.Start()

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}

type fakePinger struct {
	pingErr, keepAliveErr error
	pings, keepAlives     atomic.Int32
}

func (p *fakePinger) Ping(context.Context) error {
	p.pings.Add(1)
	return p.pingErr
}

func (p *fakePinger) KeepAlive(context.Context) error {
	p.keepAlives.Add(1)
	return p.keepAliveErr
}

func TestKeepAliveTask(t *testing.T) {
	assert.Nil(t, NewKeepAliveTask(&fakePinger{}, 0, zap.NewNop()))

	tests := []struct {
		name    string
		pinger  *fakePinger
		wantErr string
	}{
		{name: "healthy", pinger: &fakePinger{}},
		{name: "ping fails", pinger: &fakePinger{pingErr: errors.New("conn refused")}, wantErr: "ping: conn refused"},
		{name: "select fails", pinger: &fakePinger{keepAliveErr: errors.New("gone away")}, wantErr: "select 1: gone away"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewKeepAliveTask(tt.pinger, time.Minute, zap.NewNop())
			require.NotNil(t, task)
			assert.Equal(t, time.Minute, task.LoopInterval())
			assert.False(t, task.IsStartupRun())

			err := task.Run(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, int32(1), tt.pinger.pings.Load())
				assert.Equal(t, int32(1), tt.pinger.keepAlives.Load())
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestSelfPingTask(t *testing.T) {
	assert.Nil(t, NewSelfPingTask("", time.Minute, nil, zap.NewNop()))
	assert.Nil(t, NewSelfPingTask("http://localhost", 0, nil, zap.NewNop()))

	var hits atomic.Int32
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	task := NewSelfPingTask(srv.URL+"/api/health", time.Minute, srv.Client(), zap.NewNop())
	require.NotNil(t, task)
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, int32(1), hits.Load())

	status.Store(http.StatusServiceUnavailable)
	err := task.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

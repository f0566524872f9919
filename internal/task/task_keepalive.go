package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// keepAliveTimeout 单次探测超时
const keepAliveTimeout = 10 * time.Second

// Pinger 可探活的存储
type Pinger interface {
	Ping(ctx context.Context) error
	KeepAlive(ctx context.Context) error
}

// KeepAliveTask 定时探测数据库连接，避免托管数据库空闲断开
type KeepAliveTask struct {
	store    Pinger
	interval time.Duration
	logger   *zap.Logger
}

func (t *KeepAliveTask) Name() string {
	return "DBKeepAlive"
}

func (t *KeepAliveTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *KeepAliveTask) IsStartupRun() bool {
	return false
}

// Run 并行执行连接 ping 与 SELECT 1
func (t *KeepAliveTask) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, keepAliveTimeout)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return errors.Wrap(t.store.Ping(gctx), "ping")
	})
	g.Go(func() error {
		return errors.Wrap(t.store.KeepAlive(gctx), "select 1")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	t.logger.Info("keep-alive ok",
		zap.String(logger.FieldTask, t.Name()),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}

// NewKeepAliveTask 创建保活任务，interval <= 0 时返回 nil
func NewKeepAliveTask(store Pinger, interval time.Duration, lg *zap.Logger) Task {
	if interval <= 0 {
		return nil
	}
	return &KeepAliveTask{store: store, interval: interval, logger: lg}
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		interval := appContainer.Config().GetKeepAliveInterval()
		if interval <= 0 {
			appContainer.Logger().Info("keep-alive task is disabled")
			return nil, nil
		}
		return NewKeepAliveTask(appContainer.Dao, interval, appContainer.Logger()), nil
	})
}

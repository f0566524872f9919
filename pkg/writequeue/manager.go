// Package writequeue serializes write transactions per user.
// Package writequeue 按用户串行化写事务
//
// A note update reads the incoming link and then writes it; running those
// steps for one user strictly one at a time keeps the single-parent rule
// intact even on stores without serializable isolation (SQLite, MySQL RR).
// 同一用户的"先读后写"调和逻辑不会交错执行
package writequeue

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 用户写队列已满
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 写队列管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作等待超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity 每用户排队上限
	QueueCapacity int
	// WriteTimeout 单次写操作最长等待
	WriteTimeout time.Duration
	// IdleTimeout 用户 worker 空闲退出时间
	IdleTimeout time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   5 * time.Minute,
	}
}

type writeOp struct {
	ctx     context.Context
	fn      func(ctx context.Context) error
	result  chan error
	started chan struct{} // closed by the worker before it looks at ctx
}

// lane is the FIFO of one user; its worker exits after IdleTimeout without work.
type lane struct {
	uid int64
	ch  chan writeOp
}

// Manager 管理所有用户的写队列
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	lanes  map[int64]*lane
	closed bool

	wg   sync.WaitGroup
	stop chan struct{}
}

// New creates write queue manager; zero fields of cfg fall back to DefaultConfig.
// New 创建写队列管理器
func New(cfg Config, logger *zap.Logger) *Manager {
	def := DefaultConfig()
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = def.QueueCapacity
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("write queue manager started",
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Duration("writeTimeout", cfg.WriteTimeout),
		zap.Duration("idleTimeout", cfg.IdleTimeout))

	return &Manager{
		config: cfg,
		logger: logger,
		lanes:  make(map[int64]*lane),
		stop:   make(chan struct{}),
	}
}

// Execute runs fn on the user's lane and waits for its result.
// Operations of the same uid run one at a time in FIFO order; different
// users run in parallel.
// Execute 在用户队列中执行 fn 并等待结果
func (m *Manager) Execute(ctx context.Context, uid int64, fn func(ctx context.Context) error) error {
	timeout := m.config.WriteTimeout

	// the op runs under opCtx so an abandoned op is skipped in the queue,
	// and a running transaction is rolled back once opCtx is cancelled
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	op := writeOp{ctx: opCtx, fn: fn, result: make(chan error, 1), started: make(chan struct{})}

	if err := m.enqueue(uid, op); err != nil {
		return err
	}

	select {
	case err := <-op.result:
		return err
	case <-opCtx.Done():
	}

	cancel()
	failure := ErrWriteTimeout
	if ctx.Err() != nil {
		failure = ctx.Err()
	}
	return m.abandon(op, failure)
}

// abandon settles an op whose caller stopped waiting. opCtx is already
// cancelled: an op still queued is skipped by the worker; an op already
// running is waited for so the caller never sees a failure for a write
// that committed.
// abandon 调用方放弃等待后确定操作的真实结果
func (m *Manager) abandon(op writeOp, failure error) error {
	select {
	case <-op.started:
	default:
		return failure
	}
	if err := <-op.result; err != nil {
		return failure
	}
	return nil
}

func (m *Manager) enqueue(uid int64, op writeOp) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrWriteQueueClosed
	}

	l, ok := m.lanes[uid]
	if !ok {
		l = &lane{uid: uid, ch: make(chan writeOp, m.config.QueueCapacity)}
		m.lanes[uid] = l
		m.wg.Add(1)
		go m.worker(l)
		m.logger.Debug("created write queue for user", zap.Int64("uid", uid))
	}

	select {
	case l.ch <- op:
		return nil
	default:
		return ErrWriteQueueFull
	}
}

func (m *Manager) worker(l *lane) {
	defer m.wg.Done()

	idle := time.NewTimer(m.config.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case op := <-l.ch:
			m.run(op)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(m.config.IdleTimeout)
		case <-idle.C:
			// 只有在持锁确认队列为空后才能退出，否则新任务会丢失
			m.mu.Lock()
			if len(l.ch) > 0 {
				m.mu.Unlock()
				idle.Reset(m.config.IdleTimeout)
				continue
			}
			delete(m.lanes, l.uid)
			m.mu.Unlock()
			m.logger.Debug("write queue worker idle exit", zap.Int64("uid", l.uid))
			return
		case <-m.stop:
			m.drain(l)
			return
		}
	}
}

func (m *Manager) drain(l *lane) {
	for {
		select {
		case op := <-l.ch:
			m.run(op)
		default:
			return
		}
	}
}

func (m *Manager) run(op writeOp) {
	close(op.started)
	if err := op.ctx.Err(); err != nil {
		op.result <- err
		return
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("write operation panic",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			op.result <- fmt.Errorf("write operation panic: %v", r)
		}
	}()

	op.result <- op.fn(op.ctx)
}

// Shutdown stops accepting work, runs what is already queued and waits for
// the workers, bounded by ctx.
// Shutdown 关闭写队列管理器，等待已排队的操作完成
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.stop)
	m.mu.Unlock()

	m.logger.Info("write queue manager shutting down")

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return errors.Wrap(ctx.Err(), "writequeue shutdown")
	}
}

// QueueCount 当前活跃的用户队列数
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lanes)
}

// IsClosed 管理器是否已关闭
func (m *Manager) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

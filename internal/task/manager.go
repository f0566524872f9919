package task

import (
	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	app       *app.App
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(appContainer *app.App, sc *safe_close.SafeClose) *Manager {
	lg := appContainer.Logger()
	return &Manager{
		app:       appContainer,
		scheduler: NewScheduler(lg, sc),
		logger:    lg,
	}
}

// RegisterTasks 通过已注册的工厂创建任务
func (m *Manager) RegisterTasks() error {
	for _, factory := range GetFactories() {
		t, err := factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		m.scheduler.AddTask(t)
		m.logger.Info("task registered",
			zap.String("task", t.Name()),
			zap.Duration("interval", t.LoopInterval()))
	}
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}

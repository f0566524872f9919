// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/haierkeys/note-graph-service/internal/dao"
	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/service"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/tracer"
	"github.com/haierkeys/note-graph-service/pkg/util"
	"github.com/haierkeys/note-graph-service/pkg/writequeue"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	writeQueueMgr *writequeue.Manager

	// 链路追踪，未启用 Jaeger 时为 nil
	Tracer       opentracing.Tracer
	tracerCloser io.Closer

	// Repository 层
	UserRepo domain.UserRepository
	Store    domain.NoteGraphStore

	// Service 层
	UserService  service.UserService
	NoteService  service.NoteService
	GraphService service.GraphService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	StartTime time.Time

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewDatabaseConfig 从 AppConfig 提取 DAO 需要的数据库配置
func NewDatabaseConfig(cfg *AppConfig) dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
		Tracing:         cfg.Tracer.Jaeger.Enabled,
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	if cfg.Tracer.Jaeger.Enabled {
		t, closer, err := tracer.NewJaegerTracer(cfg.Tracer.Jaeger.ServiceName, cfg.Tracer.Jaeger.AgentHostPort)
		if err != nil {
			return nil, err
		}
		a.Tracer, a.tracerCloser = t, closer
	}

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(wqConfig, logger)

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, a.writeQueueMgr, logger)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey:     cfg.Security.AuthTokenKey,
		Issuer:        pkgapp.DefaultTokenIssuer,
		AccessExpiry:  cfg.GetTokenExpiry(),
		RefreshExpiry: cfg.GetRefreshTokenExpiry(),
	})

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.Store = dao.NewNoteGraphStore(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.NoteService = service.NewNoteService(a.Store, logger)
	a.GraphService = service.NewGraphService(a.Store, logger)

	logger.Info("App container initialized successfully",
		zap.String("database", cfg.Database.Type),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.Bool("jaeger", a.Tracer != nil))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Uptime 运行时长
func (a *App) Uptime() string {
	return util.FormatUptime(time.Since(a.StartTime))
}

// Ping 检查数据库连接
func (a *App) Ping(ctx context.Context) error {
	return a.Dao.Ping(ctx)
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Write Queue Manager -> Tracer -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownOnce.Do(func() {
		a.shutdownErr = a.shutdown(ctx)
	})
	return a.shutdownErr
}

func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error

	// 1. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 2. 刷新未上报的 span
	if a.tracerCloser != nil {
		if err := a.tracerCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("tracer close: %w", err))
		}
	}

	// 3. 关闭数据库连接
	if a.Dao != nil {
		if err := a.Dao.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		} else {
			a.logger.Info("Database connection closed")
		}
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

package routers

import (
	"net/http"
	"time"

	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/internal/middleware"
	"github.com/haierkeys/note-graph-service/internal/routers/api_router"
	"github.com/haierkeys/note-graph-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// authLimiter 登录/注册/刷新按客户端 IP 限流
func authLimiter(perSecond int) limiter.Face {
	if perSecond <= 0 {
		perSecond = 10
	}
	rule := func(path string) limiter.BucketRule {
		return limiter.BucketRule{
			Key:          path,
			FillInterval: time.Second,
			Capacity:     int64(perSecond),
			Quantum:      int64(perSecond),
		}
	}
	return limiter.NewClientLimiter().AddBuckets(
		rule("/api/signup"),
		rule("/api/login"),
		rule("/api/refresh"),
	)
}

// NewRouter 创建公开 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	r.Use(middleware.Cors(cfg.App.CorsAllowOrigins...))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Running")
	})

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware(middleware.TraceConfig{
			Enabled: cfg.Tracer.Enabled,
			Header:  cfg.Tracer.Header,
		}, appContainer.Tracer)) // Trace ID 中间件
		api.Use(middleware.Metrics())
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.ExposeErrorDetail(!appContainer.IsProductionMode()))
		api.Use(middleware.AccessLogWithLogger(lg))
		api.Use(middleware.RecoveryWithLogger(lg))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		graphHandler := api_router.NewGraphHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		auth := api.Group("", middleware.RateLimiter(authLimiter(cfg.App.AuthRateLimit)))
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
		auth.POST("/refresh", userHandler.Refresh)

		protected := api.Group("", middleware.UserAuthTokenWithManager(appContainer.TokenManager))
		protected.GET("/graph", graphHandler.Get)
		protected.POST("/notes", noteHandler.Create)
		protected.GET("/notes/:id", noteHandler.Get)
		protected.PUT("/notes/:id", noteHandler.Update)
		protected.DELETE("/notes/:id", noteHandler.Delete)
	}

	r.NoRoute(middleware.NoFound())

	return r
}

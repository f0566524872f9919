// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"strconv"

	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/internal/middleware"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// bind 参数绑定和验证，失败时直接输出 400
func (h *Handler) bind(c *gin.Context, method string, params interface{}) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn(method+".BindAndValid errs",
			zap.String(logger.FieldTraceID, middleware.GetTraceIDFromGin(c)),
			zap.Error(errs))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return false
	}
	return true
}

// uid 获取当前用户 ID，缺失时输出 401
func (h *Handler) uid(c *gin.Context, method string) (int64, bool) {
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error(method + " err uid=0")
		pkgapp.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
		return 0, false
	}
	return uid, true
}

// noteID 解析路径参数 :id，非正整数输出 400
func (h *Handler) noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// logError records error log, including Trace ID
// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Info(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
	)
}

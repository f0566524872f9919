// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"net/http"

	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/internal/dto"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := &dto.HealthResponse{
		Status:   "ok",
		Version:  h.App.Version().Version,
		Uptime:   h.App.Uptime(),
		Database: "ok",
		Instance: util.GetInstanceID(),
	}

	// 检查数据库连接
	if err := h.App.Ping(c.Request.Context()); err != nil {
		h.App.Logger().Warn("HealthHandler.Check database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(resp))
}

package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/internal/app"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
)

// GraphHandler 笔记图路由处理器
type GraphHandler struct {
	*Handler
}

// NewGraphHandler 创建 GraphHandler 实例
func NewGraphHandler(a *app.App) *GraphHandler {
	return &GraphHandler{Handler: NewHandler(a)}
}

// Get 获取当前用户的笔记图
// @Summary 获取笔记图
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} dto.GraphDTO "成功"
// @Router /api/graph [get]
func (h *GraphHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid, ok := h.uid(c, "GraphHandler.Get")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	graph, err := h.App.GraphService.Get(ctx, uid)
	if err != nil {
		h.logError(ctx, "GraphHandler.Get", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.Success.WithData(graph))
}

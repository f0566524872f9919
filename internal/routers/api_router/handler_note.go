package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/internal/dto"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// Get 获取单条笔记详情
// @Summary 获取笔记详情
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 404 {object} errors.AppError "笔记不存在"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid, ok := h.uid(c, "NoteHandler.Get")
	if !ok {
		return
	}
	id, ok := h.noteID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Create 创建笔记
// @Summary 创建笔记
// @Tags 笔记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "创建参数"
// @Success 201 {object} dto.NoteSummaryDTO "成功"
// @Failure 400 {object} errors.AppError "标题为空"
// @Failure 404 {object} errors.AppError "父笔记不存在"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	if !h.bind(c, "NoteHandler.Create", params) {
		return
	}
	uid, ok := h.uid(c, "NoteHandler.Create")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(note))
}

// Update 更新笔记标题、内容与父笔记
// @Summary 更新笔记
// @Tags 笔记
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path int true "笔记 ID"
// @Param params body dto.NoteUpdateRequest true "更新参数"
// @Success 200 {object} dto.NoteUpdateResponse "成功"
// @Failure 400 {object} errors.AppError "不能以自身为父笔记"
// @Failure 404 {object} errors.AppError "笔记或父笔记不存在"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	uid, ok := h.uid(c, "NoteHandler.Update")
	if !ok {
		return
	}
	id, ok := h.noteID(c)
	if !ok {
		return
	}
	if !h.bind(c, "NoteHandler.Update", params) {
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.NoteUpdateResponse{
		Message: response.Message(code.SuccessNoteUpdate),
		Note:    note,
	}))
}

// Delete 删除笔记及其全部链接
// @Summary 删除笔记
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} pkgapp.MessageRes "成功"
// @Failure 404 {object} errors.AppError "笔记不存在"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid, ok := h.uid(c, "NoteHandler.Delete")
	if !ok {
		return
	}
	id, ok := h.noteID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.SuccessNoteDelete)
}

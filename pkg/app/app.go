package app

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/errors"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// MessageRes 仅含消息的响应体
type MessageRes struct {
	Message string `json:"message"`
}

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// ToResponse writes codeObj with its HTTP status.
// Success codes carrying data write the data as the whole body, those
// without data write {message}. Error codes go through errors.ErrorResponse.
// ToResponse 输出到浏览器
func (r *Response) ToResponse(codeObj *code.Code) {
	if !codeObj.Status() {
		r.ToError(codeObj)
		return
	}

	r.Ctx.Set("status_code", codeObj.StatusCode())

	if codeObj.HaveData() {
		r.Ctx.JSON(codeObj.StatusCode(), codeObj.Data())
		return
	}
	r.Ctx.JSON(codeObj.StatusCode(), MessageRes{
		Message: codeObj.Lang.GetMessageFor(r.Ctx.GetString(errors.LangKey)),
	})
}

// ToError 输出错误响应
func (r *Response) ToError(err error) {
	errors.ErrorResponse(r.Ctx, err)
}

// Message 当前语言下 codeObj 的消息
func (r *Response) Message(codeObj *code.Code) string {
	return codeObj.Lang.GetMessageFor(r.Ctx.GetString(errors.LangKey))
}

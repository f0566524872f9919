package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/pkg/code"
)

// gin.Context keys shared with the middleware
// 与中间件共享的 gin.Context 键
const (
	// TraceIDKey 请求追踪 ID
	TraceIDKey = "trace_id"
	// LangKey 请求语言
	LangKey = "lang"
	// ExposeDetailKey 是否向客户端返回服务端错误详情
	ExposeDetailKey = "expose_error_detail"
)

// AppError 统一错误响应结构体
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Detail 错误详情（可选）
	Detail string `json:"error,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Status HTTP 状态码
	Status int `json:"-"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:    c.Code(),
		Message: c.Msg(),
		Detail:  strings.Join(c.Details(), ", "),
		Status:  c.StatusCode(),
		Cause:   cause,
	}
}

// FromError converts any error to an AppError. *code.Code anywhere in the
// chain keeps its number and status; everything else is an internal error
// whose text becomes the detail.
// FromError 将任意错误转换为 AppError
func FromError(err error, lang string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		e := NewAppError(codeErr, err)
		e.Message = codeErr.Lang.GetMessageFor(lang)
		return e
	}

	e := NewAppError(code.ErrorServerInternal, err)
	e.Message = code.ErrorServerInternal.Lang.GetMessageFor(lang)
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID 与语言，将错误转换为 AppError 并返回 JSON 响应
// Details of 5xx errors are hidden unless ExposeDetailKey is set.
func ErrorResponse(c *gin.Context, err error) {
	appErr := *FromError(err, c.GetString(LangKey))
	appErr.TraceID = c.GetString(TraceIDKey)

	if appErr.Status >= 500 && !c.GetBool(ExposeDetailKey) {
		appErr.Detail = ""
	}

	c.Set("status_code", appErr.Status)
	c.JSON(appErr.Status, &appErr)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

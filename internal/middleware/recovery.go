package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			var errorMsg string
			switch v := rec.(type) {
			case error:
				errorMsg = v.Error()
			default:
				errorMsg = fmt.Sprintf("%v", v)
			}

			lg.Error("Recovered from panic",
				zap.String("router", c.Request.URL.Path),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String(logger.FieldTraceID, c.GetString(TraceIDKey)),
				zap.Int64(logger.FieldUID, app.GetUID(c)),
				zap.String("panic_value", errorMsg),
				zap.String("stack", string(debug.Stack())),
			)

			// 返回统一的错误响应
			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
			c.Abort()
		}()

		c.Next()
	}
}

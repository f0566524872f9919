package middleware

import (
	"github.com/haierkeys/note-graph-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ExposeErrorDetail 控制 5xx 响应是否携带错误详情，仅建议在 debug 模式开启
func ExposeErrorDetail(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(errors.ExposeDetailKey, expose)
		c.Next()
	}
}

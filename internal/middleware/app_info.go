package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo 在上下文中记录服务名称与版本，并写入响应头
func AppInfo(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Header("X-App-Version", version)

		c.Next()
	}
}

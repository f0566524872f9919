package middleware

import (
	"strings"

	"github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthTokenWithManager 用户 Token 认证中间件
// Missing token answers 401, an invalid or expired one 403.
func UserAuthTokenWithManager(tm app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := tm.Parse(token)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		c.Set(app.ContextUserKey, user)

		c.Next()
	}
}

// extractToken 依次从 Authorization 头、token 头、authorization/token 查询参数读取令牌
// "Bearer " 前缀可省略
func extractToken(c *gin.Context) string {
	var token string

	if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s = c.GetHeader("Token"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

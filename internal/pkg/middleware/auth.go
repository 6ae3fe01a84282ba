package middleware

import (
	"net/http"
	"strings"

	"blog_api/internal/pkg/session"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextUserKey 上下文中的用户 ID 键
const ContextUserKey = "userID"

// extractToken 从 Cookie 或 Authorization 头提取会话令牌
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName()); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth 认证中间件，未登录请求直接拒绝
func RequireAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Detail(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Detail(c, http.StatusUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// OptionalAuth 可选认证，已登录则注入用户 ID，匿名请求放行
// 帖子列表等接口依赖它区分可见范围
func OptionalAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if userID, err := sessions.Resolve(c.Request.Context(), token); err == nil {
				c.Set(ContextUserKey, userID)
			}
		}
		c.Next()
	}
}

// CurrentUserID 读取上下文中的用户 ID，0 表示匿名
func CurrentUserID(c *gin.Context) uint {
	val, ok := c.Get(ContextUserKey)
	if !ok {
		return 0
	}
	if id, ok := val.(uint); ok {
		return id
	}
	return 0
}

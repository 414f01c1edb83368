package middleware

import (
	"net/http"
	"strings"

	"Aurora_Admin/internal/pkg"
	rds "Aurora_Admin/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminIDKey    = "admin_id"
	ContextAdminEmailKey = "admin_email"
	ContextAdminRoleKey  = "admin_role"
)

// AuthMiddleware 校验后台 JWT，并和 redis 里的登录态比对（单点登录）
func AuthMiddleware(sessions *rds.AdminSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		originToken, err := sessions.GetAdminToken(c.Request.Context(), claims.AdminID)
		if err != nil || originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account has been logged in elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后顺延过期时间
		if err := sessions.ExtendAdminToken(c.Request.Context(), claims.AdminID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextAdminIDKey, claims.AdminID)
		c.Set(ContextAdminEmailKey, claims.Email)
		c.Set(ContextAdminRoleKey, claims.Role)
		c.Next()
	}
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"Aurora_Admin/internal/middleware"
	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

// adminEmail 从中间件注入的上下文取当前操作员邮箱
func adminEmail(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextAdminEmailKey); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// respondErr 服务层错误到 HTTP 状态码的统一映射；
// 库层错误只回通用文案，细节落在服务端日志
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	case errors.Is(err, service.ErrScoreOutOfBand):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "score out of band"})
	case errors.Is(err, service.ErrInvalidParams):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
	default:
		log.Printf("request failed: %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

package handler

import (
	"net/http"
	"strconv"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List 审计日志游标分页，cursor=0 为第一页
func (h *AuditHandler) List(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, next, err := h.svc.List(c.Request.Context(), cursor, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "nextCursor": next})
}

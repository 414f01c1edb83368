package handler

import (
	"net/http"
	"strconv"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type BroadcastHandler struct {
	svc *service.BroadcastService
}

func NewBroadcastHandler(svc *service.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{svc: svc}
}

type BroadcastReq struct {
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience"`
}

// Send 群发邮件；同步投递，大名单会等一会儿
func (h *BroadcastHandler) Send(c *gin.Context) {
	var req BroadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if req.Audience == "" {
		req.Audience = "all"
	}

	b, err := h.svc.Send(c.Request.Context(), adminEmail(c), req.Subject, req.Body, req.Audience)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": b.ID, "sent": b.SentCount, "failed": b.FailedCount})
}

func (h *BroadcastHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"broadcasts": list, "page": page, "size": size})
}

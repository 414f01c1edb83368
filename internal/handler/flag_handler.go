package handler

import (
	"net/http"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type FlagHandler struct {
	svc *service.FlagService
}

func NewFlagHandler(svc *service.FlagService) *FlagHandler {
	return &FlagHandler{svc: svc}
}

type FlagReq struct {
	Enabled     *bool  `json:"enabled" binding:"required"`
	Description string `json:"description"`
}

func (h *FlagHandler) List(c *gin.Context) {
	flags, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

// Upsert 新建和改值走同一个口
func (h *FlagHandler) Upsert(c *gin.Context) {
	var req FlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.svc.Upsert(c.Request.Context(), adminEmail(c), c.Param("key"), *req.Enabled, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *FlagHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), adminEmail(c), c.Param("key")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

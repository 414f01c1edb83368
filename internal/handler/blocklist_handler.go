package handler

import (
	"net/http"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type BlocklistHandler struct {
	svc *service.BlocklistService
}

func NewBlocklistHandler(svc *service.BlocklistService) *BlocklistHandler {
	return &BlocklistHandler{svc: svc}
}

type BlockIPReq struct {
	IP     string `json:"ip" binding:"required"`
	Reason string `json:"reason"`
}

type BlockDeviceReq struct {
	DeviceID string `json:"deviceId" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *BlocklistHandler) ListIPs(c *gin.Context) {
	list, err := h.svc.ListIPs(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ips": list})
}

func (h *BlocklistHandler) AddIP(c *gin.Context) {
	var req BlockIPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.AddIP(c.Request.Context(), adminEmail(c), req.IP, req.Reason); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *BlocklistHandler) RemoveIP(c *gin.Context) {
	if err := h.svc.RemoveIP(c.Request.Context(), adminEmail(c), c.Param("ip")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}

func (h *BlocklistHandler) ListDevices(c *gin.Context) {
	list, err := h.svc.ListDevices(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": list})
}

func (h *BlocklistHandler) AddDevice(c *gin.Context) {
	var req BlockDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.AddDevice(c.Request.Context(), adminEmail(c), req.DeviceID, req.Reason); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *BlocklistHandler) RemoveDevice(c *gin.Context) {
	if err := h.svc.RemoveDevice(c.Request.Context(), adminEmail(c), c.Param("deviceId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}

package handler

import (
	"net/http"
	"strconv"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type ArtStationHandler struct {
	svc   *service.GenerationService
	score *service.ScoreService
}

func NewArtStationHandler(svc *service.GenerationService, score *service.ScoreService) *ArtStationHandler {
	return &ArtStationHandler{svc: svc, score: score}
}

type BulkRemoveReq struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// List 精选流：默认按评分倒序，mode=recent 按时间倒序
func (h *ArtStationHandler) List(c *gin.Context) {
	filter, owner, ok := parseListFilter(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.svc.ListFeed(c.Request.Context(), filter, owner, c.Query("cursor"), c.Query("mode"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Score 精选端打分，档位比审核端紧
func (h *ArtStationHandler) Score(c *gin.Context) {
	var req ScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.score.SetScore(c.Request.Context(), adminEmail(c), c.Param("id"), *req.Score,
		service.ArtStationScoreMin, service.ArtStationScoreMax)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Remove 从精选流移除等于撤分
func (h *ArtStationHandler) Remove(c *gin.Context) {
	if err := h.score.ClearScore(c.Request.Context(), adminEmail(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}

// BulkRemove 批量移除：逐条结果返回，永远 200
func (h *ArtStationHandler) BulkRemove(c *gin.Context) {
	var req BulkRemoveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	results := h.score.BulkClearScore(c.Request.Context(), adminEmail(c), req.IDs)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

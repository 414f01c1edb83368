package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type GenerationHandler struct {
	svc   *service.GenerationService
	score *service.ScoreService
}

func NewGenerationHandler(svc *service.GenerationService, score *service.ScoreService) *GenerationHandler {
	return &GenerationHandler{svc: svc, score: score}
}

type ScoreReq struct {
	Score *float64 `json:"score" binding:"required"`
}

type BulkScoreReq struct {
	IDs   []string `json:"ids" binding:"required,min=1"`
	Score *float64 `json:"score" binding:"required"`
}

// List 审核列表：全部过滤条件可选，游标续页
func (h *GenerationHandler) List(c *gin.Context) {
	filter, owner, ok := parseListFilter(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.svc.List(c.Request.Context(), filter, owner, c.Query("cursor"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Score 打分接口，审核端档位
func (h *GenerationHandler) Score(c *gin.Context) {
	var req ScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.score.SetScore(c.Request.Context(), adminEmail(c), c.Param("id"), *req.Score,
		service.GenerationScoreMin, service.GenerationScoreMax)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Unscore 撤分接口
func (h *GenerationHandler) Unscore(c *gin.Context) {
	if err := h.score.ClearScore(c.Request.Context(), adminEmail(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// BulkScore 批量打分：逐条结果返回，永远 200
func (h *GenerationHandler) BulkScore(c *gin.Context) {
	var req BulkScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	results := h.score.BulkSetScore(c.Request.Context(), adminEmail(c), req.IDs, *req.Score,
		service.GenerationScoreMin, service.GenerationScoreMax)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// parseListFilter 解析列表过滤参数；非法参数直接写 400 并返回 ok=false
func parseListFilter(c *gin.Context) (service.ListFilter, string, bool) {
	var f service.ListFilter

	for _, raw := range c.QueryArray("kind") {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				f.Kinds = append(f.Kinds, k)
			}
		}
	}
	f.Model = c.Query("model")
	f.Status = c.Query("status")
	f.Search = c.Query("search")
	f.UnscoredOnly = c.Query("unscoredOnly") == "true"

	if v := c.Query("dateStart"); v != "" {
		t, ok := parseDate(v, false)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid dateStart"})
			return f, "", false
		}
		f.DateStart = &t
	}
	if v := c.Query("dateEnd"); v != "" {
		t, ok := parseDate(v, true)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid dateEnd"})
			return f, "", false
		}
		f.DateEnd = &t
	}

	if v := c.Query("minScore"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid minScore"})
			return f, "", false
		}
		f.MinScore = &s
	}
	if v := c.Query("maxScore"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid maxScore"})
			return f, "", false
		}
		f.MaxScore = &s
	}

	return f, c.Query("owner"), true
}

// parseDate 接受 RFC3339 或纯日期；纯日期时 end 取当天最后一纳秒（两端含当天）
func parseDate(v string, end bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}

package handler

import (
	"net/http"
	"strconv"

	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type ModerationReq struct {
	Reason string `json:"reason"`
}

type CreditsReq struct {
	Delta  *int64 `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List 用户列表游标分页，cursor 为上一页最后一条的 uid
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, next, err := h.svc.ListUsers(c.Request.Context(), c.Query("cursor"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list, "nextCursor": next})
}

func (h *UserHandler) Suspend(c *gin.Context)   { h.setSuspended(c, true) }
func (h *UserHandler) Unsuspend(c *gin.Context) { h.setSuspended(c, false) }

func (h *UserHandler) setSuspended(c *gin.Context, suspended bool) {
	var req ModerationReq
	_ = c.ShouldBindJSON(&req) // reason 可选，空 body 也接受

	err := h.svc.SetSuspended(c.Request.Context(), adminEmail(c), c.Param("uid"), suspended, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) Ban(c *gin.Context)   { h.setBanned(c, true) }
func (h *UserHandler) Unban(c *gin.Context) { h.setBanned(c, false) }

func (h *UserHandler) setBanned(c *gin.Context, banned bool) {
	var req ModerationReq
	_ = c.ShouldBindJSON(&req)

	err := h.svc.SetBanned(c.Request.Context(), adminEmail(c), c.Param("uid"), banned, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) Warn(c *gin.Context) {
	var req ModerationReq
	_ = c.ShouldBindJSON(&req)

	count, err := h.svc.Warn(c.Request.Context(), adminEmail(c), c.Param("uid"), req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warningCount": count})
}

func (h *UserHandler) AdjustCredits(c *gin.Context) {
	var req CreditsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	balance, err := h.svc.AdjustCredits(c.Request.Context(), adminEmail(c), c.Param("uid"), *req.Delta, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creditBalance": balance})
}

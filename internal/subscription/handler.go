package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/middleware"
	"github.com/sandeshm/portfolio-backend/utils"
)

type Handler struct {
	Service *Service
	cfg     *config.Config
}

func NewHandler(s *Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, cfg: cfg}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	msg := "internal server error"
	if !h.cfg.IsProduction() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}

// ===========================
// 🎯 Subscribe - POST /subscription
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	sub, created, err := h.Service.Subscribe(&req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": []gin.H{{"field": "email", "message": err.Error()}}})
		case errors.Is(err, ErrAlreadySubscribed):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "subscription": sub})
}

// ===========================
// 📄 List - GET /subscription?status=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	subs, total, err := h.Service.List(c.Query("status"), limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"subscriptions": subs,
		"pagination":    utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// 📊 Stats - GET /subscription/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ===========================
// 🚪 Unsubscribe - PATCH /subscription/:id/unsubscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid subscription ID"})
		return
	}

	var req UnsubscribeRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	sub, err := h.Service.Unsubscribe(uint(id), req.Reason)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "subscription not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// ===========================
// 🔗 One-click unsubscribe - GET /subscription/unsubscribe?token=
func (h *Handler) UnsubscribeByToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing token"})
		return
	}

	_, err := h.Service.UnsubscribeByToken(token, "one-click link")
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "unknown token"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "you have been unsubscribed"})
}

// ===========================
// 🔁 Reactivate - PATCH /subscription/:id/reactivate
func (h *Handler) Reactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid subscription ID"})
		return
	}

	sub, err := h.Service.Reactivate(uint(id))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "subscription not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// ===========================
// ❌ Delete - DELETE /subscription/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid subscription ID"})
		return
	}

	if err := h.Service.Delete(uint(id), middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "subscription not found"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "subscription deleted"})
}

package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/middleware"
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
// 🔐 Login - POST /admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email and password are required"})
		return
	}

	resp, err := h.Service.Login(&req, middleware.GetIPFromContext(c))
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
		"admin":     resp.Admin,
	})
}

// ===========================
// 👤 Me - GET /admin/me (auth required)
func (h *Handler) Me(c *gin.Context) {
	idVal, exists := c.Get("admin_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}
	id, _ := idVal.(uint)

	a, err := h.Service.Me(id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": a})
}

package contact

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

// internalError hides detail in production deployments
func (h *Handler) internalError(c *gin.Context, err error) {
	msg := "internal server error"
	if !h.cfg.IsProduction() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}

// ===========================
// 🎯 Create Contact - POST /contact
func (h *Handler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	contact, err := h.Service.Create(&req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": verr.Fields})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "contact": contact})
}

// ===========================
// 📄 List Contacts - GET /contact?status=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)
	status := c.Query("status")

	contacts, total, err := h.Service.List(status, limit, offset)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": verr.Fields})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"contacts":   contacts,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// 📊 Stats - GET /contact/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ===========================
// 🔍 Get Contact - GET /contact/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid contact ID"})
		return
	}

	contact, err := h.Service.GetByID(uint(id))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "contact not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact})
}

// ===========================
// 🛠 Update Contact - PATCH /contact/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid contact ID"})
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	contact, err := h.Service.Update(uint(id), &req, middleware.GetIPFromContext(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "contact not found"})
		return
	}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": verr.Fields})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact})
}

// ===========================
// ❌ Delete Contact - DELETE /contact/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid contact ID"})
		return
	}

	if err := h.Service.Delete(uint(id), middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "contact not found"})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "contact deleted"})
}

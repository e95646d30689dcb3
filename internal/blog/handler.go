package blog

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

func parseFilters(c *gin.Context) ListFilters {
	filters := ListFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if f := c.Query("featured"); f != "" {
		v := f == "true"
		filters.Featured = &v
	}
	return filters
}

// ===========================
// 📄 Public list - GET /blog?category=&featured=&search=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	blogs, total, err := h.Service.List(parseFilters(c), limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"blogs":      blogs,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// 📄 Admin list (includes drafts) - GET /blog/admin
func (h *Handler) ListAdmin(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	blogs, total, err := h.Service.ListAdmin(parseFilters(c), limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"blogs":      blogs,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// ⭐ Featured - GET /blog/featured?limit=
func (h *Handler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	blogs, err := h.Service.Featured(limit)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blogs": blogs})
}

// ===========================
// 🗂 Categories - GET /blog/categories
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.Service.Categories()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// ===========================
// 📊 Stats - GET /blog/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ===========================
// 🔍 Get by slug (public read, bumps views) - GET /blog/slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	b, err := h.Service.GetBySlug(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "blog post not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blog": b})
}

// ===========================
// 👍 Like - POST /blog/:id/like
func (h *Handler) Like(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid blog ID"})
		return
	}

	likes, err := h.Service.Like(uint(id))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "blog post not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "likes": likes})
}

// ===========================
// 🎯 Create - POST /blog (admin)
func (h *Handler) Create(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	b, err := h.Service.Create(&req, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrSlugConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "blog": b})
}

// ===========================
// 🛠 Update - PUT /blog/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid blog ID"})
		return
	}

	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	b, err := h.Service.Update(uint(id), &req, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "blog post not found"})
		case errors.Is(err, ErrSlugConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blog": b})
}

// ===========================
// ❌ Delete - DELETE /blog/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid blog ID"})
		return
	}

	if err := h.Service.Delete(uint(id), middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "blog post not found"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "blog post deleted"})
}

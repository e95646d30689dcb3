package event

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

func parseEventID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

func parseEventFilters(c *gin.Context) ListFilters {
	filters := ListFilters{
		EventType: c.Query("eventType"),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
	}
	if f := c.Query("featured"); f != "" {
		v := f == "true"
		filters.Featured = &v
	}
	if u := c.Query("upcoming"); u != "" {
		v := u == "true"
		filters.Upcoming = &v
	}
	return filters
}

// ===========================
// 📄 Public list - GET /events?eventType=&category=&featured=&upcoming=&search=
func (h *Handler) List(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	events, total, err := h.Service.List(parseEventFilters(c), limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"events":     events,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// 📄 Admin list (includes drafts) - GET /events/admin
func (h *Handler) ListAdmin(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	events, total, err := h.Service.ListAdmin(parseEventFilters(c), limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"events":     events,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// 📅 Upcoming - GET /events/upcoming?limit=
func (h *Handler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	events, err := h.Service.Upcoming(limit)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// ===========================
// ⭐ Featured - GET /events/featured?limit=
func (h *Handler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	events, err := h.Service.Featured(limit)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// ===========================
// 🔍 Get by slug - GET /events/slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	e, err := h.Service.GetBySlug(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// 🎟 Register - POST /events/:id/register (public)
func (h *Handler) Register(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRegistration):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrEventFull):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Event is full"})
		default:
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "registration": resp.Registration, "payment": gin.H{
		"orderId":     resp.OrderID,
		"razorpayKey": resp.RazorpayKey,
		"amountPaise": resp.AmountPaise,
	}})
}

// ===========================
// 🔍 Check registration - GET /events/:id/check?email= (public)
func (h *Handler) CheckRegistration(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email query parameter is required"})
		return
	}

	reg, err := h.Service.CheckRegistration(id, email)
	if errors.Is(err, ErrRegistrationNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": true, "registered": false})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "registered": true, "registration": reg})
}

// ===========================
// 🎯 Create - POST /events (admin)
func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.Create(&req, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid), errors.Is(err, ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrSlugConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			// date parse errors are client mistakes too
			if err.Error() == "invalid date format. Use RFC3339" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": e})
}

// ===========================
// 🛠 Update - PUT /events/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.Update(id, &req, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrCapacityBelowCount):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, ErrSlugConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			if err.Error() == "invalid date format. Use RFC3339" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// 🔁 Toggle publish - PATCH /events/:id/publish (admin)
func (h *Handler) TogglePublish(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	e, err := h.Service.TogglePublish(id, middleware.GetIPFromContext(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// ⭐ Toggle featured - PATCH /events/:id/feature (admin)
func (h *Handler) ToggleFeatured(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	e, err := h.Service.ToggleFeatured(id, middleware.GetIPFromContext(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// ===========================
// ❌ Delete - DELETE /events/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(id, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "event deleted"})
}

// ===========================
// 📄 Registrations list - GET /events/:id/registrations (admin)
func (h *Handler) ListRegistrations(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}
	page, limit, offset := utils.ParsePagination(c)

	regs, total, err := h.Service.ListRegistrations(id, limit, offset)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"registrations": regs,
		"pagination":    utils.NewPaginationMeta(page, limit, total),
	})
}

// ===========================
// ❌ Delete registration - DELETE /events/registrations/:regId (admin)
func (h *Handler) DeleteRegistration(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("regId"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid registration ID"})
		return
	}

	if err := h.Service.DeleteRegistration(uint(id), middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "registration not found"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registration deleted"})
}

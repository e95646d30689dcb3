package auditlog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/utils"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 List - GET /auditlogs (admin)
func (h *Handler) List(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	logs, total, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"logs":       logs,
		"pagination": utils.NewPaginationMeta(page, limit, total),
	})
}

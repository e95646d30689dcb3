package reports

import (
	"net/http"
	"strings"

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

// ===========================
// 📊 Export - GET /reports/:type/export?format=csv|excel|pdf (admin)
func (h *Handler) Export(c *gin.Context) {
	reportType := c.Param("type")
	format := c.DefaultQuery("format", FormatCSV)

	switch reportType {
	case ReportTypeContacts, ReportTypeSubscribers, ReportTypeRegistrations:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown report type: " + reportType})
		return
	}
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown format: " + format})
		return
	}

	fileBytes, filename, contentType, err := h.Service.Generate(reportType, format, middleware.GetIPFromContext(c))
	if err != nil {
		if strings.HasPrefix(err.Error(), "unsupported") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		msg := "internal server error"
		if !h.cfg.IsProduction() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, fileBytes)
}

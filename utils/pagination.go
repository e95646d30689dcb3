package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationMeta is attached to every paginated list response
type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ParsePagination reads ?page=&limit= with sane bounds
func ParsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// NewPaginationMeta computes page count from the filtered total
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}

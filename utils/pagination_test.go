package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	page, limit, offset := ParsePagination(ctxWithQuery("page=2&limit=10"))
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)

	// Defaults
	page, limit, offset = ParsePagination(ctxWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	// Bounds
	page, limit, _ = ParsePagination(ctxWithQuery("page=-3&limit=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestNewPaginationMeta(t *testing.T) {
	// 15 records at 10 per page -> 2 pages
	meta := NewPaginationMeta(2, 10, 15)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(15), meta.Total)
	assert.Equal(t, 2, meta.Pages)

	assert.Equal(t, 0, NewPaginationMeta(1, 10, 0).Pages)
	assert.Equal(t, 1, NewPaginationMeta(1, 10, 10).Pages)
}

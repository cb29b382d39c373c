package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(12, 2, 5)
	require.EqualValues(t, 12, p.TotalItems)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 2, p.CurrentPage)
	require.Equal(t, 5, p.ItemsPerPage)
	require.True(t, p.HasNext)
	require.True(t, p.HasPrevious)
}

func TestNewPagination_FirstAndLastPage(t *testing.T) {
	first := NewPagination(30, 1, 10)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrevious)

	last := NewPagination(30, 3, 10)
	require.False(t, last.HasNext)
	require.True(t, last.HasPrevious)
}

func TestNewPagination_Empty(t *testing.T) {
	p := NewPagination(0, 1, 10)
	require.EqualValues(t, 0, p.TotalItems)
	require.Equal(t, 0, p.TotalPages)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrevious)
}

func TestNewPagination_DefendsBadInput(t *testing.T) {
	p := NewPagination(5, 0, -1)
	require.Equal(t, DefaultPage, p.CurrentPage)
	require.Equal(t, DefaultLimit, p.ItemsPerPage)
}

func TestNewAllPagination(t *testing.T) {
	p := NewAllPagination(42)
	require.EqualValues(t, 42, p.TotalItems)
	require.Equal(t, 1, p.TotalPages)
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, 42, p.ItemsPerPage)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrevious)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 10)
	require.EqualValues(t, 20, offset)
	require.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(0, 500)
	require.EqualValues(t, 0, offset)
	require.Equal(t, DefaultLimit, limit)
}

func TestParseListParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/events?page=2&limit=25&all=true", nil)

	page, limit, all := ParseListParams(c)
	require.Equal(t, 2, page)
	require.Equal(t, 25, limit)
	require.True(t, all)
}

func TestParseListParams_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/events?page=abc&limit=9999", nil)

	page, limit, all := ParseListParams(c)
	require.Equal(t, DefaultPage, page)
	require.Equal(t, DefaultLimit, limit)
	require.False(t, all)
}

package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekoca/volunteerhub/internal/app/models/dto"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1 // page numbers are 1-based
)

// ParseListParams extracts page, limit and the all flag from the request.
func ParseListParams(c *gin.Context) (page, limit int, all bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	all = c.Query("all") == "true"
	return page, limit, all
}

// CalculateOffsetLimit converts a 1-based page number to a SQL offset.
func CalculateOffsetLimit(page, limit int) (offset uint64, boundedLimit int) {
	if limit <= 0 || limit > MaxLimit {
		boundedLimit = DefaultLimit
	} else {
		boundedLimit = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * boundedLimit)
	return offset, boundedLimit
}

// NewPagination builds the standard pagination envelope metadata.
func NewPagination(totalItems int64, page, limit int) dto.Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	}

	return dto.Pagination{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}
}

// NewAllPagination degenerates the envelope to a single page holding
// every match, for all=true listings.
func NewAllPagination(totalItems int64) dto.Pagination {
	return dto.Pagination{
		TotalItems:   totalItems,
		TotalPages:   1,
		CurrentPage:  1,
		ItemsPerPage: int(totalItems),
		HasNext:      false,
		HasPrevious:  false,
	}
}

package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultPageSize = 10

type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationParams normalizes raw page/limit values.
func NewPaginationParams(page, limit int) PaginationParams {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	return PaginationParams{
		Page:     page,
		PageSize: limit,
		Offset:   (page - 1) * limit,
	}
}

// GetPaginationParams extracts pagination parameters from the request query.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return NewPaginationParams(page, limit)
}

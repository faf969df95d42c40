package server

import (
	"strconv"
	"strings"

	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parsePagination reads page and limit. Missing values fall back to the
// defaults applied by the services; malformed values are rejected.
func parsePagination(c *gin.Context) (int, int, error) {
	page, err := parseOptionalInt(c.Query("page"))
	if err != nil || (page != nil && *page < 1) {
		return 0, 0, pagination.ErrInvalidPage
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || (limit != nil && (*limit < 1 || *limit > pagination.MaxLimit)) {
		return 0, 0, pagination.ErrInvalidLimit
	}

	p, l := pagination.DefaultPage, pagination.DefaultLimit
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = *limit
	}
	if _, err := (pagination.Pagination{Page: p, Limit: l}).Normalize(); err != nil {
		return 0, 0, err
	}
	return p, l, nil
}

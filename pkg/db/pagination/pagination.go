package pagination

import "errors"

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 500

	// MaxOffset bounds (page-1)*limit so offsets stay positive on every platform.
	MaxOffset = 1<<31 - 1
)

var (
	ErrInvalidPage  = errors.New("invalid_page")
	ErrInvalidLimit = errors.New("invalid_limit")
)

// Pagination is a 1-indexed page request.
type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=25"`
}

type PageInfo struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Normalize fills zero values with defaults and rejects out of range input.
func (p Pagination) Normalize() (Pagination, error) {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Page < 1 {
		return p, ErrInvalidPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return p, ErrInvalidLimit
	}
	if p.Page-1 > MaxOffset/p.Limit {
		return p, ErrInvalidPage
	}
	return p, nil
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

func BuildPageInfo(p Pagination, total int64) PageInfo {
	totalPages := 0
	if p.Limit > 0 && total > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageInfo{
		CurrentPage:     p.Page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    p.Limit,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}

// Slice returns the window of items addressed by p.
func Slice[T any](items []T, p Pagination) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end < start || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps Offset and Offset+Limit inside int32.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Pagination represents pagination metadata
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
	Offset  int   `json:"-"`
}

// PaginationRequest represents a pagination request from client
type PaginationRequest struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"per_page" form:"per_page"`
}

// New creates a new pagination instance
func New(page, limit int, total int64) *Pagination {
	req := Normalize(page, limit)

	pages := int(math.Ceil(float64(total) / float64(req.Limit)))
	if pages < 1 {
		pages = 1
	}

	return &Pagination{
		Page:    req.Page,
		Limit:   req.Limit,
		Total:   total,
		Pages:   pages,
		HasNext: req.Page < pages,
		HasPrev: req.Page > 1,
		Offset:  req.Offset(),
	}
}

// Normalize applies the default page size and clamps it to MaxLimit. Page
// is clamped to 1..MaxPage.
func Normalize(page, limit int) PaginationRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationRequest{Page: page, Limit: limit}
}

// FromRequest creates pagination from HTTP request parameters
func FromRequest(pageStr, limitStr string) PaginationRequest {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	return Normalize(page, limit)
}

// Offset returns the number of rows to skip. It never overflows, even for a
// request that did not go through Normalize.
func (r PaginationRequest) Offset() int {
	n := Normalize(r.Page, r.Limit)
	return (n.Page - 1) * n.Limit
}

package services

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Offset well inside int range for any page size.
	MaxPage         = 1 << 20
)

// PageRequest is a validated page/pageSize pair.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps raw values: page defaults to 1 and stops at MaxPage,
// pageSize defaults to 10 and never exceeds 100.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResult is one page of T plus the totals needed to render a pager.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Paginate counts the rows matched by query and loads the requested page in
// the given order. query may carry Where clauses; it is not mutated.
func Paginate[T any](query *gorm.DB, req PageRequest, order string) (PageResult[T], error) {
	q := query.Session(&gorm.Session{})

	var total int64
	if err := q.Model(new(T)).Count(&total).Error; err != nil {
		return PageResult[T]{}, err
	}

	items := make([]T, 0, req.PageSize)
	if err := q.Order(order).Offset(req.Offset()).Limit(req.PageSize).Find(&items).Error; err != nil {
		return PageResult[T]{}, err
	}

	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(req.PageSize))),
	}, nil
}

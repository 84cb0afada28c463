package service

import (
	"fmt"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// PageRequest is a 1-indexed page of a given size.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset is the number of items before the first item of the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageRequest) validate(maxPageSize int) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", model.ErrInvalidInput)
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", model.ErrInvalidInput, maxPageSize)
	}
	return nil
}

// buildPage wraps one page of items with paging metadata computed from total.
// An empty result still reports one page.
func buildPage(items []model.AnnotatedItem, total int, p PageRequest) *model.PagedResult {
	totalPages := 1
	if total > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	if items == nil {
		items = []model.AnnotatedItem{}
	}

	res := &model.PagedResult{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		Page:        p.Page,
		PageSize:    p.PageSize,
		HasPrevPage: p.Page > 1,
		HasNextPage: p.Page < totalPages,
	}
	if res.HasPrevPage {
		prev := p.Page - 1
		res.PrevPage = &prev
	}
	if res.HasNextPage {
		next := p.Page + 1
		res.NextPage = &next
	}
	return res
}

// pageSlice returns the window of items covered by p.
func pageSlice[T any](items []T, p PageRequest) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

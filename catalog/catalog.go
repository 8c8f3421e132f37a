// Package catalog serves the admin listing: one page of photos for a
// day plus the exact total the pager and "select all" need.
package catalog

import (
	"context"

	"fotostand/index"
	"fotostand/models"
)

// DefaultPageSize matches the admin panel's list length.
const DefaultPageSize = 10

// Page is one window of the filtered result set. Total counts every
// match for the day (+ number filter), not just this page.
type Page struct {
	Items []models.Photo
	Total int64
}

// Service reads pages straight from the index on every call; there is no
// cache, so a refresh is always authoritative.
type Service struct {
	Index    index.PhotoIndex
	PageSize int64
}

// List returns page (1-based) of the day's photos ordered by ascending
// photo number, optionally filtered to an exact number.
func (s *Service) List(ctx context.Context, day string, number *int, page int64) (Page, error) {
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.Index.Query(ctx, index.Query{
		Day:       day,
		Number:    number,
		Ascending: true,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total}, nil
}

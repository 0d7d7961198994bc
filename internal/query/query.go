// Package query applies status filtering and page-based slicing over a
// listing snapshot. It is pure: it never touches the store and keeps no
// state between calls.
package query

import (
	"github.com/avetisov/modera/internal/models"
)

// StatusAll is the sentinel filter value meaning "no status filter".
const StatusAll = "all"

// Default page parameters, applied when the caller passes zero values.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Params selects a page of listings.
type Params struct {
	// Status filters by moderation state. Empty or StatusAll disables
	// filtering.
	Status string
	// Page is 1-indexed.
	Page int
	// PageSize is the number of items per page.
	PageSize int
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is a page of listings plus its pagination metadata.
type Result struct {
	Items      []models.Listing
	Pagination Pagination
}

// Paginate filters snapshot by params.Status, then slices out the requested
// page. Filtering happens before pagination; Total and TotalPages describe
// the filtered sequence. Out-of-range pages yield empty items, not an error.
func Paginate(snapshot []models.Listing, params Params) Result {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	size := params.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	filtered := snapshot
	if params.Status != "" && params.Status != StatusAll {
		filtered = make([]models.Listing, 0, len(snapshot))
		for _, l := range snapshot {
			if string(l.Status) == params.Status {
				filtered = append(filtered, l)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]models.Listing, end-start)
	copy(items, filtered[start:end])

	return Result{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      size,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

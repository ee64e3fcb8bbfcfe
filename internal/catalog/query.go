package catalog

import (
	"sort"
	"strings"

	"github.com/thangamari27/zenmart/internal/models"
)

// Sort keys accepted by Query.
const (
	SortNone      = ""
	SortTitle     = "title"
	SortPrice     = "price"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// DefaultPageSize is the page size used when a filter leaves it unset.
const DefaultPageSize = 12

// Filter describes one catalog query: search, category, sort key and a
// 1-indexed page.
type Filter struct {
	Search   string
	Category string
	Sort     string
	Page     int
	PageSize int
}

// Result is one page of a catalog query.
type Result struct {
	Items      []models.Product
	TotalCount int
	TotalPages int
}

// Query filters, sorts and paginates products. It is a pure function:
// identical inputs always yield identical ordering. Search is a
// case-insensitive substring match on title or description, category is an
// exact slug match, and the sort is stable so that ties keep their prior
// relative order. A page beyond range yields an empty slice, not an error.
func Query(products []models.Product, f Filter) Result {
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case SortPrice:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortTitle:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Title < filtered[j].Title
		})
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating.Rate > filtered[j].Rating.Rate
		})
	}

	totalPages := (len(filtered) + f.PageSize - 1) / f.PageSize

	start := (f.Page - 1) * f.PageSize
	if start >= len(filtered) {
		return Result{Items: []models.Product{}, TotalCount: len(filtered), TotalPages: totalPages}
	}
	end := start + f.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Items:      filtered[start:end],
		TotalCount: len(filtered),
		TotalPages: totalPages,
	}
}

// ClampPage clamps a requested page number into [1, totalPages]. When there
// are no pages at all the page is 1.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

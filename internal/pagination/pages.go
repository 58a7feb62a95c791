package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize matches the catalog page size used by tag listings.
const DefaultPageSize = 32

// TotalPages returns ceil(totalItems / pageSize). Zero items means zero pages.
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Offset returns the zero-based item offset of a 1-indexed page.
func Offset(page, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// ParsePage reads a 1-indexed page number from a query value, defaulting to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Clamp forces page into [1, totalPages]. With no pages, the only valid
// target is page 1.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

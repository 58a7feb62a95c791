package pagination

import (
	"net/url"
	"strconv"
)

// Pagination is everything a template needs to draw a pagination control.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
	Window      Window
	HasPrev     bool
	PrevPage    int
	HasNext     bool
	NextPage    int
	BaseURL     string
}

// New builds the view model for a listing. The current page is not clamped
// here; callers redirect out-of-range requests before rendering.
func New(page, totalItems, pageSize int, baseURL string) *Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(totalItems, pageSize)

	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PageSize:    pageSize,
		Window:      Compute(page, totalPages),
		HasPrev:     page > 1,
		PrevPage:    page - 1,
		HasNext:     page < totalPages,
		NextPage:    page + 1,
		BaseURL:     baseURL,
	}
}

// Visible reports whether the control should be drawn at all.
func (p *Pagination) Visible() bool {
	return p != nil && p.TotalPages > 1
}

// PageURL returns BaseURL with its page query parameter set to n. Other query
// parameters on BaseURL are kept.
func (p *Pagination) PageURL(n int) string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return p.BaseURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String()
}

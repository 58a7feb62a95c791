package httpapp

import (
	"net/http"
	"strconv"

	"github.com/mangaview/mangaview/internal/pagination"
)

// requestNavigator reads the page from the request query and navigates by
// redirecting to the same URL with a different page parameter.
type requestNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func newRequestNavigator(w http.ResponseWriter, r *http.Request) *requestNavigator {
	return &requestNavigator{w: w, r: r}
}

func (n *requestNavigator) CurrentPage() int {
	return pagination.ParsePage(n.r.URL.Query().Get("page"))
}

func (n *requestNavigator) Navigate(page int) {
	u := *n.r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	http.Redirect(n.w, n.r, u.RequestURI(), http.StatusFound)
}

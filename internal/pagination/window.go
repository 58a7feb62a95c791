// Package pagination computes bounded pagination controls over an unbounded
// number of result pages.
package pagination

// Kind tags a window entry as a page link or a gap marker.
type Kind int

const (
	KindPage Kind = iota
	KindEllipsis
)

// Entry is one slot of a pagination control. Page and Active are only
// meaningful when Kind is KindPage.
type Entry struct {
	Kind   Kind
	Page   int
	Active bool
}

// IsEllipsis reports whether the entry is a non-interactive gap marker.
func (e Entry) IsEllipsis() bool {
	return e.Kind == KindEllipsis
}

// Window is the ordered list of entries a pagination control renders.
type Window []Entry

// Pages returns the concrete page numbers in the window, skipping ellipses.
func (w Window) Pages() []int {
	pages := make([]int, 0, len(w))
	for _, e := range w {
		if e.Kind == KindPage {
			pages = append(pages, e.Page)
		}
	}
	return pages
}

// Case identifies which of the four window layouts applies.
type Case int

const (
	ShortList Case = iota
	NearStart
	NearEnd
	Middle
)

func (c Case) String() string {
	switch c {
	case ShortList:
		return "short_list"
	case NearStart:
		return "near_start"
	case NearEnd:
		return "near_end"
	case Middle:
		return "middle"
	default:
		return "unknown"
	}
}

const (
	// MaxSlots is the widest a window ever gets.
	MaxSlots = 7
	// edgeRun is the length of the fixed run shown near either end.
	edgeRun = 5
)

// Layout classifies (currentPage, totalPages). The guards are evaluated in
// order, so NearStart wins over NearEnd when both would match.
func Layout(currentPage, totalPages int) Case {
	switch {
	case totalPages <= MaxSlots:
		return ShortList
	case currentPage <= edgeRun-1:
		return NearStart
	case currentPage >= totalPages-(edgeRun-2):
		return NearEnd
	default:
		return Middle
	}
}

// Compute returns the window for currentPage out of totalPages. It never
// fails: a currentPage outside [1, totalPages] yields a window with no active
// entry, and totalPages == 0 yields an empty window.
func Compute(currentPage, totalPages int) Window {
	if totalPages < 0 {
		totalPages = 0
	}

	switch Layout(currentPage, totalPages) {
	case ShortList:
		w := make(Window, 0, totalPages)
		return appendRun(w, 1, totalPages, currentPage)
	case NearStart:
		w := make(Window, 0, MaxSlots)
		w = appendRun(w, 1, edgeRun, currentPage)
		w = append(w, Entry{Kind: KindEllipsis})
		return appendRun(w, totalPages, totalPages, currentPage)
	case NearEnd:
		w := make(Window, 0, MaxSlots)
		w = appendRun(w, 1, 1, currentPage)
		w = append(w, Entry{Kind: KindEllipsis})
		return appendRun(w, totalPages-(edgeRun-1), totalPages, currentPage)
	default:
		w := make(Window, 0, MaxSlots)
		w = appendRun(w, 1, 1, currentPage)
		w = append(w, Entry{Kind: KindEllipsis})
		w = appendRun(w, currentPage-1, currentPage+1, currentPage)
		w = append(w, Entry{Kind: KindEllipsis})
		return appendRun(w, totalPages, totalPages, currentPage)
	}
}

func appendRun(w Window, from, to, current int) Window {
	for n := from; n <= to; n++ {
		w = append(w, Entry{Kind: KindPage, Page: n, Active: n == current})
	}
	return w
}

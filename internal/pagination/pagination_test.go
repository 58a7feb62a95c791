package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		pageSize int
		want     int
	}{
		{"no items", 0, 32, 0},
		{"negative items", -5, 32, 0},
		{"exact fit", 64, 32, 2},
		{"remainder", 65, 32, 3},
		{"single item", 1, 32, 1},
		{"default page size", 100, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.items, tt.pageSize))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 32))
	assert.Equal(t, 64, Offset(3, 32))
	assert.Equal(t, 0, Offset(0, 32))
	assert.Equal(t, 0, Offset(-2, 32))
	assert.Equal(t, 32, Offset(2, 0))
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":    1,
		"1":   1,
		"7":   7,
		" 3 ": 3,
		"0":   1,
		"-4":  1,
		"abc": 1,
		"2.5": 1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePage(raw), "ParsePage(%q)", raw)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 10))
	assert.Equal(t, 1, Clamp(-1, 10))
	assert.Equal(t, 5, Clamp(5, 10))
	assert.Equal(t, 10, Clamp(11, 10))
	assert.Equal(t, 1, Clamp(3, 0))
}

func TestNew(t *testing.T) {
	p := New(3, 640, 32, "/tag/abc")

	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 20, p.TotalPages)
	assert.Equal(t, 640, p.TotalItems)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 2, p.PrevPage)
	assert.True(t, p.HasNext)
	assert.Equal(t, 4, p.NextPage)
	assert.True(t, p.Visible())
	assert.Equal(t, "1 2 [3] 4 5 … 20", render(p.Window))
}

func TestNew_Boundaries(t *testing.T) {
	first := New(1, 100, 32, "/tag/abc")
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := New(4, 100, 32, "/tag/abc")
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	single := New(1, 10, 32, "/tag/abc")
	assert.False(t, single.Visible())

	empty := New(1, 0, 32, "/tag/abc")
	assert.False(t, empty.Visible())
	assert.Empty(t, empty.Window)

	var nilPagination *Pagination
	assert.False(t, nilPagination.Visible())
}

func TestPagination_PageURL(t *testing.T) {
	p := New(1, 100, 32, "/tag/abc")
	assert.Equal(t, "/tag/abc?page=3", p.PageURL(3))

	withQuery := New(1, 100, 32, "/tag/abc?page=9&sort=new")
	assert.Equal(t, "/tag/abc?page=2&sort=new", withQuery.PageURL(2))
}

type fakeNavigator struct {
	current int
	pushed  []int
}

func (f *fakeNavigator) CurrentPage() int { return f.current }

func (f *fakeNavigator) Navigate(page int) {
	f.pushed = append(f.pushed, page)
	f.current = page
}

func TestGo(t *testing.T) {
	nav := &fakeNavigator{current: 3}

	assert.True(t, Go(nav, 5, 10))
	assert.Equal(t, 5, nav.current)

	assert.False(t, Go(nav, 5, 10), "same page is a no-op")

	assert.True(t, Go(nav, 50, 10))
	assert.Equal(t, 10, nav.current, "clamped to last page")

	assert.True(t, Go(nav, -1, 10))
	assert.Equal(t, 1, nav.current, "clamped to first page")

	assert.Equal(t, []int{5, 10, 1}, nav.pushed)
}

func TestPrevNext(t *testing.T) {
	nav := &fakeNavigator{current: 1}
	assert.False(t, Prev(nav, 3), "prev disabled on first page")
	assert.True(t, Next(nav, 3))
	assert.True(t, Next(nav, 3))
	assert.False(t, Next(nav, 3), "next disabled on last page")
	assert.True(t, Prev(nav, 3))
	assert.Equal(t, []int{2, 3, 2}, nav.pushed)

	outOfRange := &fakeNavigator{current: 9}
	assert.True(t, Prev(outOfRange, 3))
	assert.Equal(t, 3, outOfRange.current)
}

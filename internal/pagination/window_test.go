package pagination

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render writes a window as "1 2 … 20" with the active page in brackets.
func render(w Window) string {
	parts := make([]string, 0, len(w))
	for _, e := range w {
		switch {
		case e.IsEllipsis():
			parts = append(parts, "…")
		case e.Active:
			parts = append(parts, "["+strconv.Itoa(e.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(e.Page))
		}
	}
	return strings.Join(parts, " ")
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"no results", 1, 0, ""},
		{"single page", 1, 1, "[1]"},
		{"short list", 1, 5, "[1] 2 3 4 5"},
		{"short list boundary", 7, 7, "1 2 3 4 5 6 [7]"},
		{"near start", 3, 20, "1 2 [3] 4 5 … 20"},
		{"near start first page", 1, 8, "[1] 2 3 4 5 … 8"},
		{"near start boundary", 4, 20, "1 2 3 [4] 5 … 20"},
		{"middle lower boundary", 5, 20, "1 … 4 [5] 6 … 20"},
		{"middle", 10, 20, "1 … 9 [10] 11 … 20"},
		{"middle upper boundary", 16, 20, "1 … 15 [16] 17 … 20"},
		{"near end boundary", 17, 20, "1 … 16 [17] 18 19 20"},
		{"near end", 18, 20, "1 … 16 17 [18] 19 20"},
		{"last page", 20, 20, "1 … 16 17 18 19 [20]"},
		{"eight pages near end", 5, 8, "1 … 4 [5] 6 7 8"},
		{"large total", 5000, 10000, "1 … 4999 [5000] 5001 … 10000"},
		{"current beyond total", 30, 20, "1 … 16 17 18 19 20"},
		{"current zero", 0, 20, "1 2 3 4 5 … 20"},
		{"negative total", 1, -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(Compute(tt.current, tt.total)))
		})
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		current int
		total   int
		want    Case
	}{
		{1, 0, ShortList},
		{7, 7, ShortList},
		{4, 8, NearStart},
		{4, 9, NearStart},
		{5, 8, NearEnd},
		{5, 9, Middle},
		{6, 9, NearEnd},
		{5, 10, Middle},
		{6, 10, Middle},
		{7, 10, NearEnd},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, Layout(tt.current, tt.total))
		})
	}
}

func TestCompute_Properties(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for current := 1; current <= total+1; current++ {
			w := Compute(current, total)
			label := fmt.Sprintf("Compute(%d, %d) = %s", current, total, render(w))

			if total <= MaxSlots {
				want := make([]int, 0, total)
				for n := 1; n <= total; n++ {
					want = append(want, n)
				}
				assert.Equal(t, want, w.Pages(), label)
				assert.Len(t, w, total, label)
			} else {
				require.NotEmpty(t, w, label)
				assert.Equal(t, Entry{Kind: KindPage, Page: 1, Active: current == 1}, w[0], label)
				assert.Equal(t, Entry{Kind: KindPage, Page: total, Active: current == total}, w[len(w)-1], label)
				assert.Len(t, w, MaxSlots, label)
			}

			active := 0
			for i, e := range w {
				if e.IsEllipsis() {
					assert.NotZero(t, i, label)
					assert.NotEqual(t, len(w)-1, i, label)
					if i > 0 {
						assert.False(t, w[i-1].IsEllipsis(), "adjacent ellipses in %s", label)
					}
					continue
				}
				if e.Active {
					active++
					assert.Equal(t, current, e.Page, label)
				}
				if i > 0 && !w[i-1].IsEllipsis() {
					assert.Equal(t, w[i-1].Page+1, e.Page, "run not contiguous in %s", label)
				}
			}

			if current >= 1 && current <= total {
				assert.Equal(t, 1, active, label)
			} else {
				assert.Zero(t, active, label)
			}

			assert.Equal(t, w, Compute(current, total), label)
		}
	}
}

func TestCompute_FreshAllocation(t *testing.T) {
	a := Compute(10, 20)
	b := Compute(10, 20)
	a[2].Page = 99
	assert.Equal(t, 9, b[2].Page)
}

func TestWindow_Pages(t *testing.T) {
	assert.Equal(t, []int{1, 9, 10, 11, 20}, Compute(10, 20).Pages())
	assert.Empty(t, Compute(1, 0).Pages())
}

func TestCase_String(t *testing.T) {
	assert.Equal(t, "short_list", ShortList.String())
	assert.Equal(t, "near_start", NearStart.String())
	assert.Equal(t, "near_end", NearEnd.String())
	assert.Equal(t, "middle", Middle.String())
	assert.Equal(t, "unknown", Case(42).String())
}

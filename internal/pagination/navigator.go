package pagination

// Navigator reads the current page from external state and moves to another
// page through a side-effecting call (a redirect, a router push).
type Navigator interface {
	CurrentPage() int
	Navigate(page int)
}

// Go moves nav to page, clamped into [1, totalPages]. It reports whether a
// navigation was issued; targeting the current page is a no-op.
func Go(nav Navigator, page, totalPages int) bool {
	target := Clamp(page, totalPages)
	if target == nav.CurrentPage() {
		return false
	}
	nav.Navigate(target)
	return true
}

// Prev navigates one page back unless already on the first page.
func Prev(nav Navigator, totalPages int) bool {
	return Go(nav, nav.CurrentPage()-1, totalPages)
}

// Next navigates one page forward unless already on the last page.
func Next(nav Navigator, totalPages int) bool {
	return Go(nav, nav.CurrentPage()+1, totalPages)
}

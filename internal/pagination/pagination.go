// Package pagination slices lists into 1-based pages.
package pagination

import "fmt"

// PageCount returns ceil(total/size). It is zero for an empty list.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}

	return (total + size - 1) / size
}

// Clamp moves page into [1, PageCount]. An empty list has a single empty page 1.
func Clamp(page, total, size int) int {
	last := max(PageCount(total, size), 1)

	return min(max(page, 1), last)
}

// Bounds returns the half-open range [(page-1)*size, page*size) limited to
// [0, total]. Out-of-range pages yield an empty range.
func Bounds(total, page, size int) (start, end int) {
	if size <= 0 || page < 1 {
		return 0, 0
	}

	start = min((page-1)*size, total)
	end = min(start+size, total)

	return start, end
}

func Slice[T any](items []T, page, size int) []T {
	start, end := Bounds(len(items), page, size)
	return items[start:end]
}

// Page is the display state for one page of a list.
type Page struct {
	Number  int
	Pages   int
	Start   int // 0-based, inclusive
	End     int // 0-based, exclusive
	Total   int
	HasPrev bool
	HasNext bool
}

func At(total, page, size int) Page {
	page = Clamp(page, total, size)
	start, end := Bounds(total, page, size)
	pages := PageCount(total, size)

	return Page{
		Number:  page,
		Pages:   pages,
		Start:   start,
		End:     end,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

// Summary renders the "Showing X to Y of Z entries" footer.
func (p Page) Summary() string {
	if p.Total == 0 {
		return "Showing 0 of 0 entries"
	}

	return fmt.Sprintf("Showing %d to %d of %d entries", p.Start+1, p.End, p.Total)
}

// Package page computes clamped pagination windows over a filtered result.
package page

import (
	"fmt"

	"github.com/kailas-cloud/wareflow/internal/domain"
)

// Ellipsis marks a gap in a VisiblePages list.
const Ellipsis = 0

// Config is the requested page (1-based) and page size.
type Config struct {
	number int
	size   int
}

// New validates and creates a page Config.
// Size must be positive. The page number is clamped later, against a concrete total.
func New(number, size int) (Config, error) {
	if size <= 0 {
		return Config{}, fmt.Errorf("%w: page size must be positive, got %d",
			domain.ErrInvalidConfiguration, size)
	}
	return Config{number: number, size: size}, nil
}

// Number returns the requested page number.
func (c Config) Number() int { return c.number }

// Size returns the page size.
func (c Config) Size() int { return c.size }

// Window is a page config resolved against a total item count.
type Window struct {
	Page       int
	Size       int
	Total      int
	TotalPages int
	// Start and End are slice bounds into the filtered sequence.
	Start int
	End   int
}

// Window clamps the requested page to [1, TotalPages].
// TotalPages is at least 1 even when total is 0.
func (c Config) Window(total int) Window {
	if total < 0 {
		total = 0
	}
	totalPages := max(1, (total+c.size-1)/c.size)
	p := min(max(1, c.number), totalPages)

	start := min((p-1)*c.size, total)
	end := min(start+c.size, total)

	return Window{
		Page:       p,
		Size:       c.size,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Len returns the number of items on the page.
func (w Window) Len() int { return w.End - w.Start }

// StartItem is the 1-based position of the first item on the page, 0 when empty.
func (w Window) StartItem() int {
	if w.Len() == 0 {
		return 0
	}
	return w.Start + 1
}

// EndItem is the 1-based position of the last item on the page, 0 when empty.
func (w Window) EndItem() int { return w.End }

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a following page exists.
func (w Window) HasNext() bool { return w.Page < w.TotalPages }

// VisiblePages lists the page controls to render: the first page, the pages
// within delta of the current one, and the last page. Ellipsis marks a gap.
func (w Window) VisiblePages(delta int) []int {
	if delta < 0 {
		delta = 0
	}
	pages := []int{1}
	if w.Page-delta > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := max(2, w.Page-delta); i <= min(w.TotalPages-1, w.Page+delta); i++ {
		pages = append(pages, i)
	}
	if w.Page+delta < w.TotalPages-1 {
		pages = append(pages, Ellipsis)
	}
	if w.TotalPages > 1 {
		pages = append(pages, w.TotalPages)
	}
	return pages
}

package view

import (
	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

// pageWindow is how many page numbers the pager shows at once
const pageWindow = 5

// PageLink is a numbered pager entry
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// Pager is the pagination control under the event table
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	From       int
	To         int
	PrevURL    string
	NextURL    string
	Pages      []PageLink
}

// NewPager builds the control from the API's pagination metadata. Links
// keep the rest of filter.
func NewPager(filter *dto.EventListFilter, p domain.Pagination) *Pager {
	pager := &Pager{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
	}

	if p.Total > 0 && p.Limit > 0 {
		pager.From = (p.Page-1)*p.Limit + 1
		pager.To = p.Page * p.Limit
		if pager.To > p.Total {
			pager.To = p.Total
		}
	}

	if p.Page > 1 {
		pager.PrevURL = filter.WithPage(p.Page - 1).URL()
	}
	if p.Page < p.TotalPages {
		pager.NextURL = filter.WithPage(p.Page + 1).URL()
	}

	start, end := windowBounds(p.Page, p.TotalPages)
	for n := start; n <= end; n++ {
		pager.Pages = append(pager.Pages, PageLink{
			Number:  n,
			URL:     filter.WithPage(n).URL(),
			Current: n == p.Page,
		})
	}

	return pager
}

// Visible reports whether there is more than one page to move between
func (p *Pager) Visible() bool {
	return p.TotalPages > 1
}

// windowBounds centers a pageWindow-wide range on page, shifted to stay
// inside 1..total
func windowBounds(page, total int) (int, int) {
	if total <= 0 {
		return 1, 0
	}
	start := page - pageWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindow - 1
	if end > total {
		end = total
		start = end - pageWindow + 1
		if start < 1 {
			start = 1
		}
	}
	return start, end
}

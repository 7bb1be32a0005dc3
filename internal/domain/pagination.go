package domain

// ──────────────────────────────────────────────────────────────────────────────
// Pagination
// ──────────────────────────────────────────────────────────────────────────────

// Default pagination tunables for opportunity listings.
const (
	DefaultPerPage = 50
	MaxPerPage     = 200

	// Page-link window defaults: EdgeWidth fixed pages at each end, and
	// WindowWidth pages either side of the current page. Everything else
	// collapses into a gap marker.
	DefaultEdgeWidth   = 1
	DefaultWindowWidth = 2
)

// PageLink is one entry in the rendered page navigation. Gap=true marks an
// ellipsis between the edge block and the current-page window.
type PageLink struct {
	Number int  `json:"number,omitempty"`
	Gap    bool `json:"gap,omitempty"`
}

// PageMeta describes one page of a filtered result set.
type PageMeta struct {
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Pages   int        `json:"pages"`
	HasPrev bool       `json:"has_prev"`
	HasNext bool       `json:"has_next"`
	Links   []PageLink `json:"links"`
}

// NewPageMeta computes the pagination envelope for a listing response.
// page is 1-indexed and assumed already validated (≥ 1). A page past the
// end keeps the true total and reports HasNext=false.
func NewPageMeta(total, page, perPage int) PageMeta {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return PageMeta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
		Links:   PageLinks(page, pages, DefaultEdgeWidth, DefaultWindowWidth),
	}
}

// PageLinks produces the windowed page-number sequence: `edge` pages at each
// end, `window` pages either side of current, and a single gap marker for
// each skipped stretch. Pure function; last ≤ 0 yields no links.
func PageLinks(current, last, edge, window int) []PageLink {
	if last <= 0 {
		return nil
	}

	show := func(p int) bool {
		if p <= edge || p > last-edge {
			return true
		}
		return p >= current-window && p <= current+window
	}

	var links []PageLink
	inGap := false
	for p := 1; p <= last; p++ {
		if show(p) {
			links = append(links, PageLink{Number: p})
			inGap = false
			continue
		}
		if !inGap {
			links = append(links, PageLink{Gap: true})
			inGap = true
		}
	}
	return links
}

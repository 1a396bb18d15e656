package page

import (
	"github.com/zeebo/blake3"

	"fensql/pkg/dberror"
	"fensql/pkg/logging"
	"fensql/pkg/primitives"
)

// Pager owns the table's page slots and hands out pages on demand.
//
// The slot array is sized once from the layout and every slot starts out
// empty. A page is allocated the first time it is asked for and then lives
// until Close. Pages are never removed or replaced in between, so a *Page
// returned by the pager stays valid for the life of the table.
//
// Pager is not safe for concurrent use; the owning table serialises access.
type Pager struct {
	layout    Layout
	pages     []*Page
	allocated uint32
	closed    bool
}

// Stats describes how much of the page budget is in use.
type Stats struct {
	AllocatedPages uint32
	MaxPages       uint32
	AllocatedBytes uint64
	CapacityBytes  uint64
}

// NewPager creates a pager with layout.MaxPages empty slots.
func NewPager(layout Layout) *Pager {
	return &Pager{
		layout: layout,
		pages:  make([]*Page, layout.MaxPages),
	}
}

// Layout returns the geometry this pager was built with.
func (p *Pager) Layout() Layout {
	return p.layout
}

// GetOrAllocate returns page pageNum, allocating a zeroed page if the slot is empty.
//
// Returns:
//   - *Page: the page, never nil on success
//   - error: CapacityExceeded when pageNum is outside the slot array,
//     PagerClosed after Close
func (p *Pager) GetOrAllocate(pageNum primitives.PageNumber) (*Page, error) {
	if p.closed {
		return nil, dberror.From(dberror.ErrPagerClosed, "page %d requested", pageNum).
			At("GetOrAllocate", "Pager")
	}
	if uint32(pageNum) >= p.layout.MaxPages {
		return nil, dberror.From(dberror.ErrCapacityExceeded, "page %d is beyond the %d page slots", pageNum, p.layout.MaxPages).
			At("GetOrAllocate", "Pager").
			WithHint("start fensql with a larger --max-pages")
	}

	if pg := p.pages[pageNum]; pg != nil {
		return pg, nil
	}

	pg := new(Page)
	p.pages[pageNum] = pg
	p.allocated++
	logging.WithPage(uint32(pageNum)).Debugw("page allocated", "allocated", p.allocated)
	return pg, nil
}

// Get returns page pageNum without allocating. The boolean is false when the
// slot is empty, out of range, or the pager is closed.
func (p *Pager) Get(pageNum primitives.PageNumber) (*Page, bool) {
	if p.closed || uint32(pageNum) >= p.layout.MaxPages {
		return nil, false
	}
	pg := p.pages[pageNum]
	return pg, pg != nil
}

// NumAllocated returns the number of pages allocated so far.
func (p *Pager) NumAllocated() uint32 {
	return p.allocated
}

// Checksum returns the BLAKE3-256 digest of an allocated page. The boolean
// is false when the page is not allocated.
func (p *Pager) Checksum(pageNum primitives.PageNumber) (primitives.Checksum, bool) {
	pg, ok := p.Get(pageNum)
	if !ok {
		return primitives.Checksum{}, false
	}
	return primitives.Checksum(blake3.Sum256(pg[:])), true
}

// Stats reports allocation figures.
func (p *Pager) Stats() Stats {
	return Stats{
		AllocatedPages: p.allocated,
		MaxPages:       p.layout.MaxPages,
		AllocatedBytes: uint64(p.allocated) * PageSize,
		CapacityBytes:  uint64(p.layout.MaxPages) * PageSize,
	}
}

// Close releases every page. It is safe to call more than once; only the
// first call frees anything.
func (p *Pager) Close() error {
	if p.closed {
		return nil
	}
	released := p.allocated
	clear(p.pages)
	p.pages = nil
	p.allocated = 0
	p.closed = true
	logging.WithComponent("pager").Debugw("pager closed", "released", released)
	return nil
}

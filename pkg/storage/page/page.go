package page

import (
	"fensql/pkg/primitives"
	"fensql/pkg/row"
)

const (
	// PageSize is the size of each page in bytes (4KB), the same size as a
	// virtual memory page on most architectures.
	PageSize = 4096

	// DefaultMaxPages is the number of page slots a table gets unless configured otherwise.
	DefaultMaxPages = 100
)

// Page is a fixed-size block holding whole serialized rows back to back.
// Bytes past the last whole row are never written and stay zero.
type Page [PageSize]byte

// Layout is the row/page geometry derived once from the column widths, the
// page size and the page budget.
type Layout struct {
	RowSize     uint32
	RowsPerPage uint32
	MaxPages    uint32
	MaxRows     uint32
}

// NewLayout computes the layout for a table with maxPages page slots.
// A zero maxPages selects DefaultMaxPages.
func NewLayout(maxPages uint32) Layout {
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}
	rowsPerPage := uint32(PageSize / row.RowSize)
	return Layout{
		RowSize:     row.RowSize,
		RowsPerPage: rowsPerPage,
		MaxPages:    maxPages,
		MaxRows:     rowsPerPage * maxPages,
	}
}

// DefaultLayout is the 100-page, 1400-row layout.
func DefaultLayout() Layout {
	return NewLayout(DefaultMaxPages)
}

// PageFor returns the page holding the given row.
func (l Layout) PageFor(idx primitives.RowIndex) primitives.PageNumber {
	return primitives.PageNumber(uint32(idx) / l.RowsPerPage)
}

// OffsetInPage returns the byte offset of the given row inside its page.
func (l Layout) OffsetInPage(idx primitives.RowIndex) primitives.Offset {
	return primitives.Offset((uint32(idx) % l.RowsPerPage) * l.RowSize)
}

// RowsOnPage returns how many of the first numRows rows live on pageNum.
func (l Layout) RowsOnPage(pageNum primitives.PageNumber, numRows uint32) uint32 {
	first := uint32(pageNum) * l.RowsPerPage
	if numRows <= first {
		return 0
	}
	return min(numRows-first, l.RowsPerPage)
}

// Package table implements the single append-only table on top of the pager,
// together with the cursor used to scan it and to find the append position.
package table

import (
	"fensql/pkg/dberror"
	"fensql/pkg/logging"
	"fensql/pkg/primitives"
	"fensql/pkg/storage/page"
)

// Table stores rows back to back in insertion order. Row i lives on page
// i / RowsPerPage at offset (i % RowsPerPage) * RowSize. The table does not
// look at row contents; encoding belongs to the row codec.
type Table struct {
	name    string
	pager   *page.Pager
	numRows uint32
}

// New creates an empty table with the given layout. No page is allocated yet.
func New(name string, layout page.Layout) *Table {
	logging.WithTable(name).Debugw("table created",
		"max_pages", layout.MaxPages,
		"rows_per_page", layout.RowsPerPage,
		"max_rows", layout.MaxRows,
	)
	return &Table{
		name:  name,
		pager: page.NewPager(layout),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Layout returns the row/page geometry.
func (t *Table) Layout() page.Layout {
	return t.pager.Layout()
}

// Pager exposes the page store for reporting.
func (t *Table) Pager() *page.Pager {
	return t.pager
}

// Size returns the number of rows stored.
func (t *Table) Size() uint32 {
	return t.numRows
}

// Capacity returns the maximum number of rows the table can hold.
func (t *Table) Capacity() uint32 {
	return t.pager.Layout().MaxRows
}

// IsFull reports whether another append would exceed the capacity.
func (t *Table) IsFull() bool {
	return t.numRows >= t.Capacity()
}

// RowSlot returns the RowSize bytes backing row idx, allocating its page on
// first use. The slice aliases page memory: writes through it are stored.
//
// RowSlot does not check idx against Size, so the append path can address
// the slot one past the last row.
func (t *Table) RowSlot(idx primitives.RowIndex) ([]byte, error) {
	layout := t.pager.Layout()
	if uint32(idx) >= layout.MaxRows {
		return nil, dberror.From(dberror.ErrCapacityExceeded, "row %d is beyond the %d row capacity", idx, layout.MaxRows).
			At("RowSlot", "Table")
	}

	pg, err := t.pager.GetOrAllocate(layout.PageFor(idx))
	if err != nil {
		return nil, dberror.Wrap(err, dberror.CodeCapacityExceeded, "RowSlot", "Table")
	}

	off := uint32(layout.OffsetInPage(idx))
	return pg[off : off+layout.RowSize : off+layout.RowSize], nil
}

// Append copies one encoded row to the end of the table and grows the row
// count. Every check happens before the first byte is written, so a failed
// append leaves the table exactly as it was.
func (t *Table) Append(encoded []byte) error {
	if len(encoded) != int(t.Layout().RowSize) {
		return dberror.From(dberror.ErrBufferTooSmall, "encoded row is %d bytes, want %d", len(encoded), t.Layout().RowSize).
			At("Append", "Table")
	}
	if t.IsFull() {
		return dberror.From(dberror.ErrTableFull, "%d of %d rows used", t.numRows, t.Capacity()).
			At("Append", "Table")
	}

	slot, err := End(t).Slot()
	if err != nil {
		return err
	}

	copy(slot, encoded)
	t.numRows++
	return nil
}

// Close releases all pages. The table must not be used afterwards.
func (t *Table) Close() error {
	logging.WithTable(t.name).Debugw("table closed", "rows", t.numRows, "pages", t.pager.NumAllocated())
	t.numRows = 0
	return t.pager.Close()
}

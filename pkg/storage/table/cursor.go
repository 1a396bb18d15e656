package table

import (
	"fensql/pkg/dberror"
	"fensql/pkg/primitives"
)

// Cursor is a position in a table, from 0 up to and including the row count.
// At the row count the cursor is at end: there is nothing to read there, but
// it is where the next row will be appended.
//
// A cursor remembers the row count it was created with. If the table grows
// while the cursor is alive, every later call on the cursor fails with
// InvalidCursorState; scans and appends do not interleave.
type Cursor struct {
	table *Table
	index primitives.RowIndex
	end   uint32
}

// Start returns a cursor on the first row. On an empty table it is already at end.
func Start(t *Table) *Cursor {
	return &Cursor{table: t, index: 0, end: t.numRows}
}

// End returns a cursor one past the last row, the append position.
func End(t *Table) *Cursor {
	return &Cursor{table: t, index: primitives.RowIndex(t.numRows), end: t.numRows}
}

// IsAtEnd reports whether the cursor has passed the last row.
func (c *Cursor) IsAtEnd() bool {
	return uint32(c.index) >= c.end
}

// Index returns the row index the cursor points at.
func (c *Cursor) Index() primitives.RowIndex {
	return c.index
}

// Advance moves to the next row. Advancing a cursor that is already at end is an error.
func (c *Cursor) Advance() error {
	if err := c.checkFresh("Advance"); err != nil {
		return err
	}
	if c.IsAtEnd() {
		return dberror.From(dberror.ErrInvalidCursorState, "advance past end (row %d)", c.index).
			At("Advance", "Cursor")
	}
	c.index++
	return nil
}

// Value returns the slot of the row under the cursor. Only valid before end.
func (c *Cursor) Value() ([]byte, error) {
	if err := c.checkFresh("Value"); err != nil {
		return nil, err
	}
	if c.IsAtEnd() {
		return nil, dberror.From(dberror.ErrInvalidCursorState, "read at end (row %d)", c.index).
			At("Value", "Cursor")
	}
	return c.table.RowSlot(c.index)
}

// Slot returns the slot under the cursor for writing. Unlike Value it is
// allowed at end, which is how the append position is addressed.
func (c *Cursor) Slot() ([]byte, error) {
	if err := c.checkFresh("Slot"); err != nil {
		return nil, err
	}
	return c.table.RowSlot(c.index)
}

func (c *Cursor) checkFresh(op string) error {
	if c.table.numRows != c.end {
		return dberror.From(dberror.ErrInvalidCursorState, "table changed from %d to %d rows under the cursor", c.end, c.table.numRows).
			At(op, "Cursor")
	}
	return nil
}

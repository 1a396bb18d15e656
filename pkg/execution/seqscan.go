package execution

import (
	"context"

	"fensql/pkg/iterator"
	"fensql/pkg/row"
	"fensql/pkg/storage/table"
)

var _ iterator.RowIterator = (*SequentialScan)(nil)

// SequentialScan yields every row of a table in insertion order.
//
// The set of rows is fixed when the scan is opened: the underlying cursor
// stops at the row count of that moment. Appending to the table while the
// scan is open invalidates it, and the next read fails with
// InvalidCursorState. Rewind (or Open again) starts a fresh cursor and
// picks up the current row count.
type SequentialScan struct {
	base   *BaseIterator
	ctx    context.Context
	table  *table.Table
	cursor *table.Cursor
}

// NewSeqScan creates a scan over t. The scan must be opened before use.
// ctx is checked between rows so a long scan can be abandoned.
func NewSeqScan(ctx context.Context, t *table.Table) *SequentialScan {
	ss := &SequentialScan{ctx: ctx, table: t}
	ss.base = NewBaseIterator(ss.readNext)
	return ss
}

// Open positions a new cursor at the first row.
func (ss *SequentialScan) Open() error {
	ss.cursor = table.Start(ss.table)
	ss.base.MarkOpened()
	return nil
}

func (ss *SequentialScan) readNext() (row.Row, bool, error) {
	if err := ss.ctx.Err(); err != nil {
		return row.Row{}, false, err
	}
	if ss.cursor.IsAtEnd() {
		return row.Row{}, false, nil
	}

	slot, err := ss.cursor.Value()
	if err != nil {
		return row.Row{}, false, err
	}
	r, err := row.Decode(slot)
	if err != nil {
		return row.Row{}, false, err
	}
	if err := ss.cursor.Advance(); err != nil {
		return row.Row{}, false, err
	}
	return r, true, nil
}

// HasNext reports whether another row is available.
func (ss *SequentialScan) HasNext() (bool, error) { return ss.base.HasNext() }

// Next returns the next row.
func (ss *SequentialScan) Next() (row.Row, error) { return ss.base.Next() }

// Rewind restarts the scan from the first row.
func (ss *SequentialScan) Rewind() error {
	return ss.Open()
}

// Close drops the cursor.
func (ss *SequentialScan) Close() error {
	ss.cursor = nil
	return ss.base.Close()
}

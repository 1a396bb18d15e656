package execution

import (
	"fensql/pkg/dberror"
	"fensql/pkg/row"
)

// ReadNextFunc reads the next row from a data source.
// It returns ok=false once the source is exhausted.
type ReadNextFunc func() (r row.Row, ok bool, err error)

// BaseIterator implements the lookahead and open/close state shared by
// row iterators, delegating the actual reads to a ReadNextFunc.
type BaseIterator struct {
	next         row.Row
	hasCached    bool
	opened       bool
	readNextFunc ReadNextFunc
}

// NewBaseIterator creates a closed base iterator around readNextFunc.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{readNextFunc: readNextFunc}
}

// HasNext checks if there is a next row without consuming it.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, notOpened("HasNext")
	}
	if it.hasCached {
		return true, nil
	}

	r, ok, err := it.readNextFunc()
	if err != nil {
		return false, err
	}
	it.next, it.hasCached = r, ok
	return ok, nil
}

// Next returns the next row and advances past it.
func (it *BaseIterator) Next() (row.Row, error) {
	ok, err := it.HasNext()
	if err != nil {
		return row.Row{}, err
	}
	if !ok {
		return row.Row{}, dberror.From(dberror.ErrInvalidCursorState, "no more rows").At("Next", "Iterator")
	}

	r := it.next
	it.next, it.hasCached = row.Row{}, false
	return r, nil
}

// Close clears any cached row and marks the iterator closed.
func (it *BaseIterator) Close() error {
	it.next, it.hasCached = row.Row{}, false
	it.opened = false
	return nil
}

// MarkOpened marks the iterator as opened and drops any cached row.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.next, it.hasCached = row.Row{}, false
}

func notOpened(op string) error {
	return dberror.From(dberror.ErrInvalidCursorState, "iterator not opened").At(op, "Iterator")
}

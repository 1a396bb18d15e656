package iterator

import "fensql/pkg/row"

// RowIterator defines the contract for walking the rows of a result set.
//
// A freshly constructed iterator must be opened before use. Rewind restarts
// the walk from the first row without rebuilding the iterator.
type RowIterator interface {
	// Open initializes the iterator and positions it before the first row.
	// Opening an already opened iterator restarts it.
	Open() error

	// HasNext reports whether another row is available without consuming it.
	HasNext() (bool, error)

	// Next returns the next row and moves past it.
	Next() (row.Row, error)

	// Rewind resets the iterator to the first row.
	Rewind() error

	// Close releases the iterator. Calling Close twice is safe.
	Close() error
}

package iterator

import "fensql/pkg/row"

// Iterate encapsulates the HasNext/Next loop. The processFunc controls flow:
//   - Return (false, nil) to stop early
//   - Return (true, nil) to continue
//   - Return (_, error) to stop with error
//
// The iterator must be opened before calling Iterate.
func Iterate(iter RowIterator, processFunc func(row.Row) (continueLooping bool, err error)) error {
	for {
		hasNext, err := iter.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}

		r, err := iter.Next()
		if err != nil {
			return err
		}

		shouldContinue, err := processFunc(r)
		if err != nil {
			return err
		}
		if !shouldContinue {
			return nil
		}
	}
}

// ForEach applies processFunc to every remaining row.
func ForEach(iter RowIterator, processFunc func(row.Row) error) error {
	return Iterate(iter, func(r row.Row) (bool, error) {
		return true, processFunc(r)
	})
}

// Collect drains the iterator into a slice.
func Collect(iter RowIterator) ([]row.Row, error) {
	var rows []row.Row
	err := ForEach(iter, func(r row.Row) error {
		rows = append(rows, r)
		return nil
	})
	return rows, err
}

// Take returns at most n rows from the iterator.
func Take(iter RowIterator, n int) ([]row.Row, error) {
	rows := make([]row.Row, 0, n)
	if n <= 0 {
		return rows, nil
	}
	err := Iterate(iter, func(r row.Row) (bool, error) {
		rows = append(rows, r)
		return len(rows) < n, nil
	})
	return rows, err
}

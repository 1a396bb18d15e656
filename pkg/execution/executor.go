package execution

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"fensql/pkg/dberror"
	"fensql/pkg/logging"
	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
	"fensql/pkg/storage/table"
)

// Result is the outcome of one statement.
type Result struct {
	Type         statements.StatementType
	RowsAffected int

	// Rows is set for a select. It is not opened yet.
	Rows *SequentialScan
}

// Executor runs statements against a single table.
type Executor struct {
	table *table.Table
}

// NewExecutor creates an executor bound to t.
func NewExecutor(t *table.Table) *Executor {
	return &Executor{table: t}
}

// Table returns the table the executor writes to.
func (e *Executor) Table() *table.Table {
	return e.table
}

// Execute runs stmt. A failed statement leaves the table unchanged.
func (e *Executor) Execute(ctx context.Context, stmt statements.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *statements.InsertStatement:
		if err := e.Insert(s.Row); err != nil {
			return nil, err
		}
		return &Result{Type: statements.Insert, RowsAffected: 1}, nil

	case *statements.SelectStatement:
		return &Result{Type: statements.Select, Rows: e.Select(ctx)}, nil

	default:
		panic(fmt.Sprintf("execution: unhandled statement type %T", stmt))
	}
}

// Insert appends r to the table.
func (e *Executor) Insert(r row.Row) error {
	if e.table.IsFull() {
		return dberror.From(dberror.ErrTableFull, "%d of %d rows used", e.table.Size(), e.table.Capacity()).
			At("Insert", "Executor")
	}

	encoded, err := row.Encode(r)
	if err != nil {
		return errors.Wrap(err, "encode row")
	}
	if err := e.table.Append(encoded[:]); err != nil {
		return errors.Wrapf(err, "append row %d", r.ID)
	}

	logging.WithTable(e.table.Name()).Debugw("row inserted", "id", r.ID, "rows", e.table.Size())
	return nil
}

// Select returns an unopened scan over every row in insertion order.
func (e *Executor) Select(ctx context.Context) *SequentialScan {
	return NewSeqScan(ctx, e.table)
}

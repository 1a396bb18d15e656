package statements

import (
	"fmt"

	"fensql/pkg/row"
)

// InsertStatement appends one row to the table.
type InsertStatement struct {
	Row row.Row
}

func NewInsertStatement(r row.Row) *InsertStatement {
	return &InsertStatement{Row: r}
}

func (is *InsertStatement) GetType() StatementType {
	return Insert
}

func (is *InsertStatement) String() string {
	return fmt.Sprintf("insert %d %s %s", is.Row.ID, is.Row.Username, is.Row.Email)
}

// Validate checks the row against the column widths.
func (is *InsertStatement) Validate() error {
	return row.Validate(is.Row)
}

func (is *InsertStatement) statement() {}

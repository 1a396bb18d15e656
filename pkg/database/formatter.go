package database

import (
	"strconv"

	"fensql/pkg/execution"
	"fensql/pkg/iterator"
	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
)

// Columns are the column headers of a select.
var Columns = []string{"id", "username", "email"}

// ExecutedMessage is reported for every successful statement.
const ExecutedMessage = "Executed."

// ResultFormatter handles formatting of query execution results
type ResultFormatter struct{}

// NewResultFormatter creates a new instance of ResultFormatter
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// Format turns an executor result into a QueryResult. A select is drained
// here, so the scan never outlives the call that produced it.
func (f *ResultFormatter) Format(result *execution.Result) (QueryResult, error) {
	switch result.Type {
	case statements.Select:
		scan := result.Rows
		if err := scan.Open(); err != nil {
			return QueryResult{}, err
		}
		defer scan.Close()

		records, err := iterator.Collect(scan)
		if err != nil {
			return QueryResult{}, err
		}
		return f.FormatSelect(records), nil

	case statements.Insert:
		return f.FormatDML(result.RowsAffected), nil
	}

	return QueryResult{Success: true, Type: result.Type, Message: ExecutedMessage}, nil
}

// FormatSelect converts the rows of a select to the standard format
func (f *ResultFormatter) FormatSelect(records []row.Row) QueryResult {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{strconv.FormatUint(uint64(r.ID), 10), r.Username, r.Email})
	}

	return QueryResult{
		Success: true,
		Type:    statements.Select,
		Columns: Columns,
		Rows:    rows,
		Records: records,
		Message: ExecutedMessage,
	}
}

// FormatDML converts insert results to the standard format
func (f *ResultFormatter) FormatDML(rowsAffected int) QueryResult {
	return QueryResult{
		Success:      true,
		Type:         statements.Insert,
		RowsAffected: rowsAffected,
		Message:      ExecutedMessage,
	}
}

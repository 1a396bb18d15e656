package database

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ImportReport summarizes a batch of statements.
type ImportReport struct {
	Executed int
	Failed   []ImportFailure
}

// ImportFailure is one statement that did not run.
type ImportFailure struct {
	Line      int
	Statement string
	Err       error
}

// Total returns the number of statements attempted.
func (r ImportReport) Total() int {
	return r.Executed + len(r.Failed)
}

// ImportFile runs the statements in path, one per line.
func (db *Database) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportReport{}, errors.Wrap(err, "open import file")
	}
	defer f.Close()

	return db.Import(ctx, f)
}

// Import runs one statement per line of r. Blank lines and lines starting
// with "--" are skipped. A failing statement is recorded and the import
// goes on with the next line.
func (db *Database) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	var report ImportReport

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return report, err
		}

		stmt := strings.TrimSpace(scanner.Text())
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}

		if _, err := db.ExecuteQuery(ctx, stmt); err != nil {
			report.Failed = append(report.Failed, ImportFailure{Line: lineNo, Statement: stmt, Err: err})
			continue
		}
		report.Executed++
	}
	if err := scanner.Err(); err != nil {
		return report, errors.Wrap(err, "read statements")
	}

	db.log.Infow("import finished", "executed", report.Executed, "failed", len(report.Failed))
	return report, nil
}

// DemoStatements seed a fresh table with a handful of rows.
var DemoStatements = []string{
	"insert 1 alice alice@example.com",
	"insert 2 bob bob@example.com",
	"insert 3 charlie charlie@example.com",
	"insert 4 diana diana@example.com",
	"insert 5 eve eve@example.com",
}

// LoadDemo inserts DemoStatements.
func (db *Database) LoadDemo(ctx context.Context) (ImportReport, error) {
	return db.Import(ctx, strings.NewReader(strings.Join(DemoStatements, "\n")))
}

package database

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"fensql/pkg/dberror"
	"fensql/pkg/execution"
	"fensql/pkg/logging"
	"fensql/pkg/parser"
	"fensql/pkg/parser/statements"
	"fensql/pkg/primitives"
	"fensql/pkg/row"
	"fensql/pkg/storage/page"
	"fensql/pkg/storage/table"
)

// DefaultTableName is the name of the single table when none is configured.
const DefaultTableName = "users"

// Database owns the table and runs statements against it. It is the one
// entry point shared by the REPL and the terminal UI.
//
// The storage core is not safe for concurrent use; Database serializes
// every call behind its mutex so the UI may run queries from commands.
type Database struct {
	executor  *execution.Executor
	table     *table.Table
	formatter *ResultFormatter

	name      string
	sessionID string
	log       *zap.SugaredLogger

	mutex  sync.Mutex
	closed bool
	stats  *DatabaseStats
}

// DatabaseStats tracks session counters
type DatabaseStats struct {
	QueriesExecuted int64
	InsertsCount    int64
	SelectsCount    int64
	ErrorCount      int64
	mutex           sync.RWMutex
}

// QueryResult represents the result of a query execution
type QueryResult struct {
	Success      bool
	Type         statements.StatementType
	Columns      []string
	Rows         [][]string
	Records      []row.Row
	RowsAffected int
	Message      string
	Error        error
}

// DatabaseInfo contains database metadata
type DatabaseInfo struct {
	Name            string
	SessionID       string
	RowCount        uint32
	Capacity        uint32
	AllocatedPages  uint32
	MaxPages        uint32
	AllocatedBytes  uint64
	CapacityBytes   uint64
	QueriesExecuted int64
	InsertsCount    int64
	SelectsCount    int64
	ErrorCount      int64
}

// PageInfo describes one allocated page.
type PageInfo struct {
	Number   primitives.PageNumber
	Rows     uint32
	Checksum primitives.Checksum
}

// NewDatabase creates an empty in-memory database holding one table laid
// out according to layout.
func NewDatabase(name string, layout page.Layout) *Database {
	if name == "" {
		name = DefaultTableName
	}

	sessionID := uuid.NewString()
	tbl := table.New(name, layout)

	db := &Database{
		executor:  execution.NewExecutor(tbl),
		table:     tbl,
		formatter: NewResultFormatter(),
		name:      name,
		sessionID: sessionID,
		log:       logging.WithSession(sessionID).With("table", name),
		stats:     &DatabaseStats{},
	}

	db.log.Infow("database opened", "max_rows", layout.MaxRows, "max_pages", layout.MaxPages)
	return db
}

// Name returns the table name.
func (db *Database) Name() string {
	return db.name
}

// SessionID identifies this database instance in the logs.
func (db *Database) SessionID() string {
	return db.sessionID
}

// Layout returns the row/page geometry of the table.
func (db *Database) Layout() page.Layout {
	return db.table.Layout()
}

// ExecuteQuery parses and runs one statement. On failure the returned
// QueryResult carries the same error and the table is unchanged.
func (db *Database) ExecuteQuery(ctx context.Context, query string) (QueryResult, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.closed {
		err := dberror.From(dberror.ErrPagerClosed, "database %q is closed", db.name).At("ExecuteQuery", "Database")
		return db.fail(query, err)
	}

	stmt, err := parser.ParseStatement(query)
	if err != nil {
		return db.fail(query, errors.Wrap(err, "parse"))
	}

	result, err := db.executor.Execute(ctx, stmt)
	if err != nil {
		return db.fail(query, errors.Wrap(err, "execute"))
	}

	formatted, err := db.formatter.Format(result)
	if err != nil {
		return db.fail(query, errors.Wrap(err, "read results"))
	}

	db.recordSuccess(stmt.GetType())
	db.log.Debugw("query executed", "query", stmt.String(), "rows_affected", formatted.RowsAffected, "rows", len(formatted.Rows))
	return formatted, nil
}

func (db *Database) fail(query string, err error) (QueryResult, error) {
	db.recordError()
	db.log.Debugw("query failed", "query", query, "code", dberror.CodeOf(err), "error", err)
	return QueryResult{Success: false, Message: err.Error(), Error: err}, err
}

// recordError updates error statistics
func (db *Database) recordError() {
	db.stats.mutex.Lock()
	db.stats.ErrorCount++
	db.stats.mutex.Unlock()
}

// recordSuccess updates success statistics
func (db *Database) recordSuccess(kind statements.StatementType) {
	db.stats.mutex.Lock()
	defer db.stats.mutex.Unlock()

	db.stats.QueriesExecuted++
	switch kind {
	case statements.Insert:
		db.stats.InsertsCount++
	case statements.Select:
		db.stats.SelectsCount++
	}
}

// GetStatistics returns the table fill level and session counters.
func (db *Database) GetStatistics() DatabaseInfo {
	db.mutex.Lock()
	pagerStats := db.table.Pager().Stats()
	rowCount := db.table.Size()
	capacity := db.table.Capacity()
	db.mutex.Unlock()

	db.stats.mutex.RLock()
	defer db.stats.mutex.RUnlock()

	return DatabaseInfo{
		Name:            db.name,
		SessionID:       db.sessionID,
		RowCount:        rowCount,
		Capacity:        capacity,
		AllocatedPages:  pagerStats.AllocatedPages,
		MaxPages:        pagerStats.MaxPages,
		AllocatedBytes:  pagerStats.AllocatedBytes,
		CapacityBytes:   pagerStats.CapacityBytes,
		QueriesExecuted: db.stats.QueriesExecuted,
		InsertsCount:    db.stats.InsertsCount,
		SelectsCount:    db.stats.SelectsCount,
		ErrorCount:      db.stats.ErrorCount,
	}
}

// PageReport lists every allocated page in order with the number of rows
// it holds and a checksum of its contents.
func (db *Database) PageReport() []PageInfo {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	layout := db.table.Layout()
	pager := db.table.Pager()
	report := make([]PageInfo, 0, pager.NumAllocated())

	for n := primitives.PageNumber(0); uint32(n) < layout.MaxPages; n++ {
		sum, ok := pager.Checksum(n)
		if !ok {
			continue
		}
		report = append(report, PageInfo{
			Number:   n,
			Rows:     layout.RowsOnPage(n, db.table.Size()),
			Checksum: sum,
		})
	}
	return report
}

// Close releases every page. Calling Close more than once is a no-op.
func (db *Database) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	rows := db.table.Size()
	if err := db.table.Close(); err != nil {
		return errors.Wrap(err, "close table")
	}

	db.log.Infow("database closed", "rows", rows)
	return nil
}

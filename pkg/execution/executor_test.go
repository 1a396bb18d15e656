package execution

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fensql/pkg/dberror"
	"fensql/pkg/iterator"
	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
	"fensql/pkg/storage/page"
	"fensql/pkg/storage/table"
)

func newExecutor(maxPages uint32) *Executor {
	return NewExecutor(table.New("users", page.NewLayout(maxPages)))
}

func insertN(t *testing.T, e *Executor, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		r := row.New(uint32(i), fmt.Sprintf("user%d", i), fmt.Sprintf("person%d@example.com", i))
		require.NoError(t, e.Insert(r))
	}
}

func selectAll(t *testing.T, e *Executor) []row.Row {
	t.Helper()
	res, err := e.Execute(context.Background(), statements.NewSelectStatement())
	require.NoError(t, err)
	require.NoError(t, res.Rows.Open())
	defer res.Rows.Close()

	rows, err := iterator.Collect(res.Rows)
	require.NoError(t, err)
	return rows
}

func TestExecute_InsertThenSelect(t *testing.T) {
	e := newExecutor(0)

	res, err := e.Execute(context.Background(), statements.NewInsertStatement(row.New(1, "fendross", "foo@bar.com")))
	require.NoError(t, err)
	assert.Equal(t, statements.Insert, res.Type)
	assert.Equal(t, 1, res.RowsAffected)
	assert.Nil(t, res.Rows)

	rows := selectAll(t, e)
	require.Len(t, rows, 1)
	assert.Equal(t, row.New(1, "fendross", "foo@bar.com"), rows[0])
	assert.Equal(t, "(1, fendross, foo@bar.com)", rows[0].String())
}

func TestExecute_SelectEmpty(t *testing.T) {
	e := newExecutor(0)

	assert.Empty(t, selectAll(t, e))
	assert.Equal(t, uint32(0), e.Table().Pager().NumAllocated())
}

func TestExecute_OrderPreserved(t *testing.T) {
	e := newExecutor(0)
	ids := []uint32{42, 7, 7, 1000, 3}
	for _, id := range ids {
		require.NoError(t, e.Insert(row.New(id, "u", "e")))
	}

	rows := selectAll(t, e)
	require.Len(t, rows, len(ids))
	for i, r := range rows {
		assert.Equal(t, ids[i], r.ID, "duplicate ids are kept in insertion order")
	}
}

func TestExecute_SelectIsIdempotent(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 30)

	first := selectAll(t, e)
	second := selectAll(t, e)
	assert.Equal(t, first, second)
	assert.Equal(t, uint32(30), e.Table().Size())
}

func TestExecute_PageBoundary(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 15)

	assert.Equal(t, uint32(2), e.Table().Pager().NumAllocated())
	rows := selectAll(t, e)
	require.Len(t, rows, 15)
	assert.Equal(t, row.New(15, "user15", "person15@example.com"), rows[14])
}

func TestExecute_TableFull(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 1400)

	_, err := e.Execute(context.Background(), statements.NewInsertStatement(row.New(1401, "u", "e")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrTableFull))
	assert.Equal(t, uint32(1400), e.Table().Size())
	assert.Len(t, selectAll(t, e), 1400)
}

func TestExecute_FieldTooLongLeavesTableUnchanged(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 14)

	err := e.Insert(row.New(99, strings.Repeat("a", 33), "a@b.c"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrFieldTooLong))
	assert.Equal(t, uint32(14), e.Table().Size())
	assert.Equal(t, uint32(1), e.Table().Pager().NumAllocated(), "a rejected row allocates no page")
}

func TestExecute_UnknownStatementPanics(t *testing.T) {
	e := newExecutor(0)
	assert.Panics(t, func() {
		_, _ = e.Execute(context.Background(), nil)
	})
}

func TestSequentialScan_Rewind(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 3)

	scan := e.Select(context.Background())
	require.NoError(t, scan.Open())

	first, err := iterator.Take(scan, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	require.NoError(t, scan.Rewind())
	all, err := iterator.Collect(scan)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first, all[:2])

	hasNext, err := scan.HasNext()
	require.NoError(t, err)
	assert.False(t, hasNext)

	_, err = scan.Next()
	assert.True(t, errors.Is(err, dberror.ErrInvalidCursorState))
	require.NoError(t, scan.Close())
}

func TestSequentialScan_NotOpened(t *testing.T) {
	scan := newExecutor(0).Select(context.Background())

	_, err := scan.HasNext()
	assert.True(t, errors.Is(err, dberror.ErrInvalidCursorState))

	_, err = scan.Next()
	assert.True(t, errors.Is(err, dberror.ErrInvalidCursorState))
}

func TestSequentialScan_StaleAfterInsert(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 3)

	scan := e.Select(context.Background())
	require.NoError(t, scan.Open())
	_, err := scan.Next()
	require.NoError(t, err)

	require.NoError(t, e.Insert(row.New(4, "late", "late@example.com")))

	_, err = scan.Next()
	assert.True(t, errors.Is(err, dberror.ErrInvalidCursorState))

	require.NoError(t, scan.Rewind())
	rows, err := iterator.Collect(scan)
	require.NoError(t, err)
	assert.Len(t, rows, 4, "rewind picks up the new row count")
}

func TestSequentialScan_ContextCancelled(t *testing.T) {
	e := newExecutor(0)
	insertN(t, e, 5)

	ctx, cancel := context.WithCancel(context.Background())
	scan := e.Select(ctx)
	require.NoError(t, scan.Open())

	_, err := scan.Next()
	require.NoError(t, err)

	cancel()
	_, err = scan.Next()
	assert.ErrorIs(t, err, context.Canceled)
}

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fensql/pkg/dberror"
)

func TestImport(t *testing.T) {
	db := newTestDB(t, 0)

	script := strings.Join([]string{
		"-- seed rows",
		"insert 1 a a@example.com",
		"",
		"insert -5 b b@example.com",
		"   insert 2 c c@example.com  ",
		"drop table users",
	}, "\n")

	report, err := db.Import(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 4, report.Total())
	require.Len(t, report.Failed, 2)
	assert.Equal(t, 4, report.Failed[0].Line)
	assert.True(t, errors.Is(report.Failed[0].Err, dberror.ErrNegativeID))
	assert.Equal(t, "drop table users", report.Failed[1].Statement)
	assert.Equal(t, uint32(2), db.GetStatistics().RowCount)
}

func TestImportFile(t *testing.T) {
	db := newTestDB(t, 0)
	path := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(path, []byte("insert 1 a b\ninsert 2 c d\n"), 0o600))

	report, err := db.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Executed)

	_, err = db.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}

func TestImport_Cancelled(t *testing.T) {
	db := newTestDB(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Import(ctx, strings.NewReader("insert 1 a b"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint32(0), db.GetStatistics().RowCount)
}

func TestLoadDemo(t *testing.T) {
	db := newTestDB(t, 0)

	report, err := db.LoadDemo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(DemoStatements), report.Executed)
	assert.Empty(t, report.Failed)

	res := exec(t, db, "select")
	assert.Equal(t, []string{"1", "alice", "alice@example.com"}, res.Rows[0])
}

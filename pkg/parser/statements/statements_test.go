package statements

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"fensql/pkg/dberror"
	"fensql/pkg/row"
)

func TestStatementType_String(t *testing.T) {
	tests := []struct {
		st   StatementType
		want string
	}{
		{Insert, "INSERT"},
		{Select, "SELECT"},
		{StatementType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.st.String())
		})
	}
}

func TestInsertStatement(t *testing.T) {
	stmt := NewInsertStatement(row.New(1, "fendross", "foo@bar.com"))

	assert.Equal(t, Insert, stmt.GetType())
	assert.Equal(t, "insert 1 fendross foo@bar.com", stmt.String())
	assert.NoError(t, stmt.Validate())
}

func TestInsertStatement_ValidateTooLong(t *testing.T) {
	stmt := NewInsertStatement(row.New(1, strings.Repeat("a", 33), "foo@bar.com"))

	err := stmt.Validate()
	assert.True(t, errors.Is(err, dberror.ErrFieldTooLong))
}

func TestSelectStatement(t *testing.T) {
	stmt := NewSelectStatement()

	assert.Equal(t, Select, stmt.GetType())
	assert.Equal(t, "select", stmt.String())
	assert.NoError(t, stmt.Validate())
}

func TestStatementInterface(t *testing.T) {
	var stmts []Statement = []Statement{
		NewInsertStatement(row.New(1, "a", "b")),
		NewSelectStatement(),
	}

	kinds := make([]StatementType, 0, len(stmts))
	for _, s := range stmts {
		switch s.(type) {
		case *InsertStatement:
			kinds = append(kinds, Insert)
		case *SelectStatement:
			kinds = append(kinds, Select)
		}
	}
	assert.Equal(t, []StatementType{Insert, Select}, kinds)
}

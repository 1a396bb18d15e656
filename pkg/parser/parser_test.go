package parser

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fensql/pkg/dberror"
	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
)

func TestParseStatement_Insert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  row.Row
	}{
		{
			name:  "tutorial example",
			input: "insert 1 fendross foo@bar.com",
			want:  row.New(1, "fendross", "foo@bar.com"),
		},
		{
			name:  "upper case keyword",
			input: "INSERT 2 bob bob@example.com",
			want:  row.New(2, "bob", "bob@example.com"),
		},
		{
			name:  "surrounding whitespace",
			input: "  insert   3\tcarol  carol@example.com \n",
			want:  row.New(3, "carol", "carol@example.com"),
		},
		{
			name:  "trailing words ignored",
			input: "insert 4 dave dave@example.com extra words",
			want:  row.New(4, "dave", "dave@example.com"),
		},
		{
			name:  "numeric username",
			input: "insert 5 12345 n@example.com",
			want:  row.New(5, "12345", "n@example.com"),
		},
		{
			name:  "max width columns",
			input: "insert 6 " + strings.Repeat("a", 32) + " " + strings.Repeat("b", 255),
			want:  row.New(6, strings.Repeat("a", 32), strings.Repeat("b", 255)),
		},
		{
			name:  "largest id",
			input: "insert 4294967295 max max@example.com",
			want:  row.New(4294967295, "max", "max@example.com"),
		},
		{
			name:  "leading zeros are decimal",
			input: "insert 010 z z@example.com",
			want:  row.New(10, "z", "z@example.com"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseStatement(tt.input)
			require.NoError(t, err)

			insert, ok := stmt.(*statements.InsertStatement)
			require.True(t, ok, "expected InsertStatement, got %T", stmt)
			assert.Equal(t, tt.want, insert.Row)
			assert.Equal(t, statements.Insert, stmt.GetType())
		})
	}
}

func TestParseStatement_Select(t *testing.T) {
	for _, input := range []string{"select", "SELECT", " Select "} {
		t.Run(input, func(t *testing.T) {
			stmt, err := ParseStatement(input)
			require.NoError(t, err)
			_, ok := stmt.(*statements.SelectStatement)
			assert.True(t, ok)
		})
	}
}

func TestParseStatement_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr *dberror.DBError
	}{
		{name: "insert without arguments", input: "insert", wantErr: dberror.ErrSyntaxError},
		{name: "insert missing email", input: "insert 1 fendross", wantErr: dberror.ErrSyntaxError},
		{name: "insert non numeric id", input: "insert abc fendross foo@bar.com", wantErr: dberror.ErrSyntaxError},
		{name: "insert id overflow", input: "insert 4294967296 a b", wantErr: dberror.ErrSyntaxError},
		{name: "insert glued keyword", input: "insertx 1 a b", wantErr: dberror.ErrSyntaxError},
		{name: "negative id", input: "insert -1 cstack foo@bar.com", wantErr: dberror.ErrNegativeID},
		{name: "username 33 bytes", input: "insert 1 " + strings.Repeat("a", 33) + " foo@bar.com", wantErr: dberror.ErrFieldTooLong},
		{name: "email 256 bytes", input: "insert 1 a " + strings.Repeat("a", 256), wantErr: dberror.ErrFieldTooLong},
		{name: "unknown keyword", input: "update 1 a b", wantErr: dberror.ErrUnrecognizedStatement},
		{name: "select with arguments", input: "select * from users", wantErr: dberror.ErrUnrecognizedStatement},
		{name: "empty line", input: "", wantErr: dberror.ErrUnrecognizedStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseStatement(tt.input)
			require.Error(t, err)
			assert.Nil(t, stmt)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"fensql/pkg/dberror"
	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
)

// statementGrammar is the whole statement language:
//
//	insert <id> <username> <email>
//	select
type statementGrammar struct {
	Insert *insertClause `  @@`
	Select *selectClause `| @@`
}

type insertClause struct {
	ID       string   `"insert" @Word`
	Username string   `@Word`
	Email    string   `@Word`
	Rest     []string `@Word*`
}

type selectClause struct {
	Keyword string `@"select"`
}

// statementLexer splits on whitespace; every other run of characters is a word.
var statementLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var statementParser = participle.MustBuild[statementGrammar](
	participle.Lexer(statementLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Word"),
)

// ParseStatement parses one line of input into a validated statement.
//
// Supported statements:
//   - insert <id> <username> <email>: extra trailing words are ignored
//   - select
//
// Keywords are case-insensitive. A line that starts with "insert" but does
// not parse is a syntax error; any other unparsable line is an unrecognized
// statement.
//
// Returns:
//   - statements.Statement: *statements.InsertStatement or *statements.SelectStatement
//   - error: SyntaxError, UnrecognizedStatement, NegativeID, FieldTooLong or InvalidField
func ParseStatement(text string) (statements.Statement, error) {
	text = strings.TrimSpace(text)

	g, err := statementParser.ParseString("", text)
	if err != nil {
		if isInsert(text) {
			return nil, dberror.From(dberror.ErrSyntaxError, "%s", err.Error()).At("ParseStatement", "Parser")
		}
		return nil, dberror.From(dberror.ErrUnrecognizedStatement, "%q", firstWord(text)).At("ParseStatement", "Parser")
	}

	switch {
	case g.Insert != nil:
		return buildInsert(g.Insert)
	case g.Select != nil:
		return statements.NewSelectStatement(), nil
	default:
		return nil, dberror.From(dberror.ErrUnrecognizedStatement, "%q", firstWord(text)).At("ParseStatement", "Parser")
	}
}

func buildInsert(c *insertClause) (statements.Statement, error) {
	id, err := strconv.ParseInt(c.ID, 10, 64)
	if err != nil {
		return nil, dberror.From(dberror.ErrSyntaxError, "id %q is not an integer", c.ID).At("ParseStatement", "Parser")
	}
	if id < 0 {
		return nil, dberror.From(dberror.ErrNegativeID, "id %d", id).At("ParseStatement", "Parser")
	}
	if id > math.MaxUint32 {
		return nil, dberror.From(dberror.ErrSyntaxError, "id %d does not fit in 32 bits", id).At("ParseStatement", "Parser")
	}

	stmt := statements.NewInsertStatement(row.New(uint32(id), c.Username, c.Email))
	if err := stmt.Validate(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func isInsert(text string) bool {
	return len(text) >= 6 && strings.EqualFold(text[:6], "insert")
}

func firstWord(text string) string {
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

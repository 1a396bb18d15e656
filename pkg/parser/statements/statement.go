package statements

type StatementType int

const (
	Insert StatementType = iota
	Select
)

func (st StatementType) String() string {
	switch st {
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

// Statement is a parsed, ready-to-run command. The set of implementations is
// closed: the unexported marker keeps other packages from adding variants, so
// a type switch over *InsertStatement and *SelectStatement is exhaustive.
type Statement interface {
	// GetType returns the type of the statement
	GetType() StatementType
	// String returns a string representation of the statement
	String() string
	// Validate checks if the statement is valid and returns an error if not
	Validate() error

	statement()
}

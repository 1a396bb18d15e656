package statements

// SelectStatement reads every row in insertion order.
type SelectStatement struct{}

func NewSelectStatement() *SelectStatement {
	return &SelectStatement{}
}

func (ss *SelectStatement) GetType() StatementType {
	return Select
}

func (ss *SelectStatement) String() string {
	return "select"
}

func (ss *SelectStatement) Validate() error {
	return nil
}

func (ss *SelectStatement) statement() {}

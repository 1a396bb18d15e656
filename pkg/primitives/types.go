package primitives

import "fmt"

// PageNumber identifies a page slot inside the table's page array.
type PageNumber uint32

// RowIndex is the zero-based position of a row in insertion order.
// The row at index i lives on page i / RowsPerPage.
type RowIndex uint32

// Offset represents a byte offset within a page.
type Offset uint32

// Checksum is a 256-bit page digest.
type Checksum [32]byte

// String returns a string representation of the PageNumber.
func (p PageNumber) String() string {
	return fmt.Sprintf("Page(%d)", p)
}

// String returns a string representation of the RowIndex.
func (r RowIndex) String() string {
	return fmt.Sprintf("Row(%d)", r)
}

// Short returns the first eight bytes of the checksum as hex, which is enough
// to tell pages apart in a report.
func (c Checksum) Short() string {
	return fmt.Sprintf("%x", c[:8])
}

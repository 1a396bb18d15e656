// Package storage is the root of fensql's in-memory storage engine.
//
// Rows are kept in fixed-size 4 KB pages that are allocated on first use and
// never freed until the table is closed.
//
// # Sub-packages
//
//   - [fensql/pkg/storage/page]  – Page geometry (rows per page, page and
//     table capacity) and the Pager, a bounded arena of lazily allocated pages.
//   - [fensql/pkg/storage/table] – The append-only table that maps a row index
//     to a slot inside a page, and the Cursor used to scan it.
//
// # Page layout
//
// A page has no header. Row i of the table lives on page i / RowsPerPage at
// byte offset (i % RowsPerPage) * RowSize. The bytes after the last whole row
// of a page are never used: with 291-byte rows, 14 rows fill 4074 bytes and
// the last 22 bytes stay zero.
package storage

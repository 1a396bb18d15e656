// Package execution runs parsed statements against the table.
//
// The executor dispatches on the statement variant. An insert encodes the row
// and appends it; a select returns a SequentialScan, a lazy iterator that
// walks a cursor from the first row to the row count captured when the scan
// was opened.
//
// Scans follow the iterator (volcano) model: Open / HasNext / Next / Close,
// with Rewind to start over. Rows are decoded one at a time as they are
// pulled, nothing is materialised ahead of the caller.
package execution

// Package row implements the fixed-width binary encoding of the single
// table's record: a 32-bit id followed by a 32-byte username and a 255-byte
// email, both NUL padded.
package row

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"fensql/pkg/dberror"
)

// Column widths in bytes.
const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255
)

// Byte layout of a serialized row. These offsets are an on-page contract.
const (
	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize
	RowSize        = IDSize + UsernameSize + EmailSize // 291 bytes
)

// Row is one record of the table.
type Row struct {
	ID       uint32
	Username string `validate:"maxbytes=32,nonul"`
	Email    string `validate:"maxbytes=255,nonul"`
}

// New builds a Row without validating it.
func New(id uint32, username, email string) Row {
	return Row{ID: id, Username: username, Email: email}
}

// String renders the row the way select prints it: (id, username, email).
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

// Encode returns the serialized form of r.
func Encode(r Row) ([RowSize]byte, error) {
	var buf [RowSize]byte
	if err := Serialize(r, buf[:]); err != nil {
		return buf, err
	}
	return buf, nil
}

// Serialize writes r into dst, which must hold at least RowSize bytes.
// Text columns are NUL padded to their full width. Oversized text is refused,
// never truncated, and dst is left untouched on any error.
func Serialize(r Row, dst []byte) error {
	if len(dst) < RowSize {
		return dberror.From(dberror.ErrBufferTooSmall, "need %d bytes, got %d", RowSize, len(dst)).
			At("Serialize", "RowCodec")
	}
	if err := checkText("username", r.Username, UsernameSize); err != nil {
		return err
	}
	if err := checkText("email", r.Email, EmailSize); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(dst[IDOffset:UsernameOffset], r.ID)
	putText(dst[UsernameOffset:EmailOffset], r.Username)
	putText(dst[EmailOffset:RowSize], r.Email)
	return nil
}

// Decode reads a row from src, which must hold at least RowSize bytes.
// Text columns end at their first NUL byte.
func Decode(src []byte) (Row, error) {
	if len(src) < RowSize {
		return Row{}, dberror.From(dberror.ErrBufferTooSmall, "need %d bytes, got %d", RowSize, len(src)).
			At("Decode", "RowCodec")
	}

	return Row{
		ID:       binary.LittleEndian.Uint32(src[IDOffset:UsernameOffset]),
		Username: getText(src[UsernameOffset:EmailOffset]),
		Email:    getText(src[EmailOffset:RowSize]),
	}, nil
}

func checkText(column, value string, width int) error {
	if len(value) > width {
		return dberror.From(dberror.ErrFieldTooLong, "%s is %d bytes, limit is %d", column, len(value), width).
			At("Serialize", "RowCodec")
	}
	if strings.IndexByte(value, 0) >= 0 {
		return dberror.From(dberror.ErrInvalidField, "%s contains a NUL byte", column).
			At("Serialize", "RowCodec")
	}
	return nil
}

func putText(dst []byte, value string) {
	n := copy(dst, value)
	clear(dst[n:])
}

func getText(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src)
}

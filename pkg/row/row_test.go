package row

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fensql/pkg/dberror"
)

func TestLayoutConstants(t *testing.T) {
	assert.Equal(t, 0, IDOffset)
	assert.Equal(t, 4, UsernameOffset)
	assert.Equal(t, 36, EmailOffset)
	assert.Equal(t, 291, RowSize)
}

func TestEncode_ByteLayout(t *testing.T) {
	buf, err := Encode(New(1, "fendross", "foo@bar.com"))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, []byte{1, 0, 0, 0}, buf[0:4])

	username := buf[UsernameOffset:EmailOffset]
	assert.Equal(t, []byte("fendross"), username[:8])
	assert.Equal(t, make([]byte, UsernameSize-8), username[8:], "username must be NUL padded")

	email := buf[EmailOffset:RowSize]
	assert.Equal(t, []byte("foo@bar.com"), email[:11])
	assert.Equal(t, make([]byte, EmailSize-11), email[11:], "email must be NUL padded")
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		row  Row
	}{
		{name: "tutorial row", row: New(1, "fendross", "foo@bar.com")},
		{name: "empty strings", row: New(0, "", "")},
		{name: "max id", row: New(^uint32(0), "u", "e")},
		{name: "full width columns", row: New(42, strings.Repeat("a", UsernameSize), strings.Repeat("b", EmailSize))},
		{name: "multibyte text", row: New(7, "żółw", "ünïcødé@example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Encode(tt.row)
			require.NoError(t, err)

			got, err := Decode(buf[:])
			require.NoError(t, err)
			assert.Equal(t, tt.row, got)

			again, err := Encode(got)
			require.NoError(t, err)
			assert.Equal(t, buf, again, "decode then encode must reproduce the same bytes")
		})
	}
}

func TestSerialize_RejectsOversizedText(t *testing.T) {
	tests := []struct {
		name string
		row  Row
	}{
		{name: "username 33 bytes", row: New(1, strings.Repeat("a", UsernameSize+1), "e")},
		{name: "email 256 bytes", row: New(1, "u", strings.Repeat("a", EmailSize+1))},
		{name: "username 17 two-byte runes", row: New(1, strings.Repeat("ż", 17), "e")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := bytes.Repeat([]byte{0xAA}, RowSize)
			err := Serialize(tt.row, dst)

			require.Error(t, err)
			assert.True(t, errors.Is(err, dberror.ErrFieldTooLong))
			assert.Equal(t, bytes.Repeat([]byte{0xAA}, RowSize), dst, "destination must be untouched")
		})
	}
}

func TestSerialize_RejectsNUL(t *testing.T) {
	err := Serialize(New(1, "a\x00b", "e"), make([]byte, RowSize))
	assert.True(t, errors.Is(err, dberror.ErrInvalidField))
}

func TestSerialize_OverwritesPreviousContent(t *testing.T) {
	dst := make([]byte, RowSize)
	require.NoError(t, Serialize(New(9, strings.Repeat("x", UsernameSize), strings.Repeat("y", EmailSize)), dst))
	require.NoError(t, Serialize(New(1, "ab", "cd"), dst))

	got, err := Decode(dst)
	require.NoError(t, err)
	assert.Equal(t, New(1, "ab", "cd"), got)
}

func TestBufferTooSmall(t *testing.T) {
	err := Serialize(New(1, "a", "b"), make([]byte, RowSize-1))
	assert.True(t, errors.Is(err, dberror.ErrBufferTooSmall))

	_, err = Decode(make([]byte, 10))
	assert.True(t, errors.Is(err, dberror.ErrBufferTooSmall))
}

func TestDecode_ZeroSlot(t *testing.T) {
	got, err := Decode(make([]byte, RowSize))
	require.NoError(t, err)
	assert.Equal(t, Row{}, got)
}

func TestRow_String(t *testing.T) {
	assert.Equal(t, "(1, fendross, foo@bar.com)", New(1, "fendross", "foo@bar.com").String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		row     Row
		wantErr *dberror.DBError
	}{
		{name: "valid", row: New(1, "fendross", "foo@bar.com")},
		{name: "exact widths", row: New(1, strings.Repeat("a", 32), strings.Repeat("b", 255))},
		{name: "username too long", row: New(1, strings.Repeat("a", 33), "e"), wantErr: dberror.ErrFieldTooLong},
		{name: "email too long", row: New(1, "u", strings.Repeat("a", 256)), wantErr: dberror.ErrFieldTooLong},
		{name: "multibyte counted in bytes", row: New(1, strings.Repeat("é", 20), "e"), wantErr: dberror.ErrFieldTooLong},
		{name: "NUL in email", row: New(1, "u", "a\x00"), wantErr: dberror.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.row)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidate_DetailNamesColumn(t *testing.T) {
	err := Validate(New(1, strings.Repeat("a", 33), "e"))

	var dbErr *dberror.DBError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "username is 33 bytes, limit is 32", dbErr.Detail)
}

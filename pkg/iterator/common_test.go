package iterator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fensql/pkg/row"
)

// sliceIterator is a RowIterator over an in-memory slice.
type sliceIterator struct {
	rows   []row.Row
	pos    int
	failAt int
}

func (s *sliceIterator) Open() error            { s.pos = 0; return nil }
func (s *sliceIterator) HasNext() (bool, error) { return s.pos < len(s.rows), nil }
func (s *sliceIterator) Rewind() error          { return s.Open() }
func (s *sliceIterator) Close() error           { return nil }

func (s *sliceIterator) Next() (row.Row, error) {
	if s.failAt > 0 && s.pos == s.failAt {
		return row.Row{}, errors.New("boom")
	}
	r := s.rows[s.pos]
	s.pos++
	return r, nil
}

func sample() *sliceIterator {
	return &sliceIterator{rows: []row.Row{
		row.New(1, "a", "a@x"),
		row.New(2, "b", "b@x"),
		row.New(3, "c", "c@x"),
	}}
}

func TestCollect(t *testing.T) {
	rows, err := Collect(sample())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, uint32(3), rows[2].ID)
}

func TestCollect_Empty(t *testing.T) {
	rows, err := Collect(&sliceIterator{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIterate_StopsEarly(t *testing.T) {
	var seen []uint32
	err := Iterate(sample(), func(r row.Row) (bool, error) {
		seen = append(seen, r.ID)
		return r.ID < 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, seen)
}

func TestForEach_PropagatesErrors(t *testing.T) {
	it := sample()
	it.failAt = 1

	count := 0
	err := ForEach(it, func(row.Row) error {
		count++
		return nil
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, count)
}

func TestTake(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: 2, want: 2},
		{n: 10, want: 3},
	}
	for _, tt := range tests {
		rows, err := Take(sample(), tt.n)
		require.NoError(t, err)
		assert.Len(t, rows, tt.want)
	}
}

package ida

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

func sampleResult() *ResultFrame {
	return &ResultFrame{
		Columns: []string{"ID", "SCORE", "NAME"},
		Data: [][]interface{}{
			{int64(1), 0.5, "alice"},
			{int64(2), 1.5, "bob"},
			{int64(3), 2.5, "carol"},
		},
	}
}

func TestResultFrameShape(t *testing.T) {
	rf := sampleResult()
	rows, cols := rf.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.False(t, rf.Empty())
	assert.True(t, (&ResultFrame{Columns: []string{"A"}}).Empty())
}

func TestResultFrameColumnIndex(t *testing.T) {
	rf := sampleResult()
	assert.Equal(t, 1, rf.ColumnIndex("SCORE"))
	// 列名は大文字小文字を区別しない
	assert.Equal(t, 1, rf.ColumnIndex("score"))
	assert.Equal(t, -1, rf.ColumnIndex("MISSING"))
}

func TestResultFrameColumns(t *testing.T) {
	rf := sampleResult()

	vals, err := rf.Column("ID")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, vals)

	floats, err := rf.FloatColumn("SCORE")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, floats)

	strs, err := rf.StringColumn("NAME")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, strs)

	_, err = rf.Column("MISSING")
	assert.Error(t, err)
}

func TestResultFrameFloatColumnNull(t *testing.T) {
	rf := &ResultFrame{
		Columns: []string{"V"},
		Data:    [][]interface{}{{1.0}, {nil}},
	}
	_, err := rf.FloatColumn("V")
	assert.Error(t, err)
}

func TestResultFrameScalar(t *testing.T) {
	rf := &ResultFrame{Columns: []string{"N"}, Data: [][]interface{}{{int64(7)}}}
	v, err := rf.Scalar()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = (&ResultFrame{Columns: []string{"N"}}).Scalar()
	assert.ErrorIs(t, err, errors.ErrEmptyData)
}

func TestResultFrameAsMatrix(t *testing.T) {
	rf := &ResultFrame{
		Columns: []string{"A", "B"},
		Data: [][]interface{}{
			{1.0, int64(2)},
			{3.0, int64(4)},
		},
	}
	m, err := rf.AsMatrix()
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, 3.0, m.At(1, 0))

	_, err = sampleResult().AsMatrix()
	assert.Error(t, err, "string column cannot be converted")
}

func TestResultFrameString(t *testing.T) {
	s := sampleResult().String()
	assert.Contains(t, s, "SCORE")
	assert.Contains(t, s, "alice")
	assert.Equal(t, "(empty result)", (&ResultFrame{}).String())
}

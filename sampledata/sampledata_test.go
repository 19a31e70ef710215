package sampledata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/idago/ida"
)

func TestIris(t *testing.T) {
	rf, err := Iris()
	require.NoError(t, err)

	rows, cols := rf.Shape()
	assert.Equal(t, 150, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, []string{"sepal_length", "sepal_width", "petal_length", "petal_width", "species"}, rf.Columns)

	species, err := rf.StringColumn("species")
	require.NoError(t, err)
	counts := map[string]int{}
	for _, s := range species {
		counts[s]++
	}
	assert.Equal(t, map[string]int{"setosa": 50, "versicolor": 50, "virginica": 50}, counts)
}

func TestSwiss(t *testing.T) {
	rf, err := Swiss()
	require.NoError(t, err)

	rows, cols := rf.Shape()
	assert.Equal(t, 47, rows)
	assert.Equal(t, 7, cols)

	fert, err := rf.FloatColumn("fertility")
	require.NoError(t, err)
	assert.InDelta(t, 80.2, fert[0], 1e-9)
}

func TestTitanic(t *testing.T) {
	rf, err := Titanic()
	require.NoError(t, err)

	rows, cols := rf.Shape()
	assert.Equal(t, 60, rows)
	assert.Equal(t, 12, cols)

	// 年齢不明の乗客はNULL
	ages, err := rf.Column("age")
	require.NoError(t, err)
	assert.Nil(t, ages[5], "passenger 6 has unknown age")
	assert.Equal(t, int64(22), ages[0])
}

func TestLoadIris(t *testing.T) {
	idadb, err := ida.Connect(ida.Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "sample_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })

	df, err := LoadIris(idadb, "IRIS")
	require.NoError(t, err)

	rows, cols, err := df.Shape()
	require.NoError(t, err)
	assert.Equal(t, 150, rows)
	assert.Equal(t, 5, cols)

	means, err := df.Mean(context.Background(), "sepal_length")
	require.NoError(t, err)
	assert.InDelta(t, 5.843, means["sepal_length"], 0.001)
}

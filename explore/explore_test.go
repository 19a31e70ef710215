package explore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/idago/ida"
)

func testFrame(t *testing.T) *ida.DataFrame {
	t.Helper()
	idadb, err := ida.Connect(ida.Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "explore_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })

	require.NoError(t, idadb.Exec(`CREATE TABLE MEASURES ("ID" INTEGER, "VALUE" DOUBLE, "GRADE" VARCHAR(8))`))
	rows := []string{
		`(1, 0.5, 'A')`, `(2, 1.5, 'B')`, `(3, 2.5, 'A')`, `(4, 3.5, 'C')`,
		`(5, 4.5, 'A')`, `(6, 5.5, 'B')`, `(7, 6.5, 'A')`, `(8, 7.5, 'B')`,
		`(9, 8.5, 'A')`, `(10, 9.5, 'C')`,
	}
	for _, r := range rows {
		require.NoError(t, idadb.Exec(`INSERT INTO MEASURES VALUES `+r))
	}

	df, err := ida.OpenDataFrame(idadb, "MEASURES")
	require.NoError(t, err)
	return df
}

func TestValueCounts(t *testing.T) {
	df := testFrame(t)

	rf, err := ValueCounts(context.Background(), df, "GRADE", 0)
	require.NoError(t, err)

	grades, err := rf.StringColumn("GRADE")
	require.NoError(t, err)
	counts, err := rf.FloatColumn("COUNT")
	require.NoError(t, err)

	require.Len(t, grades, 3)
	assert.Equal(t, "A", grades[0])
	assert.Equal(t, []float64{5, 3, 2}, counts)
}

func TestValueCountsLimit(t *testing.T) {
	df := testFrame(t)

	rf, err := ValueCounts(context.Background(), df, "GRADE", 1)
	require.NoError(t, err)

	rows, _ := rf.Shape()
	assert.Equal(t, 1, rows)
}

func TestValueCountsUnknownColumn(t *testing.T) {
	df := testFrame(t)

	_, err := ValueCounts(context.Background(), df, "NOPE", 0)
	assert.Error(t, err)
}

func TestEqualWidth(t *testing.T) {
	df := testFrame(t)

	h, err := EqualWidth(context.Background(), df, "VALUE", 5)
	require.NoError(t, err)

	assert.Equal(t, 5, h.NumBins())
	require.Len(t, h.Breaks, 6)
	assert.InDelta(t, 0.5, h.Breaks[0], 1e-9)
	assert.InDelta(t, 9.5, h.Breaks[5], 1e-9)

	// 値は0.5刻みで一様なので各ビンに2件ずつ入る
	assert.Equal(t, []float64{2, 2, 2, 2, 2}, h.Counts)

	total := 0.0
	for i, d := range h.Densities() {
		total += d * (h.Breaks[i+1] - h.Breaks[i])
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEqualWidthValidation(t *testing.T) {
	df := testFrame(t)

	_, err := EqualWidth(context.Background(), df, "VALUE", 0)
	assert.Error(t, err)

	_, err = EqualWidth(context.Background(), df, "NOPE", 3)
	assert.Error(t, err)
}

func TestHistogramMidpoints(t *testing.T) {
	h := &Histogram{
		Column: "X",
		Breaks: []float64{0, 1, 2},
		Counts: []float64{3, 7},
	}
	assert.Equal(t, []float64{0.5, 1.5}, h.Midpoints())
}

func TestSavePlot(t *testing.T) {
	h := &Histogram{
		Column: "VALUE",
		Breaks: []float64{0, 1, 2, 3},
		Counts: []float64{4, 8, 2},
	}

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, SavePlot(h, path, PlotOptions{Title: "distribution"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePlotEmpty(t *testing.T) {
	assert.Error(t, SavePlot(nil, "x.png", PlotOptions{}))
	assert.Error(t, SavePlot(&Histogram{}, "x.png", PlotOptions{}))
}

package ida

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsFrame は X=1..10 の既知データを持つフレームを返す。
func statsFrame(t *testing.T, idadb *DataBase) *DataFrame {
	t.Helper()
	rf := &ResultFrame{Columns: []string{"X", "LABEL"}}
	for i := 1; i <= 10; i++ {
		rf.Data = append(rf.Data, []interface{}{float64(i), "row"})
	}
	df, err := idadb.AsDataFrame(rf, "STATS_T", UploadOptions{Clear: true})
	require.NoError(t, err)
	return df
}

func TestSimpleStats(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)
	ctx := context.Background()

	count, err := df.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, count["X"])

	mean, err := df.Mean(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, mean["X"], 1e-9)

	min, err := df.Min(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, min["X"])

	max, err := df.Max(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, max["X"])

	sum, err := df.Sum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55.0, sum["X"])
}

func TestStatsUnknownColumn(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)

	_, err := df.Mean(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestStatsNoNumericColumns(t *testing.T) {
	idadb := testDB(t)
	rf := &ResultFrame{
		Columns: []string{"NAME"},
		Data:    [][]interface{}{{"a"}, {"b"}},
	}
	df, err := idadb.AsDataFrame(rf, "TEXT_ONLY", UploadOptions{Clear: true})
	require.NoError(t, err)

	_, err = df.Mean(context.Background())
	assert.Error(t, err)
}

func TestVarAndStd(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)
	ctx := context.Background()

	// 1..10 の標本分散は 55/6 = 9.1666...
	v, err := df.Var(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 9.166666667, v["X"], 1e-6)

	s, err := df.Std(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.027650354, s["X"], 1e-6)
}

func TestMAD(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)

	// 平均5.5からの絶対偏差の平均は 2.5
	mad, err := df.MAD(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.5, mad["X"], 1e-9)
}

func TestCountDistinct(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)

	n, err := df.CountDistinct(context.Background(), "LABEL")
	require.NoError(t, err)
	assert.Equal(t, 1.0, n["LABEL"])
}

func TestQuantile(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)
	ctx := context.Background()

	rf, err := df.Quantile(ctx, []float64{0.25, 0.5, 0.75}, "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"PERCENTILE", "X"}, rf.Columns)
	vals, err := rf.FloatColumn("X")
	require.NoError(t, err)
	// 補間位置は隣接行の平均で丸められる
	assert.InDeltaSlice(t, []float64{3.5, 5.5, 7.5}, vals, 1e-9)

	_, err = df.Quantile(ctx, []float64{1.5}, "X")
	assert.Error(t, err)
	_, err = df.Quantile(ctx, []float64{0}, "X")
	assert.Error(t, err)
}

func TestMedian(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)

	med, err := df.Median(context.Background(), "X")
	require.NoError(t, err)
	assert.InDelta(t, 5.5, med["X"], 1e-9)
}

func TestDescribe(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)

	rf, err := df.Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"STAT", "X"}, rf.Columns)

	stats, err := rf.StringColumn("STAT")
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}, stats)

	vals, err := rf.FloatColumn("X")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 5.5, 3.027650354, 1, 3.5, 5.5, 7.5, 10}, vals, 1e-6)
}

func TestStatsOnFilteredFrame(t *testing.T) {
	idadb := testDB(t)
	df := statsFrame(t, idadb)
	ctx := context.Background()

	x, err := df.Column("X")
	require.NoError(t, err)
	upper, err := df.Filter(x.Gt(5.0))
	require.NoError(t, err)

	mean, err := upper.Mean(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, mean["X"], 1e-9)

	count, err := upper.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, count["X"])
}

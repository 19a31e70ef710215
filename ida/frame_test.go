package ida

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

func TestOpenDataFrameMissing(t *testing.T) {
	idadb := testDB(t)
	_, err := OpenDataFrame(idadb, "NO_SUCH_TABLE")
	assert.Error(t, err)
}

func TestFrameMetadata(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	assert.Equal(t, "WEATHER", df.TableName())
	assert.Equal(t, []string{"ID", "TEMP", "CITY"}, df.Columns())
	assert.True(t, df.HasColumn("TEMP"))
	assert.False(t, df.HasColumn("WIND"))
	assert.Equal(t, []string{"ID", "TEMP"}, df.NumericColumns())

	dtypes := df.Dtypes()
	assert.Equal(t, "VARCHAR(255)", dtypes["CITY"])
}

func TestProject(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	p, err := df.Project("CITY", "TEMP")
	require.NoError(t, err)
	assert.Equal(t, []string{"CITY", "TEMP"}, p.Columns())
	// インデクサ列が射影から落ちた場合はインデクサも外れる
	assert.Equal(t, "", p.Indexer())
	// 元のフレームは変更されない
	assert.Equal(t, []string{"ID", "TEMP", "CITY"}, df.Columns())

	_, err = df.Project("WIND")
	assert.Error(t, err)
	_, err = df.Project()
	assert.Error(t, err)
}

func TestFilterCollect(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	temp, err := df.Column("TEMP")
	require.NoError(t, err)
	city, err := df.Column("CITY")
	require.NoError(t, err)

	hot, err := df.Filter(temp.Ge(20.0).And(city.Ne("naha")))
	require.NoError(t, err)
	rf, err := hot.Collect(context.Background())
	require.NoError(t, err)

	cities, err := rf.StringColumn("CITY")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"osaka", "osaka"}, cities)
}

func TestFilterUnknownColumn(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	p, err := df.Project("CITY")
	require.NoError(t, err)
	temp, err := df.Column("TEMP")
	require.NoError(t, err)

	_, err = p.Filter(temp.Gt(0.0))
	assert.Error(t, err, "predicate over a projected-away column is rejected")
	_, err = p.Filter(nil)
	assert.Error(t, err)
}

func TestWithColumn(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	fahrenheit := df.WithColumn("TEMP_F", `("TEMP" * 1.8 + 32)`)
	assert.Equal(t, []string{"ID", "TEMP", "CITY", "TEMP_F"}, fahrenheit.Columns())

	rf, err := fahrenheit.Collect(context.Background())
	require.NoError(t, err)
	vals, err := rf.FloatColumn("TEMP_F")
	require.NoError(t, err)
	assert.Contains(t, vals, 50.0) // 10.0°C
	assert.Contains(t, vals, 86.0) // 30.0°C
}

func TestSeriesArithmetic(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	temp, err := df.Column("TEMP")
	require.NoError(t, err)

	doubled := temp.Mul(2).Add(1)
	rf, err := doubled.Collect(context.Background())
	require.NoError(t, err)
	vals, err := rf.FloatColumn("TEMP")
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{21, 26, 41, 46, 61}, vals)
}

func TestSeriesDivision(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	id, err := df.Column("ID")
	require.NoError(t, err)

	// 整数除算にならないこと
	rf, err := id.Div(2).Collect(context.Background())
	require.NoError(t, err)
	vals, err := rf.FloatColumn("ID")
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{0, 0.5, 1, 1.5, 2}, vals)
}

func TestSeriesAggregates(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	temp, err := df.Column("TEMP")
	require.NoError(t, err)

	n, err := temp.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	sum, err := temp.Sum()
	require.NoError(t, err)
	assert.InDelta(t, 95.0, sum, 1e-9)

	mean, err := temp.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 19.0, mean, 1e-9)

	min, err := temp.Min()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, min, 1e-9)

	max, err := temp.Max()
	require.NoError(t, err)
	assert.InDelta(t, 30.0, max, 1e-9)
}

func TestRenameColumn(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	renamed, err := df.Rename("TEMP", "CELSIUS")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "CELSIUS", "CITY"}, renamed.Columns())

	rf, err := renamed.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "CELSIUS", "CITY"}, rf.Columns)

	_, err = df.Rename("WIND", "X")
	assert.Error(t, err)
}

func TestSortCollect(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	sorted, err := df.Sort([]string{"TEMP"}, false)
	require.NoError(t, err)
	rf, err := sorted.Collect(context.Background())
	require.NoError(t, err)
	vals, err := rf.FloatColumn("TEMP")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 22.5, 20, 12.5, 10}, vals)
}

func TestHeadTail(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	head, err := df.Head(2)
	require.NoError(t, err)
	rows, _, err := head.Shape()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	tail, err := df.Tail(3)
	require.NoError(t, err)
	rows, _, err = tail.Shape()
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	// nがフレームより大きい場合は全行
	tail, err = df.Tail(100)
	require.NoError(t, err)
	rows, _, err = tail.Shape()
	require.NoError(t, err)
	assert.Equal(t, 5, rows)

	_, err = df.Head(0)
	assert.Error(t, err)
	_, err = df.Tail(-1)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	pop := &ResultFrame{
		Columns: []string{"CITY", "POPULATION"},
		Data: [][]interface{}{
			{"tokyo", int64(14000000)},
			{"osaka", int64(2700000)},
		},
	}
	other, err := idadb.AsDataFrame(pop, "POPULATION", UploadOptions{Clear: true})
	require.NoError(t, err)

	merged, err := df.Merge(other, "CITY")
	require.NoError(t, err)
	defer func() { _ = merged.ReleaseViews() }()

	assert.Equal(t, []string{"CITY", "ID", "TEMP", "POPULATION"}, merged.Columns())
	rows, _, err := merged.Shape()
	require.NoError(t, err)
	assert.Equal(t, 4, rows, "naha has no population row and drops out")

	_, err = df.Merge(other, "ID")
	assert.Error(t, err, "join column must exist in both frames")
}

func TestLoc(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	one, err := df.Loc().Value(3)
	require.NoError(t, err)
	rf, err := one.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, rf.Data, 1)
	cities, err := rf.StringColumn("CITY")
	require.NoError(t, err)
	assert.Equal(t, []string{"osaka"}, cities)

	some, err := df.Loc().Values(0, 4)
	require.NoError(t, err)
	rows, _, err := some.Shape()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	pos, err := df.Loc().Positions(0, 3)
	require.NoError(t, err)
	rows, _, err = pos.Shape()
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	_, err = df.Loc().Positions(2, 1)
	assert.Error(t, err)
}

func TestLocWithoutIndexer(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	p, err := df.Project("TEMP", "CITY")
	require.NoError(t, err)
	_, err = p.Loc().Value(1)
	assert.ErrorIs(t, err, errors.ErrNoIndexer)
}

func TestGroupBy(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	g, err := df.GroupBy("CITY")
	require.NoError(t, err)

	counts, err := g.Count(context.Background())
	require.NoError(t, err)
	names, err := counts.StringColumn("CITY")
	require.NoError(t, err)
	ns, err := counts.FloatColumn("COUNT")
	require.NoError(t, err)
	assert.Equal(t, []string{"naha", "osaka", "tokyo"}, names)
	assert.Equal(t, []float64{1, 2, 2}, ns)

	means, err := g.Mean(context.Background(), "TEMP")
	require.NoError(t, err)
	vals, err := means.FloatColumn("TEMP")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{30, 21.25, 11.25}, vals, 1e-9)

	_, err = df.GroupBy("WIND")
	assert.Error(t, err)
	_, err = df.GroupBy()
	assert.Error(t, err)
}

func TestMaterializeView(t *testing.T) {
	idadb := testDB(t)
	df := weatherFrame(t, idadb)

	// 未変更のフレームはビューを作らない
	name, created, err := df.MaterializeView()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "WEATHER", name)

	temp, err := df.Column("TEMP")
	require.NoError(t, err)
	hot, err := df.Filter(temp.Gt(15.0))
	require.NoError(t, err)

	name, created, err = hot.MaterializeView()
	require.NoError(t, err)
	assert.True(t, created)

	ok, err := idadb.ExistsView(name)
	require.NoError(t, err)
	assert.True(t, ok)

	view, err := OpenDataFrame(idadb, name)
	require.NoError(t, err)
	rows, _, err := view.Shape()
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	require.NoError(t, hot.ReleaseViews())
	ok, err = idadb.ExistsView(name)
	require.NoError(t, err)
	assert.False(t, ok)
}

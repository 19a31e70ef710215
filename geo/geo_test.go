package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/idago/ida"
)

// testFrame opens a frame whose geometry columns carry ST_* declared types.
// SQLite stores declared types verbatim, so the catalog-driven type checks
// behave exactly as they do against the real engine.
func testFrame(t *testing.T) *ida.DataFrame {
	t.Helper()
	idadb, err := ida.Connect(ida.Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "geo_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })

	require.NoError(t, idadb.Exec(
		`CREATE TABLE COUNTIES (`+
			`"OBJECTID" BIGINT, "NAME" VARCHAR(255), `+
			`"SHAPE" ST_POLYGON, "BORDER" ST_LINESTRING, "CENTER" ST_POINT)`))

	df, err := ida.OpenDataFrame(idadb, "COUNTIES")
	require.NoError(t, err)
	require.NoError(t, df.SetIndexer("OBJECTID"))
	return df
}

func TestNewGeoDataFrame(t *testing.T) {
	df := testFrame(t)

	gdf, err := NewGeoDataFrame(df, "SHAPE")
	require.NoError(t, err)
	assert.Equal(t, "SHAPE", gdf.GeometryColumn())

	_, err = NewGeoDataFrame(df, "NAME")
	assert.Error(t, err, "non-geometry column is rejected")
	_, err = NewGeoDataFrame(df, "MISSING")
	assert.Error(t, err)
}

func TestSetGeometry(t *testing.T) {
	df := testFrame(t)
	gdf, err := NewGeoDataFrame(df, "SHAPE")
	require.NoError(t, err)

	require.NoError(t, gdf.SetGeometry("CENTER"))
	assert.Equal(t, "CENTER", gdf.GeometryColumn())

	assert.Error(t, gdf.SetGeometry("OBJECTID"))
	assert.Equal(t, "CENTER", gdf.GeometryColumn(), "failed SetGeometry keeps the old column")
}

func TestNewGeoSeries(t *testing.T) {
	df := testFrame(t)

	gs, err := NewGeoSeries(df, "BORDER")
	require.NoError(t, err)
	assert.Equal(t, "BORDER", gs.Name())
	assert.Equal(t, "ST_LINESTRING", gs.GeometryType())

	_, err = NewGeoSeries(df, "NAME")
	assert.Error(t, err)
}

func TestUnarySeriesSQL(t *testing.T) {
	df := testFrame(t)
	gs, err := NewGeoSeries(df, "SHAPE")
	require.NoError(t, err)

	area, err := gs.Area("")
	require.NoError(t, err)
	assert.Equal(t, "inza..ST_AREA(SHAPE)", area.Name())
	assert.Equal(t,
		`SELECT inza..ST_AREA("SHAPE") AS "inza..ST_AREA(SHAPE)" FROM "COUNTIES"`,
		area.Frame().SelectSQL())
}

func TestUnarySeriesUnit(t *testing.T) {
	df := testFrame(t)
	gs, err := NewGeoSeries(df, "SHAPE")
	require.NoError(t, err)

	area, err := gs.Area("Kilometer")
	require.NoError(t, err)
	// 単位は小文字化して引用符付きの引数になる
	assert.Contains(t, area.Frame().SelectSQL(), `inza..ST_AREA("SHAPE",'kilometer')`)

	_, err = gs.Area("furlong")
	assert.Error(t, err)
}

func TestTypeRestrictedFunctions(t *testing.T) {
	df := testFrame(t)

	polygon, err := NewGeoSeries(df, "SHAPE")
	require.NoError(t, err)
	line, err := NewGeoSeries(df, "BORDER")
	require.NoError(t, err)
	point, err := NewGeoSeries(df, "CENTER")
	require.NoError(t, err)

	_, err = polygon.Length("")
	assert.Error(t, err, "ST_LENGTH does not apply to polygons")
	_, err = line.Length("")
	assert.NoError(t, err)

	_, err = line.Perimeter("")
	assert.Error(t, err, "ST_PERIMETER does not apply to linestrings")
	_, err = polygon.Perimeter("")
	assert.NoError(t, err)

	_, err = point.X()
	assert.NoError(t, err)
	_, err = polygon.X()
	assert.Error(t, err)

	_, err = polygon.ExteriorRing()
	assert.NoError(t, err)
	_, err = line.ExteriorRing()
	assert.Error(t, err)

	_, err = line.StartPoint()
	assert.NoError(t, err)
	_, err = point.StartPoint()
	assert.Error(t, err)
}

func TestUnaryGeoDerivation(t *testing.T) {
	df := testFrame(t)
	gs, err := NewGeoSeries(df, "SHAPE")
	require.NoError(t, err)

	buf, err := gs.Buffer(1.5, "meter")
	require.NoError(t, err)
	assert.Equal(t, "ST_GEOMETRY", buf.GeometryType())
	assert.Equal(t, "inza..ST_BUFFER(SHAPE,1.5,'meter')", buf.Name())

	centroid, err := gs.Centroid()
	require.NoError(t, err)
	assert.Equal(t, "ST_POINT", centroid.GeometryType())

	// 派生ジオメトリにはさらに点向けの関数を重ねられる
	_, err = centroid.X()
	assert.NoError(t, err)

	envelope, err := gs.Envelope()
	require.NoError(t, err)
	assert.Equal(t, "ST_POLYGON", envelope.GeometryType())
	_, err = envelope.Perimeter("")
	assert.NoError(t, err)
}

func TestBinaryOpRequiresIndexer(t *testing.T) {
	df := testFrame(t)

	// 射影でインデクサを落とした側を用意する
	noIndexer, err := df.Project("SHAPE", "NAME")
	require.NoError(t, err)

	gdf, err := NewGeoDataFrame(df, "SHAPE")
	require.NoError(t, err)
	bare, err := NewGeoDataFrame(noIndexer, "SHAPE")
	require.NoError(t, err)

	_, err = gdf.Equals(bare)
	assert.Error(t, err)
	_, err = bare.Equals(gdf)
	assert.Error(t, err)
}

func TestDistanceUnitValidation(t *testing.T) {
	df := testFrame(t)
	gdf, err := NewGeoDataFrame(df, "SHAPE")
	require.NoError(t, err)

	_, err = gdf.Distance(gdf, "parsec")
	assert.Error(t, err)
}

package geo

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// GeoDataFrame is a DataFrame with a designated geometry column.
// Binary spatial operations pair the geometry columns of two frames; each
// frame must have an indexer so that result rows can be attributed.
type GeoDataFrame struct {
	*ida.DataFrame
	geometry string
}

// NewGeoDataFrame wraps a frame and designates its geometry column.
func NewGeoDataFrame(df *ida.DataFrame, geometryColumn string) (*GeoDataFrame, error) {
	gdf := &GeoDataFrame{DataFrame: df}
	if err := gdf.SetGeometry(geometryColumn); err != nil {
		return nil, err
	}
	return gdf, nil
}

// OpenGeoDataFrame opens a frame over a table and designates its geometry.
func OpenGeoDataFrame(idadb *ida.DataBase, tablename, geometryColumn string) (*GeoDataFrame, error) {
	df, err := ida.OpenDataFrame(idadb, tablename)
	if err != nil {
		return nil, err
	}
	return NewGeoDataFrame(df, geometryColumn)
}

// SetGeometry designates a geometry-typed column of the frame.
func (gdf *GeoDataFrame) SetGeometry(column string) error {
	dtype, ok := gdf.Dtypes()[column]
	if !ok {
		return errors.NewGeoDataFrameError("SetGeometry", column, "column not in frame")
	}
	if !strings.HasPrefix(strings.ToUpper(dtype), "ST_") {
		return errors.NewGeoDataFrameError("SetGeometry", column,
			fmt.Sprintf("column has non-geometry type %s", dtype))
	}
	gdf.geometry = column
	return nil
}

// GeometryColumn returns the name of the designated geometry column.
func (gdf *GeoDataFrame) GeometryColumn() string { return gdf.geometry }

// Geometry returns the designated geometry column as a GeoSeries.
func (gdf *GeoDataFrame) Geometry() (*GeoSeries, error) {
	return NewGeoSeries(gdf.DataFrame, gdf.geometry)
}

// binaryOp runs a two-frame spatial function. The result is a new frame
// over a created view with columns INDEXERIDA1, INDEXERIDA2 and RESULT.
func (gdf *GeoDataFrame) binaryOp(op, fn string, other *GeoDataFrame, args ...string) (*ida.DataFrame, error) {
	if gdf.Indexer() == "" {
		return nil, errors.NewGeoDataFrameError(op, gdf.geometry,
			gdf.TableName()+" has no indexer, set one with SetIndexer")
	}
	if other.Indexer() == "" {
		return nil, errors.NewGeoDataFrameError(op, other.geometry,
			other.TableName()+" has no indexer, set one with SetIndexer")
	}

	fnArgs := []string{
		`IDA1."` + gdf.geometry + `"`,
		`IDA2."` + other.geometry + `"`,
	}
	fnArgs = append(fnArgs, args...)
	resultExpr := fn + "(" + strings.Join(fnArgs, ",") + ")"

	query := fmt.Sprintf(
		`SELECT IDA1."%s" AS "INDEXERIDA1", IDA2."%s" AS "INDEXERIDA2", %s AS "RESULT" `+
			"FROM (%s) AS IDA1, (%s) AS IDA2",
		gdf.Indexer(), other.Indexer(), resultExpr,
		gdf.SelectSQL(), other.SelectSQL())

	idadb := gdf.DB()
	viewname, err := idadb.ValidViewName("TEMP_VIEW_")
	if err != nil {
		return nil, err
	}
	if err := idadb.Exec(`CREATE VIEW "` + viewname + `" AS ` + query); err != nil {
		return nil, err
	}
	result, err := ida.OpenDataFrame(idadb, viewname)
	if err != nil {
		return nil, err
	}
	if err := result.SetIndexer("INDEXERIDA1"); err != nil {
		return nil, err
	}
	return result, nil
}

// Distance returns the pairwise distance between the geometries of two
// frames, optionally in a given unit.
func (gdf *GeoDataFrame) Distance(other *GeoDataFrame, unit string) (*ida.DataFrame, error) {
	var args []string
	if unit != "" {
		u, err := linearUnit("Distance", unit)
		if err != nil {
			return nil, err
		}
		args = append(args, u)
	}
	return gdf.binaryOp("Distance", "inza..ST_DISTANCE", other, args...)
}

// Equals reports pairwise whether the geometries are equal.
func (gdf *GeoDataFrame) Equals(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Equals", "inza..ST_EQUALS", other)
}

// Crosses reports pairwise whether the geometries cross.
func (gdf *GeoDataFrame) Crosses(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Crosses", "inza..ST_CROSSES", other)
}

// Intersects reports pairwise whether the geometries intersect.
func (gdf *GeoDataFrame) Intersects(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Intersects", "inza..ST_INTERSECTS", other)
}

// Overlaps reports pairwise whether the geometries overlap.
func (gdf *GeoDataFrame) Overlaps(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Overlaps", "inza..ST_OVERLAPS", other)
}

// Touches reports pairwise whether the geometries touch.
func (gdf *GeoDataFrame) Touches(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Touches", "inza..ST_TOUCHES", other)
}

// Disjoint reports pairwise whether the geometries are disjoint.
func (gdf *GeoDataFrame) Disjoint(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Disjoint", "inza..ST_DISJOINT", other)
}

// Contains reports pairwise whether this geometry contains the other.
func (gdf *GeoDataFrame) Contains(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Contains", "inza..ST_CONTAINS", other)
}

// Within reports pairwise whether this geometry lies within the other.
func (gdf *GeoDataFrame) Within(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Within", "inza..ST_WITHIN", other)
}

// MBRIntersects reports pairwise whether the bounding rectangles intersect.
func (gdf *GeoDataFrame) MBRIntersects(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("MBRIntersects", "inza..ST_MBRINTERSECTS", other)
}

// Difference returns the pairwise difference geometry.
func (gdf *GeoDataFrame) Difference(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Difference", "inza..ST_DIFFERENCE", other)
}

// Intersection returns the pairwise intersection geometry.
func (gdf *GeoDataFrame) Intersection(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Intersection", "inza..ST_INTERSECTION", other)
}

// Union returns the pairwise union geometry.
func (gdf *GeoDataFrame) Union(other *GeoDataFrame) (*ida.DataFrame, error) {
	return gdf.binaryOp("Union", "inza..ST_UNION", other)
}

// Package geo adds geospatial operations to ida frames.
//
// A GeoSeries is a single geometry column; its methods wrap the column
// expression in the corresponding inza..ST_* function of the Netezza
// analytics cartridge, so all geometry computation runs in the database.
package geo

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// linearUnits are the measurement units accepted by the ST_* functions
// taking a unit argument.
var linearUnits = map[string]bool{
	"meter":         true,
	"kilometer":     true,
	"foot":          true,
	"mile":          true,
	"nautical mile": true,
}

// GeoSeries is a geometry-typed column of a frame. Methods derive new
// series whose expressions apply spatial functions to the column.
type GeoSeries struct {
	frame  *ida.DataFrame
	column string
	dtype  string // geometry type name, e.g. ST_POLYGON
}

// NewGeoSeries wraps a geometry column of a frame.
func NewGeoSeries(df *ida.DataFrame, column string) (*GeoSeries, error) {
	dtype, ok := df.Dtypes()[column]
	if !ok {
		return nil, errors.NewGeoDataFrameError("NewGeoSeries", column, "column not in frame")
	}
	if !strings.HasPrefix(strings.ToUpper(dtype), "ST_") {
		return nil, errors.NewGeoDataFrameError("NewGeoSeries", column,
			fmt.Sprintf("column has non-geometry type %s", dtype))
	}
	return &GeoSeries{frame: df, column: column, dtype: strings.ToUpper(dtype)}, nil
}

// Name returns the geometry column name.
func (gs *GeoSeries) Name() string { return gs.column }

// GeometryType returns the declared geometry type of the column.
func (gs *GeoSeries) GeometryType() string { return gs.dtype }

func (gs *GeoSeries) checkType(op string, validTypes ...string) error {
	if len(validTypes) == 0 {
		return nil
	}
	for _, t := range validTypes {
		if gs.dtype == t {
			return nil
		}
	}
	return errors.NewGeoFunctionError(op, "", gs.column,
		fmt.Sprintf("column type %s is not one of %s", gs.dtype, strings.Join(validTypes, ", ")))
}

// unaryExpr renders fn(column [, args...]).
func (gs *GeoSeries) unaryExpr(fn string, args ...string) (alias, expr string) {
	parts := append([]string{`"` + gs.column + `"`}, args...)
	expr = fn + "(" + strings.Join(parts, ",") + ")"
	// エイリアスにはSQLの式をそのまま使う（二重引用符は除く）
	alias = strings.ReplaceAll(expr, `"`, "")
	return alias, expr
}

// unarySeries applies a spatial function returning a scalar per row.
func (gs *GeoSeries) unarySeries(op, fn string, validTypes []string, args ...string) (*ida.Series, error) {
	if err := gs.checkType(op, validTypes...); err != nil {
		return nil, err
	}
	alias, expr := gs.unaryExpr(fn, args...)
	derived := gs.frame.WithColumn(alias, expr)
	return derived.Column(alias)
}

// unaryGeo applies a spatial function returning a geometry per row.
func (gs *GeoSeries) unaryGeo(op, fn, resultType string, validTypes []string, args ...string) (*GeoSeries, error) {
	if err := gs.checkType(op, validTypes...); err != nil {
		return nil, err
	}
	alias, expr := gs.unaryExpr(fn, args...)
	derived := gs.frame.WithColumn(alias, expr)
	projected, err := derived.Project(alias)
	if err != nil {
		return nil, err
	}
	return &GeoSeries{frame: projected, column: alias, dtype: resultType}, nil
}

// linearUnit validates and quotes a measurement unit argument.
func linearUnit(op, unit string) (string, error) {
	u := strings.ToLower(unit)
	if !linearUnits[u] {
		return "", errors.NewGeoDataFrameError(op, "",
			fmt.Sprintf("invalid unit %q, must be one of meter, kilometer, foot, mile, nautical mile", unit))
	}
	return "'" + u + "'", nil
}

// ===========================================================================
//
//	計測
//
// ===========================================================================

// Area returns the area of each surface. An empty unit selects the unit of
// the spatial reference system.
func (gs *GeoSeries) Area(unit string) (*ida.Series, error) {
	var args []string
	if unit != "" {
		u, err := linearUnit("Area", unit)
		if err != nil {
			return nil, err
		}
		args = append(args, u)
	}
	return gs.unarySeries("Area", "inza..ST_AREA", nil, args...)
}

// Length returns the length of each curve.
func (gs *GeoSeries) Length(unit string) (*ida.Series, error) {
	var args []string
	if unit != "" {
		u, err := linearUnit("Length", unit)
		if err != nil {
			return nil, err
		}
		args = append(args, u)
	}
	return gs.unarySeries("Length", "inza..ST_LENGTH",
		[]string{"ST_LINESTRING", "ST_MULTILINESTRING"}, args...)
}

// Perimeter returns the perimeter of each surface.
func (gs *GeoSeries) Perimeter(unit string) (*ida.Series, error) {
	var args []string
	if unit != "" {
		u, err := linearUnit("Perimeter", unit)
		if err != nil {
			return nil, err
		}
		args = append(args, u)
	}
	return gs.unarySeries("Perimeter", "inza..ST_PERIMETER",
		[]string{"ST_POLYGON", "ST_MULTIPOLYGON"}, args...)
}

// ===========================================================================
//
//	ジオメトリ派生
//
// ===========================================================================

// Buffer returns geometries enlarged by distance around each geometry.
func (gs *GeoSeries) Buffer(distance float64, unit string) (*GeoSeries, error) {
	args := []string{fmt.Sprintf("%v", distance)}
	if unit != "" {
		u, err := linearUnit("Buffer", unit)
		if err != nil {
			return nil, err
		}
		args = append(args, u)
	}
	return gs.unaryGeo("Buffer", "inza..ST_BUFFER", "ST_GEOMETRY", nil, args...)
}

// Centroid returns the geometric center of each geometry.
func (gs *GeoSeries) Centroid() (*GeoSeries, error) {
	return gs.unaryGeo("Centroid", "inza..ST_CENTROID", "ST_POINT", nil)
}

// Boundary returns the boundary of each geometry.
func (gs *GeoSeries) Boundary() (*GeoSeries, error) {
	return gs.unaryGeo("Boundary", "inza..ST_BOUNDARY", "ST_GEOMETRY", nil)
}

// Envelope returns the bounding rectangle of each geometry as a polygon.
func (gs *GeoSeries) Envelope() (*GeoSeries, error) {
	return gs.unaryGeo("Envelope", "inza..ST_ENVELOPE", "ST_POLYGON", nil)
}

// MBR returns the minimum bounding rectangle of each geometry.
func (gs *GeoSeries) MBR() (*GeoSeries, error) {
	return gs.unaryGeo("MBR", "inza..ST_MBR", "ST_GEOMETRY", nil)
}

// ConvexHull returns the convex hull of each geometry.
func (gs *GeoSeries) ConvexHull() (*GeoSeries, error) {
	return gs.unaryGeo("ConvexHull", "inza..ST_CONVEXHULL", "ST_GEOMETRY", nil)
}

// ExteriorRing returns the outer ring of each polygon as a linestring.
func (gs *GeoSeries) ExteriorRing() (*GeoSeries, error) {
	return gs.unaryGeo("ExteriorRing", "inza..ST_EXTERIORRING", "ST_LINESTRING",
		[]string{"ST_POLYGON"})
}

// StartPoint returns the first point of each linestring.
func (gs *GeoSeries) StartPoint() (*GeoSeries, error) {
	return gs.unaryGeo("StartPoint", "inza..ST_STARTPOINT", "ST_POINT",
		[]string{"ST_LINESTRING"})
}

// EndPoint returns the last point of each linestring.
func (gs *GeoSeries) EndPoint() (*GeoSeries, error) {
	return gs.unaryGeo("EndPoint", "inza..ST_ENDPOINT", "ST_POINT",
		[]string{"ST_LINESTRING"})
}

// ===========================================================================
//
//	属性アクセサ
//
// ===========================================================================

// SRID returns the spatial reference identifier of each geometry.
func (gs *GeoSeries) SRID() (*ida.Series, error) {
	return gs.unarySeries("SRID", "inza..ST_SRID", nil)
}

// GeometryTypeOf returns the concrete geometry type name of each value.
func (gs *GeoSeries) GeometryTypeOf() (*ida.Series, error) {
	return gs.unarySeries("GeometryTypeOf", "inza..ST_GEOMETRYTYPE", nil)
}

// Dimension returns the dimension (0, 1 or 2) of each geometry.
func (gs *GeoSeries) Dimension() (*ida.Series, error) {
	return gs.unarySeries("Dimension", "inza..ST_DIMENSION", nil)
}

// CoordDim returns the number of coordinate dimensions of each geometry.
func (gs *GeoSeries) CoordDim() (*ida.Series, error) {
	return gs.unarySeries("CoordDim", "inza..ST_COORDDIM", nil)
}

// NumGeometries returns the number of members of each collection.
func (gs *GeoSeries) NumGeometries() (*ida.Series, error) {
	return gs.unarySeries("NumGeometries", "inza..ST_NUMGEOMETRIES",
		[]string{"ST_MULTIPOINT", "ST_MULTIPOLYGON", "ST_MULTILINESTRING"})
}

// NumInteriorRing returns the number of holes of each polygon.
func (gs *GeoSeries) NumInteriorRing() (*ida.Series, error) {
	return gs.unarySeries("NumInteriorRing", "inza..ST_NUMINTERIORRING",
		[]string{"ST_POLYGON"})
}

// NumPoints returns the number of points of each geometry.
func (gs *GeoSeries) NumPoints() (*ida.Series, error) {
	return gs.unarySeries("NumPoints", "inza..ST_NUMPOINTS", nil)
}

// X returns the X coordinate of each point.
func (gs *GeoSeries) X() (*ida.Series, error) {
	return gs.unarySeries("X", "inza..ST_X", []string{"ST_POINT"})
}

// Y returns the Y coordinate of each point.
func (gs *GeoSeries) Y() (*ida.Series, error) {
	return gs.unarySeries("Y", "inza..ST_Y", []string{"ST_POINT"})
}

// MaxX returns the largest X coordinate of each geometry.
func (gs *GeoSeries) MaxX() (*ida.Series, error) {
	return gs.unarySeries("MaxX", "inza..ST_MAXX", nil)
}

// MinX returns the smallest X coordinate of each geometry.
func (gs *GeoSeries) MinX() (*ida.Series, error) {
	return gs.unarySeries("MinX", "inza..ST_MINX", nil)
}

// MaxY returns the largest Y coordinate of each geometry.
func (gs *GeoSeries) MaxY() (*ida.Series, error) {
	return gs.unarySeries("MaxY", "inza..ST_MAXY", nil)
}

// MinY returns the smallest Y coordinate of each geometry.
func (gs *GeoSeries) MinY() (*ida.Series, error) {
	return gs.unarySeries("MinY", "inza..ST_MINY", nil)
}

// ===========================================================================
//
//	述語
//
// ===========================================================================

// IsClosed reports per row whether the curve is closed.
func (gs *GeoSeries) IsClosed() (*ida.Series, error) {
	return gs.unarySeries("IsClosed", "inza..ST_ISCLOSED",
		[]string{"ST_LINESTRING", "ST_MULTILINESTRING"})
}

// IsSimple reports per row whether the geometry is simple.
func (gs *GeoSeries) IsSimple() (*ida.Series, error) {
	return gs.unarySeries("IsSimple", "inza..ST_ISSIMPLE", nil)
}

// IsEmpty reports per row whether the geometry is empty.
func (gs *GeoSeries) IsEmpty() (*ida.Series, error) {
	return gs.unarySeries("IsEmpty", "inza..ST_ISEMPTY", nil)
}

// IsValid reports per row whether the geometry is well formed.
func (gs *GeoSeries) IsValid() (*ida.Series, error) {
	return gs.unarySeries("IsValid", "inza..ST_ISVALID", nil)
}

// Is3D reports per row whether the geometry has Z coordinates.
func (gs *GeoSeries) Is3D() (*ida.Series, error) {
	return gs.unarySeries("Is3D", "inza..ST_IS3D", nil)
}

// IsMeasured reports per row whether the geometry has M coordinates.
func (gs *GeoSeries) IsMeasured() (*ida.Series, error) {
	return gs.unarySeries("IsMeasured", "inza..ST_ISMEASURED", nil)
}

// AsText returns the WKT representation of each geometry.
func (gs *GeoSeries) AsText() (*ida.Series, error) {
	return gs.unarySeries("AsText", "inza..ST_ASTEXT", nil)
}

package ida

import (
	"context"
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// DataFrame is a lazy, non-destructive reference to a database table or
// view. Operations return new frames recording the modification as SQL;
// the database is only touched when results are collected.
type DataFrame struct {
	idadb     *DataBase
	tablename string
	indexer   string
	state     *internalState
	dtypes    map[string]string // column name -> catalog type name
}

// OpenDataFrame opens a frame over an existing table or view.
func OpenDataFrame(idadb *DataBase, tablename string) (*DataFrame, error) {
	exists, err := idadb.ExistsTableOrView(tablename)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewDataFrameError("OpenDataFrame", tablename, "no such table or view")
	}
	names, types, err := idadb.TableColumns(tablename)
	if err != nil {
		return nil, err
	}
	dtypes := make(map[string]string, len(names))
	for i, n := range names {
		dtypes[n] = types[i]
	}
	return &DataFrame{
		idadb:     idadb,
		tablename: tablename,
		state:     newInternalState(tablename, names),
		dtypes:    dtypes,
	}, nil
}

// DB returns the connection the frame is bound to.
func (df *DataFrame) DB() *DataBase { return df.idadb }

// TableName returns the name of the underlying table or view.
func (df *DataFrame) TableName() string { return df.tablename }

// Columns returns the selected column names in order.
func (df *DataFrame) Columns() []string {
	return append([]string(nil), df.state.columns...)
}

// Dtypes returns the catalog type name per selected column.
func (df *DataFrame) Dtypes() map[string]string {
	out := make(map[string]string, len(df.state.columns))
	for _, c := range df.state.columns {
		out[c] = df.dtypes[c]
	}
	return out
}

// HasColumn reports whether the frame currently selects the column.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.state.columndict[name]
	return ok
}

// NumericColumns returns the selected columns with numeric catalog types.
func (df *DataFrame) NumericColumns() []string {
	var out []string
	for _, c := range df.state.columns {
		if isNumericType(df.dtypes[c]) {
			out = append(out, c)
		}
	}
	return out
}

// Indexer returns the indexer column, or "".
func (df *DataFrame) Indexer() string { return df.indexer }

// SetIndexer designates a column as row identifier for Loc selection.
func (df *DataFrame) SetIndexer(column string) error {
	if !df.HasColumn(column) {
		return errors.NewPrimaryKeyError(df.tablename, column, "indexer column not in frame")
	}
	df.indexer = column
	return nil
}

// clone returns a copy sharing the connection but not the state.
func (df *DataFrame) clone() *DataFrame {
	return &DataFrame{
		idadb:     df.idadb,
		tablename: df.tablename,
		indexer:   df.indexer,
		state:     df.state.clone(),
		dtypes:    df.dtypes,
	}
}

// SelectSQL renders the SQL query of the frame's current state.
func (df *DataFrame) SelectSQL() string {
	return df.state.getState(df.idadb.Dialect())
}

// Project returns a frame selecting only the given columns, in order.
func (df *DataFrame) Project(columns ...string) (*DataFrame, error) {
	if len(columns) == 0 {
		return nil, errors.NewDataFrameError("Project", df.tablename, "no columns given")
	}
	exprs := make(map[string]string, len(columns))
	for _, c := range columns {
		expr, ok := df.state.columndict[c]
		if !ok {
			return nil, errors.NewDataFrameError("Project", df.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
		exprs[c] = expr
	}
	out := df.clone()
	out.state.setProjection(columns, exprs)
	if out.indexer != "" && !out.HasColumn(out.indexer) {
		out.indexer = ""
	}
	return out, nil
}

// Column returns a single-column series over the frame's state.
func (df *DataFrame) Column(name string) (*Series, error) {
	projected, err := df.Project(name)
	if err != nil {
		return nil, err
	}
	return &Series{frame: projected, column: name}, nil
}

// WithColumn returns a frame carrying an additional derived column.
// The expression is raw SQL over the frame's current columns, e.g. the
// result of series arithmetic.
func (df *DataFrame) WithColumn(name, expr string) *DataFrame {
	out := df.clone()
	out.state.setColumn(name, expr)
	if _, ok := out.dtypes[name]; !ok {
		derived := make(map[string]string, len(out.dtypes)+1)
		for k, v := range out.dtypes {
			derived[k] = v
		}
		derived[name] = "DOUBLE"
		out.dtypes = derived
	}
	return out
}

// Rename returns a frame with a column renamed via an AS alias.
func (df *DataFrame) Rename(oldName, newName string) (*DataFrame, error) {
	expr, ok := df.state.columndict[oldName]
	if !ok {
		return nil, errors.NewDataFrameError("Rename", df.tablename,
			fmt.Sprintf("column %q not in frame", oldName))
	}
	out := df.clone()
	columns := make([]string, len(out.state.columns))
	exprs := make(map[string]string, len(columns))
	for i, c := range out.state.columns {
		if c == oldName {
			columns[i] = newName
			exprs[newName] = expr
			continue
		}
		columns[i] = c
		exprs[c] = out.state.columndict[c]
	}
	out.state.setProjection(columns, exprs)
	derived := make(map[string]string, len(out.dtypes))
	for k, v := range out.dtypes {
		derived[k] = v
	}
	derived[newName] = derived[oldName]
	out.dtypes = derived
	if out.indexer == oldName {
		out.indexer = newName
	}
	return out, nil
}

// Filter returns a frame keeping only rows matching the predicate.
func (df *DataFrame) Filter(pred *Predicate) (*DataFrame, error) {
	if pred == nil {
		return nil, errors.NewDataFrameError("Filter", df.tablename, "empty predicate")
	}
	for _, c := range pred.columns {
		if !df.HasColumn(c) {
			return nil, errors.NewDataFrameError("Filter", df.tablename,
				fmt.Sprintf("predicate references column %q not in frame", c))
		}
	}
	out := df.clone()
	out.state.applyFilter(pred.whereClause)
	return out, nil
}

// Sort returns a frame ordered by the given columns.
func (df *DataFrame) Sort(columns []string, ascending bool) (*DataFrame, error) {
	for _, c := range columns {
		if !df.HasColumn(c) {
			return nil, errors.NewDataFrameError("Sort", df.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
	}
	out := df.clone()
	out.state.applyOrder(columns, ascending)
	return out, nil
}

// Head returns a frame selecting the first n rows by position.
func (df *DataFrame) Head(n int) (*DataFrame, error) {
	if n <= 0 {
		return nil, errors.NewValueError("Head", "n must be positive")
	}
	out := df.clone()
	out.state.applyRowSelection(df.idadb.Dialect(), "",
		fmt.Sprintf(" BETWEEN 0 AND %d", n-1))
	return out, nil
}

// Tail returns a frame selecting the last n rows by position.
func (df *DataFrame) Tail(n int) (*DataFrame, error) {
	if n <= 0 {
		return nil, errors.NewValueError("Tail", "n must be positive")
	}
	rows, _, err := df.Shape()
	if err != nil {
		return nil, err
	}
	start := rows - n
	if start < 0 {
		start = 0
	}
	out := df.clone()
	out.state.applyRowSelection(df.idadb.Dialect(), "",
		fmt.Sprintf(" BETWEEN %d AND %d", start, rows-1))
	return out, nil
}

// Merge returns the inner join of two frames on a shared key column.
func (df *DataFrame) Merge(other *DataFrame, on string) (*DataFrame, error) {
	if !df.HasColumn(on) || !other.HasColumn(on) {
		return nil, errors.NewDataFrameError("Merge", df.tablename,
			fmt.Sprintf("join column %q must exist in both frames", on))
	}
	d := df.idadb.Dialect()

	var cols []string
	seen := map[string]bool{}
	cols = append(cols, "L."+quoteIdent(on))
	seen[on] = true
	for _, c := range df.state.columns {
		if !seen[c] {
			cols = append(cols, "L."+quoteIdent(c))
			seen[c] = true
		}
	}
	for _, c := range other.state.columns {
		if !seen[c] {
			cols = append(cols, "R."+quoteIdent(c))
			seen[c] = true
		}
	}

	query := fmt.Sprintf("SELECT %s FROM (%s) AS L INNER JOIN (%s) AS R ON L.%s = R.%s",
		strings.Join(cols, ", "), df.state.getState(d), other.state.getState(d),
		quoteIdent(on), quoteIdent(on))

	viewname, err := df.idadb.ValidViewName("TEMP_VIEW_")
	if err != nil {
		return nil, err
	}
	if err := df.idadb.Exec("CREATE VIEW " + quoteIdent(viewname) + " AS " + query); err != nil {
		return nil, err
	}
	df.idadb.invalidateCache()
	merged, err := OpenDataFrame(df.idadb, viewname)
	if err != nil {
		return nil, err
	}
	merged.state.viewstack = append(merged.state.viewstack, viewname)
	return merged, nil
}

// Collect executes the frame's state and fetches the full result set.
func (df *DataFrame) Collect(ctx context.Context) (*ResultFrame, error) {
	return df.idadb.QueryContext(ctx, df.SelectSQL())
}

// Shape returns the number of rows and selected columns.
func (df *DataFrame) Shape() (rows, cols int, err error) {
	d := df.idadb.Dialect()
	v, err := df.idadb.ScalarQuery(
		"SELECT COUNT(*) FROM (" + df.state.getState(d) + ")" + countAlias(d))
	if err != nil {
		return 0, 0, err
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	return int(f), len(df.state.columns), nil
}

func countAlias(d Dialect) string {
	if a := d.SubqueryAlias(1); a != "" {
		return a
	}
	return " AS TEMP"
}

// GroupBy starts a grouped aggregation over the given columns.
func (df *DataFrame) GroupBy(columns ...string) (*GroupBy, error) {
	for _, c := range columns {
		if !df.HasColumn(c) {
			return nil, errors.NewDataFrameError("GroupBy", df.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
	}
	if len(columns) == 0 {
		return nil, errors.NewDataFrameError("GroupBy", df.tablename, "no grouping columns")
	}
	return &GroupBy{frame: df, by: columns}, nil
}

// MaterializeView creates a database view of the frame's current state and
// returns its name. When the frame is unmodified the base relation name is
// returned and no view is created. Callers owning a created view release it
// with ReleaseViews.
func (df *DataFrame) MaterializeView() (string, bool, error) {
	if len(df.state.allViews()) == 0 {
		return df.tablename, false, nil
	}
	viewname, err := df.state.createView(df.idadb)
	if err != nil {
		return "", false, err
	}
	return viewname, true, nil
}

// ReleaseViews drops every temp view created for this frame.
func (df *DataFrame) ReleaseViews() error {
	return df.state.dropAllViews(df.idadb)
}

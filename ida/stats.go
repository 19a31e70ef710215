package ida

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/idago/core/parallel"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// stateAlias renders the frame state as a FROM-able relation.
func (df *DataFrame) stateAlias() string {
	d := df.idadb.Dialect()
	return "(" + df.state.getState(d) + ")" + countAlias(d)
}

// aggregatePerColumn runs one aggregate expression per column in a single
// query and returns the values keyed by column.
func (df *DataFrame) aggregatePerColumn(ctx context.Context, exprs []string, columns []string) (map[string]float64, error) {
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM " + df.stateAlias()
	rf, err := df.idadb.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	if rf.Empty() {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	out := make(map[string]float64, len(columns))
	for i, c := range columns {
		f, err := toFloat(rf.Data[0][i])
		if err != nil {
			return nil, errors.Wrapf(err, "idago: aggregate %q", c)
		}
		out[c] = f
	}
	return out, nil
}

func (df *DataFrame) statColumns(columns []string) ([]string, error) {
	if len(columns) == 0 {
		columns = df.NumericColumns()
	}
	if len(columns) == 0 {
		return nil, errors.NewDataFrameError("statistics", df.tablename, "no numeric columns")
	}
	for _, c := range columns {
		if !df.HasColumn(c) {
			return nil, errors.NewDataFrameError("statistics", df.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
	}
	return columns, nil
}

func (df *DataFrame) simpleStat(ctx context.Context, template string, columns []string) (map[string]float64, error) {
	columns, err := df.statColumns(columns)
	if err != nil {
		return nil, err
	}
	exprs := make([]string, len(columns))
	for i, c := range columns {
		exprs[i] = fmt.Sprintf(template, quoteIdent(c))
	}
	return df.aggregatePerColumn(ctx, exprs, columns)
}

// Count returns the number of non-NULL values per numeric column.
func (df *DataFrame) Count(ctx context.Context, columns ...string) (map[string]float64, error) {
	return df.simpleStat(ctx, "COUNT(%s)", columns)
}

// Mean returns the average per numeric column.
func (df *DataFrame) Mean(ctx context.Context, columns ...string) (map[string]float64, error) {
	return df.simpleStat(ctx, "AVG(CAST(%s AS FLOAT))", columns)
}

// Min returns the smallest value per numeric column.
func (df *DataFrame) Min(ctx context.Context, columns ...string) (map[string]float64, error) {
	return df.simpleStat(ctx, "MIN(%s)", columns)
}

// Max returns the largest value per numeric column.
func (df *DataFrame) Max(ctx context.Context, columns ...string) (map[string]float64, error) {
	return df.simpleStat(ctx, "MAX(%s)", columns)
}

// Sum returns the sum per numeric column.
func (df *DataFrame) Sum(ctx context.Context, columns ...string) (map[string]float64, error) {
	return df.simpleStat(ctx, "SUM(%s)", columns)
}

// CountDistinct returns the number of distinct values per selected column.
func (df *DataFrame) CountDistinct(ctx context.Context, columns ...string) (map[string]float64, error) {
	if len(columns) == 0 {
		columns = df.Columns()
	}
	exprs := make([]string, len(columns))
	for i, c := range columns {
		if !df.HasColumn(c) {
			return nil, errors.NewDataFrameError("CountDistinct", df.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
		exprs[i] = "COUNT(DISTINCT " + quoteIdent(c) + ")"
	}
	return df.aggregatePerColumn(ctx, exprs, columns)
}

// Std returns the sample standard deviation per numeric column.
// The variance is computed in-database and its square root taken locally,
// which keeps the query identical across dialects.
func (df *DataFrame) Std(ctx context.Context, columns ...string) (map[string]float64, error) {
	vars, err := df.Var(ctx, columns...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(vars))
	for c, v := range vars {
		out[c] = math.Sqrt(v)
	}
	return out, nil
}

// Var returns the sample variance per numeric column.
func (df *DataFrame) Var(ctx context.Context, columns ...string) (map[string]float64, error) {
	columns, err := df.statColumns(columns)
	if err != nil {
		return nil, err
	}
	d := df.idadb.Dialect()
	exprs := make([]string, len(columns))
	for i, c := range columns {
		exprs[i] = d.SampleVarianceExpr(quoteIdent(c))
	}
	return df.aggregatePerColumn(ctx, exprs, columns)
}

// MAD returns the mean absolute deviation around the mean per numeric
// column. The division by the non-NULL count uses POW(n, -1) because the
// plain division operator is unreliable for this expression on Netezza.
func (df *DataFrame) MAD(ctx context.Context, columns ...string) (map[string]float64, error) {
	columns, err := df.statColumns(columns)
	if err != nil {
		return nil, err
	}
	means, err := df.Mean(ctx, columns...)
	if err != nil {
		return nil, err
	}
	counts, err := df.Count(ctx, columns...)
	if err != nil {
		return nil, err
	}
	exprs := make([]string, len(columns))
	for i, c := range columns {
		exprs[i] = fmt.Sprintf("SUM(ABS(%s - %v)) * POW(%v, -1)",
			quoteIdent(c), math.Abs(means[c]), counts[c])
	}
	return df.aggregatePerColumn(ctx, exprs, columns)
}

// ===========================================================================
//
//	パーセンタイル
//
// ===========================================================================

// percentileOneColumn computes the requested percentiles of one column with
// a ROW_NUMBER selection over the sorted non-NULL values.
func (df *DataFrame) percentileOneColumn(ctx context.Context, column string, percentiles []float64, nonNull int) ([]float64, error) {
	if nonNull == 0 {
		return nil, errors.NewDataFrameError("Quantile", df.tablename,
			fmt.Sprintf("column %q has no non-NULL values", column))
	}

	// 各パーセンタイルの補間位置（1始まりの行番号）
	lows := make([]int, len(percentiles))
	highs := make([]int, len(percentiles))
	needed := make(map[int]bool)
	for i, p := range percentiles {
		pos := p*float64(nonNull-1) + 1
		lows[i] = int(math.Floor(pos))
		highs[i] = int(math.Ceil(pos))
		needed[lows[i]] = true
		needed[highs[i]] = true
	}
	var rns []int
	for rn := range needed {
		rns = append(rns, rn)
	}
	sort.Ints(rns)
	rnStrings := make([]string, len(rns))
	for i, rn := range rns {
		rnStrings[i] = fmt.Sprint(rn)
	}

	col := quoteIdent(column)
	query := fmt.Sprintf(
		"SELECT rn, %s FROM (SELECT ROW_NUMBER() OVER(ORDER BY %s) AS rn, %s "+
			"FROM (SELECT * FROM %s WHERE %s IS NOT NULL) AS T1) AS T2 WHERE rn IN (%s)",
		col, col, col, df.stateAlias(), col, strings.Join(rnStrings, ","))

	rf, err := df.idadb.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	byRN := make(map[int]float64, len(rf.Data))
	for _, row := range rf.Data {
		rn, err := toFloat(row[0])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		v, err := toFloat(row[1])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		byRN[int(rn)] = v
	}

	out := make([]float64, len(percentiles))
	for i := range percentiles {
		lo, okLo := byRN[lows[i]]
		hi, okHi := byRN[highs[i]]
		if !okLo || !okHi {
			return nil, errors.NewDataFrameError("Quantile", df.tablename,
				fmt.Sprintf("row %d or %d missing in percentile fetch of %q", lows[i], highs[i], column))
		}
		out[i] = (lo + hi) / 2
	}
	return out, nil
}

// Quantile returns the requested percentiles per numeric column.
// The result frame has one PERCENTILE column followed by one column per
// input column, one row per requested percentile. Per-column queries run
// concurrently.
func (df *DataFrame) Quantile(ctx context.Context, percentiles []float64, columns ...string) (*ResultFrame, error) {
	for _, p := range percentiles {
		if p <= 0 || p >= 1 {
			return nil, errors.NewValueError("Quantile", "percentiles must be between 0 and 1 exclusive")
		}
	}
	if len(percentiles) == 0 {
		percentiles = []float64{0.5}
	}
	columns, err := df.statColumns(columns)
	if err != nil {
		return nil, err
	}
	counts, err := df.Count(ctx, columns...)
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(columns))
	errs := make([]error, len(columns))
	parallel.Parallelize(len(columns), func(start, end int) {
		for i := start; i < end; i++ {
			values[i], errs[i] = df.percentileOneColumn(ctx, columns[i], percentiles, int(counts[columns[i]]))
		}
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	rf := &ResultFrame{Columns: append([]string{"PERCENTILE"}, columns...)}
	for pi, p := range percentiles {
		row := make([]interface{}, 0, len(columns)+1)
		row = append(row, p)
		for ci := range columns {
			row = append(row, values[ci][pi])
		}
		rf.Data = append(rf.Data, row)
	}
	return rf, nil
}

// Median returns the median per numeric column.
func (df *DataFrame) Median(ctx context.Context, columns ...string) (map[string]float64, error) {
	rf, err := df.Quantile(ctx, []float64{0.5}, columns...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rf.Columns)-1)
	for i, c := range rf.Columns[1:] {
		f, err := toFloat(rf.Data[0][i+1])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		out[c] = f
	}
	return out, nil
}

// ===========================================================================
//
//	記述統計
//
// ===========================================================================

// Describe computes count, mean, std, min, the requested percentiles and
// max for every numeric column, all in the database. The result frame has a
// STAT column naming each row.
func (df *DataFrame) Describe(ctx context.Context, percentiles ...float64) (*ResultFrame, error) {
	if len(percentiles) == 0 {
		percentiles = []float64{0.25, 0.5, 0.75}
	}
	columns, err := df.statColumns(nil)
	if err != nil {
		return nil, err
	}

	type namedStat struct {
		name string
		run  func() (map[string]float64, error)
	}
	stats := []namedStat{
		{"count", func() (map[string]float64, error) { return df.Count(ctx, columns...) }},
		{"mean", func() (map[string]float64, error) { return df.Mean(ctx, columns...) }},
		{"std", func() (map[string]float64, error) { return df.Std(ctx, columns...) }},
		{"min", func() (map[string]float64, error) { return df.Min(ctx, columns...) }},
	}

	results := make([]map[string]float64, len(stats))
	errs := make([]error, len(stats))
	parallel.Parallelize(len(stats), func(start, end int) {
		for i := start; i < end; i++ {
			results[i], errs[i] = stats[i].run()
		}
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	quant, err := df.Quantile(ctx, percentiles, columns...)
	if err != nil {
		return nil, err
	}
	maxes, err := df.Max(ctx, columns...)
	if err != nil {
		return nil, err
	}

	rf := &ResultFrame{Columns: append([]string{"STAT"}, columns...)}
	appendRow := func(name string, vals map[string]float64) {
		row := make([]interface{}, 0, len(columns)+1)
		row = append(row, name)
		for _, c := range columns {
			row = append(row, vals[c])
		}
		rf.Data = append(rf.Data, row)
	}
	for i, s := range stats {
		appendRow(s.name, results[i])
	}
	for pi, p := range percentiles {
		row := make([]interface{}, 0, len(columns)+1)
		row = append(row, fmt.Sprintf("%d%%", int(p*100)))
		row = append(row, quant.Data[pi][1:]...)
		rf.Data = append(rf.Data, row)
	}
	appendRow("max", maxes)
	return rf, nil
}

// ===========================================================================
//
//	共分散・相関（ストアドプロシージャ）
//
// ===========================================================================

// matrixProcedure runs a pairwise-matrix procedure (COVARIANCE1000MATRIX or
// CORRELATION1000MATRIX) and pivots its long output into a square frame.
func (df *DataFrame) matrixProcedure(ctx context.Context, proc, valueColumn string) (*ResultFrame, error) {
	columns, err := df.statColumns(nil)
	if err != nil {
		return nil, err
	}
	if len(columns) < 2 {
		return nil, errors.NewDataFrameError(proc, df.tablename,
			"needs at least two numeric columns")
	}

	tableName, created, err := df.MaterializeView()
	if err != nil {
		return nil, err
	}
	if created {
		defer func() { _ = df.ReleaseViews() }()
	}

	outtable, err := df.idadb.ValidTableName()
	if err != nil {
		return nil, err
	}
	var incolumn strings.Builder
	for _, c := range columns {
		incolumn.WriteString(quoteIdent(c))
		incolumn.WriteByte(';')
	}
	params := fmt.Sprintf("intable=%s,incolumn=%s,outtable=%s", tableName, incolumn.String(), outtable)
	if _, err := df.idadb.CallProcedure(ctx, "NZA.."+proc, params); err != nil {
		return nil, err
	}
	defer func() { _ = df.idadb.DropTableIfExists(outtable) }()

	// substringで列名を囲む二重引用符を剥がす
	pivot, err := df.idadb.QueryContext(ctx, fmt.Sprintf(
		"SELECT substring(VARXNAME,2,length(VARXNAME)-2) AS VARXNAME, "+
			"substring(VARYNAME,2,length(VARYNAME)-2) AS VARYNAME, %s "+
			"FROM %s ORDER BY VARXNAME, VARYNAME", valueColumn, quoteIdent(outtable)))
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	cells := make([][]interface{}, len(columns))
	for i := range cells {
		row := make([]interface{}, len(columns)+1)
		row[0] = columns[i]
		cells[i] = row
	}
	for _, row := range pivot.Data {
		x, okX := index[cellString(row[0])]
		y, okY := index[cellString(row[1])]
		if !okX || !okY {
			continue
		}
		v, err := toFloat(row[2])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cells[x][y+1] = v
		cells[y][x+1] = v
	}
	return &ResultFrame{
		Columns: append([]string{"COLUMN"}, columns...),
		Data:    cells,
	}, nil
}

// Cov returns the pairwise sample covariance matrix of the numeric columns,
// computed by the COVARIANCE1000MATRIX procedure.
func (df *DataFrame) Cov(ctx context.Context) (*ResultFrame, error) {
	return df.matrixProcedure(ctx, "COVARIANCE1000MATRIX", "COVARIANCE")
}

// Corr returns the pairwise correlation matrix of the numeric columns,
// computed by the CORRELATION1000MATRIX procedure.
func (df *DataFrame) Corr(ctx context.Context) (*ResultFrame, error) {
	return df.matrixProcedure(ctx, "CORRELATION1000MATRIX", "CORRELATION")
}

// Summary runs the SUMMARY1000 procedure over the frame's state and fetches
// its per-column statistics table.
func (df *DataFrame) Summary(ctx context.Context) (*ResultFrame, error) {
	tableName, created, err := df.MaterializeView()
	if err != nil {
		return nil, err
	}
	if created {
		defer func() { _ = df.ReleaseViews() }()
	}

	outtable, err := df.idadb.ValidTableName()
	if err != nil {
		return nil, err
	}
	params := fmt.Sprintf("intable=%s,outtable=%s", tableName, outtable)
	if _, err := df.idadb.CallProcedure(ctx, "NZA..SUMMARY1000", params); err != nil {
		return nil, err
	}
	rf, err := df.idadb.QueryContext(ctx,
		"SELECT * FROM "+quoteIdent(outtable)+" ORDER BY COLUMNNAME")
	if err != nil {
		return nil, err
	}
	if _, err := df.idadb.CallProcedure(ctx, "NZA..DROP_SUMMARY1000", "intable="+outtable); err != nil {
		return nil, err
	}
	return rf, nil
}

package ida

import (
	"context"
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// GroupBy is a grouped aggregation over a DataFrame, produced by
// DataFrame.GroupBy. Each terminal method runs one aggregate per selected
// numeric column, grouped by the grouping columns.
type GroupBy struct {
	frame *DataFrame
	by    []string
}

// aggregate renders and executes a grouped aggregation.
// The aggregate function template contains one %s for the column expression.
func (g *GroupBy) aggregate(ctx context.Context, fnTemplate string, columns []string) (*ResultFrame, error) {
	if len(columns) == 0 {
		columns = g.frame.NumericColumns()
		// グループ化キー自体は集約対象から外す
		columns = exclude(columns, g.by)
	}
	if len(columns) == 0 {
		return nil, errors.NewDataFrameError("GroupBy", g.frame.tablename,
			"no numeric columns to aggregate")
	}
	for _, c := range columns {
		if !g.frame.HasColumn(c) {
			return nil, errors.NewDataFrameError("GroupBy", g.frame.tablename,
				fmt.Sprintf("column %q not in frame", c))
		}
	}

	selects := make([]string, 0, len(g.by)+len(columns))
	for _, b := range g.by {
		selects = append(selects, quoteIdent(b))
	}
	for _, c := range columns {
		selects = append(selects,
			fmt.Sprintf(fnTemplate, quoteIdent(c))+" AS "+quoteIdent(c))
	}

	d := g.frame.idadb.Dialect()
	query := fmt.Sprintf("SELECT %s FROM (%s)%s GROUP BY %s ORDER BY %s",
		strings.Join(selects, ", "),
		g.frame.state.getState(d), countAlias(d),
		joinQuoted(g.by), joinQuoted(g.by))
	return g.frame.idadb.QueryContext(ctx, query)
}

func exclude(columns, drop []string) []string {
	out := columns[:0:0]
	for _, c := range columns {
		skip := false
		for _, d := range drop {
			if c == d {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

// Count returns per-group row counts in a COUNT column.
func (g *GroupBy) Count(ctx context.Context) (*ResultFrame, error) {
	d := g.frame.idadb.Dialect()
	query := fmt.Sprintf("SELECT %s, COUNT(*) AS %s FROM (%s)%s GROUP BY %s ORDER BY %s",
		joinQuoted(g.by), quoteIdent("COUNT"),
		g.frame.state.getState(d), countAlias(d),
		joinQuoted(g.by), joinQuoted(g.by))
	return g.frame.idadb.QueryContext(ctx, query)
}

// Sum returns per-group sums of the given columns (default: all numeric).
func (g *GroupBy) Sum(ctx context.Context, columns ...string) (*ResultFrame, error) {
	return g.aggregate(ctx, "SUM(%s)", columns)
}

// Mean returns per-group averages of the given columns.
func (g *GroupBy) Mean(ctx context.Context, columns ...string) (*ResultFrame, error) {
	return g.aggregate(ctx, "AVG(CAST(%s AS FLOAT))", columns)
}

// Min returns per-group minima of the given columns.
func (g *GroupBy) Min(ctx context.Context, columns ...string) (*ResultFrame, error) {
	return g.aggregate(ctx, "MIN(%s)", columns)
}

// Max returns per-group maxima of the given columns.
func (g *GroupBy) Max(ctx context.Context, columns ...string) (*ResultFrame, error) {
	return g.aggregate(ctx, "MAX(%s)", columns)
}

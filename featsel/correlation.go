package featsel

import (
	"context"
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
)

// Pearson returns the Pearson correlation coefficient between the target and
// each numeric feature. All coefficients come back from a single aggregation
// query.
func Pearson(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveNumericFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	return pearsonOver(ctx, df, fromState(df, 1), target, feats)
}

// Spearman returns the Spearman rank correlation between the target and each
// numeric feature. Ranks are assigned in the database with a window function,
// ties sharing the lowest rank, and the Pearson coefficient of the ranks is
// then aggregated in the same query.
func Spearman(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveNumericFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	d := df.DB().Dialect()
	cols := append([]string{target}, feats...)
	ranked := make([]string, len(cols))
	for i, c := range cols {
		ranked[i] = "CAST(RANK() OVER (ORDER BY " + q(c) + ") AS INTEGER) AS " + q(c)
	}
	inner := "(SELECT " + strings.Join(ranked, ", ") + " FROM " + fromState(df, 1) + ")" +
		d.SubqueryAlias(2)
	return pearsonOver(ctx, df, inner, target, feats)
}

func pearsonOver(ctx context.Context, df *ida.DataFrame, from, target string, feats []string) (map[string]float64, error) {
	d := df.DB().Dialect()
	exprs := make([]string, len(feats))
	for i, f := range feats {
		exprs[i] = d.CorrExpr(q(f), q(target)) + fmt.Sprintf(" AS \"F%d\"", i)
	}
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM " + from
	rf, err := df.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	res := make(map[string]float64, len(feats))
	for i, f := range feats {
		vals, err := rf.FloatColumn(fmt.Sprintf("F%d", i))
		if err != nil {
			return nil, err
		}
		res[f] = vals[0]
	}
	return res, nil
}

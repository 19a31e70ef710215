package featsel

import (
	"context"
	"strconv"

	"github.com/YuminosukeSato/idago/ida"
)

// Gini returns the gini impurity of each given column. With no columns it
// scores every column except the indexer.
func Gini(ctx context.Context, df *ida.DataFrame, columns ...string) (map[string]float64, error) {
	cols, err := resolveFeatures(df, "", columns)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	d := df.DB().Dialect()
	n2 := strconv.FormatFloat(n*n, 'f', 1, 64)
	res := make(map[string]float64, len(cols))
	for _, c := range cols {
		query := "SELECT (" + n2 + " - SUM(POW(a, 2))) / " + n2 + " FROM " +
			"(SELECT CAST(COUNT(*) AS FLOAT) AS a FROM " + fromState(df, 1) +
			" GROUP BY " + q(c) + ")" + d.SubqueryAlias(2)
		v, err := scalarFloat(ctx, df.DB(), query)
		if err != nil {
			return nil, err
		}
		res[c] = v
	}
	return res, nil
}

// GiniPairwise returns the gini impurity of each feature within the groups
// formed by the target, weighted by group size. Lower values mean the
// feature is more predictable from the target.
func GiniPairwise(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	d := df.DB().Dialect()
	nl := strconv.FormatFloat(n, 'f', 1, 64)
	res := make(map[string]float64, len(feats))
	for _, f := range feats {
		query := "SELECT SUM((POW(c, 2) - g) / c) / " + nl + " FROM " +
			"(SELECT SUM(POW(a, 2)) AS g, SUM(a) AS c FROM " +
			"(SELECT CAST(COUNT(*) AS FLOAT) AS a, " + q(f) + " FROM " + fromState(df, 1) +
			" GROUP BY " + q(target) + ", " + q(f) + ")" + d.SubqueryAlias(2) +
			" GROUP BY " + q(f) + ")" + d.SubqueryAlias(3)
		v, err := scalarFloat(ctx, df.DB(), query)
		if err != nil {
			return nil, err
		}
		res[f] = v
	}
	return res, nil
}

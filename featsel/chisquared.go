package featsel

import (
	"context"
	"fmt"

	"github.com/YuminosukeSato/idago/ida"
)

// ChiSquared returns the chi-squared statistic of the contingency table
// between the target and each feature. Expected frequencies come from the
// marginal totals; only the observed cells contribute, matching the usual
// sparse-table convention.
func ChiSquared(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	res := make(map[string]float64, len(feats))
	for _, f := range feats {
		query := "SELECT " + q(f) + ", " + q(target) + ", CAST(COUNT(*) AS FLOAT) AS \"N\" FROM " +
			fromState(df, 1) + " GROUP BY " + q(f) + ", " + q(target)
		rf, err := df.DB().QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		fv, err := rf.Column(f)
		if err != nil {
			return nil, err
		}
		tv, err := rf.Column(target)
		if err != nil {
			return nil, err
		}
		counts, err := rf.FloatColumn("N")
		if err != nil {
			return nil, err
		}
		rowTotal := make(map[string]float64)
		colTotal := make(map[string]float64)
		for i, c := range counts {
			rowTotal[fmt.Sprint(fv[i])] += c
			colTotal[fmt.Sprint(tv[i])] += c
		}
		var chi float64
		for i, observed := range counts {
			expected := rowTotal[fmt.Sprint(fv[i])] * colTotal[fmt.Sprint(tv[i])] / n
			diff := observed - expected
			chi += diff * diff / expected
		}
		res[f] = chi
	}
	return res, nil
}

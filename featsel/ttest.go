package featsel

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// TStats returns the modified t-statistic of each numeric feature against a
// categorical target: the largest standardized distance between a class mean
// and the overall mean, using the pooled within-class standard deviation.
// One aggregation query per target collects the class counts, means and
// squared sums of every feature at once.
func TStats(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveNumericFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	means, err := df.Mean(ctx, feats...)
	if err != nil {
		return nil, err
	}

	exprs := []string{"CAST(COUNT(*) AS FLOAT) AS \"N\""}
	for i, f := range feats {
		cast := "CAST(" + q(f) + " AS FLOAT)"
		exprs = append(exprs,
			fmt.Sprintf("AVG(%s) AS \"M%d\"", cast, i),
			fmt.Sprintf("SUM(%s*%s) AS \"S%d\"", cast, cast, i))
	}
	query := "SELECT " + strings.Join(exprs, ", ") + " FROM " + fromState(df, 1) +
		" GROUP BY " + q(target)
	rf, err := df.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	counts, err := rf.FloatColumn("N")
	if err != nil {
		return nil, err
	}
	k := float64(len(counts))
	if n <= k {
		return nil, errors.NewDataFrameError("featsel", df.TableName(),
			"not enough rows per class for pooled variance")
	}

	res := make(map[string]float64, len(feats))
	for i, f := range feats {
		classMean, err := rf.FloatColumn(fmt.Sprintf("M%d", i))
		if err != nil {
			return nil, err
		}
		squareSum, err := rf.FloatColumn(fmt.Sprintf("S%d", i))
		if err != nil {
			return nil, err
		}
		var pooled float64
		for c := range counts {
			pooled += squareSum[c] - counts[c]*classMean[c]*classMean[c]
		}
		s := math.Sqrt(pooled / (n - k))
		var best float64
		for c := range counts {
			t := math.Abs(classMean[c]-means[f]) / (math.Sqrt(1/counts[c]+1/n) * s)
			if t > best {
				best = t
			}
		}
		res[f] = best
	}
	return res, nil
}

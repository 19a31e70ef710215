// Package featsel scores the columns of a frame for feature selection.
//
// Every measure runs as a plain SQL aggregation against the frame's current
// state, so no row data leaves the database and no analytics cartridge is
// required. Entropy-based measures (information gain, gain ratio, symmetric
// uncertainty), gini and chi-squared expect categorical columns; the
// correlation measures and the t-statistics expect numeric ones.
package featsel

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// q wraps an identifier in double quotes.
func q(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func joinQ(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = q(n)
	}
	return strings.Join(parts, ", ")
}

// fromState renders the frame's state as a derived table at nesting depth n.
func fromState(df *ida.DataFrame, n int) string {
	return "(" + df.SelectSQL() + ")" + df.DB().Dialect().SubqueryAlias(n)
}

// frameLength returns the row count of the frame as a float.
func frameLength(df *ida.DataFrame) (float64, error) {
	rows, _, err := df.Shape()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "featsel")
	}
	return float64(rows), nil
}

// scalarFloat runs a single-value query and converts the result.
func scalarFloat(ctx context.Context, db *ida.DataBase, query string) (float64, error) {
	rf, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	vals, err := rf.FloatColumn(rf.Columns[0])
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "featsel")
	}
	return vals[0], nil
}

// resolveFeatures validates the target and returns the feature list.
// An empty features list defaults to every column except the target and
// the indexer.
func resolveFeatures(df *ida.DataFrame, target string, features []string) ([]string, error) {
	if target != "" && !df.HasColumn(target) {
		return nil, errors.NewDataFrameError("featsel", df.TableName(),
			"unknown target column: "+target)
	}
	if len(features) == 0 {
		for _, c := range df.Columns() {
			if c == target || c == df.Indexer() {
				continue
			}
			features = append(features, c)
		}
		if len(features) == 0 {
			return nil, errors.NewDataFrameError("featsel", df.TableName(),
				"no feature columns left")
		}
		return features, nil
	}
	out := make([]string, 0, len(features))
	for _, f := range features {
		if !df.HasColumn(f) {
			return nil, errors.NewDataFrameError("featsel", df.TableName(),
				"unknown feature column: "+f)
		}
		if f == target {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, errors.NewDataFrameError("featsel", df.TableName(),
			"no feature columns left")
	}
	return out, nil
}

// resolveNumericFeatures is resolveFeatures restricted to numeric columns.
func resolveNumericFeatures(df *ida.DataFrame, target string, features []string) ([]string, error) {
	feats, err := resolveFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	numeric := make(map[string]bool)
	for _, c := range df.NumericColumns() {
		numeric[c] = true
	}
	out := make([]string, 0, len(feats))
	for _, f := range feats {
		if numeric[f] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.NewDataFrameError("featsel", df.TableName(),
			"no numeric feature columns")
	}
	return out, nil
}

package featsel

import (
	"context"
	"math"

	"github.com/YuminosukeSato/idago/ida"
)

// rawEntropy computes SUM(-a*LN(a)) over the group counts of cols.
// The caller normalizes by the row count; splitting the computation this
// way lets the joint-entropy measures reuse the same fragment.
func rawEntropy(ctx context.Context, df *ida.DataFrame, cols []string) (float64, error) {
	d := df.DB().Dialect()
	group := joinQ(cols)
	query := "SELECT SUM(-a*LN(a)) FROM " +
		"(SELECT CAST(COUNT(*) AS FLOAT) AS a FROM " + fromState(df, 1) +
		" GROUP BY " + group + ")" + d.SubqueryAlias(2)
	return scalarFloat(ctx, df.DB(), query)
}

// Entropy returns the Shannon entropy, in bits, of each given column.
// With no columns it scores every column except the indexer.
func Entropy(ctx context.Context, df *ida.DataFrame, columns ...string) (map[string]float64, error) {
	cols, err := resolveFeatures(df, "", columns)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	res := make(map[string]float64, len(cols))
	for _, c := range cols {
		raw, err := rawEntropy(ctx, df, []string{c})
		if err != nil {
			return nil, err
		}
		res[c] = (raw/n + math.Log(n)) / math.Ln2
	}
	return res, nil
}

// InfoGain returns the information gain of the target entropy obtained by
// conditioning on each feature, in bits.
func InfoGain(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	feats, err := resolveFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	rawT, err := rawEntropy(ctx, df, []string{target})
	if err != nil {
		return nil, err
	}
	res := make(map[string]float64, len(feats))
	for _, f := range feats {
		rawF, err := rawEntropy(ctx, df, []string{f})
		if err != nil {
			return nil, err
		}
		rawTF, err := rawEntropy(ctx, df, []string{target, f})
		if err != nil {
			return nil, err
		}
		res[f] = ((rawT+rawF-rawTF)/n + math.Log(n)) / math.Ln2
	}
	return res, nil
}

// GainRatio returns the information gain of each feature normalized by the
// feature entropy. With symmetric set, the joint entropy is used as the
// normalizer instead, which makes the measure independent of the argument
// order.
func GainRatio(ctx context.Context, df *ida.DataFrame, target string, symmetric bool, features ...string) (map[string]float64, error) {
	feats, err := resolveFeatures(df, target, features)
	if err != nil {
		return nil, err
	}
	n, err := frameLength(df)
	if err != nil {
		return nil, err
	}
	rawT, err := rawEntropy(ctx, df, []string{target})
	if err != nil {
		return nil, err
	}
	corrector := n * math.Log(n)
	res := make(map[string]float64, len(feats))
	for _, f := range feats {
		rawF, err := rawEntropy(ctx, df, []string{f})
		if err != nil {
			return nil, err
		}
		rawTF, err := rawEntropy(ctx, df, []string{target, f})
		if err != nil {
			return nil, err
		}
		disjoint := rawT + rawF
		if symmetric {
			res[f] = (disjoint - rawTF + corrector) / (disjoint + 2*corrector)
		} else {
			res[f] = (disjoint - rawTF + corrector) / (rawF + corrector)
		}
	}
	return res, nil
}

// SymmetricUncertainty returns 2*InfoGain(t,f) / (H(t)+H(f)) for each
// feature, a gain ratio variant bounded to [0, 1].
func SymmetricUncertainty(ctx context.Context, df *ida.DataFrame, target string, features ...string) (map[string]float64, error) {
	res, err := GainRatio(ctx, df, target, true, features...)
	if err != nil {
		return nil, err
	}
	for f, v := range res {
		res[f] = 2 * v
	}
	return res, nil
}

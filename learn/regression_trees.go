package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// DecisionTreeRegressor は回帰木。葉ノードが目的値の平均を保持する決定木で、
// 連続値の予測に使う。
type DecisionTreeRegressor struct {
	Regression
}

// NewDecisionTreeRegressor は回帰器を作成する
func NewDecisionTreeRegressor(idadb *ida.DataBase, modelName string) *DecisionTreeRegressor {
	rt := &DecisionTreeRegressor{Regression: newRegression(idadb, modelName)}
	rt.fitProc = "REGTREE"
	rt.predictProc = "PREDICT_REGTREE"
	rt.targetColumnInOutput = "CLASS"
	rt.hasPrintProc = true
	return rt
}

// RegressionTreeParams は学習パラメータ
type RegressionTreeParams struct {
	ColumnSpec

	// EvalMeasure はノード分割の評価基準。ゼロ値は variance。
	EvalMeasure string

	// MinImprove は分割に必要な評価値の最小改善量。ゼロ値は0.1。
	MinImprove float64

	// MinSplit は分割対象ノードの最小インスタンス数。ゼロ値は50。
	MinSplit int

	// MaxDepth は木の最大深さ。ゼロ値は62。
	MaxDepth int

	// ValTable は剪定用の検証データテーブル
	ValTable string

	// QMeasure は剪定の品質基準
	QMeasure string

	// Statistics は収集する統計の指定 (none, columns, values:n, all)
	Statistics string
}

func (rp *RegressionTreeParams) defaults() {
	if rp.EvalMeasure == "" {
		rp.EvalMeasure = "variance"
	}
	if rp.MinImprove == 0 {
		rp.MinImprove = 0.1
	}
	if rp.MinSplit == 0 {
		rp.MinSplit = 50
	}
	if rp.MaxDepth == 0 {
		rp.MaxDepth = 62
	}
}

// Fit は回帰木を学習する
func (rt *DecisionTreeRegressor) Fit(ctx context.Context, in *ida.DataFrame, opts RegressionTreeParams) error {
	opts.defaults()
	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("eval", opts.EvalMeasure).
		Set("minimprove", opts.MinImprove).
		Set("minsplit", opts.MinSplit).
		Set("maxdepth", opts.MaxDepth).
		Set("valtable", opts.ValTable).
		Set("qmeasure", opts.QMeasure).
		Set("statistics", opts.Statistics)
	return rt.fit(ctx, in, params, true)
}

// RegressionTreePredictOptions は回帰木予測のオプション
type RegressionTreePredictOptions struct {
	PredictOptions

	// Variance は葉ノード内の目的値の分散を出力に含めるかどうか
	Variance bool
}

// Predict は各行の目的値を予測する
func (rt *DecisionTreeRegressor) Predict(ctx context.Context, in *ida.DataFrame, opts RegressionTreePredictOptions) (*ida.DataFrame, error) {
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("var", opts.Variance)
	return rt.predict(ctx, in, params, opts.OutTable)
}

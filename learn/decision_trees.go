package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// DecisionTreeClassifier は決定木による分類器。ノードの分割基準には
// 情報エントロピーまたはジニ不純度を使える。
type DecisionTreeClassifier struct {
	Classification
}

// NewDecisionTreeClassifier は分類器を作成する
func NewDecisionTreeClassifier(idadb *ida.DataBase, modelName string) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{Classification: newClassification(idadb, modelName)}
	dt.fitProc = "DECTREE"
	dt.predictProc = "PREDICT_DECTREE"
	dt.hasPrintProc = true
	return dt
}

// DecisionTreeParams は学習パラメータ
type DecisionTreeParams struct {
	ColumnSpec

	// Weights はクラスまたはインスタンスの重みテーブル
	Weights string

	// EvalMeasure はノード分割の評価基準 (entropy, gini)。ゼロ値は entropy。
	EvalMeasure string

	// MinImprove は分割に必要な評価値の最小改善量。ゼロ値は0.02。
	MinImprove float64

	// MinSplit は分割対象ノードの最小インスタンス数。ゼロ値は50。
	MinSplit int

	// MaxDepth は木の最大深さ。ゼロ値は62。
	MaxDepth int

	// ValTable は剪定用の検証データテーブル
	ValTable string

	// ValWeights は検証データの重みテーブル
	ValWeights string

	// QMeasure は剪定の品質基準
	QMeasure string

	// Statistics は収集する統計の指定 (none, columns, values:n, all)
	Statistics string
}

func (dp *DecisionTreeParams) defaults() {
	if dp.EvalMeasure == "" {
		dp.EvalMeasure = "entropy"
	}
	if dp.MinImprove == 0 {
		dp.MinImprove = 0.02
	}
	if dp.MinSplit == 0 {
		dp.MinSplit = 50
	}
	if dp.MaxDepth == 0 {
		dp.MaxDepth = 62
	}
}

// Fit は決定木を学習する
func (dt *DecisionTreeClassifier) Fit(ctx context.Context, in *ida.DataFrame, opts DecisionTreeParams) error {
	opts.defaults()
	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("weights", opts.Weights).
		Set("eval", opts.EvalMeasure).
		Set("minimprove", opts.MinImprove).
		Set("minsplit", opts.MinSplit).
		Set("maxdepth", opts.MaxDepth).
		Set("valtable", opts.ValTable).
		Set("valweights", opts.ValWeights).
		Set("qmeasure", opts.QMeasure).
		Set("statistics", opts.Statistics)
	return dt.fit(ctx, in, params, true)
}

// TreePredictOptions は決定木予測のオプション
type TreePredictOptions struct {
	PredictOptions

	// Prob は予測クラスの確率を出力に含めるかどうか
	Prob bool

	// OutTableProb はクラスごとの確率を格納する出力テーブル
	OutTableProb string
}

// Predict は各行のクラスを予測する
func (dt *DecisionTreeClassifier) Predict(ctx context.Context, in *ida.DataFrame, opts TreePredictOptions) (*ida.DataFrame, error) {
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("prob", opts.Prob).
		Set("outtableprob", opts.OutTableProb)
	return dt.predict(ctx, in, params, opts.OutTable)
}

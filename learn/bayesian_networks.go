package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// TreeBayesNetwork は木構造ベイジアンネットワーク。変数間の相関から
// 木構造の依存グラフを学習し、任意の変数を近傍から予測できる。
type TreeBayesNetwork struct {
	PredictiveModel
}

// NewTreeBayesNetwork は学習器を作成する
func NewTreeBayesNetwork(idadb *ida.DataBase, modelName string) *TreeBayesNetwork {
	tb := &TreeBayesNetwork{PredictiveModel: newPredictiveModel(idadb, modelName)}
	tb.fitProc = "TBNET_GROW"
	tb.predictProc = "TBNET_APPLY"
	return tb
}

// TreeBayesNetworkParams は学習パラメータ
type TreeBayesNetworkParams struct {
	// InColumns は特殊な性質を持つ列のリスト
	InColumns []string

	// ColDefType は列の既定の型 (nom / cont)
	ColDefType string

	// ColDefRole は列の既定の役割 (input / ignore)
	ColDefRole string

	// ColPropertiesTable は列の性質を格納したテーブル
	ColPropertiesTable string

	// BaseIndex は内部インデックスの基準値。ゼロ値は777。
	BaseIndex int

	// SampleSize は構造学習に使うサンプル数
	SampleSize int

	// Talk はエンジン側の進捗出力を有効にする
	Talk bool

	// EdgeLabSort はエッジラベルを整列するかどうか
	EdgeLabSort bool
}

// Fit はネットワーク構造を学習する。ID列は不要。
func (tb *TreeBayesNetwork) Fit(ctx context.Context, in *ida.DataFrame, opts TreeBayesNetworkParams) error {
	if opts.BaseIndex == 0 {
		opts.BaseIndex = 777
	}
	params := NewParams().
		Set("incolumn", QuoteColumns(opts.InColumns)).
		Set("coldeftype", opts.ColDefType).
		Set("coldefrole", opts.ColDefRole).
		Set("colPropertiesTable", opts.ColPropertiesTable).
		Set("baseidx", opts.BaseIndex)
	if opts.SampleSize > 0 {
		params.Set("samplesize", opts.SampleSize)
	}
	params.
		Set("talk", opts.Talk).
		Set("edgelabsort", opts.EdgeLabSort)
	return tb.fit(ctx, in, params, false)
}

// TBNetPredictOptions は予測オプション
type TBNetPredictOptions struct {
	PredictOptions

	// TargetColumn は予測対象の変数
	TargetColumn string

	// PredictionType は予測方式 (best: 最相関近傍, neighbors: 近傍の重み付き予測,
	// nn-neighbors: 非NULL近傍)。ゼロ値は best。
	PredictionType string
}

func (to *TBNetPredictOptions) defaults() {
	if to.PredictionType == "" {
		to.PredictionType = "best"
	}
}

// Predict はネットワーク上の近傍から対象変数を予測する
func (tb *TreeBayesNetwork) Predict(ctx context.Context, in *ida.DataFrame, opts TBNetPredictOptions) (*ida.DataFrame, error) {
	opts.defaults()
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("target", QuoteColumn(opts.TargetColumn)).
		Set("type", opts.PredictionType)
	return tb.predict(ctx, in, params, opts.OutTable)
}

// Score は対象変数の予測誤差を返す。予測列は <target>_PRED という名前で出力される。
func (tb *TreeBayesNetwork) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn, predictionType string) (float64, error) {
	if predictionType == "" {
		predictionType = "best"
	}
	params := NewParams().
		Set("id", QuoteColumn(idColumn)).
		Set("type", predictionType).
		Set("target", QuoteColumn(targetColumn))
	tb.targetColumnInOutput = targetColumn + "_PRED"
	return tb.score(ctx, in, params, targetColumn)
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// NaiveBayesClassifier は単純ベイズ分類器。属性間の条件付き独立を仮定し、
// クラスごとの属性値の条件付き確率をデータベース側で集計する。
type NaiveBayesClassifier struct {
	Classification
}

// NewNaiveBayesClassifier は分類器を作成する
func NewNaiveBayesClassifier(idadb *ida.DataBase, modelName string) *NaiveBayesClassifier {
	nb := &NaiveBayesClassifier{Classification: newClassification(idadb, modelName)}
	nb.fitProc = "NAIVEBAYES"
	nb.predictProc = "PREDICT_NAIVEBAYES"
	return nb
}

// NaiveBayesParams は学習パラメータ
type NaiveBayesParams struct {
	ColumnSpec

	// Disc は連続値属性の離散化方式 (ef: 等頻度, em: エントロピー最小化,
	// ew: 等幅, ewn: 人間に読みやすい等幅)。ゼロ値は ef。
	Disc string

	// Bins は離散化のビン数。ゼロ値は10。
	Bins int
}

func (np *NaiveBayesParams) defaults() {
	if np.Disc == "" {
		np.Disc = "ef"
	}
	if np.Bins == 0 {
		np.Bins = 10
	}
}

// Fit は条件付き確率表を学習する
func (nb *NaiveBayesClassifier) Fit(ctx context.Context, in *ida.DataFrame, opts NaiveBayesParams) error {
	opts.defaults()
	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("disc", opts.Disc).
		Set("bins", opts.Bins)
	return nb.fit(ctx, in, params, true)
}

// NaiveBayesPredictOptions は予測オプション
type NaiveBayesPredictOptions struct {
	PredictOptions

	// MEstimation はゼロ頻度の平滑化にm推定を使うかどうか
	MEstimation bool
}

// Predict は各行のクラスを事後確率最大で予測する
func (nb *NaiveBayesClassifier) Predict(ctx context.Context, in *ida.DataFrame, opts NaiveBayesPredictOptions) (*ida.DataFrame, error) {
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("mestimation", opts.MEstimation)
	return nb.predict(ctx, in, params, opts.OutTable)
}

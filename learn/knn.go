package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// KNeighborsClassifier はk近傍法による分類器。学習は訓練データの登録のみで、
// 距離計算とクラス多数決は予測時にデータベース側で行われる。
type KNeighborsClassifier struct {
	Classification
}

// NewKNeighborsClassifier は分類器を作成する
func NewKNeighborsClassifier(idadb *ida.DataBase, modelName string) *KNeighborsClassifier {
	kn := &KNeighborsClassifier{Classification: newClassification(idadb, modelName)}
	kn.fitProc = "KNN"
	kn.predictProc = "PREDICT_KNN"
	return kn
}

// Fit は訓練データをモデルとして登録する
func (kn *KNeighborsClassifier) Fit(ctx context.Context, in *ida.DataFrame, opts ColumnSpec) error {
	params := NewParams()
	opts.apply(params)
	return kn.fit(ctx, in, params, true)
}

// KNNPredictOptions は予測パラメータ
type KNNPredictOptions struct {
	PredictOptions

	// TargetColumn は出力に含める正解クラスの列
	TargetColumn string

	// Distance は距離関数。ゼロ値は euclidean。
	Distance string

	// K は近傍数。ゼロ値は3。
	K int

	// Stand は距離計算前に属性を標準化するかどうか
	Stand bool

	// Fast は近似高速探索を使うかどうか
	Fast bool

	// Weights はクラスごとの重みテーブル
	Weights string
}

func (ko *KNNPredictOptions) defaults() {
	if ko.Distance == "" {
		ko.Distance = "euclidean"
	}
	if ko.K == 0 {
		ko.K = 3
	}
}

// Predict は各行のクラスをk近傍の多数決で予測する
func (kn *KNeighborsClassifier) Predict(ctx context.Context, in *ida.DataFrame, opts KNNPredictOptions) (*ida.DataFrame, error) {
	opts.defaults()
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("target", QuoteColumn(opts.TargetColumn)).
		Set("distance", opts.Distance).
		Set("k", opts.K).
		Set("stand", opts.Stand).
		Set("fast", opts.Fast).
		Set("weights", opts.Weights)
	return kn.predict(ctx, in, params, opts.OutTable)
}

// Score は指定パラメータで予測した場合の正解率を返す
func (kn *KNeighborsClassifier) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string, opts KNNPredictOptions) (float64, error) {
	opts.defaults()
	params := NewParams().
		Set("id", QuoteColumn(idColumn)).
		Set("target", QuoteColumn(opts.TargetColumn)).
		Set("distance", opts.Distance).
		Set("k", opts.K).
		Set("stand", opts.Stand).
		Set("fast", opts.Fast).
		Set("weights", opts.Weights)
	return kn.score(ctx, in, params, targetColumn)
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// KMeans はk-means法によるデータベース内クラスタリング。
// 各クラスタは所属インスタンスの平均属性値ベクトル(中心)で表現され、
// 学習も予測もデータベース側で実行される。
type KMeans struct {
	PredictiveModel
}

// NewKMeans はクラスタリング器を作成する。モデルがデータベースに存在すれば
// そのまま予測に使え、存在しなければ Fit で学習してから使う。
func NewKMeans(idadb *ida.DataBase, modelName string) *KMeans {
	km := &KMeans{PredictiveModel: newPredictiveModel(idadb, modelName)}
	km.fitProc = "KMEANS"
	km.predictProc = "PREDICT_KMEANS"
	km.scoreProc = "MSE"
	km.targetColumnInOutput = "CLUSTER_ID"
	km.idColumnInOutput = "ID"
	return km
}

// KMeansParams は学習パラメータ。ゼロ値のフィールドにはエンジン既定値が適用される。
type KMeansParams struct {
	ColumnSpec

	// OutTable は各入力行へのクラスタ割り当てを格納する出力テーブル
	OutTable string

	// Distance は距離関数 (euclidean, norm_euclidean, manhattan, canberra,
	// maximum, mahalanobis)。ゼロ値は norm_euclidean。
	Distance string

	// K は中心の数。ゼロ値は3。
	K int

	// MaxIter は最大反復回数。ゼロ値は5。
	MaxIter int

	// RandSeed は乱数シード。ゼロ値は12345。
	RandSeed int

	// IDBased はシードをID列の値に基づかせるかどうか
	IDBased bool

	// Statistics は収集する統計の指定 (none, columns, values:n, all)
	Statistics string

	// Transform は入力列の変換 (L: そのまま, N: 正規化, S: 標準化)。ゼロ値はL。
	Transform string
}

func (kp *KMeansParams) defaults() {
	if kp.Distance == "" {
		kp.Distance = "norm_euclidean"
	}
	if kp.K == 0 {
		kp.K = 3
	}
	if kp.MaxIter == 0 {
		kp.MaxIter = 5
	}
	if kp.RandSeed == 0 {
		kp.RandSeed = 12345
	}
	if kp.Transform == "" {
		kp.Transform = "L"
	}
}

// Fit はクラスタリングモデルを学習し、クラスタ割り当てのフレームを返す
func (km *KMeans) Fit(ctx context.Context, in *ida.DataFrame, opts KMeansParams) (*ida.DataFrame, error) {
	opts.defaults()

	outTable, err := resolveOutTable(ctx, km.idadb, opts.OutTable, "OutTable")
	if err != nil {
		return nil, err
	}

	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("distance", opts.Distance).
		Set("k", opts.K).
		Set("maxiter", opts.MaxIter).
		Set("randseed", opts.RandSeed).
		Set("idbased", opts.IDBased).
		Set("statistics", opts.Statistics).
		Set("transform", opts.Transform).
		Set("outtable", outTable)

	if err := km.fit(ctx, in, params, true); err != nil {
		return nil, err
	}
	return ida.OpenDataFrame(km.idadb, outTable)
}

// Predict は学習済みモデルで各行のクラスタを割り当てる
func (km *KMeans) Predict(ctx context.Context, in *ida.DataFrame, opts PredictOptions) (*ida.DataFrame, error) {
	params := NewParams().Set("id", QuoteColumn(opts.IDColumn))
	return km.predict(ctx, in, params, opts.OutTable)
}

// Score はクラスタ中心との平均二乗誤差を返す
func (km *KMeans) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (float64, error) {
	params := NewParams().Set("id", QuoteColumn(idColumn))
	return km.score(ctx, in, params, targetColumn)
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// TwoStepClustering は2段階クラスタリング。データを一度走査して小さな
// サブクラスタ木を作り、その後サブクラスタを階層的に統合する。
// クラスタ数kを指定しなければ自動決定される。
type TwoStepClustering struct {
	PredictiveModel
}

// NewTwoStepClustering はクラスタリング器を作成する
func NewTwoStepClustering(idadb *ida.DataBase, modelName string) *TwoStepClustering {
	ts := &TwoStepClustering{PredictiveModel: newPredictiveModel(idadb, modelName)}
	ts.fitProc = "TWOSTEP"
	ts.predictProc = "PREDICT_TWOSTEP"
	ts.scoreProc = "MSE"
	ts.targetColumnInOutput = "CLUSTER_ID"
	ts.idColumnInOutput = "ID"
	ts.hasPrintProc = true
	return ts
}

// TwoStepParams は学習パラメータ
type TwoStepParams struct {
	ColumnSpec

	// OutTable は各入力行へのクラスタ割り当てを格納する出力テーブル
	OutTable string

	// K はクラスタ数。ゼロ値は自動決定 (MaxKまで)。
	K int

	// MaxK は自動決定時のクラスタ数の上限。ゼロ値は20。
	MaxK int

	// Bins は数値列の離散化ビン数。ゼロ値は10。
	Bins int

	// Statistics は収集する統計の指定 (none, columns, values:n, all)
	Statistics string

	// RandSeed は乱数シード。ゼロ値は12345。
	RandSeed int

	// Distance は距離関数。ゼロ値は loglikelihood。
	Distance string

	// Epsilon はサブクラスタ統合の距離しきい値緩和係数
	Epsilon float64

	// NodeCapacity はクラスタ木の内部ノード分岐数。ゼロ値は8。
	NodeCapacity int

	// LeafCapacity は葉ノードあたりのサブクラスタ数。ゼロ値は8。
	LeafCapacity int

	// MaxLeaves は葉ノード数の上限。ゼロ値は1000。
	MaxLeaves int

	// OutlierFraction は外れ値とみなすサブクラスタの比率
	OutlierFraction float64
}

func (tp *TwoStepParams) defaults() {
	if tp.MaxK == 0 {
		tp.MaxK = 20
	}
	if tp.Bins == 0 {
		tp.Bins = 10
	}
	if tp.RandSeed == 0 {
		tp.RandSeed = 12345
	}
	if tp.Distance == "" {
		tp.Distance = "loglikelihood"
	}
}

// Fit はクラスタリングモデルを学習し、クラスタ割り当てのフレームを返す
func (ts *TwoStepClustering) Fit(ctx context.Context, in *ida.DataFrame, opts TwoStepParams) (*ida.DataFrame, error) {
	opts.defaults()

	outTable, err := resolveOutTable(ctx, ts.idadb, opts.OutTable, "OutTable")
	if err != nil {
		return nil, err
	}

	params := NewParams()
	opts.ColumnSpec.apply(params)
	if opts.K > 0 {
		params.Set("k", opts.K)
	}
	params.
		Set("maxk", opts.MaxK).
		Set("bins", opts.Bins).
		Set("statistics", opts.Statistics).
		Set("randseed", opts.RandSeed).
		Set("distance", opts.Distance)
	if opts.Epsilon > 0 {
		params.Set("epsilon", opts.Epsilon)
	}
	if opts.NodeCapacity > 0 {
		params.Set("nodecapacity", opts.NodeCapacity)
	}
	if opts.LeafCapacity > 0 {
		params.Set("leafcapacity", opts.LeafCapacity)
	}
	if opts.MaxLeaves > 0 {
		params.Set("maxleaves", opts.MaxLeaves)
	}
	if opts.OutlierFraction > 0 {
		params.Set("outlierfraction", opts.OutlierFraction)
	}
	params.Set("outtable", outTable)

	if err := ts.fit(ctx, in, params, true); err != nil {
		return nil, err
	}
	return ida.OpenDataFrame(ts.idadb, outTable)
}

// Predict は学習済みモデルで各行のクラスタを割り当てる
func (ts *TwoStepClustering) Predict(ctx context.Context, in *ida.DataFrame, opts PredictOptions) (*ida.DataFrame, error) {
	params := NewParams().Set("id", QuoteColumn(opts.IDColumn))
	return ts.predict(ctx, in, params, opts.OutTable)
}

// Score はクラスタ中心との平均二乗誤差を返す
func (ts *TwoStepClustering) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (float64, error) {
	params := NewParams().Set("id", QuoteColumn(idColumn))
	return ts.score(ctx, in, params, targetColumn)
}

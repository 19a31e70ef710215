package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// BisectingKMeans は分割型k-means。クラスタを2分割しながら階層的に
// クラスタ木を成長させる。予測時には木の任意の階層を指定できる。
type BisectingKMeans struct {
	PredictiveModel
}

// NewBisectingKMeans はクラスタリング器を作成する
func NewBisectingKMeans(idadb *ida.DataBase, modelName string) *BisectingKMeans {
	bk := &BisectingKMeans{PredictiveModel: newPredictiveModel(idadb, modelName)}
	bk.fitProc = "DIVCLUSTER"
	bk.predictProc = "PREDICT_DIVCLUSTER"
	bk.scoreProc = "MSE"
	bk.targetColumnInOutput = "CLUSTER_ID"
	bk.idColumnInOutput = "ID"
	bk.hasPrintProc = true
	return bk
}

// BisectingKMeansParams は学習パラメータ
type BisectingKMeansParams struct {
	ColumnSpec

	// OutTable は各入力行へのクラスタ割り当てを格納する出力テーブル
	OutTable string

	// Distance は距離関数。ゼロ値は euclidean。
	Distance string

	// MaxIter は分割ごとのk-means反復回数。ゼロ値は5。
	MaxIter int

	// MinSplit は分割対象となるクラスタの最小インスタンス数。ゼロ値は5。
	MinSplit int

	// MaxDepth はクラスタ木の最大深さ。ゼロ値は3。
	MaxDepth int

	// RandSeed は乱数シード。ゼロ値は12345。
	RandSeed int
}

func (bp *BisectingKMeansParams) defaults() {
	if bp.Distance == "" {
		bp.Distance = "euclidean"
	}
	if bp.MaxIter == 0 {
		bp.MaxIter = 5
	}
	if bp.MinSplit == 0 {
		bp.MinSplit = 5
	}
	if bp.MaxDepth == 0 {
		bp.MaxDepth = 3
	}
	if bp.RandSeed == 0 {
		bp.RandSeed = 12345
	}
}

// Fit はクラスタ木を学習し、クラスタ割り当てのフレームを返す
func (bk *BisectingKMeans) Fit(ctx context.Context, in *ida.DataFrame, opts BisectingKMeansParams) (*ida.DataFrame, error) {
	opts.defaults()

	outTable, err := resolveOutTable(ctx, bk.idadb, opts.OutTable, "OutTable")
	if err != nil {
		return nil, err
	}

	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("distance", opts.Distance).
		Set("maxiter", opts.MaxIter).
		Set("minsplit", opts.MinSplit).
		Set("maxdepth", opts.MaxDepth).
		Set("randseed", opts.RandSeed).
		Set("outtable", outTable)

	if err := bk.fit(ctx, in, params, true); err != nil {
		return nil, err
	}
	return ida.OpenDataFrame(bk.idadb, outTable)
}

// BisectingPredictOptions は予測オプション。Levelでクラスタ木の階層を選べる。
type BisectingPredictOptions struct {
	PredictOptions

	// Level は予測に使うクラスタ木の階層。ゼロ値は葉(最深部)を使う。
	Level int
}

// Predict は学習済みモデルで各行のクラスタを割り当てる
func (bk *BisectingKMeans) Predict(ctx context.Context, in *ida.DataFrame, opts BisectingPredictOptions) (*ida.DataFrame, error) {
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn))
	if opts.Level > 0 {
		params.Set("level", opts.Level)
	}
	return bk.predict(ctx, in, params, opts.OutTable)
}

// Score はクラスタ中心との平均二乗誤差を返す
func (bk *BisectingKMeans) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (float64, error) {
	params := NewParams().Set("id", QuoteColumn(idColumn))
	return bk.score(ctx, in, params, targetColumn)
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// LinearRegression は最小二乗法による線形回帰。解法には正規方程式または
// 特異値分解を選べる。
type LinearRegression struct {
	Regression
}

// NewLinearRegression は回帰器を作成する
func NewLinearRegression(idadb *ida.DataBase, modelName string) *LinearRegression {
	lr := &LinearRegression{Regression: newRegression(idadb, modelName)}
	lr.fitProc = "LINEAR_REGRESSION"
	lr.predictProc = "PREDICT_LINEAR_REGRESSION"
	lr.hasPrintProc = true
	return lr
}

// LinearRegressionParams は学習パラメータ
type LinearRegressionParams struct {
	ColumnSpec

	// NominalColumns はダミー変数展開する名義尺度の列
	NominalColumns []string

	// UseSVDSolver は正規方程式の代わりに特異値分解を使うかどうか
	UseSVDSolver bool

	// NoIntercept を立てると切片項なしでモデルを構築する
	NoIntercept bool

	// CalculateDiagnostics は診断情報を計算するかどうか
	CalculateDiagnostics bool
}

// Fit は線形回帰モデルを学習する
func (lr *LinearRegression) Fit(ctx context.Context, in *ida.DataFrame, opts LinearRegressionParams) error {
	params := NewParams()
	opts.ColumnSpec.apply(params)
	params.
		Set("nominalCols", QuoteColumns(opts.NominalColumns)).
		Set("useSVDSolver", opts.UseSVDSolver).
		Set("intercept", !opts.NoIntercept).
		Set("calculateDiagnostics", opts.CalculateDiagnostics)
	return lr.fit(ctx, in, params, true)
}

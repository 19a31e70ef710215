package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// GLM は一般化線形モデル。誤差分布族とリンク関数を指定でき、
// 回帰・二値分類・計数データのモデリングを一つの枠組みで扱う。
type GLM struct {
	Regression

	family string
}

// NewGLM は一般化線形モデルを作成する。familyは誤差分布族
// (gaussian, bernoulli, binomial, poisson, negativebinomial, wald, gamma)。
func NewGLM(idadb *ida.DataBase, modelName, family string) *GLM {
	g := &GLM{Regression: newRegression(idadb, modelName), family: family}
	g.fitProc = "GLM"
	g.predictProc = "PREDICT_GLM"
	g.hasPrintProc = true
	g.targetColumnInOutput = "PRED"
	// 出力のID列は入力のID列名がそのまま使われる
	g.idColumnInOutput = ""
	return g
}

// NewBernoulliRegressor はベルヌーイ分布のGLMを作成する
func NewBernoulliRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "bernoulli")
}

// NewBinomialRegressor は二項分布のGLMを作成する
func NewBinomialRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "binomial")
}

// NewPoissonRegressor はポアソン分布のGLMを作成する
func NewPoissonRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "poisson")
}

// NewNegativeBinomialRegressor は負の二項分布のGLMを作成する
func NewNegativeBinomialRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "negativebinomial")
}

// NewGaussianRegressor はガウス分布のGLMを作成する
func NewGaussianRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "gaussian")
}

// NewWaldRegressor は逆ガウス(Wald)分布のGLMを作成する
func NewWaldRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "wald")
}

// NewGammaRegressor はガンマ分布のGLMを作成する
func NewGammaRegressor(idadb *ida.DataBase, modelName string) *GLM {
	return NewGLM(idadb, modelName, "gamma")
}

// Family は誤差分布族を返す
func (g *GLM) Family() string { return g.family }

// GLMParams は学習パラメータ
type GLMParams struct {
	ColumnSpec

	// Intercept は切片項を含めるかどうか。ゼロ値はtrue扱いにするため
	// 除外したい場合のみ NoIntercept を立てる。
	NoIntercept bool

	// FamilyParam は分布族の補助パラメータ (負の二項分布のrなど)
	FamilyParam float64

	// Link はリンク関数 (logit, log, identity など)。ゼロ値はエンジン既定。
	Link string

	// LinkParam はリンク関数の補助パラメータ
	LinkParam float64

	// MaxIter は反復重み付き最小二乗法の最大反復回数。ゼロ値は20。
	MaxIter int

	// Epsilon は収束判定のしきい値。ゼロ値は1e-3。
	Epsilon float64

	// Tolerance は数値安定性のしきい値。ゼロ値は1e-7。
	Tolerance float64

	// Method は解法 (irls, psgd)。ゼロ値は irls。
	Method string

	// Debug はエンジン側の診断出力を有効にする
	Debug bool
}

func (gp *GLMParams) defaults() {
	if gp.MaxIter == 0 {
		gp.MaxIter = 20
	}
	if gp.Epsilon == 0 {
		gp.Epsilon = 1e-3
	}
	if gp.Tolerance == 0 {
		gp.Tolerance = 1e-7
	}
	if gp.Method == "" {
		gp.Method = "irls"
	}
}

// Fit は一般化線形モデルを学習する
func (g *GLM) Fit(ctx context.Context, in *ida.DataFrame, opts GLMParams) error {
	opts.defaults()
	params := NewParams().Set("family", g.family)
	opts.ColumnSpec.apply(params)
	params.
		Set("intercept", !opts.NoIntercept)
	if opts.FamilyParam != 0 {
		params.Set("family_param", opts.FamilyParam)
	}
	params.Set("link", opts.Link)
	if opts.LinkParam != 0 {
		params.Set("link_param", opts.LinkParam)
	}
	params.
		Set("maxit", opts.MaxIter).
		Set("eps", opts.Epsilon).
		Set("tol", opts.Tolerance).
		Set("method", opts.Method).
		Set("debug", opts.Debug)
	return g.fit(ctx, in, params, true)
}

// GLMPredictOptions は予測オプション
type GLMPredictOptions struct {
	PredictOptions

	// Debug はエンジン側の診断出力を有効にする
	Debug bool
}

// Predict は各行の目的値を予測する
func (g *GLM) Predict(ctx context.Context, in *ida.DataFrame, opts GLMPredictOptions) (*ida.DataFrame, error) {
	params := NewParams().
		Set("id", QuoteColumn(opts.IDColumn)).
		Set("debug", opts.Debug)
	return g.predict(ctx, in, params, opts.OutTable)
}

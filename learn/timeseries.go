package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// TimeSeries は時系列予測。学習と予測が一体で、モデルの構築と同時に
// 予測地平までの将来値を出力テーブルに書き出す。
type TimeSeries struct {
	PredictiveModel
}

// NewTimeSeries は時系列予測器を作成する
func NewTimeSeries(idadb *ida.DataBase, modelName string) *TimeSeries {
	ts := &TimeSeries{PredictiveModel: newPredictiveModel(idadb, modelName)}
	ts.fitProc = "TIMESERIES"
	ts.hasPrintProc = true
	return ts
}

// TimeSeriesParams は学習・予測パラメータ
type TimeSeriesParams struct {
	// OutTable は予測値の出力テーブル。空の場合は一時テーブルが生成される。
	OutTable string

	// TimeColumn は時刻を表す列 (必須)
	TimeColumn string

	// TargetColumn は予測対象の値の列 (必須)
	TargetColumn string

	// ByColumn は系列を分ける列。系列ごとに独立したモデルが作られる。
	ByColumn string

	// DescTable は系列の説明テーブル
	DescTable string

	// Algorithm は予測アルゴリズム (ExponentialSmoothing, ARIMA,
	// SeasonalTrendDecomposition, SpectralAnalysis)。ゼロ値はエンジンが自動選択。
	Algorithm string

	// InterpolationMethod は欠測時刻の補間方式 (linear, cubicspline, exponentialspline)
	InterpolationMethod string

	// From / To は予測対象の時刻範囲
	From string
	To   string

	// ForecastHorizon は予測する将来時刻の上限
	ForecastHorizon string

	// ForecastTimes は予測する時刻の明示的なリスト
	ForecastTimes []string

	// Trend は指数平滑のトレンド型 (N, A, DA, M, DM)
	Trend string

	// Seasonality は指数平滑の季節性型 (N, A, M)
	Seasonality string

	// Period は季節周期の長さ
	Period int

	// Unit は周期の時間単位
	Unit string

	// P, D, Q はARIMAの次数。負の値は指定なし。
	P int
	D int
	Q int

	// SeasAdjTable は季節調整済み系列の出力テーブル
	SeasAdjTable string
}

// FitPredict はモデルを学習し、予測値のフレームを返す。
// 既存の同名モデルは先に削除される。
func (ts *TimeSeries) FitPredict(ctx context.Context, in *ida.DataFrame, opts TimeSeriesParams) (*ida.DataFrame, error) {
	mm := NewModelManager(ts.idadb)
	if err := mm.DropModel(ctx, ts.ModelName()); err != nil {
		return nil, err
	}

	params := NewParams().
		Set("model", ts.ModelName()).
		Set("time", QuoteColumn(opts.TimeColumn)).
		Set("target", QuoteColumn(opts.TargetColumn)).
		Set("by", QuoteColumn(opts.ByColumn)).
		Set("desctable", opts.DescTable).
		Set("algorithm", opts.Algorithm).
		Set("interpolationmethod", opts.InterpolationMethod).
		Set("from", opts.From).
		Set("to", opts.To).
		Set("forecasthorizon", opts.ForecastHorizon).
		Set("forecasttimes", opts.ForecastTimes).
		Set("trend", opts.Trend).
		Set("seasonality", opts.Seasonality)
	if opts.Period > 0 {
		params.Set("period", opts.Period)
	}
	params.Set("unit", opts.Unit)
	if opts.P > 0 {
		params.Set("p", opts.P)
	}
	if opts.D > 0 {
		params.Set("d", opts.D)
	}
	if opts.Q > 0 {
		params.Set("q", opts.Q)
	}
	params.Set("seasadjtable", opts.SeasAdjTable)

	out, _, err := CallProcOut(ctx, ts.fitProc, in, params, opts.OutTable, false)
	if err != nil {
		return nil, err
	}
	ts.SetFitted()
	return out, nil
}

package learn

import (
	"context"
	"fmt"
	"strings"

	"github.com/YuminosukeSato/idago/core/model"
	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
	"github.com/YuminosukeSato/idago/pkg/log"
)

// PredictiveModel はデータベース内推定器の共通基盤。
// 各推定器はこれを埋め込み、対応するストアドプロシージャ名を設定する。
type PredictiveModel struct {
	model.BaseEstimator

	idadb *ida.DataBase

	fitProc     string
	predictProc string
	scoreProc   string

	// scoreInv がtrueの場合、スコアプロシージャが返す誤り率を 1-err に反転する
	scoreInv bool

	// 出力テーブル内の予測列/ID列の名前。空のときは入力の列名をそのまま使う。
	targetColumnInOutput string
	idColumnInOutput     string

	hasPrintProc bool

	// fitParams は直近の学習呼び出しに使われたパラメータ
	fitParams *Params
}

var (
	_ model.ParameterGetter = (*PredictiveModel)(nil)
	_ model.Describer       = (*PredictiveModel)(nil)
	_ model.Dropper         = (*PredictiveModel)(nil)
)

func newPredictiveModel(idadb *ida.DataBase, modelName string) PredictiveModel {
	pm := PredictiveModel{idadb: idadb}
	pm.SetModelName(modelName)
	return pm
}

// DB はモデルが属するデータベース接続を返す
func (pm *PredictiveModel) DB() *ida.DataBase { return pm.idadb }

// GetParams は直近の学習呼び出しに渡したパラメータを返す。未学習ならnil。
func (pm *PredictiveModel) GetParams() map[string]interface{} {
	if pm.fitParams == nil {
		return nil
	}
	return pm.fitParams.Map()
}

// ensureID はIDパラメータを保証する。未設定の場合はフレームのインデクサを使う。
func (pm *PredictiveModel) ensureID(in *ida.DataFrame, params *Params) error {
	if v, ok := params.Get("id"); ok && v != nil {
		if s, isStr := v.(string); !isStr || s != "" {
			return nil
		}
	}
	if in.Indexer() == "" {
		return errors.NewValidationError("id",
			"missing id column, use the id option or set an indexer on the input frame", nil)
	}
	params.Set("id", QuoteColumn(in.Indexer()))
	return nil
}

// fit はモデルを学習する。同名の既存モデルは先に削除される。
func (pm *PredictiveModel) fit(ctx context.Context, in *ida.DataFrame, params *Params, needsID bool) error {
	if in == nil {
		return errors.NewValueError("learn.fit", "input data frame is nil")
	}
	if needsID {
		if err := pm.ensureID(in, params); err != nil {
			return err
		}
	}

	mm := NewModelManager(pm.idadb)
	if err := mm.DropModel(ctx, pm.ModelName()); err != nil {
		return err
	}

	view, created, err := in.MaterializeView()
	if err != nil {
		return err
	}
	if created {
		defer releaseTempView(pm.idadb, view)
	}

	params.Set("model", pm.ModelName())
	params.Set("intable", view)
	pm.fitParams = params

	pm.idadb.Logger().Debug("fitting model",
		log.ModelNameKey, pm.ModelName(),
		log.ProcedureKey, pm.fitProc,
		log.ParamsKey, params.String())

	if _, err := pm.idadb.CallProcedure(ctx, "NZA.."+pm.fitProc, params.String()); err != nil {
		return err
	}
	pm.SetFitted()
	return nil
}

// predict は学習済みモデルで予測し、出力テーブル上のフレームを返す。
func (pm *PredictiveModel) predict(ctx context.Context, in *ida.DataFrame, params *Params, outTable string) (*ida.DataFrame, error) {
	if in == nil {
		return nil, errors.NewValueError("learn.predict", "input data frame is nil")
	}
	exists, err := pm.idadb.ExistsModel(pm.ModelName())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewNotFittedError(pm.ModelName(), "Predict")
	}
	params.Set("model", pm.ModelName())
	out, _, err := CallProcOut(ctx, pm.predictProc, in, params, outTable, false)
	return out, err
}

// score は予測結果と真値テーブルをスコアプロシージャで比較する。
func (pm *PredictiveModel) score(ctx context.Context, in *ida.DataFrame, predictParams *Params, targetColumn string) (float64, error) {
	if in == nil {
		return 0, errors.NewValueError("learn.score", "input data frame is nil")
	}
	if err := pm.ensureID(in, predictParams); err != nil {
		return 0, err
	}
	idValue, _ := predictParams.Get("id")
	idColumn := fmt.Sprint(idValue)

	outTable, err := pm.idadb.ValidTableName()
	if err != nil {
		return 0, err
	}
	defer func() {
		if e := pm.idadb.DropTableIfExists(outTable); e != nil {
			errors.Warn(errors.Newf("idago: dropping scoring table %s failed: %v", outTable, e))
		}
	}()

	predDF, err := pm.predict(ctx, in, predictParams, outTable)
	if err != nil {
		return 0, err
	}

	predView, predCreated, err := predDF.MaterializeView()
	if err != nil {
		return 0, err
	}
	if predCreated {
		defer pm.dropViewQuietly(predView)
	}
	trueView, trueCreated, err := in.MaterializeView()
	if err != nil {
		return 0, err
	}
	if trueCreated {
		defer pm.dropViewQuietly(trueView)
	}

	predID := QuoteColumn(idColumn)
	if pm.idColumnInOutput != "" {
		predID = QuoteColumn(pm.idColumnInOutput)
	}
	predColumn := QuoteColumn(targetColumn)
	if pm.targetColumnInOutput != "" {
		predColumn = QuoteColumn(pm.targetColumnInOutput)
	}

	params := NewParams().
		Set("pred_table", predView).
		Set("true_table", trueView).
		Set("pred_id", predID).
		Set("true_id", QuoteColumn(idColumn)).
		Set("pred_column", predColumn).
		Set("true_column", QuoteColumn(targetColumn))

	rf, err := pm.idadb.CallProcedure(ctx, "NZA.."+pm.scoreProc, params.String())
	if err != nil {
		return 0, err
	}
	v, err := rf.Scalar()
	if err != nil {
		return 0, err
	}
	res, err := toScoreValue(v)
	if err != nil {
		return 0, err
	}
	if pm.scoreInv {
		return 1 - res, nil
	}
	return res, nil
}

func (pm *PredictiveModel) dropViewQuietly(view string) {
	releaseTempView(pm.idadb, view)
}

// Describe はモデルの説明文をデータベースから取得する
func (pm *PredictiveModel) Describe(ctx context.Context) (string, error) {
	exists, err := pm.idadb.ExistsModel(pm.ModelName())
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.NewNotFittedError(pm.ModelName(), "Describe")
	}
	if !pm.hasPrintProc {
		return fmt.Sprintf("model %s (no description available)", pm.ModelName()), nil
	}
	rf, err := pm.idadb.CallProcedure(ctx, "NZA..PRINT_MODEL", "model="+pm.ModelName())
	if err != nil {
		return "", err
	}
	v, err := rf.Scalar()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// DropModel はデータベース上のモデルを削除し、推定器を未学習状態に戻す
func (pm *PredictiveModel) DropModel(ctx context.Context) error {
	mm := NewModelManager(pm.idadb)
	if err := mm.DropModel(ctx, pm.ModelName()); err != nil {
		return err
	}
	name := pm.ModelName()
	pm.Reset()
	pm.SetModelName(name)
	return nil
}

// CallProcOut は入出力テーブルを取るストアドプロシージャの汎用呼び出し。
// 入力フレームの状態をビューに実体化し、outtable/intable パラメータを設定して
// プロシージャを呼び、出力テーブル上の新しいフレームを返す。
// copyIndexer がtrueで入力にインデクサがあれば、出力フレームにも引き継ぐ。
func CallProcOut(ctx context.Context, proc string, in *ida.DataFrame, params *Params, outTable string, copyIndexer bool) (*ida.DataFrame, *ida.ResultFrame, error) {
	idadb := in.DB()

	outTable, err := resolveOutTable(ctx, idadb, outTable, "out_table")
	if err != nil {
		return nil, nil, err
	}

	view, created, err := in.MaterializeView()
	if err != nil {
		return nil, nil, err
	}

	params.Set("intable", view)
	params.Set("outtable", outTable)

	rf, callErr := idadb.CallProcedure(ctx, "NZA.."+strings.ToUpper(proc), params.String())
	if created {
		releaseTempView(idadb, view)
	}
	if callErr != nil {
		return nil, nil, callErr
	}

	exists, err := idadb.ExistsTableOrView(outTable)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		// プロシージャは成功したがテーブルを生成しなかった
		return nil, rf, nil
	}

	out, err := ida.OpenDataFrame(idadb, outTable)
	if err != nil {
		return nil, nil, err
	}
	if copyIndexer && in.Indexer() != "" {
		if err := out.SetIndexer(in.Indexer()); err != nil {
			return nil, nil, err
		}
	}
	return out, rf, nil
}

func toScoreValue(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int:
		return float64(val), nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(val), "%g", &f); err != nil {
			return 0, errors.NewValueError("learn.score", "score procedure returned a non-numeric value: "+val)
		}
		return f, nil
	case []byte:
		return toScoreValue(string(val))
	default:
		return 0, errors.NewValueError("learn.score", fmt.Sprintf("score procedure returned unsupported type %T", v))
	}
}

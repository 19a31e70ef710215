package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// Classification は分類アルゴリズムの共通基盤。
// スコアは NZA..CERROR が返す誤分類率を 1-err に反転した正解率になる。
type Classification struct {
	PredictiveModel
}

func newClassification(idadb *ida.DataBase, modelName string) Classification {
	c := Classification{PredictiveModel: newPredictiveModel(idadb, modelName)}
	c.targetColumnInOutput = "CLASS"
	c.idColumnInOutput = "ID"
	c.scoreProc = "CERROR"
	c.scoreInv = true
	return c
}

// Predict は学習済みモデルで各行のクラスを予測する
func (c *Classification) Predict(ctx context.Context, in *ida.DataFrame, opts PredictOptions) (*ida.DataFrame, error) {
	params := NewParams().Set("id", QuoteColumn(opts.IDColumn))
	return c.predict(ctx, in, params, opts.OutTable)
}

// Score は分類の正解率 (1 - 誤分類率) を返す
func (c *Classification) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (float64, error) {
	params := NewParams().Set("id", QuoteColumn(idColumn))
	return c.score(ctx, in, params, targetColumn)
}

// ConfusionMatrix はテストデータに対する混同行列と、正解率(ACC)および
// 重み付き正解率(WACC)を返す。
func (c *Classification) ConfusionMatrix(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn, outMatrixTable string) (matrix *ida.DataFrame, acc, wacc float64, err error) {
	if in == nil {
		return nil, 0, 0, errors.NewValueError("learn.ConfusionMatrix", "input data frame is nil")
	}

	outTable, err := c.idadb.ValidTableName()
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() {
		if e := c.idadb.DropTableIfExists(outTable); e != nil && err == nil {
			err = e
		}
	}()

	predDF, err := c.Predict(ctx, in, PredictOptions{OutTable: outTable, IDColumn: idColumn})
	if err != nil {
		return nil, 0, 0, err
	}

	predView, predCreated, err := predDF.MaterializeView()
	if err != nil {
		return nil, 0, 0, err
	}
	if predCreated {
		defer c.dropViewQuietly(predView)
	}
	trueView, trueCreated, err := in.MaterializeView()
	if err != nil {
		return nil, 0, 0, err
	}
	if trueCreated {
		defer c.dropViewQuietly(trueView)
	}

	outMatrixTable, err = resolveOutTable(ctx, c.idadb, outMatrixTable, "outMatrixTable")
	if err != nil {
		return nil, 0, 0, err
	}

	params := NewParams().
		Set("intable", trueView).
		Set("pred_table", predView).
		Set("id", QuoteColumn(idColumn)).
		Set("resulttarget", "CLASS").
		Set("target", QuoteColumn(targetColumn)).
		Set("matrixTable", outMatrixTable)

	if _, err := c.idadb.CallProcedure(ctx, "NZA..CONFUSION_MATRIX", params.String()); err != nil {
		return nil, 0, 0, err
	}

	matrix, err = ida.OpenDataFrame(c.idadb, outMatrixTable)
	if err != nil {
		return nil, 0, 0, err
	}

	statParams := NewParams().Set("matrixTable", outMatrixTable)

	accRF, err := c.idadb.CallProcedure(ctx, "NZA..CMATRIX_ACC", statParams.String())
	if err != nil {
		return nil, 0, 0, err
	}
	accVal, err := accRF.Scalar()
	if err != nil {
		return nil, 0, 0, err
	}
	if acc, err = toScoreValue(accVal); err != nil {
		return nil, 0, 0, err
	}

	waccRF, err := c.idadb.CallProcedure(ctx, "NZA..CMATRIX_WACC", statParams.String())
	if err != nil {
		return nil, 0, 0, err
	}
	waccVal, err := waccRF.Scalar()
	if err != nil {
		return nil, 0, 0, err
	}
	if wacc, err = toScoreValue(waccVal); err != nil {
		return nil, 0, 0, err
	}

	return matrix, acc, wacc, nil
}

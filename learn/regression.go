package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// Regression は回帰アルゴリズムの共通基盤。スコアは NZA..MSE による平均二乗誤差。
type Regression struct {
	PredictiveModel
}

func newRegression(idadb *ida.DataBase, modelName string) Regression {
	r := Regression{PredictiveModel: newPredictiveModel(idadb, modelName)}
	r.scoreProc = "MSE"
	r.idColumnInOutput = "ID"
	return r
}

// Predict は学習済みモデルで各行の目的値を予測する
func (r *Regression) Predict(ctx context.Context, in *ida.DataFrame, opts PredictOptions) (*ida.DataFrame, error) {
	params := NewParams().Set("id", QuoteColumn(opts.IDColumn))
	return r.predict(ctx, in, params, opts.OutTable)
}

// Score は予測の平均二乗誤差を返す
func (r *Regression) Score(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (float64, error) {
	params := NewParams().Set("id", QuoteColumn(idColumn))
	return r.score(ctx, in, params, targetColumn)
}

// ScoreAll はMSE, MAE, RSE, RAEの4指標をまとめて計算する
func (r *Regression) ScoreAll(ctx context.Context, in *ida.DataFrame, idColumn, targetColumn string) (map[string]float64, error) {
	if in == nil {
		return nil, errors.NewValueError("learn.ScoreAll", "input data frame is nil")
	}
	if idColumn == "" {
		if in.Indexer() == "" {
			return nil, errors.NewValidationError("idColumn",
				"required when the input frame has no indexer", nil)
		}
		idColumn = in.Indexer()
	}

	outTable, err := r.idadb.ValidTableName()
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := r.idadb.DropTableIfExists(outTable); e != nil {
			errors.Warn(errors.Newf("idago: dropping scoring table %s failed: %v", outTable, e))
		}
	}()

	predDF, err := r.Predict(ctx, in, PredictOptions{OutTable: outTable, IDColumn: idColumn})
	if err != nil {
		return nil, err
	}

	predView, predCreated, err := predDF.MaterializeView()
	if err != nil {
		return nil, err
	}
	if predCreated {
		defer r.dropViewQuietly(predView)
	}
	trueView, trueCreated, err := in.MaterializeView()
	if err != nil {
		return nil, err
	}
	if trueCreated {
		defer r.dropViewQuietly(trueView)
	}

	predID := QuoteColumn(idColumn)
	if r.idColumnInOutput != "" {
		predID = QuoteColumn(r.idColumnInOutput)
	}
	predColumn := QuoteColumn(targetColumn)
	if r.targetColumnInOutput != "" {
		predColumn = QuoteColumn(r.targetColumnInOutput)
	}

	params := NewParams().
		Set("pred_table", predView).
		Set("true_table", trueView).
		Set("pred_id", predID).
		Set("true_id", QuoteColumn(idColumn)).
		Set("pred_column", predColumn).
		Set("true_column", QuoteColumn(targetColumn))

	scores := make(map[string]float64, 4)
	for _, proc := range []string{"MSE", "MAE", "RSE", "RAE"} {
		rf, err := r.idadb.CallProcedure(ctx, "NZA.."+proc, params.String())
		if err != nil {
			return nil, err
		}
		v, err := rf.Scalar()
		if err != nil {
			return nil, err
		}
		score, err := toScoreValue(v)
		if err != nil {
			return nil, err
		}
		scores[proc] = score
	}
	return scores, nil
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// SplitOptions は TrainTestSplit の調整パラメータ
type SplitOptions struct {
	// OutTableTrain / OutTableTest は出力テーブル名。空の場合は一時テーブルが
	// 生成され AutoDeleteContext に登録される。
	OutTableTrain string
	OutTableTest  string

	// IDColumn は行を一意に識別する列。空の場合は入力フレームのインデクサを使う。
	IDColumn string

	// Fraction は学習側に入れる行の割合。ゼロ値は0.5とみなす。
	Fraction float64

	// RandSeed は乱数シード。nilなら指定しない。
	RandSeed *float64
}

// TrainTestSplit は入力フレームを学習用とテスト用に分割する。
// 分割はデータベース側の nza..SPLIT_DATA で行われ、行はクライアントへ転送されない。
func TrainTestSplit(ctx context.Context, in *ida.DataFrame, opts SplitOptions) (train, test *ida.DataFrame, err error) {
	if in == nil {
		return nil, nil, errors.NewValueError("learn.TrainTestSplit", "input data frame is nil")
	}
	idadb := in.DB()

	idColumn := opts.IDColumn
	if idColumn == "" {
		if in.Indexer() == "" {
			return nil, nil, errors.NewValidationError("IDColumn",
				"required when the input frame has no indexer", nil)
		}
		idColumn = in.Indexer()
	}

	fraction := opts.Fraction
	if fraction == 0 {
		fraction = 0.5
	}
	if fraction < 0 || fraction > 1 {
		return nil, nil, errors.NewValidationError("Fraction", "must be in [0, 1]", fraction)
	}

	trainTable, err := resolveOutTable(ctx, idadb, opts.OutTableTrain, "OutTableTrain")
	if err != nil {
		return nil, nil, err
	}
	testTable, err := resolveOutTable(ctx, idadb, opts.OutTableTest, "OutTableTest")
	if err != nil {
		return nil, nil, err
	}

	view, created, err := in.MaterializeView()
	if err != nil {
		return nil, nil, err
	}

	params := NewParams().
		Set("intable", view).
		Set("traintable", trainTable).
		Set("testtable", testTable).
		Set("id", QuoteColumn(idColumn)).
		Set("fraction", fraction)
	if opts.RandSeed != nil {
		params.Set("seed", *opts.RandSeed)
	}

	_, callErr := idadb.CallProcedure(ctx, "NZA..SPLIT_DATA", params.String())
	if created {
		if exists, e := idadb.ExistsTableOrView(view); e == nil && exists {
			if e := idadb.DropView(view); e != nil {
				errors.Warn(errors.Newf("idago: dropping temporary view %s failed: %v", view, e))
			}
		}
	}
	if callErr != nil {
		return nil, nil, callErr
	}

	train, err = ida.OpenDataFrame(idadb, trainTable)
	if err != nil {
		return nil, nil, err
	}
	test, err = ida.OpenDataFrame(idadb, testTable)
	if err != nil {
		return nil, nil, err
	}
	if in.Indexer() != "" {
		if err := train.SetIndexer(in.Indexer()); err != nil {
			return nil, nil, err
		}
		if err := test.SetIndexer(in.Indexer()); err != nil {
			return nil, nil, err
		}
	}
	return train, test, nil
}

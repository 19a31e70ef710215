package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/idago/ida"
)

// FrameVec は取得済み結果の1列をgonumベクトルに変換する
func FrameVec(rf *ida.ResultFrame, column string) (*mat.VecDense, error) {
	values, err := rf.FloatColumn(column)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(values), values), nil
}

// FrameMSE は予測フレームと真値フレームの対応列からMSEを計算する。
// 両フレームの行は同じ順序で並んでいる必要がある。
func FrameMSE(pred *ida.ResultFrame, predColumn string, truth *ida.ResultFrame, trueColumn string) (float64, error) {
	yPred, err := FrameVec(pred, predColumn)
	if err != nil {
		return 0, err
	}
	yTrue, err := FrameVec(truth, trueColumn)
	if err != nil {
		return 0, err
	}
	return MSE(yTrue, yPred)
}

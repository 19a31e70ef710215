package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// Accuracy は分類の正解率を計算する。NZA..CERROR が返す誤り率の反転
// (1-err) と同じ値になる。
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("metrics.Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyLabels は文字列ラベルの正解率を計算する
func AccuracyLabels(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("metrics.AccuracyLabels", "empty slice")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewValueError("metrics.AccuracyLabels", "length mismatch between y_true and y_pred")
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/idago/ida"
)

func vec(values ...float64) *mat.VecDense {
	if len(values) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(values), values)
}

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: vec(1, 2, 3),
			yPred: vec(1, 2, 3),
			want:  0,
		},
		{
			name:  "constant offset",
			yTrue: vec(1, 2, 3, 4),
			yPred: vec(2, 3, 4, 5),
			want:  1,
		},
		{
			name:  "mixed errors",
			yTrue: vec(3, -0.5, 2, 7),
			yPred: vec(2.5, 0.0, 2, 8),
			want:  0.375,
		},
		{
			name:    "empty input",
			yTrue:   vec(),
			yPred:   vec(),
			wantErr: true,
		},
		{
			name:    "length mismatch",
			yTrue:   vec(1, 2),
			yPred:   vec(1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestRMSE(t *testing.T) {
	got, err := RMSE(vec(1, 2, 3, 4), vec(3, 4, 5, 6))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestMAE(t *testing.T) {
	got, err := MAE(vec(3, -0.5, 2, 7), vec(2.5, 0.0, 2, 8))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue *mat.VecDense
		yPred *mat.VecDense
		want  float64
	}{
		{
			name:  "perfect prediction",
			yTrue: vec(1, 2, 3, 4),
			yPred: vec(1, 2, 3, 4),
			want:  1,
		},
		{
			name:  "reference values",
			yTrue: vec(3, -0.5, 2, 7),
			yPred: vec(2.5, 0.0, 2, 8),
			want:  0.9486081370449679,
		},
		{
			name:  "constant truth with exact prediction",
			yTrue: vec(2, 2, 2),
			yPred: vec(2, 2, 2),
			want:  1,
		},
		{
			name:  "constant truth with errors",
			yTrue: vec(2, 2, 2),
			yPred: vec(1, 2, 3),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestAccuracy(t *testing.T) {
	got, err := Accuracy(vec(0, 1, 1, 0), vec(0, 1, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-12)
}

func TestAccuracyLabels(t *testing.T) {
	got, err := AccuracyLabels([]string{"A", "B", "A"}, []string{"A", "B", "B"})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-12)

	_, err = AccuracyLabels(nil, nil)
	assert.Error(t, err)

	_, err = AccuracyLabels([]string{"A"}, []string{"A", "B"})
	assert.Error(t, err)
}

func TestFrameVec(t *testing.T) {
	rf := &ida.ResultFrame{
		Columns: []string{"ID", "PRED"},
		Data: [][]interface{}{
			{int64(1), 0.5},
			{int64(2), 1.5},
		},
	}

	v, err := FrameVec(rf, "PRED")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.InDelta(t, 0.5, v.AtVec(0), 1e-12)

	_, err = FrameVec(rf, "MISSING")
	assert.Error(t, err)
}

func TestFrameMSE(t *testing.T) {
	pred := &ida.ResultFrame{
		Columns: []string{"PRED"},
		Data:    [][]interface{}{{1.0}, {2.0}, {3.0}},
	}
	truth := &ida.ResultFrame{
		Columns: []string{"CLASS"},
		Data:    [][]interface{}{{1.0}, {2.0}, {5.0}},
	}

	got, err := FrameMSE(pred, "PRED", truth, "CLASS")
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, got, 1e-12)
}

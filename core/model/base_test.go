package model

import "testing"

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Error("new estimator should not be fitted")
	}

	e.SetModelName("KMEANS_1")
	e.SetFitted()

	if !e.IsFitted() {
		t.Error("estimator should be fitted after SetFitted")
	}
	if e.ModelName() != "KMEANS_1" {
		t.Errorf("ModelName() = %q, want KMEANS_1", e.ModelName())
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("estimator should not be fitted after Reset")
	}
	if e.ModelName() != "" {
		t.Error("model name should be cleared after Reset")
	}
}

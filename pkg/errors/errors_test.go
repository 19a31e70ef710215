package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewDataBaseError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		message  string
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "connection failure",
			op:       "Connect",
			message:  "cannot reach host",
			wantMsg:  "idago: Connect: cannot reach host",
			hasStack: true,
		},
		{
			name:     "catalog lookup",
			op:       "ShowTables",
			message:  "catalog view unavailable",
			wantMsg:  "idago: ShowTables: catalog view unavailable",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDataBaseError(tt.op, tt.message)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// DataBaseError型にキャスト可能か確認
			var dbErr *DataBaseError
			if !As(err, &dbErr) {
				t.Error("Error should be castable to *DataBaseError")
			}
		})
	}
}

func TestNewQueryError(t *testing.T) {
	cause := fmt.Errorf("syntax error near FROM")
	err := NewQueryError("Query", `SELECT * FORM "IRIS"`, cause)

	if !strings.Contains(err.Error(), `[query: SELECT * FORM "IRIS"]`) {
		t.Errorf("Error() should contain the failing query, got %v", err.Error())
	}

	// 原因エラーがUnwrapで辿れるか確認
	if !Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewDataFrameError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		frame   string
		message string
		wantMsg string
	}{
		{
			name:    "with frame name",
			op:      "Loc",
			frame:   "IRIS",
			message: "no indexer column set",
			wantMsg: "idago: Loc: IRIS: no indexer column set",
		},
		{
			name:    "without frame name",
			op:      "Filter",
			frame:   "",
			message: "empty predicate",
			wantMsg: "idago: Filter: empty predicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDataFrameError(tt.op, tt.frame, tt.message)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var frameErr *DataFrameError
			if !As(err, &frameErr) {
				t.Error("Error should be castable to *DataFrameError")
			}
		})
	}
}

func TestNewPrimaryKeyError(t *testing.T) {
	err := NewPrimaryKeyError("IRIS", "ID", "column is not unique")

	want := `idago: primary key error on "IRIS" (column "ID"): column is not unique`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var pkErr *PrimaryKeyError
	if !As(err, &pkErr) {
		t.Error("Error should be castable to *PrimaryKeyError")
	}
}

func TestNewGeoFunctionError(t *testing.T) {
	err := NewGeoFunctionError("Area", "inza..ST_Area", "THE_GEOM", "column is not a surface type")

	want := `idago: Area: inza..ST_Area on column "THE_GEOM": column is not a surface type`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var geoErr *GeoDataFrameError
	if !As(err, &geoErr) {
		t.Error("Error should be castable to *GeoDataFrameError")
	}
}

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		factory func() error
		wantAlg string
		wantMsg string
	}{
		{
			name:    "KMeans",
			factory: func() error { return NewKMeansError("KMEANS_1", "fit", "k must be >= 1") },
			wantAlg: "KMeans",
			wantMsg: "idago: fit: KMeans(KMEANS_1): k must be >= 1",
		},
		{
			name:    "AssociationRules",
			factory: func() error { return NewAssociationRulesError("ARULE_1", "predict", "model table missing") },
			wantAlg: "ARule",
			wantMsg: "idago: predict: ARule(ARULE_1): model table missing",
		},
		{
			name:    "NaiveBayes",
			factory: func() error { return NewNaiveBayesError("NB_1", "score", "target column missing") },
			wantAlg: "NaiveBayes",
			wantMsg: "idago: score: NaiveBayes(NB_1): target column missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.factory()

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Fatal("Error should be castable to *ModelError")
			}
			if modelErr.Algorithm != tt.wantAlg {
				t.Errorf("Algorithm = %v, want %v", modelErr.Algorithm, tt.wantAlg)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("KMeans", "Predict")

	// 基本的なエラーメッセージの確認
	want := "idago: KMeans: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("k", "must be a positive integer", 0)

	want := "idago: validation failed for parameter 'k': must be a positive integer (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("Quantile", "q must be in [0, 1]")

	want := "idago: Quantile: q must be in [0, 1]"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewDataConversionWarning("VARCHAR", "excluded", "non-numeric column skipped in statistics")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "non-numeric column skipped") {
		t.Errorf("unexpected warning message: %v", captured.Error())
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "Collect")
		panic("driver conversion failed")
	}

	err := run()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatal("Error should be castable to *PanicError")
	}
	if panicErr.Operation != "Collect" {
		t.Errorf("Operation = %v, want Collect", panicErr.Operation)
	}
}

func TestSafeExecute(t *testing.T) {
	// パニックなしの場合は元のエラーをそのまま返す
	original := New("plain failure")
	if err := SafeExecute("op", func() error { return original }); !Is(err, original) {
		t.Error("SafeExecute should return the function error unchanged")
	}

	// パニックはエラーに変換される
	err := SafeExecute("op", func() error { panic("boom") })
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Error("panic should be converted to *PanicError")
	}
}

package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// releaseTempView drops a materialized state view, logging instead of
// failing when the drop itself goes wrong.
func releaseTempView(idadb *ida.DataBase, view string) {
	if exists, err := idadb.ExistsTableOrView(view); err != nil || !exists {
		return
	}
	if err := idadb.DropView(view); err != nil {
		errors.Warn(errors.Newf("idago: dropping temporary view %s failed: %v", view, err))
	}
}

// StdNormOptions configures StdNorm.
type StdNormOptions struct {
	// IDColumn identifies rows in the output. Empty uses the input
	// frame's indexer; an error is returned when neither is set.
	IDColumn string

	// InColumns lists the columns to normalize. Each name may carry a
	// method suffix (":S" standardize, ":L" leave, ":C" center).
	// Empty normalizes every numeric column.
	InColumns []string

	// ByColumn normalizes within the groups formed by this column.
	ByColumn string

	// OutTable receives the result. Empty generates a name and registers
	// the table for automatic deletion.
	OutTable string
}

// StdNorm standardizes the numeric columns of a frame in the database and
// returns a frame over the result table.
func StdNorm(ctx context.Context, in *ida.DataFrame, opts StdNormOptions) (*ida.DataFrame, error) {
	if in == nil {
		return nil, errors.NewValidationError("in", "input frame must not be nil", nil)
	}
	id := opts.IDColumn
	if id == "" {
		id = in.Indexer()
	}
	if id == "" {
		return nil, errors.NewValidationError("IDColumn",
			"an ID column is required when the frame has no indexer", nil)
	}
	params := NewParams().
		Set("id", QuoteColumn(id)).
		Set("incolumn", QuoteColumns(opts.InColumns)).
		Set("by", QuoteColumn(opts.ByColumn))
	out, _, err := CallProcOut(ctx, "STD_NORM", in, params, opts.OutTable, true)
	return out, err
}

// ImputeOptions configures ImputeData.
type ImputeOptions struct {
	// InColumn restricts imputation to one column. Empty treats all.
	InColumn string

	// Method fills missing cells: mean, median, freq or replace.
	// Empty lets the procedure pick its default.
	Method string

	// NumericValue replaces missing numeric cells when Method is
	// "replace". Nil uses -1.
	NumericValue *float64

	// NominalValue replaces missing nominal cells when Method is
	// "replace". Empty uses "missing".
	NominalValue string

	// OutTable receives the result.
	OutTable string
}

// ImputeData fills the missing values of a frame in the database and
// returns a frame over the result table.
func ImputeData(ctx context.Context, in *ida.DataFrame, opts ImputeOptions) (*ida.DataFrame, error) {
	if in == nil {
		return nil, errors.NewValidationError("in", "input frame must not be nil", nil)
	}
	numericValue := -1.0
	if opts.NumericValue != nil {
		numericValue = *opts.NumericValue
	}
	nominalValue := opts.NominalValue
	if nominalValue == "" {
		nominalValue = "missing"
	}
	params := NewParams().
		Set("incolumn", QuoteColumn(opts.InColumn)).
		Set("method", opts.Method).
		Set("numericvalue", numericValue).
		Set("nominalvalue", nominalValue)
	out, _, err := CallProcOut(ctx, "IMPUTE_DATA", in, params, opts.OutTable, true)
	return out, err
}

// SampleOptions configures RandomSample.
type SampleOptions struct {
	// Size is the number of rows to draw. Exactly one of Size and
	// Fraction must be set.
	Size int

	// Fraction is the inclusion probability per row.
	Fraction float64

	// ByColumn stratifies the sample over the groups of this column.
	ByColumn string

	// OutSignature lists the output columns, overriding the default of
	// keeping every input column.
	OutSignature string

	// RandSeed fixes the sampling seed for reproducible draws.
	RandSeed *int

	// OutTable receives the result.
	OutTable string
}

// RandomSample draws a random subset of a frame in the database and returns
// a frame over the result table.
func RandomSample(ctx context.Context, in *ida.DataFrame, opts SampleOptions) (*ida.DataFrame, error) {
	if in == nil {
		return nil, errors.NewValidationError("in", "input frame must not be nil", nil)
	}
	if (opts.Size > 0) == (opts.Fraction > 0) {
		return nil, errors.NewValidationError("Size",
			"exactly one of Size and Fraction must be set", opts.Size)
	}
	params := NewParams()
	if opts.Size > 0 {
		params.Set("size", opts.Size)
	} else {
		params.Set("fraction", opts.Fraction)
	}
	params.
		Set("by", QuoteColumn(opts.ByColumn)).
		Set("outsignature", opts.OutSignature)
	if opts.RandSeed != nil {
		params.Set("randseed", *opts.RandSeed)
	}
	out, _, err := CallProcOut(ctx, "RANDOM_SAMPLE", in, params, opts.OutTable, true)
	return out, err
}

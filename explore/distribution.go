package explore

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/learn"
)

// The functions below dispatch to the NZA.. exploration procedures and are
// only available on engines with the analytics cartridge. An empty outTable
// requires a learn.AutoDeleteContext bound to the context.

// Moments computes count, mean, variance, standard deviation, skewness,
// kurtosis, minimum and maximum of a numeric column in one pass.
func Moments(ctx context.Context, df *ida.DataFrame, column, byColumn, outTable string) (*ida.DataFrame, error) {
	params := learn.NewParams().
		Set("incolumn", column).
		Set("by", byColumn)
	out, _, err := learn.CallProcOut(ctx, "MOMENTS", df, params, outTable, false)
	return out, err
}

// QuantileTable computes the limits of the given quantiles of a numeric
// column. Quantiles are fractions between 0 and 1.
func QuantileTable(ctx context.Context, df *ida.DataFrame, column string, quantiles []string, outTable string) (*ida.DataFrame, error) {
	params := learn.NewParams().
		Set("incolumn", column).
		Set("quantiles", quantiles)
	out, _, err := learn.CallProcOut(ctx, "QUANTILE", df, params, outTable, false)
	return out, err
}

// Outliers detects outliers of a numeric column with the IQR rule.
// A zero multiplier uses the conventional 1.5.
func Outliers(ctx context.Context, df *ida.DataFrame, column string, multiplier float64, outTable string) (*ida.DataFrame, error) {
	if multiplier == 0 {
		multiplier = 1.5
	}
	params := learn.NewParams().
		Set("incolumn", column).
		Set("multiplier", multiplier)
	out, _, err := learn.CallProcOut(ctx, "OUTLIERS", df, params, outTable, false)
	return out, err
}

// Unitable builds a univariate frequency table for one column.
func Unitable(ctx context.Context, df *ida.DataFrame, column, outTable string) (*ida.DataFrame, error) {
	params := learn.NewParams().Set("incolumn", column)
	out, _, err := learn.CallProcOut(ctx, "UNITABLE", df, params, outTable, false)
	return out, err
}

// Bitable builds a bivariate frequency table for two columns. Setting cum
// implies freq, frequencies are needed to accumulate.
func Bitable(ctx context.Context, df *ida.DataFrame, columns []string, freq, cum bool, outTable string) (*ida.DataFrame, error) {
	if cum {
		freq = true
	}
	params := learn.NewParams().
		Set("incolumn", columns).
		Set("freq", freq).
		Set("cum", cum)
	out, _, err := learn.CallProcOut(ctx, "BITABLE", df, params, outTable, false)
	return out, err
}

// HistogramTableOptions configures the engine-side histogram procedure.
type HistogramTableOptions struct {
	// NBreaks is the bin count. Zero lets the engine choose.
	NBreaks int

	// RightOpen makes bins right-open instead of the default right-closed.
	RightOpen bool

	// BTable and BColumn supply explicit breaks from a table.
	BTable  string
	BColumn string

	// Density, Midpoints, Freq and Cum attach the respective columns
	// to the output table. Cum implies Freq.
	Density   bool
	Midpoints bool
	Freq      bool
	Cum       bool
}

// HistogramTable builds a histogram in the database and returns the frame of
// bins. For a client-side histogram on any engine, use EqualWidth.
func HistogramTable(ctx context.Context, df *ida.DataFrame, column string, opts HistogramTableOptions, outTable string) (*ida.DataFrame, error) {
	if opts.Cum {
		opts.Freq = true
	}
	params := learn.NewParams().Set("incolumn", column)
	if opts.NBreaks > 0 {
		params.Set("nbreaks", opts.NBreaks)
	}
	params.
		Set("right", !opts.RightOpen).
		Set("btable", opts.BTable).
		Set("bcolumn", opts.BColumn).
		Set("density", opts.Density).
		Set("midpoints", opts.Midpoints).
		Set("freq", opts.Freq).
		Set("cum", opts.Cum)
	out, _, err := learn.CallProcOut(ctx, "HIST", df, params, outTable, false)
	return out, err
}

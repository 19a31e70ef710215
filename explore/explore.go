// Package explore provides in-database distribution analysis for frames.
//
// Counting and binning run as SQL against the frame's current state, so no
// row data leaves the database until a result table is collected. On engines
// with the analytics cartridge the NZA.. exploration procedures (MOMENTS,
// QUANTILE, OUTLIERS, frequency tables) are available as well. A fetched
// histogram can be rendered locally to PNG or SVG.
package explore

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// ValueCounts returns the distinct values of a column with their row counts,
// most frequent first. A non-positive limit returns all values.
func ValueCounts(ctx context.Context, df *ida.DataFrame, column string, limit int) (*ida.ResultFrame, error) {
	if !df.HasColumn(column) {
		return nil, errors.NewDataFrameError("explore.ValueCounts", df.TableName(),
			"unknown column: "+column)
	}
	col := fmt.Sprintf("%q", column)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) AS "COUNT" FROM (%s)%s GROUP BY %s ORDER BY "COUNT" DESC, %s`,
		col, df.SelectSQL(), frameAlias(df), col, col)
	if limit > 0 {
		query = fmt.Sprintf("SELECT * FROM (%s)%s LIMIT %d", query, frameAlias(df), limit)
	}
	return df.DB().QueryContext(ctx, query)
}

// Histogram is an equal-width binning of a numeric column.
// Breaks holds len(Counts)+1 bin edges.
type Histogram struct {
	Column string
	Breaks []float64
	Counts []float64
}

// NumBins returns the number of bins.
func (h *Histogram) NumBins() int { return len(h.Counts) }

// Midpoints returns the center of each bin.
func (h *Histogram) Midpoints() []float64 {
	mids := make([]float64, len(h.Counts))
	for i := range mids {
		mids[i] = (h.Breaks[i] + h.Breaks[i+1]) / 2
	}
	return mids
}

// Densities returns the counts normalized so the histogram integrates to one.
func (h *Histogram) Densities() []float64 {
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	dens := make([]float64, len(h.Counts))
	if total == 0 {
		return dens
	}
	for i, c := range h.Counts {
		width := h.Breaks[i+1] - h.Breaks[i]
		if width > 0 {
			dens[i] = c / (total * width)
		}
	}
	return dens
}

// EqualWidth bins a numeric column into nbins equal-width buckets.
// The binning runs as a single aggregation query; only the per-bin counts
// are fetched. Values equal to the maximum fall into the last bin.
func EqualWidth(ctx context.Context, df *ida.DataFrame, column string, nbins int) (*Histogram, error) {
	if nbins <= 0 {
		return nil, errors.NewValidationError("nbins", "must be positive", nbins)
	}
	if !df.HasColumn(column) {
		return nil, errors.NewDataFrameError("explore.EqualWidth", df.TableName(),
			"unknown column: "+column)
	}

	minVals, err := df.Min(ctx, column)
	if err != nil {
		return nil, err
	}
	maxVals, err := df.Max(ctx, column)
	if err != nil {
		return nil, err
	}
	lo, hi := minVals[column], maxVals[column]
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, errors.Wrap(errors.ErrEmptyData, "explore.EqualWidth")
	}

	h := &Histogram{
		Column: column,
		Breaks: make([]float64, nbins+1),
		Counts: make([]float64, nbins),
	}
	width := (hi - lo) / float64(nbins)
	for i := 0; i <= nbins; i++ {
		h.Breaks[i] = lo + float64(i)*width
	}
	h.Breaks[nbins] = hi

	if width == 0 {
		// degenerate column, everything lands in the first bin
		counts, err := df.Count(ctx, column)
		if err != nil {
			return nil, err
		}
		h.Counts[0] = counts[column]
		return h, nil
	}

	col := fmt.Sprintf("%q", column)
	// the operand is non-negative, integer truncation equals floor
	bucket := fmt.Sprintf(
		"CASE WHEN %s >= %s THEN %d ELSE CAST((CAST(%s AS FLOAT) - %s) / %s AS INT) END",
		col, floatLiteral(hi), nbins-1, col, floatLiteral(lo), floatLiteral(width))
	query := fmt.Sprintf(
		`SELECT %s AS "BUCKET", COUNT(*) AS "COUNT" FROM (%s)%s WHERE %s IS NOT NULL GROUP BY 1 ORDER BY 1`,
		bucket, df.SelectSQL(), frameAlias(df), col)

	rf, err := df.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	buckets, err := rf.FloatColumn("BUCKET")
	if err != nil {
		return nil, err
	}
	counts, err := rf.FloatColumn("COUNT")
	if err != nil {
		return nil, err
	}
	for i, b := range buckets {
		ix := int(b)
		if ix < 0 || ix >= nbins {
			continue
		}
		h.Counts[ix] = counts[i]
	}
	return h, nil
}

func frameAlias(df *ida.DataFrame) string {
	return df.DB().Dialect().SubqueryAlias(1)
}

func floatLiteral(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

package learn

import (
	"context"
	"strings"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// Discretization computes bin limits for the continuous columns of a frame
// and assigns interval labels with them. The limits live in a database table
// produced by Fit, so the same binning can be applied to any frame with
// matching columns.
type Discretization struct {
	idadb *ida.DataBase
	proc  string

	bins         int
	binPrecision float64
	target       string
}

// NewEWDisc creates equal-width binning. A non-positive bins uses 10.
func NewEWDisc(idadb *ida.DataBase, bins int) *Discretization {
	if bins <= 0 {
		bins = 10
	}
	return &Discretization{idadb: idadb, proc: "EWDISC", bins: bins}
}

// NewEFDisc creates equal-frequency binning. A non-positive bins uses 10 and
// a non-positive binPrecision uses 0.1.
func NewEFDisc(idadb *ida.DataBase, bins int, binPrecision float64) *Discretization {
	if bins <= 0 {
		bins = 10
	}
	if binPrecision <= 0 {
		binPrecision = 0.1
	}
	return &Discretization{idadb: idadb, proc: "EFDISC", bins: bins, binPrecision: binPrecision}
}

// NewEMDisc creates entropy-minimal binning against the given target column.
func NewEMDisc(idadb *ida.DataBase, target string) *Discretization {
	return &Discretization{idadb: idadb, proc: "EMDISC", target: target}
}

// Fit computes the bin limits for every column of the input frame and
// returns a frame over the limits table.
func (d *Discretization) Fit(ctx context.Context, in *ida.DataFrame, outTable string) (*ida.DataFrame, error) {
	if in == nil {
		return nil, errors.NewValidationError("in", "input frame must not be nil", nil)
	}
	params := NewParams().
		Set("incolumn", strings.Join(in.Columns(), ";")).
		Set("outtabletype", "table")
	switch d.proc {
	case "EFDISC":
		params.Set("bins", d.bins).Set("binprec", d.binPrecision)
	case "EMDISC":
		if d.target == "" {
			return nil, errors.NewValidationError("target", "entropy-minimal binning needs a target column", nil)
		}
		params.Set("target", QuoteColumn(d.target))
	default:
		params.Set("bins", d.bins)
	}
	out, _, err := CallProcOut(ctx, d.proc, in, params, outTable, false)
	return out, err
}

// Apply labels the rows of in with the bin limits previously computed by
// Fit. With keepOrgValues set, the original columns are kept next to the
// discretized ones instead of being replaced.
func (d *Discretization) Apply(ctx context.Context, in, bins *ida.DataFrame, keepOrgValues bool, outTable string) (*ida.DataFrame, error) {
	if in == nil || bins == nil {
		return nil, errors.NewValidationError("in", "input and bin frames must not be nil", nil)
	}

	outTable, err := resolveOutTable(ctx, d.idadb, outTable, "out_table")
	if err != nil {
		return nil, err
	}
	inView, inCreated, err := in.MaterializeView()
	if err != nil {
		return nil, err
	}
	binView, binCreated, err := bins.MaterializeView()
	if err != nil {
		if inCreated {
			releaseTempView(d.idadb, inView)
		}
		return nil, err
	}

	params := NewParams().
		Set("intable", inView).
		Set("outtable", outTable).
		Set("btable", binView).
		Set("outtabletype", "table").
		Set("replace", !keepOrgValues)
	_, callErr := d.idadb.CallProcedure(ctx, "NZA..APPLY_DISC", params.String())
	if inCreated {
		releaseTempView(d.idadb, inView)
	}
	if binCreated {
		releaseTempView(d.idadb, binView)
	}
	if callErr != nil {
		return nil, callErr
	}

	out, err := ida.OpenDataFrame(d.idadb, outTable)
	if err != nil {
		return nil, err
	}
	if in.Indexer() != "" && out.HasColumn(in.Indexer()) {
		if err := out.SetIndexer(in.Indexer()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

package ida

import (
	"fmt"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// Loc selects rows of a DataFrame by indexer value or by position.
// It is obtained from DataFrame.Loc and mirrors label/positional indexing.
type Loc struct {
	frame *DataFrame
}

// Loc returns the row selector of the frame.
func (df *DataFrame) Loc() *Loc {
	return &Loc{frame: df}
}

// Value selects the rows whose indexer column equals v.
// The frame must have an indexer column set.
func (l *Loc) Value(v interface{}) (*DataFrame, error) {
	if l.frame.indexer == "" {
		return nil, errors.Wrap(errors.ErrNoIndexer, "idago: Loc.Value")
	}
	out := l.frame.clone()
	out.state.applyRowSelection(l.frame.idadb.Dialect(), l.frame.indexer,
		" = "+formatLiteral(v))
	return out, nil
}

// Values selects the rows whose indexer column is one of the given values.
func (l *Loc) Values(values ...interface{}) (*DataFrame, error) {
	if l.frame.indexer == "" {
		return nil, errors.Wrap(errors.ErrNoIndexer, "idago: Loc.Values")
	}
	if len(values) == 0 {
		return nil, errors.NewValueError("Loc.Values", "no values given")
	}
	out := l.frame.clone()
	out.state.applyRowSelection(l.frame.idadb.Dialect(), l.frame.indexer,
		" IN ("+formatLiteralList(values)+")")
	return out, nil
}

// Positions selects rows by zero-based position [start, stop).
// Without an indexer, rows are numbered with ROW_NUMBER over an arbitrary
// order, so positions are only stable within one query.
func (l *Loc) Positions(start, stop int) (*DataFrame, error) {
	if start < 0 || stop < start {
		return nil, errors.NewValueError("Loc.Positions",
			fmt.Sprintf("invalid range [%d, %d)", start, stop))
	}
	out := l.frame.clone()
	out.state.applyRowSelection(l.frame.idadb.Dialect(), "",
		fmt.Sprintf(" BETWEEN %d AND %d", start, stop-1))
	return out, nil
}

// PositionList selects rows at the given zero-based positions.
func (l *Loc) PositionList(positions ...int) (*DataFrame, error) {
	if len(positions) == 0 {
		return nil, errors.NewValueError("Loc.PositionList", "no positions given")
	}
	vals := make([]interface{}, len(positions))
	for i, p := range positions {
		if p < 0 {
			return nil, errors.NewValueError("Loc.PositionList", "positions must be non-negative")
		}
		vals[i] = p
	}
	out := l.frame.clone()
	out.state.applyRowSelection(l.frame.idadb.Dialect(), "",
		" IN ("+formatLiteralList(vals)+")")
	return out, nil
}

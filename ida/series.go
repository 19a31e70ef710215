package ida

import (
	"context"
	"fmt"
)

// Series is a single-column view of a DataFrame. Comparisons yield
// predicates for filtering; arithmetic yields derived series whose
// expressions are evaluated in the database.
type Series struct {
	frame  *DataFrame
	column string
	// expr is the SQL expression of a derived series; empty means the
	// series is the plain column.
	expr string
}

// Name returns the column name of the series.
func (s *Series) Name() string { return s.column }

// Frame returns the single-column frame backing the series.
func (s *Series) Frame() *DataFrame { return s.frame }

// Expr returns the SQL expression the series evaluates to.
func (s *Series) Expr() string {
	if s.expr != "" {
		return s.expr
	}
	return quoteIdent(s.column)
}

// Collect fetches the series values.
func (s *Series) Collect(ctx context.Context) (*ResultFrame, error) {
	return s.frame.Collect(ctx)
}

// ===========================================================================
//
//	比較 → Predicate
//
// ===========================================================================

// Lt matches rows where the column is less than value.
func (s *Series) Lt(value interface{}) *Predicate { return newComparison(s.column, "<", value) }

// Le matches rows where the column is at most value.
func (s *Series) Le(value interface{}) *Predicate { return newComparison(s.column, "<=", value) }

// Eq matches rows where the column equals value.
func (s *Series) Eq(value interface{}) *Predicate { return newComparison(s.column, "=", value) }

// Ne matches rows where the column differs from value.
func (s *Series) Ne(value interface{}) *Predicate { return newComparison(s.column, "<>", value) }

// Ge matches rows where the column is at least value.
func (s *Series) Ge(value interface{}) *Predicate { return newComparison(s.column, ">=", value) }

// Gt matches rows where the column is greater than value.
func (s *Series) Gt(value interface{}) *Predicate { return newComparison(s.column, ">", value) }

// IsIn matches rows where the column is one of the given values.
func (s *Series) IsIn(values ...interface{}) *Predicate { return IsIn(s.column, values...) }

// ===========================================================================
//
//	算術 → 派生Series
//
// ===========================================================================

// derived returns a new series carrying expr, attached to a frame whose
// single column is the derived expression.
func (s *Series) derived(name, expr string) *Series {
	frame := s.frame.WithColumn(name, expr)
	projected, err := frame.Project(name)
	if err != nil {
		// WithColumnで追加した直後の列は必ず存在する
		panic(err)
	}
	return &Series{frame: projected, column: name, expr: expr}
}

func operandExpr(v interface{}) string {
	if other, ok := v.(*Series); ok {
		return other.Expr()
	}
	return formatLiteral(v)
}

// 整数同士の除算が切り捨てられないようFLOATにキャストする
func castFloat(expr string) string {
	return "CAST(" + expr + " AS FLOAT)"
}

// Add returns the series plus a scalar or another series.
func (s *Series) Add(v interface{}) *Series {
	return s.derived(s.column, "("+s.Expr()+" + "+operandExpr(v)+")")
}

// Sub returns the series minus a scalar or another series.
func (s *Series) Sub(v interface{}) *Series {
	return s.derived(s.column, "("+s.Expr()+" - "+operandExpr(v)+")")
}

// Mul returns the series times a scalar or another series.
func (s *Series) Mul(v interface{}) *Series {
	return s.derived(s.column, "("+s.Expr()+" * "+operandExpr(v)+")")
}

// Div returns the true division of the series by a scalar or series.
func (s *Series) Div(v interface{}) *Series {
	return s.derived(s.column, "("+castFloat(s.Expr())+" / "+operandExpr(v)+")")
}

// FloorDiv returns the floored division of the series.
func (s *Series) FloorDiv(v interface{}) *Series {
	return s.derived(s.column, "FLOOR("+castFloat(s.Expr())+" / "+operandExpr(v)+")")
}

// Mod returns the remainder of the series divided by v.
func (s *Series) Mod(v interface{}) *Series {
	return s.derived(s.column, "MOD("+s.Expr()+", "+operandExpr(v)+")")
}

// Pow raises the series to the power v.
func (s *Series) Pow(v interface{}) *Series {
	return s.derived(s.column, "POW("+castFloat(s.Expr())+", "+operandExpr(v)+")")
}

// Neg returns the negated series.
func (s *Series) Neg() *Series {
	return s.derived(s.column, "(-"+s.Expr()+")")
}

// Abs returns the absolute value of the series.
func (s *Series) Abs() *Series {
	return s.derived(s.column, "ABS("+s.Expr()+")")
}

// As renames the derived series.
func (s *Series) As(name string) *Series {
	return s.derived(name, s.Expr())
}

// ===========================================================================
//
//	集約
//
// ===========================================================================

func (s *Series) aggregate(fn string) (float64, error) {
	d := s.frame.idadb.Dialect()
	query := fmt.Sprintf("SELECT %s FROM (%s)%s",
		fn, s.frame.state.getState(d), countAlias(d))
	v, err := s.frame.idadb.ScalarQuery(query)
	if err != nil {
		return 0, err
	}
	return toFloat(v)
}

// Count returns the number of non-NULL values.
func (s *Series) Count() (int, error) {
	f, err := s.aggregate("COUNT(" + quoteIdent(s.column) + ")")
	return int(f), err
}

// Sum returns the sum of the series.
func (s *Series) Sum() (float64, error) {
	return s.aggregate("SUM(" + quoteIdent(s.column) + ")")
}

// Mean returns the average of the series.
func (s *Series) Mean() (float64, error) {
	return s.aggregate("AVG(CAST(" + quoteIdent(s.column) + " AS FLOAT))")
}

// Min returns the smallest value of the series.
func (s *Series) Min() (float64, error) {
	return s.aggregate("MIN(" + quoteIdent(s.column) + ")")
}

// Max returns the largest value of the series.
func (s *Series) Max() (float64, error) {
	return s.aggregate("MAX(" + quoteIdent(s.column) + ")")
}

package ida

// Predicate is a WHERE fragment built from series comparisons.
// Predicates combine with And/Or/Xor and are applied with DataFrame.Filter.
//
//	pred := sepal.Gt(5.0).And(species.Eq("setosa"))
//	filtered, err := df.Filter(pred)
type Predicate struct {
	whereClause string
	columns     []string
}

// Clause returns the rendered WHERE fragment.
func (p *Predicate) Clause() string { return p.whereClause }

func newComparison(column string, op string, value interface{}) *Predicate {
	return &Predicate{
		whereClause: "(" + quoteIdent(column) + " " + op + " " + formatLiteral(value) + ")",
		columns:     []string{column},
	}
}

func combine(a, b *Predicate, op string) *Predicate {
	cols := append(append([]string(nil), a.columns...), b.columns...)
	return &Predicate{
		whereClause: "(" + a.whereClause + " " + op + " " + b.whereClause + ")",
		columns:     cols,
	}
}

// And requires both predicates to hold.
func (p *Predicate) And(other *Predicate) *Predicate { return combine(p, other, "AND") }

// Or requires at least one predicate to hold.
func (p *Predicate) Or(other *Predicate) *Predicate { return combine(p, other, "OR") }

// Xor requires exactly one predicate to hold.
func (p *Predicate) Xor(other *Predicate) *Predicate {
	cols := append(append([]string(nil), p.columns...), other.columns...)
	a, b := p.whereClause, other.whereClause
	return &Predicate{
		whereClause: "((" + a + " AND NOT " + b + ") OR (NOT " + a + " AND " + b + "))",
		columns:     cols,
	}
}

// Not negates the predicate.
func (p *Predicate) Not() *Predicate {
	return &Predicate{
		whereClause: "(NOT " + p.whereClause + ")",
		columns:     append([]string(nil), p.columns...),
	}
}

// IsIn matches rows whose column value is one of the given values.
func IsIn(column string, values ...interface{}) *Predicate {
	return &Predicate{
		whereClause: "(" + quoteIdent(column) + " IN (" + formatLiteralList(values) + "))",
		columns:     []string{column},
	}
}

// IsNull matches rows whose column value is NULL.
func IsNull(column string) *Predicate {
	return &Predicate{
		whereClause: "(" + quoteIdent(column) + " IS NULL)",
		columns:     []string{column},
	}
}

// NotNull matches rows whose column value is not NULL.
func NotNull(column string) *Predicate {
	return &Predicate{
		whereClause: "(" + quoteIdent(column) + " IS NOT NULL)",
		columns:     []string{column},
	}
}

// Like matches rows whose column value matches a SQL LIKE pattern.
func Like(column, pattern string) *Predicate {
	return &Predicate{
		whereClause: "(" + quoteIdent(column) + " LIKE '" + escapeLiteral(pattern) + "')",
		columns:     []string{column},
	}
}

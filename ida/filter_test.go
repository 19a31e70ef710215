package ida

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicateClauses(t *testing.T) {
	tests := []struct {
		name string
		pred *Predicate
		want string
	}{
		{"comparison", newComparison("A", ">", 5), `("A" > 5)`},
		{"string literal", newComparison("NAME", "=", "O'Brien"), `("NAME" = 'O''Brien')`},
		{"is in", IsIn("A", 1, 2, 3), `("A" IN (1, 2, 3))`},
		{"is null", IsNull("A"), `("A" IS NULL)`},
		{"not null", NotNull("A"), `("A" IS NOT NULL)`},
		{"like", Like("NAME", "ab%"), `("NAME" LIKE 'ab%')`},
		{
			"and",
			newComparison("A", ">", 1).And(newComparison("B", "<", 2)),
			`(("A" > 1) AND ("B" < 2))`,
		},
		{
			"or",
			newComparison("A", ">", 1).Or(newComparison("B", "<", 2)),
			`(("A" > 1) OR ("B" < 2))`,
		},
		{"not", newComparison("A", ">", 1).Not(), `(NOT ("A" > 1))`},
		{
			"xor",
			newComparison("A", ">", 1).Xor(newComparison("B", "<", 2)),
			`((("A" > 1) AND NOT ("B" < 2)) OR (NOT ("A" > 1) AND ("B" < 2)))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Clause())
		})
	}
}

func TestPredicateTracksColumns(t *testing.T) {
	p := newComparison("A", ">", 1).And(IsIn("B", 1).Or(IsNull("C")))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, p.columns)
}

package ida

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"COL"`, quoteIdent("COL"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "abc", "'abc'"},
		{"string with quote", "O'Brien", "'O''Brien'"},
		{"bool true", true, "TRUE"},
		{"bool false", false, "FALSE"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float64", 2.5, "2.5"},
		{"float64 integral", 3.0, "3"},
		{"time", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), "'2024-05-01 12:30:00'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLiteral(tt.in))
		})
	}
}

func TestFormatLiteralList(t *testing.T) {
	got := formatLiteralList([]interface{}{1, "a", nil})
	assert.Equal(t, "1, 'a', NULL", got)
}

func TestNestQuery(t *testing.T) {
	got := nestQuery("SELECT * FROM "+relationMark+" WHERE A LIKE '10%s%'", `"T1"`)
	// リテラル中の%や%sが展開されてはならない
	assert.Equal(t, `SELECT * FROM "T1" WHERE A LIKE '10%s%'`, got)
}

func TestIsNumericType(t *testing.T) {
	for _, typ := range []string{"INTEGER", "bigint", "DOUBLE PRECISION", "NUMERIC(10,2)", "REAL"} {
		assert.True(t, isNumericType(typ), typ)
	}
	for _, typ := range []string{"VARCHAR(255)", "TEXT", "DATE", "ST_GEOMETRY(4)"} {
		assert.False(t, isNumericType(typ), typ)
	}
}

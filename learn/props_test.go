package learn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsString(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Params
		want  string
	}{
		{
			name: "insertion order is preserved",
			build: func() *Params {
				return NewParams().Set("model", "M1").Set("intable", "T1").Set("k", 3)
			},
			want: "model=M1,intable=T1,k=3",
		},
		{
			name: "nil and empty values are skipped",
			build: func() *Params {
				return NewParams().
					Set("id", "ID").
					Set("target", "").
					Set("incolumn", []string(nil)).
					Set("coldeftype", nil)
			},
			want: "id=ID",
		},
		{
			name: "list values joined with semicolon",
			build: func() *Params {
				return NewParams().Set("incolumn", []string{`"A"`, `"B":nom`, `"C"`})
			},
			want: `incolumn="A";"B":nom;"C"`,
		},
		{
			name: "booleans and floats",
			build: func() *Params {
				return NewParams().Set("idbased", false).Set("fraction", 0.25).Set("stand", true)
			},
			want: "idbased=false,fraction=0.25,stand=true",
		},
		{
			name: "overwriting a key keeps its position",
			build: func() *Params {
				return NewParams().Set("a", 1).Set("b", 2).Set("a", 9)
			},
			want: "a=9,b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().String())
		})
	}
}

func TestParamsMap(t *testing.T) {
	p := NewParams().Set("model", "M1").Set("k", 3).Set("fraction", 0.25)
	m := p.Map()
	assert.Equal(t, map[string]interface{}{"model": "M1", "k": 3, "fraction": 0.25}, m)

	// 返り値の変更は元のパラメータ列に影響しない
	m["k"] = 99
	v, _ := p.Get("k")
	assert.Equal(t, 3, v)
}

func TestQuoteColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"AGE", `"AGE"`},
		{`"AGE"`, `"AGE"`},
		{"AGE:nom", `"AGE":nom`},
		{"lower", `"lower"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteColumn(tt.in), "QuoteColumn(%q)", tt.in)
	}
}

func TestQuoteColumns(t *testing.T) {
	assert.Nil(t, QuoteColumns(nil))
	assert.Equal(t, []string{`"A"`, `"B":cont`}, QuoteColumns([]string{"A", "B:cont"}))
}

package ida

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "netezza"},
		{"netezza", "netezza"},
		{"NZGO", "netezza"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
	}
	for _, tt := range tests {
		d, err := DialectByName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.Name(), tt.in)
	}

	_, err := DialectByName("oracle")
	assert.Error(t, err)
}

func TestNetezzaDialect(t *testing.T) {
	d := NetezzaDialect{}

	assert.Equal(t, "nzgo", d.DefaultDriver())
	assert.True(t, d.SupportsProcedures())
	assert.Equal(t, " as t2 ", d.SubqueryAlias(2))
	assert.Equal(t, `VARIANCE("X")`, d.SampleVarianceExpr(`"X"`))
	assert.Equal(t, `CORR("X", "Y")`, d.CorrExpr(`"X"`, `"Y"`))

	q := d.TablesQuery("ADMIN")
	assert.Contains(t, q, "_V_OBJECTS")
	assert.Contains(t, q, "SCHEMA = 'ADMIN'")

	q = d.ColumnsQuery("", "T1")
	assert.Contains(t, q, "_V_RELATION_COLUMN")
	assert.Contains(t, q, "ORDER BY ATTNUM")
}

func TestSQLiteDialect(t *testing.T) {
	d := SQLiteDialect{}

	assert.Equal(t, "sqlite", d.DefaultDriver())
	assert.False(t, d.SupportsProcedures())
	assert.Equal(t, "", d.SubqueryAlias(1))
	assert.Contains(t, d.TablesQuery(""), "sqlite_master")
	assert.Contains(t, d.CorrExpr(`"X"`, `"Y"`), "SQRT")
}

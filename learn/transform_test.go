package learn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/idago/ida"
)

func transformFrame(t *testing.T, idadb *ida.DataBase) *ida.DataFrame {
	t.Helper()
	require.NoError(t, idadb.Exec(`CREATE TABLE SENSORS ("ID" INTEGER, "TEMP" DOUBLE, "HUM" DOUBLE)`))
	rows := []string{`(1, 20.5, 60)`, `(2, 22.0, 65)`, `(3, 19.5, 70)`, `(4, 25.0, 55)`}
	for _, r := range rows {
		require.NoError(t, idadb.Exec(`INSERT INTO SENSORS VALUES `+r))
	}
	df, err := ida.OpenDataFrame(idadb, "SENSORS")
	require.NoError(t, err)
	return df
}

func TestDiscretizationWiring(t *testing.T) {
	tests := []struct {
		name string
		disc *Discretization
		proc string
		bins int
	}{
		{"equal width", NewEWDisc(nil, 5), "EWDISC", 5},
		{"equal width default bins", NewEWDisc(nil, 0), "EWDISC", 10},
		{"equal frequency", NewEFDisc(nil, 8, 0.5), "EFDISC", 8},
		{"equal frequency defaults", NewEFDisc(nil, 0, 0), "EFDISC", 10},
		{"entropy minimal", NewEMDisc(nil, "CLASS"), "EMDISC", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.proc, tt.disc.proc)
			assert.Equal(t, tt.bins, tt.disc.bins)
		})
	}
	assert.Equal(t, 0.1, NewEFDisc(nil, 0, 0).binPrecision)
	assert.Equal(t, "CLASS", NewEMDisc(nil, "CLASS").target)
}

func TestDiscretizationFitValidation(t *testing.T) {
	d := NewEWDisc(nil, 10)
	_, err := d.Fit(context.Background(), nil, "")
	assert.Error(t, err)

	idadb := testDB(t)
	df := transformFrame(t, idadb)
	em := NewEMDisc(idadb, "")
	_, err = em.Fit(context.Background(), df, "")
	assert.Error(t, err)
}

func TestDiscretizationRequiresProcedureSupport(t *testing.T) {
	idadb := testDB(t)
	df := transformFrame(t, idadb)

	// SQLiteはプロシージャ呼び出しを持たない
	d := NewEWDisc(idadb, 10)
	_, err := d.Fit(context.Background(), df, "BIN_LIMITS")
	assert.Error(t, err)

	_, err = d.Apply(context.Background(), df, df, false, "DISC_OUT")
	assert.Error(t, err)
}

func TestStdNormRequiresID(t *testing.T) {
	idadb := testDB(t)
	df := transformFrame(t, idadb)

	_, err := StdNorm(context.Background(), df, StdNormOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID column")
}

func TestStdNormUsesIndexer(t *testing.T) {
	idadb := testDB(t)
	df := transformFrame(t, idadb)
	require.NoError(t, df.SetIndexer("ID"))

	// SQLiteはプロシージャ呼び出しを持たないので、ID検証を抜けた後の
	// 呼び出し段階で失敗する
	_, err := StdNorm(context.Background(), df, StdNormOptions{OutTable: "NORM_OUT"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "ID column")
}

func TestImputeDataDefaults(t *testing.T) {
	idadb := testDB(t)
	df := transformFrame(t, idadb)

	_, err := ImputeData(context.Background(), df, ImputeOptions{Method: "replace"})
	assert.Error(t, err)

	_, err = ImputeData(context.Background(), nil, ImputeOptions{})
	assert.Error(t, err)
}

func TestRandomSampleValidation(t *testing.T) {
	idadb := testDB(t)
	df := transformFrame(t, idadb)

	_, err := RandomSample(context.Background(), df, SampleOptions{})
	require.Error(t, err)

	_, err = RandomSample(context.Background(), df, SampleOptions{Size: 2, Fraction: 0.5})
	require.Error(t, err)

	seed := 42
	_, err = RandomSample(context.Background(), df, SampleOptions{Size: 2, RandSeed: &seed, OutTable: "SAMPLE_OUT"})
	assert.Error(t, err) // SQLiteではプロシージャ呼び出し自体が失敗する
}

package featsel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/idago/ida"
)

func testFrame(t *testing.T) *ida.DataFrame {
	t.Helper()
	idadb, err := ida.Connect(ida.Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "featsel_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })

	require.NoError(t, idadb.Exec(
		`CREATE TABLE WEATHER ("OUTLOOK" VARCHAR(16), "PLAY" VARCHAR(8), "TEMP" INTEGER, "HUM" INTEGER)`))
	rows := []string{
		`('sunny', 'no', 30, 60)`, `('sunny', 'no', 28, 65)`,
		`('rain', 'yes', 20, 80)`, `('rain', 'yes', 18, 85)`,
		`('overcast', 'yes', 22, 70)`, `('overcast', 'no', 24, 75)`,
		`('rain', 'yes', 19, 90)`, `('sunny', 'no', 29, 55)`,
	}
	for _, r := range rows {
		require.NoError(t, idadb.Exec(`INSERT INTO WEATHER VALUES `+r))
	}

	df, err := ida.OpenDataFrame(idadb, "WEATHER")
	require.NoError(t, err)
	return df
}

const delta = 1e-9

func TestEntropy(t *testing.T) {
	df := testFrame(t)

	res, err := Entropy(context.Background(), df, "OUTLOOK", "PLAY")
	require.NoError(t, err)

	require.Len(t, res, 2)
	assert.InDelta(t, 1.5612781244591325, res["OUTLOOK"], delta)
	assert.InDelta(t, 1.0, res["PLAY"], delta)
}

func TestEntropyAllColumns(t *testing.T) {
	df := testFrame(t)

	res, err := Entropy(context.Background(), df)
	require.NoError(t, err)

	// 列指定なしは全列を対象にする
	assert.Len(t, res, 4)
	assert.InDelta(t, 1.0, res["PLAY"], delta)
}

func TestEntropyUnknownColumn(t *testing.T) {
	df := testFrame(t)

	_, err := Entropy(context.Background(), df, "NOPE")
	assert.Error(t, err)
}

func TestInfoGain(t *testing.T) {
	df := testFrame(t)

	res, err := InfoGain(context.Background(), df, "PLAY", "OUTLOOK")
	require.NoError(t, err)

	assert.InDelta(t, 0.75, res["OUTLOOK"], delta)
}

func TestGainRatio(t *testing.T) {
	df := testFrame(t)

	res, err := GainRatio(context.Background(), df, "PLAY", false, "OUTLOOK")
	require.NoError(t, err)
	assert.InDelta(t, 0.480375653927656, res["OUTLOOK"], delta)

	sym, err := GainRatio(context.Background(), df, "PLAY", true, "OUTLOOK")
	require.NoError(t, err)
	assert.InDelta(t, 0.29282255325488254, sym["OUTLOOK"], delta)
}

func TestSymmetricUncertainty(t *testing.T) {
	df := testFrame(t)

	res, err := SymmetricUncertainty(context.Background(), df, "PLAY", "OUTLOOK")
	require.NoError(t, err)

	assert.InDelta(t, 0.5856451065097651, res["OUTLOOK"], delta)
}

func TestGini(t *testing.T) {
	df := testFrame(t)

	res, err := Gini(context.Background(), df, "OUTLOOK", "PLAY")
	require.NoError(t, err)

	assert.InDelta(t, 0.65625, res["OUTLOOK"], delta)
	assert.InDelta(t, 0.5, res["PLAY"], delta)
}

func TestGiniPairwise(t *testing.T) {
	df := testFrame(t)

	res, err := GiniPairwise(context.Background(), df, "PLAY", "OUTLOOK")
	require.NoError(t, err)

	assert.InDelta(t, 0.125, res["OUTLOOK"], delta)
}

func TestChiSquared(t *testing.T) {
	df := testFrame(t)

	res, err := ChiSquared(context.Background(), df, "PLAY", "OUTLOOK")
	require.NoError(t, err)

	assert.InDelta(t, 3.0, res["OUTLOOK"], delta)
}

func TestPearson(t *testing.T) {
	df := testFrame(t)

	res, err := Pearson(context.Background(), df, "HUM", "TEMP")
	require.NoError(t, err)

	assert.InDelta(t, -0.9344340771802022, res["TEMP"], delta)
}

func TestPearsonNoNumericFeature(t *testing.T) {
	df := testFrame(t)

	_, err := Pearson(context.Background(), df, "HUM", "OUTLOOK")
	assert.Error(t, err)
}

func TestSpearman(t *testing.T) {
	df := testFrame(t)

	res, err := Spearman(context.Background(), df, "HUM", "TEMP")
	require.NoError(t, err)

	assert.InDelta(t, -0.9285714285714286, res["TEMP"], delta)
}

func TestTStats(t *testing.T) {
	df := testFrame(t)

	res, err := TStats(context.Background(), df, "PLAY", "TEMP", "HUM")
	require.NoError(t, err)

	assert.InDelta(t, 2.945838777274635, res["TEMP"], delta)
	assert.InDelta(t, 1.673320053068151, res["HUM"], delta)
}

func TestTStatsDefaultsToNumericColumns(t *testing.T) {
	df := testFrame(t)

	res, err := TStats(context.Background(), df, "PLAY")
	require.NoError(t, err)

	// 特徴量指定なしは数値列に制限される
	require.Len(t, res, 2)
	assert.Contains(t, res, "TEMP")
	assert.Contains(t, res, "HUM")
}

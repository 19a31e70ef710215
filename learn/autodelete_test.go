package learn

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/idago/ida"
)

func testDB(t *testing.T) *ida.DataBase {
	t.Helper()
	idadb, err := ida.Connect(ida.Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "learn_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })
	return idadb
}

func TestAutoDeleteContextDropsTables(t *testing.T) {
	idadb := testDB(t)

	require.NoError(t, idadb.Exec(`CREATE TABLE SCRATCH_A (ID INTEGER)`))
	require.NoError(t, idadb.Exec(`CREATE TABLE SCRATCH_B (ID INTEGER)`))

	adc := NewAutoDeleteContext(idadb)
	adc.Add("SCRATCH_A")
	adc.Add("SCRATCH_B")
	adc.Add("NEVER_CREATED") // 存在しないテーブルは無視される

	require.NoError(t, adc.Close())

	for _, name := range []string{"SCRATCH_A", "SCRATCH_B"} {
		exists, err := idadb.ExistsTable(name)
		require.NoError(t, err)
		assert.False(t, exists, "%s should have been dropped", name)
	}
}

func TestAutoDeleteContextCloseIsIdempotent(t *testing.T) {
	idadb := testDB(t)

	require.NoError(t, idadb.Exec(`CREATE TABLE SCRATCH_C (ID INTEGER)`))

	adc := NewAutoDeleteContext(idadb)
	adc.Add("SCRATCH_C")
	require.NoError(t, adc.Close())
	require.NoError(t, adc.Close())
}

func TestResolveOutTableGeneratesAndRegisters(t *testing.T) {
	idadb := testDB(t)

	adc := NewAutoDeleteContext(idadb)
	ctx := WithAutoDelete(context.Background(), adc)

	name, err := resolveOutTable(ctx, idadb, "", "OutTable")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "DATA_FRAME_"), "generated name %q", name)

	adc.mu.Lock()
	_, registered := adc.tables[name]
	adc.mu.Unlock()
	assert.True(t, registered, "generated table should be registered for deletion")
}

func TestResolveOutTableDropsExisting(t *testing.T) {
	idadb := testDB(t)

	require.NoError(t, idadb.Exec(`CREATE TABLE PRED_OUT (ID INTEGER)`))

	name, err := resolveOutTable(context.Background(), idadb, "PRED_OUT", "OutTable")
	require.NoError(t, err)
	assert.Equal(t, "PRED_OUT", name)

	exists, err := idadb.ExistsTable("PRED_OUT")
	require.NoError(t, err)
	assert.False(t, exists, "pre-existing output table should be dropped")
}

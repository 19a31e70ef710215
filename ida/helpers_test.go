package ida

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *DataBase {
	t.Helper()
	idadb, err := Connect(Config{
		Driver:     "sqlite",
		Dialect:    "sqlite",
		DataSource: filepath.Join(t.TempDir(), "ida_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idadb.Close() })
	return idadb
}

// weatherFrame uploads a small fixture table and opens it with ID as indexer.
//
//	ID  TEMP  CITY
//	0   10.0  tokyo
//	1   12.5  tokyo
//	2   20.0  osaka
//	3   22.5  osaka
//	4   30.0  naha
func weatherFrame(t *testing.T, idadb *DataBase) *DataFrame {
	t.Helper()
	rf := &ResultFrame{
		Columns: []string{"ID", "TEMP", "CITY"},
		Data: [][]interface{}{
			{int64(0), 10.0, "tokyo"},
			{int64(1), 12.5, "tokyo"},
			{int64(2), 20.0, "osaka"},
			{int64(3), 22.5, "osaka"},
			{int64(4), 30.0, "naha"},
		},
	}
	df, err := idadb.AsDataFrame(rf, "WEATHER", UploadOptions{Clear: true, Indexer: "ID"})
	require.NoError(t, err)
	return df
}

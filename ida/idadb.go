package ida

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	// Registers the "nzgo" driver used by the default Netezza dialect.
	_ "github.com/IBM/nzgo/v12"
	"github.com/google/uuid"

	"github.com/YuminosukeSato/idago/pkg/errors"
	idalog "github.com/YuminosukeSato/idago/pkg/log"
)

// Config describes how to reach a database.
type Config struct {
	// Driver is the database/sql driver name. Empty selects the
	// dialect's default ("nzgo" for Netezza).
	Driver string

	// DataSource is the driver-specific DSN, e.g.
	// "port=5480 host=npshost dbname=DB user=admin password=pw".
	DataSource string

	// Dialect selects the SQL dialect: "netezza" (default) or "sqlite".
	Dialect string

	// Autocommit controls whether each statement is committed
	// immediately. Nil means true, matching the engine default.
	Autocommit *bool

	// Verbose enables debug logging of every executed statement.
	Verbose bool

	// Logger receives the connection's structured log output.
	// Nil uses the process-wide default configured by log.SetupLogger.
	Logger idalog.Logger
}

func (c Config) autocommit() bool {
	return c.Autocommit == nil || *c.Autocommit
}

// DataBase is a connection handle to the analytics database.
// It owns session control, catalog access and the administrative DDL used
// by frames and estimators. All methods are safe for concurrent use.
type DataBase struct {
	mu       sync.Mutex
	db       *sql.DB
	tx       *sql.Tx // non-nil only when autocommit is off
	cfg      Config
	dialect  Dialect
	closed   bool
	logger   idalog.Logger
	tabCache *ResultFrame // cached ShowTables(true) result
}

// Connect opens a connection described by cfg and verifies it with a ping.
func Connect(cfg Config) (*DataBase, error) {
	return ConnectContext(context.Background(), cfg)
}

// ConnectContext is Connect with an explicit context for the initial ping.
func ConnectContext(ctx context.Context, cfg Config) (*DataBase, error) {
	dialect, err := DialectByName(cfg.Dialect)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	driver := cfg.Driver
	if driver == "" {
		driver = dialect.DefaultDriver()
	}

	db, err := sql.Open(driver, cfg.DataSource)
	if err != nil {
		return nil, errors.NewQueryError("Connect", "", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewQueryError("Connect", "", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = idalog.GetLogger()
	}
	idadb := &DataBase{
		db:      db,
		cfg:     cfg,
		dialect: dialect,
		logger: logger.With(
			idalog.DialectKey, dialect.Name(),
			idalog.AutoCommitKey, cfg.autocommit(),
		),
	}
	if !cfg.autocommit() {
		if err := idadb.beginLocked(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	idadb.logger.Info("connected")
	return idadb, nil
}

// Dialect returns the SQL dialect of the connection.
func (idadb *DataBase) Dialect() Dialect {
	return idadb.dialect
}

// Logger returns the structured logger bound to this connection.
func (idadb *DataBase) Logger() idalog.Logger {
	return idadb.logger
}

// Autocommit reports whether statements are committed immediately.
func (idadb *DataBase) Autocommit() bool {
	return idadb.cfg.autocommit()
}

func (idadb *DataBase) beginLocked(ctx context.Context) error {
	tx, err := idadb.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewQueryError("Begin", "", err)
	}
	idadb.tx = tx
	return nil
}

// executor はtxの有無を吸収する
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (idadb *DataBase) execer() (executor, error) {
	if idadb.closed {
		return nil, errors.WithStack(errors.ErrClosed)
	}
	if idadb.tx != nil {
		return idadb.tx, nil
	}
	return idadb.db, nil
}

// Commit commits the open transaction. It is a no-op when autocommit is on.
func (idadb *DataBase) Commit() error {
	idadb.mu.Lock()
	defer idadb.mu.Unlock()
	if idadb.tx == nil {
		return nil
	}
	if err := idadb.tx.Commit(); err != nil {
		return errors.NewQueryError("Commit", "", err)
	}
	idadb.tx = nil
	return idadb.beginLocked(context.Background())
}

// Rollback discards all uncommitted changes. No-op when autocommit is on.
func (idadb *DataBase) Rollback() error {
	idadb.mu.Lock()
	defer idadb.mu.Unlock()
	if idadb.tx == nil {
		return nil
	}
	if err := idadb.tx.Rollback(); err != nil {
		return errors.NewQueryError("Rollback", "", err)
	}
	idadb.tx = nil
	return idadb.beginLocked(context.Background())
}

// Close releases the connection. Uncommitted changes are rolled back.
func (idadb *DataBase) Close() error {
	idadb.mu.Lock()
	defer idadb.mu.Unlock()
	if idadb.closed {
		return nil
	}
	if idadb.tx != nil {
		_ = idadb.tx.Rollback()
		idadb.tx = nil
	}
	idadb.closed = true
	if err := idadb.db.Close(); err != nil {
		return errors.NewQueryError("Close", "", err)
	}
	idadb.logger.Info("connection closed")
	return nil
}

// Reconnect re-opens the connection with the original configuration.
func (idadb *DataBase) Reconnect() error {
	idadb.mu.Lock()
	defer idadb.mu.Unlock()
	if !idadb.closed {
		if idadb.tx != nil {
			_ = idadb.tx.Rollback()
			idadb.tx = nil
		}
		_ = idadb.db.Close()
	}
	driver := idadb.cfg.Driver
	if driver == "" {
		driver = idadb.dialect.DefaultDriver()
	}
	db, err := sql.Open(driver, idadb.cfg.DataSource)
	if err != nil {
		return errors.NewQueryError("Reconnect", "", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return errors.NewQueryError("Reconnect", "", err)
	}
	idadb.db = db
	idadb.closed = false
	idadb.tabCache = nil
	if !idadb.cfg.autocommit() {
		if err := idadb.beginLocked(context.Background()); err != nil {
			return err
		}
	}
	idadb.logger.Info("reconnected")
	return nil
}

// CurrentSchema returns the session's current schema.
func (idadb *DataBase) CurrentSchema() (string, error) {
	v, err := idadb.ScalarQuery(idadb.dialect.CurrentSchemaQuery())
	if err != nil {
		return "", err
	}
	return cellString(v), nil
}

// ===========================================================================
//
//	クエリ実行
//
// ===========================================================================

// Query executes a SELECT statement and fetches the full result set.
func (idadb *DataBase) Query(query string) (*ResultFrame, error) {
	return idadb.QueryContext(context.Background(), query)
}

// QueryContext executes a SELECT statement and fetches the full result set.
func (idadb *DataBase) QueryContext(ctx context.Context, query string) (rf *ResultFrame, err error) {
	defer errors.Recover(&err, "Query")

	idadb.mu.Lock()
	exec, err := idadb.execer()
	idadb.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if idadb.cfg.Verbose {
		idadb.logger.Debug("executing statement", idalog.QueryKey, query)
	}

	start := time.Now()
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewQueryError("Query", query, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.NewQueryError("Query", query, err)
	}

	rf = &ResultFrame{Columns: cols}
	for rows.Next() {
		cells := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.NewQueryError("Query", query, err)
		}
		// []byteは再利用されるため文字列に退避する
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		rf.Data = append(rf.Data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryError("Query", query, err)
	}
	rf.ExecutionTime = time.Since(start)

	if idadb.cfg.Verbose {
		idadb.logger.Debug("query executed",
			idalog.RowsKey, len(rf.Data),
			idalog.DurationMsKey, rf.ExecutionTime.Milliseconds(),
		)
	}
	return rf, nil
}

// ScalarQuery executes a statement expected to yield a single cell.
func (idadb *DataBase) ScalarQuery(query string) (interface{}, error) {
	return idadb.ScalarQueryContext(context.Background(), query)
}

// ScalarQueryContext executes a statement expected to yield a single cell.
func (idadb *DataBase) ScalarQueryContext(ctx context.Context, query string) (interface{}, error) {
	rf, err := idadb.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return rf.Scalar()
}

// Exec executes a DDL or DML statement.
func (idadb *DataBase) Exec(query string) error {
	return idadb.ExecContext(context.Background(), query)
}

// ExecContext executes a DDL or DML statement.
func (idadb *DataBase) ExecContext(ctx context.Context, query string) error {
	idadb.mu.Lock()
	exec, err := idadb.execer()
	idadb.mu.Unlock()
	if err != nil {
		return err
	}
	if idadb.cfg.Verbose {
		idadb.logger.Debug("executing statement", idalog.QueryKey, query)
	}
	if _, err := exec.ExecContext(ctx, query); err != nil {
		return errors.NewQueryError("Exec", query, err)
	}
	return nil
}

// CallProcedure executes a stored procedure of the analytics cartridge,
// e.g. CallProcedure(ctx, "NZA..KMEANS", "model=M1,intable=T,k=3").
// The fetched result set, if any, is returned.
func (idadb *DataBase) CallProcedure(ctx context.Context, name, params string) (*ResultFrame, error) {
	if !idadb.dialect.SupportsProcedures() {
		return nil, errors.Wrapf(errors.ErrNotSupported,
			"idago: CallProcedure %s on dialect %s", name, idadb.dialect.Name())
	}
	query := fmt.Sprintf("CALL %s('%s')", name, escapeLiteral(params))
	idadb.logger.Info("calling procedure",
		idalog.ProcedureKey, name,
		idalog.ParamsKey, params,
	)
	return idadb.QueryContext(ctx, query)
}

// ===========================================================================
//
//	カタログ
//
// ===========================================================================

// ShowTables lists tables and views visible to the session.
// With showAll the listing covers every schema and is cached until the next
// DDL issued through this handle.
func (idadb *DataBase) ShowTables(showAll bool) (*ResultFrame, error) {
	if showAll {
		idadb.mu.Lock()
		cached := idadb.tabCache
		idadb.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
		rf, err := idadb.Query(idadb.dialect.TablesQuery(""))
		if err != nil {
			return nil, err
		}
		idadb.mu.Lock()
		idadb.tabCache = rf
		idadb.mu.Unlock()
		return rf, nil
	}
	schema, err := idadb.CurrentSchema()
	if err != nil {
		return nil, err
	}
	return idadb.Query(idadb.dialect.TablesQuery(schema))
}

// invalidateCache drops the catalog cache after DDL.
func (idadb *DataBase) invalidateCache() {
	idadb.mu.Lock()
	idadb.tabCache = nil
	idadb.mu.Unlock()
}

// ShowModels lists the models stored in the database.
func (idadb *DataBase) ShowModels() (*ResultFrame, error) {
	if !idadb.dialect.SupportsProcedures() {
		return nil, errors.Wrap(errors.ErrNotSupported, "idago: ShowModels")
	}
	return idadb.Query("SELECT * FROM INZA.V_NZA_MODELS")
}

// TableColumns returns column names and type names of a table, in order.
func (idadb *DataBase) TableColumns(table string) (names, types []string, err error) {
	schema, name := splitQualified(table)
	rf, err := idadb.Query(idadb.dialect.ColumnsQuery(schema, name))
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rf.Data {
		names = append(names, cellString(row[0]))
		types = append(types, cellString(row[1]))
	}
	if len(names) == 0 {
		return nil, nil, errors.NewDataBaseError("TableColumns",
			fmt.Sprintf("table %q not found", table))
	}
	return names, types, nil
}

func splitQualified(name string) (schema, table string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// objectType returns 'T', 'V' or "" for a table-or-view name.
func (idadb *DataBase) objectType(name string) (string, error) {
	schema, table := splitQualified(name)
	rf, err := idadb.Query(idadb.dialect.TablesQuery(schema))
	if err != nil {
		return "", err
	}
	nameIdx := rf.ColumnIndex("TABNAME")
	typeIdx := rf.ColumnIndex("TYPE")
	for _, row := range rf.Data {
		if strings.EqualFold(cellString(row[nameIdx]), table) {
			return cellString(row[typeIdx]), nil
		}
	}
	return "", nil
}

// ExistsTable reports whether a table with the given name exists.
func (idadb *DataBase) ExistsTable(name string) (bool, error) {
	t, err := idadb.objectType(name)
	return t == "T", err
}

// ExistsView reports whether a view with the given name exists.
func (idadb *DataBase) ExistsView(name string) (bool, error) {
	t, err := idadb.objectType(name)
	return t == "V", err
}

// ExistsTableOrView reports whether a table or view with the name exists.
func (idadb *DataBase) ExistsTableOrView(name string) (bool, error) {
	t, err := idadb.objectType(name)
	return t != "", err
}

// ExistsModel reports whether a model with the given name is stored.
func (idadb *DataBase) ExistsModel(name string) (bool, error) {
	if !idadb.dialect.SupportsProcedures() {
		return false, nil
	}
	v, err := idadb.ScalarQuery(fmt.Sprintf(
		"SELECT COUNT(*) FROM INZA.V_NZA_MODELS WHERE MODELNAME = '%s'",
		escapeLiteral(name)))
	if err != nil {
		return false, err
	}
	f, err := toFloat(v)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return f > 0, nil
}

// IsTable returns an error when name does not denote a table.
func (idadb *DataBase) IsTable(name string) error {
	ok, err := idadb.ExistsTable(name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewDataBaseError("IsTable", fmt.Sprintf("%q is not a table", name))
	}
	return nil
}

// IsView returns an error when name does not denote a view.
func (idadb *DataBase) IsView(name string) error {
	ok, err := idadb.ExistsView(name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewDataBaseError("IsView", fmt.Sprintf("%q is not a view", name))
	}
	return nil
}

// IsModel returns an error when name does not denote a stored model.
func (idadb *DataBase) IsModel(name string) error {
	ok, err := idadb.ExistsModel(name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewDataBaseError("IsModel", fmt.Sprintf("%q is not a model", name))
	}
	return nil
}

// ===========================================================================
//
//	一時オブジェクト名
//
// ===========================================================================

func shortUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// validName generates a prefixed name verified unused in the catalog.
func (idadb *DataBase) validName(prefix string) (string, error) {
	for i := 0; i < 8; i++ {
		name := prefix + shortUUID()
		exists, err := idadb.ExistsTableOrView(name)
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
	}
	return "", errors.NewDataBaseError("validName",
		"could not generate an unused object name for prefix "+prefix)
}

// ValidTableName returns an unused table name with the DATA_FRAME_ prefix.
func (idadb *DataBase) ValidTableName() (string, error) {
	return idadb.validName("DATA_FRAME_")
}

// ValidViewName returns an unused view name with the given prefix.
func (idadb *DataBase) ValidViewName(prefix string) (string, error) {
	if prefix == "" {
		prefix = "TEMP_VIEW_"
	}
	return idadb.validName(prefix)
}

// ValidModelName returns a model name with the given prefix, verified
// unused against the stored models.
func (idadb *DataBase) ValidModelName(prefix string) (string, error) {
	if prefix == "" {
		prefix = "MODEL_"
	}
	for i := 0; i < 8; i++ {
		name := prefix + shortUUID()
		exists, err := idadb.ExistsModel(name)
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
	}
	return "", errors.NewDataBaseError("ValidModelName",
		"could not generate an unused model name for prefix "+prefix)
}

// ===========================================================================
//
//	管理系DDL
//
// ===========================================================================

// DropTable drops a table.
func (idadb *DataBase) DropTable(name string) error {
	if err := idadb.IsTable(name); err != nil {
		return err
	}
	defer idadb.invalidateCache()
	return idadb.Exec("DROP TABLE " + quoteIdent(name))
}

// DropView drops a view.
func (idadb *DataBase) DropView(name string) error {
	if err := idadb.IsView(name); err != nil {
		return err
	}
	defer idadb.invalidateCache()
	return idadb.Exec("DROP VIEW " + quoteIdent(name))
}

// DropTableIfExists drops a table or view when present, without erroring
// when it is absent.
func (idadb *DataBase) DropTableIfExists(name string) error {
	t, err := idadb.objectType(name)
	if err != nil {
		return err
	}
	switch t {
	case "T":
		defer idadb.invalidateCache()
		return idadb.Exec("DROP TABLE " + quoteIdent(name))
	case "V":
		defer idadb.invalidateCache()
		return idadb.Exec("DROP VIEW " + quoteIdent(name))
	}
	return nil
}

// DropModel removes a stored model through the analytics cartridge.
func (idadb *DataBase) DropModel(name string) error {
	if err := idadb.IsModel(name); err != nil {
		return err
	}
	_, err := idadb.CallProcedure(context.Background(), "NZA..DROP_MODEL", "model="+name)
	return err
}

// Rename renames a table.
func (idadb *DataBase) Rename(oldName, newName string) error {
	if err := idadb.IsTable(oldName); err != nil {
		return err
	}
	defer idadb.invalidateCache()
	return idadb.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quoteIdent(oldName), quoteIdent(newName)))
}

// AddColumnID adds an integer identifier column counting from 0 to a table.
// The operation is destructive: the table is rebuilt through CTAS with a
// ROW_NUMBER derived column and swapped in under the original name.
// Use DataFrame.Indexer with a derived column for the non-destructive form.
func (idadb *DataBase) AddColumnID(table, column string) error {
	if err := idadb.IsTable(table); err != nil {
		return err
	}
	names, _, err := idadb.TableColumns(table)
	if err != nil {
		return err
	}
	for _, n := range names {
		if strings.EqualFold(n, column) {
			return errors.NewPrimaryKeyError(table, column, "column already exists")
		}
	}

	tmp, err := idadb.ValidTableName()
	if err != nil {
		return err
	}
	// SQLiteは括弧付きのSELECTを受け付けない
	ctas := fmt.Sprintf(
		"CREATE TABLE %s AS SELECT (ROW_NUMBER() OVER(%s))-1 AS %s, %s FROM %s",
		quoteIdent(tmp), idadb.dialect.RowNumberOrder(), quoteIdent(column),
		joinQuoted(names), quoteIdent(table))
	if err := idadb.Exec(ctas); err != nil {
		return err
	}
	if err := idadb.Exec("DROP TABLE " + quoteIdent(table)); err != nil {
		_ = idadb.Exec("DROP TABLE " + quoteIdent(tmp))
		return err
	}
	defer idadb.invalidateCache()
	return idadb.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quoteIdent(tmp), quoteIdent(table)))
}

// DeleteColumn drops a column from a table.
func (idadb *DataBase) DeleteColumn(table, column string) error {
	if err := idadb.IsTable(table); err != nil {
		return err
	}
	defer idadb.invalidateCache()
	return idadb.Exec(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		quoteIdent(table), quoteIdent(column)))
}

// ===========================================================================
//
//	ローカルフレームのアップロード
//
// ===========================================================================

// UploadOptions controls AsDataFrame behavior.
type UploadOptions struct {
	// Clear drops an existing table with the same name first.
	Clear bool

	// ChunkSize bounds the number of rows per INSERT statement.
	// Zero selects the default of 500.
	ChunkSize int

	// Indexer optionally names the column used as frame indexer.
	Indexer string
}

// columnDDLType infers the SQL type of a column from its cells.
func columnDDLType(rf *ResultFrame, col int) string {
	sawFloat := false
	sawInt := false
	for _, row := range rf.Data {
		switch row[col].(type) {
		case nil:
			continue
		case int, int32, int64:
			sawInt = true
		case float32, float64:
			sawFloat = true
		case bool:
			sawInt = true
		default:
			return "VARCHAR(255)"
		}
	}
	if sawFloat {
		return "DOUBLE PRECISION"
	}
	if sawInt {
		return "BIGINT"
	}
	return "VARCHAR(255)"
}

// AsDataFrame uploads a local result frame as a new table and opens a
// DataFrame over it.
func (idadb *DataBase) AsDataFrame(rf *ResultFrame, tablename string, opts UploadOptions) (*DataFrame, error) {
	if rf == nil || len(rf.Columns) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 500
	}

	exists, err := idadb.ExistsTableOrView(tablename)
	if err != nil {
		return nil, err
	}
	if exists {
		if !opts.Clear {
			return nil, errors.NewDataBaseError("AsDataFrame",
				fmt.Sprintf("table %q already exists", tablename))
		}
		if err := idadb.DropTableIfExists(tablename); err != nil {
			return nil, err
		}
	}

	defs := make([]string, len(rf.Columns))
	for i, c := range rf.Columns {
		defs[i] = quoteIdent(c) + " " + columnDDLType(rf, i)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tablename), strings.Join(defs, ", "))
	if err := idadb.Exec(create); err != nil {
		return nil, err
	}
	idadb.invalidateCache()

	if err := idadb.insertChunked(tablename, rf.Columns, rf.Data, opts.ChunkSize); err != nil {
		return nil, err
	}

	idadb.logger.Info("frame uploaded",
		idalog.OperationKey, idalog.OperationUpload,
		idalog.TableKey, tablename,
		idalog.RowsKey, len(rf.Data),
	)

	df, err := OpenDataFrame(idadb, tablename)
	if err != nil {
		return nil, err
	}
	if opts.Indexer != "" {
		if err := df.SetIndexer(opts.Indexer); err != nil {
			return nil, err
		}
	}
	return df, nil
}

// Append inserts the rows of a local result frame into an existing table.
// The frame's columns must match the table's columns by name.
func (idadb *DataBase) Append(rf *ResultFrame, tablename string) error {
	if err := idadb.IsTable(tablename); err != nil {
		return err
	}
	if rf == nil || rf.Empty() {
		return errors.WithStack(errors.ErrEmptyData)
	}
	return idadb.insertChunked(tablename, rf.Columns, rf.Data, 500)
}

func (idadb *DataBase) insertChunked(table string, cols []string, rows [][]interface{}, chunk int) error {
	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}
		values := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			values = append(values, "("+formatLiteralList(row)+")")
		}
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			quoteIdent(table), joinQuoted(cols), strings.Join(values, ", "))
		if err := idadb.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

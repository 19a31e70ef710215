// Package log defines standard attribute keys for database and analytics operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations. Using these standard keys enables better log analysis,
// monitoring, and debugging of SQL-pushdown workflows.
//
// The attributes are organized into categories:
//   - Connection and Dialect Context
//   - Query Context
//   - Data Shape
//   - In-Database Modeling Context
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "db.schema",
// "query.sql") to enable structured log analysis and filtering.

package log

// Connection and Dialect Context
// These attributes identify the database connection an operation runs against.
const (
	// DialectKey identifies the SQL dialect in use.
	// Examples: "netezza", "sqlite"
	DialectKey = "db.dialect"

	// DataSourceKey identifies the data source (host or file) of the connection.
	DataSourceKey = "db.datasource"

	// SchemaKey identifies the current database schema.
	SchemaKey = "db.schema"

	// AutoCommitKey records whether autocommit is enabled on the connection.
	AutoCommitKey = "db.autocommit"
)

// Query Context
// These attributes describe the SQL statement being executed.
const (
	// QueryKey contains the SQL text being executed.
	// Long statements are truncated by the handler before emission.
	QueryKey = "query.sql"

	// OperationKey specifies the client operation that generated the SQL.
	// Standard values: "collect", "head", "tail", "describe", "fit", "predict"
	OperationKey = "query.operation"

	// TableKey identifies the table or view a statement targets.
	TableKey = "query.table"

	// ViewStackKey records the number of temporary views backing a frame.
	ViewStackKey = "query.viewstack"

	// ProcedureKey identifies a stored procedure being called.
	// Examples: "NZA..KMEANS", "NZA..PREDICT_KMEANS"
	ProcedureKey = "query.procedure"
)

// Data Shape
// These attributes describe the result set of a query.
const (
	// RowsKey indicates the number of rows fetched or affected.
	RowsKey = "data.rows"

	// ColumnsKey indicates the number of columns in the result set.
	ColumnsKey = "data.columns"

	// IndexerKey identifies the indexer column of a frame, if set.
	IndexerKey = "data.indexer"
)

// In-Database Modeling Context
// These attributes describe operations on models stored in the database.
const (
	// ModelNameKey identifies a model stored in the database.
	ModelNameKey = "model.name"

	// AlgorithmKey identifies the modeling algorithm.
	// Examples: "KMeans", "DecisionTree", "NaiveBayes", "GLM"
	AlgorithmKey = "model.algorithm"

	// ParamsKey contains the procedure parameter string passed to the engine.
	ParamsKey = "model.params"

	// ScoreKey records the result of a scoring operation.
	ScoreKey = "model.score"
)

// Performance Metrics
// These attributes capture timing information.
const (
	// DurationMsKey records the execution time of a statement in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds for longer
	// operations such as model training.
	DurationSecondsKey = "perf.duration_seconds"
)

// Error Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "NOT_FITTED", "NO_INDEXER", "TABLE_NOT_FOUND"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "DataBaseError", "DataFrameError", "ModelError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging handler.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Client operations
	OperationCollect  = "collect"
	OperationHead     = "head"
	OperationTail     = "tail"
	OperationDescribe = "describe"
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationUpload   = "upload"

	// Standard error codes
	ErrorNotFitted      = "NOT_FITTED"
	ErrorNoIndexer      = "NO_INDEXER"
	ErrorTableNotFound  = "TABLE_NOT_FOUND"
	ErrorEmptyData      = "EMPTY_DATA"
	ErrorInvalidInput   = "INVALID_INPUT"
	ErrorConnectionLost = "CONNECTION_LOST"
)

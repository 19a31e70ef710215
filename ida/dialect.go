// Package ida provides lazy, Pandas-style data frames over a remote database.
//
// A DataFrame never holds table data locally. Projections, filters, row
// selections and statistics are recorded as SQL fragments and only executed
// in the database when results are requested. The primary target engine is
// Netezza (NPS) through the nzgo driver; a SQLite dialect backs local tests.
package ida

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL surface differences between the supported
// engines: catalog queries, subquery alias rules, and the availability of
// the INZA/NZA analytics procedures.
type Dialect interface {
	// Name returns the dialect identifier, e.g. "netezza".
	Name() string

	// DefaultDriver returns the database/sql driver name used when the
	// configuration does not name one.
	DefaultDriver() string

	// TablesQuery returns the catalog query listing tables and views.
	// When schema is empty the query covers all schemas.
	// The result set has columns TABSCHEMA, TABNAME, OWNER, TYPE
	// where TYPE is 'T' for tables and 'V' for views.
	TablesQuery(schema string) string

	// ColumnsQuery returns the catalog query listing column names and
	// type names of a table, in ordinal order, as (COLNAME, TYPENAME).
	ColumnsQuery(schema, table string) string

	// CurrentSchemaQuery returns a scalar query for the session schema.
	CurrentSchemaQuery() string

	// RowNumberOrder returns the ORDER BY clause used inside
	// ROW_NUMBER() windows when no explicit order is wanted.
	RowNumberOrder() string

	// SubqueryAlias returns the alias appended to the nth nested
	// subquery when rendering a frame state.
	SubqueryAlias(n int) string

	// SampleVarianceExpr returns the aggregate expression computing the
	// sample variance of an already-quoted column reference.
	SampleVarianceExpr(col string) string

	// CorrExpr returns the aggregate expression computing the Pearson
	// correlation of two already-quoted column references.
	CorrExpr(x, y string) string

	// SupportsProcedures reports whether the INZA/NZA analytics
	// procedures are callable on this engine.
	SupportsProcedures() bool
}

// NetezzaDialect targets IBM Netezza Performance Server.
type NetezzaDialect struct{}

func (NetezzaDialect) Name() string          { return "netezza" }
func (NetezzaDialect) DefaultDriver() string { return "nzgo" }

func (NetezzaDialect) TablesQuery(schema string) string {
	q := "SELECT SCHEMA AS TABSCHEMA, OBJNAME AS TABNAME, OWNER, " +
		"CASE WHEN OBJTYPE = 'TABLE' THEN 'T' ELSE 'V' END AS TYPE " +
		"FROM _V_OBJECTS WHERE OBJTYPE IN ('TABLE', 'VIEW')"
	if schema != "" {
		q += fmt.Sprintf(" AND SCHEMA = '%s'", escapeLiteral(schema))
	}
	return q + " ORDER BY TABSCHEMA, TABNAME"
}

func (NetezzaDialect) ColumnsQuery(schema, table string) string {
	q := "SELECT ATTNAME AS COLNAME, FORMAT_TYPE AS TYPENAME " +
		"FROM _V_RELATION_COLUMN WHERE NAME = '" + escapeLiteral(table) + "'"
	if schema != "" {
		q += " AND SCHEMA = '" + escapeLiteral(schema) + "'"
	}
	return q + " ORDER BY ATTNUM"
}

func (NetezzaDialect) CurrentSchemaQuery() string {
	return "SELECT CURRENT_SCHEMA"
}

// Netezzaでは決定的でない順序の窓関数にORDER BY NULLが必要
func (NetezzaDialect) RowNumberOrder() string { return "ORDER BY NULL" }

func (NetezzaDialect) SubqueryAlias(n int) string {
	return fmt.Sprintf(" as t%d ", n)
}

// NetezzaのVARIANCEは標本補正済み
func (NetezzaDialect) SampleVarianceExpr(col string) string {
	return "VARIANCE(" + col + ")"
}

func (NetezzaDialect) CorrExpr(x, y string) string {
	return "CORR(" + x + ", " + y + ")"
}

func (NetezzaDialect) SupportsProcedures() bool { return true }

// SQLiteDialect targets SQLite through the modernc.org/sqlite driver.
// It exists so that SQL generation and the plain-SQL execution paths can be
// tested against a local database; the analytics procedures are unavailable.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string          { return "sqlite" }
func (SQLiteDialect) DefaultDriver() string { return "sqlite" }

func (SQLiteDialect) TablesQuery(schema string) string {
	return "SELECT 'main' AS TABSCHEMA, name AS TABNAME, '' AS OWNER, " +
		"CASE type WHEN 'table' THEN 'T' ELSE 'V' END AS TYPE " +
		"FROM sqlite_master WHERE type IN ('table', 'view') " +
		"AND name NOT LIKE 'sqlite_%' ORDER BY name"
}

func (SQLiteDialect) ColumnsQuery(schema, table string) string {
	return fmt.Sprintf(`SELECT name AS COLNAME, type AS TYPENAME FROM pragma_table_info('%s')`,
		escapeLiteral(table))
}

func (SQLiteDialect) CurrentSchemaQuery() string {
	return "SELECT 'main'"
}

func (SQLiteDialect) RowNumberOrder() string { return "ORDER BY (SELECT NULL)" }

func (SQLiteDialect) SubqueryAlias(n int) string { return "" }

// SQLiteにVARIANCE集約はないため積和から組み立てる
func (SQLiteDialect) SampleVarianceExpr(col string) string {
	return "((SUM(CAST(" + col + " AS FLOAT)*" + col + ") - " +
		"SUM(CAST(" + col + " AS FLOAT))*SUM(" + col + ")/COUNT(" + col + ")) / " +
		"(COUNT(" + col + ")-1))"
}

// SQLiteにCORR集約はないため積和から組み立てる
func (SQLiteDialect) CorrExpr(x, y string) string {
	a := "CAST(" + x + " AS FLOAT)"
	b := "CAST(" + y + " AS FLOAT)"
	return "((COUNT(*)*SUM(" + a + "*" + b + ") - SUM(" + a + ")*SUM(" + b + ")) / " +
		"(SQRT(COUNT(*)*SUM(" + a + "*" + a + ") - SUM(" + a + ")*SUM(" + a + ")) * " +
		"SQRT(COUNT(*)*SUM(" + b + "*" + b + ") - SUM(" + b + ")*SUM(" + b + "))))"
}

func (SQLiteDialect) SupportsProcedures() bool { return false }

// DialectByName resolves a dialect identifier to its implementation.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", "netezza", "nzgo":
		return NetezzaDialect{}, nil
	case "sqlite", "sqlite3":
		return SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("idago: unknown dialect %q", name)
	}
}

// escapeLiteral doubles single quotes for embedding in SQL string literals.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

package ida

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// quoteIdent wraps an identifier in double quotes.
// Column names are tracked internally already quoted, so expressions that
// are not plain column references must not be re-quoted.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// isQuoted reports whether expr is exactly the quoted form of name.
func isQuoted(expr, name string) bool {
	return expr == quoteIdent(name)
}

// formatLiteral renders a Go value as a SQL literal.
func formatLiteral(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + escapeLiteral(x) + "'"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return "'" + x.Format("2006-01-02 15:04:05") + "'"
	default:
		return "'" + escapeLiteral(fmt.Sprintf("%v", x)) + "'"
	}
}

// formatLiteralList renders values as a comma-separated SQL literal list.
func formatLiteralList(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatLiteral(v)
	}
	return strings.Join(parts, ", ")
}

// joinQuoted quotes each name and joins them with commas.
func joinQuoted(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = quoteIdent(n)
	}
	return strings.Join(parts, ", ")
}

// relationMark stands for the source relation inside a state fragment.
// A NUL byte can never appear in SQL text, so column expressions containing
// "%s" or other format verbs (e.g. LIKE patterns) cannot collide with it.
const relationMark = "\x00"

// nestQuery substitutes the inner query for the outer fragment's
// relation mark.
func nestQuery(outer, inner string) string {
	return strings.Replace(outer, relationMark, inner, 1)
}

// isNumericType reports whether a catalog type name denotes a numeric column.
func isNumericType(typename string) bool {
	t := strings.ToUpper(typename)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)
	switch t {
	case "SMALLINT", "INTEGER", "INT", "BIGINT", "BYTEINT", "TINYINT",
		"REAL", "FLOAT", "DOUBLE", "DOUBLE PRECISION",
		"NUMERIC", "DECIMAL", "NUMBER":
		return true
	}
	return false
}

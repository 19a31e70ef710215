package ida

import (
	"strings"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// internalState records the non-destructive modifications of a DataFrame.
//
// Modifications are stored as nested SQL select fragments. Each fragment
// contains a relation mark standing for the relation it reads from; the
// full query is rendered by nesting the fragments innermost-first onto the
// base table. Two buckets are kept:
//
//   - views: closed fragments whose relative order is fixed (filters, row
//     selections, sorts). They may not be modified afterwards.
//   - cumulative: the single open fragment for column projection and
//     derived columns, rewritten in place until an order-sensitive
//     operation closes it into views.
type internalState struct {
	// name is the quoted base relation (table, view or created temp view)
	name string

	// ordered column names and their SQL expressions.
	// Unmodified columns map to their quoted name; derived columns carry
	// raw expressions which are emitted with an AS alias.
	columns    []string
	columndict map[string]string

	views      []string
	cumulative []string

	order     []string
	ascending bool

	// viewstack holds names of temp views created for this state
	viewstack []string
}

func newInternalState(tablename string, columns []string) *internalState {
	st := &internalState{
		name:       quoteIdent(tablename),
		columns:    append([]string(nil), columns...),
		columndict: make(map[string]string, len(columns)),
		ascending:  true,
	}
	for _, c := range columns {
		st.columndict[c] = quoteIdent(c)
	}
	return st
}

// clone returns a deep copy. Frames share nothing through their states, so
// every non-destructive operation works on a fresh clone.
func (st *internalState) clone() *internalState {
	cp := &internalState{
		name:       st.name,
		columns:    append([]string(nil), st.columns...),
		columndict: make(map[string]string, len(st.columndict)),
		views:      append([]string(nil), st.views...),
		cumulative: append([]string(nil), st.cumulative...),
		order:      append([]string(nil), st.order...),
		ascending:  st.ascending,
	}
	for k, v := range st.columndict {
		cp.columndict[k] = v
	}
	return cp
}

// allViews returns closed views plus the open cumulative fragment.
func (st *internalState) allViews() []string {
	return append(append([]string(nil), st.views...), st.cumulative...)
}

// getColumns renders the select list of the current state.
func (st *internalState) getColumns() string {
	parts := make([]string, 0, len(st.columns))
	for _, name := range st.columns {
		expr := st.columndict[name]
		if isQuoted(expr, name) {
			parts = append(parts, expr)
		} else {
			parts = append(parts, expr+" AS "+quoteIdent(name))
		}
	}
	return strings.Join(parts, ", ")
}

// getOrder renders the ORDER BY clause for the pending sort, or "".
func (st *internalState) getOrder() string {
	if len(st.order) == 0 {
		return ""
	}
	dir := " ASC"
	if !st.ascending {
		dir = " DESC"
	}
	parts := make([]string, len(st.order))
	for i, c := range st.order {
		parts[i] = quoteIdent(c) + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// getState renders the full SQL query of the current state by nesting all
// fragments onto the base relation, innermost-first. Subqueries receive
// dialect aliases (Netezza requires " as tN").
func (st *internalState) getState(d Dialect) string {
	views := st.allViews()
	if len(views) == 0 {
		return "SELECT " + st.getColumns() + " FROM " + st.name
	}

	query := relationMark
	last := len(views) - 1
	for i := last; i >= 0; i-- {
		// index counts from the outermost fragment inwards
		index := last - i
		view := views[i]
		if index == last {
			view = nestQuery(view, st.name)
		}
		if index != 0 {
			view = "(" + view + ")" + d.SubqueryAlias(index)
		}
		query = nestQuery(query, view)
	}
	return query
}

// setProjection replaces the selected columns, rewriting the open fragment.
func (st *internalState) setProjection(columns []string, exprs map[string]string) {
	st.columns = append([]string(nil), columns...)
	st.columndict = make(map[string]string, len(columns))
	for _, c := range columns {
		if e, ok := exprs[c]; ok {
			st.columndict[c] = e
		} else {
			st.columndict[c] = quoteIdent(c)
		}
	}
	st.cumulative = []string{"SELECT " + st.getColumns() + " FROM " + relationMark}
}

// setColumn records a derived expression for a column, adding the column
// when it is new, and rewrites the open fragment.
func (st *internalState) setColumn(name, expr string) {
	if _, ok := st.columndict[name]; !ok {
		st.columns = append(st.columns, name)
	}
	st.columndict[name] = expr
	st.cumulative = []string{"SELECT " + st.getColumns() + " FROM " + relationMark}
}

// closeCumulative moves the open fragment into the closed list.
func (st *internalState) closeCumulative() {
	st.views = append(st.views, st.cumulative...)
	st.cumulative = nil
	// 以降の状態では派生列は素の列として参照できる
	for _, c := range st.columns {
		st.columndict[c] = quoteIdent(c)
	}
}

// applyFilter appends a closed WHERE fragment.
func (st *internalState) applyFilter(whereClause string) {
	st.closeCumulative()
	st.views = append(st.views, "SELECT * FROM "+relationMark+" WHERE "+whereClause)
}

// applyOrder appends a closed ORDER BY fragment.
func (st *internalState) applyOrder(columns []string, ascending bool) {
	st.order = append([]string(nil), columns...)
	st.ascending = ascending
	st.closeCumulative()
	st.views = append(st.views, "SELECT * FROM (SELECT * FROM "+relationMark+st.getOrder()+") AS TEMP")
	st.order = nil
}

// applyRowSelection appends a closed row-selection fragment.
// With an indexer column the selection is a direct WHERE on it; without one
// rows are numbered with ROW_NUMBER and selected by position.
func (st *internalState) applyRowSelection(d Dialect, indexer, indexCond string) {
	columns := st.getColumns()
	st.closeCumulative()
	if indexer != "" {
		st.views = append(st.views,
			"SELECT "+columns+" FROM "+relationMark+" WHERE "+quoteIdent(indexer)+indexCond)
		return
	}
	st.views = append(st.views,
		"SELECT "+columns+" FROM (SELECT *, (ROW_NUMBER() OVER("+d.RowNumberOrder()+
			")-1) AS RN FROM "+relationMark+") AS TEMP2 WHERE RN"+indexCond)
}

// currentState returns the name of the last created temp view, or the base
// relation when no view exists.
func (st *internalState) currentState() string {
	if len(st.viewstack) > 0 {
		return quoteIdent(st.viewstack[len(st.viewstack)-1])
	}
	return st.name
}

// createView materializes the current state as a database view and pushes
// its name on the view stack.
func (st *internalState) createView(idadb *DataBase) (string, error) {
	viewname, err := idadb.ValidViewName("TEMP_VIEW_")
	if err != nil {
		return "", err
	}
	// SQLiteは括弧付きのSELECTを受け付けない
	query := "CREATE VIEW " + quoteIdent(viewname) + " AS " + st.getState(idadb.Dialect())
	if err := idadb.Exec(query); err != nil {
		return "", err
	}
	idadb.invalidateCache()
	st.viewstack = append(st.viewstack, viewname)
	return viewname, nil
}

// deleteView drops the most recently created temp view.
func (st *internalState) deleteView(idadb *DataBase) error {
	if len(st.viewstack) == 0 {
		return nil
	}
	viewname := st.viewstack[len(st.viewstack)-1]
	st.viewstack = st.viewstack[:len(st.viewstack)-1]
	if err := idadb.Exec("DROP VIEW " + quoteIdent(viewname)); err != nil {
		return err
	}
	idadb.invalidateCache()
	return nil
}

// dropAllViews drops every temp view created for this state.
func (st *internalState) dropAllViews(idadb *DataBase) error {
	var firstErr error
	for len(st.viewstack) > 0 {
		if err := st.deleteView(idadb); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return errors.WithStack(firstErr)
}

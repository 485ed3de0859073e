package exec

import (
	"sort"
	"strings"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/sqlparse"
	"github.com/arjunc/tinysql/pkg/value"
	"github.com/arjunc/tinysql/pkg/whereeval"
)

func (e *Engine) execSelect(s *sqlparse.SelectStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	pred := whereeval.Compile(s.Where)
	rows := t.Select(pred)

	if s.OrderBy != nil {
		sortRows(rows, s.OrderBy.Column, s.OrderBy.Desc)
	}
	if s.Limit != nil && int64(len(rows)) > *s.Limit {
		rows = rows[:*s.Limit]
	}
	if !s.Star {
		rows = project(rows, s.Columns)
	}
	return &Result{Rows: rows}, nil
}

// sortRows implements ORDER BY: sort by the clause column's
// stringified value; Nulls sort as empty (ascending) or "ZZZZZZ"
// (descending). Sorted directly in the requested direction (rather than
// ascending-then-reversed) so ties keep their original row order either way.
func sortRows(rows []catalog.Row, column string, desc bool) {
	key := func(row catalog.Row) string {
		v, ok := foldLookup(row, column)
		if !ok || v.IsNull() {
			if desc {
				return "ZZZZZZ"
			}
			return ""
		}
		return v.String()
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if desc {
			return ki > kj
		}
		return ki < kj
	})
}

// project keeps only the listed columns (Null when a row lacks one), and
// drops the synthetic _id field, which only ever applies to star
// projections.
func project(rows []catalog.Row, columns []string) []catalog.Row {
	out := make([]catalog.Row, len(rows))
	for i, row := range rows {
		r := make(catalog.Row, len(columns))
		for _, col := range columns {
			v, _ := foldLookup(row, col)
			r[col] = v
		}
		out[i] = r
	}
	return out
}

func foldLookup(row catalog.Row, name string) (value.Value, bool) {
	if v, ok := row[name]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return value.NullValue, false
}

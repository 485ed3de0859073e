package exec

import (
	"regexp"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/value"
)

// JoinKind is one of the five supported join strategies.
type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	FullJoin  JoinKind = "FULL"
	CrossJoin JoinKind = "CROSS"
)

// MergedRow carries the joined columns of both sides, keyed "<table>.<col>".
// A side that didn't participate (the unmatched half of an outer join) is
// entirely absent from the map rather than present with Null values.
type MergedRow map[string]value.Value

var onClauseRe = regexp.MustCompile(`(?i)^\s*(\w+)\.(\w+)\s*=\s*(\w+)\.(\w+)\s*$`)

// Join evaluates a join of kind between table1 and table2. on is
// "<table>.<col> = <table>.<col>" and is ignored entirely for CROSS, which
// yields the Cartesian product.
func (e *Engine) Join(table1, table2, on string, kind JoinKind) ([]MergedRow, error) {
	t1, ok := e.DB.Table(table1)
	if !ok {
		return nil, sqlerr.NoTable(table1)
	}
	t2, ok := e.DB.Table(table2)
	if !ok {
		return nil, sqlerr.NoTable(table2)
	}

	if kind == CrossJoin {
		return crossJoin(table1, t1, table2, t2), nil
	}

	m := onClauseRe.FindStringSubmatch(on)
	if m == nil {
		return nil, sqlerr.Syntax(on)
	}
	col1, col2 := m[2], m[4]

	rows1 := t1.Select(nil)
	rows2 := t2.Select(nil)

	switch kind {
	case InnerJoin:
		return innerJoin(table1, rows1, col1, table2, rows2, col2), nil
	case LeftJoin:
		return outerJoin(table1, rows1, col1, table2, rows2, col2, true), nil
	case RightJoin:
		return outerJoin(table2, rows2, col2, table1, rows1, col1, false), nil
	case FullJoin:
		return fullJoin(table1, rows1, col1, table2, rows2, col2), nil
	default:
		return nil, sqlerr.UnsupportedSQL(string(kind))
	}
}

func prefixRow(table string, row catalog.Row) MergedRow {
	out := make(MergedRow, len(row))
	for k, v := range row {
		if k == catalog.IDColumn {
			continue
		}
		out[table+"."+k] = v
	}
	return out
}

func merge(t1 string, row1 catalog.Row, t2 string, row2 catalog.Row) MergedRow {
	out := make(MergedRow)
	if row1 != nil {
		for k, v := range prefixRow(t1, row1) {
			out[k] = v
		}
	}
	if row2 != nil {
		for k, v := range prefixRow(t2, row2) {
			out[k] = v
		}
	}
	return out
}

func crossJoin(t1 string, tbl1 *catalog.Table, t2 string, tbl2 *catalog.Table) []MergedRow {
	rows1, rows2 := tbl1.Select(nil), tbl2.Select(nil)
	out := make([]MergedRow, 0, len(rows1)*len(rows2))
	for _, r1 := range rows1 {
		for _, r2 := range rows2 {
			out = append(out, merge(t1, r1, t2, r2))
		}
	}
	return out
}

func innerJoin(t1 string, rows1 []catalog.Row, col1 string, t2 string, rows2 []catalog.Row, col2 string) []MergedRow {
	var out []MergedRow
	for _, r1 := range rows1 {
		for _, r2 := range rows2 {
			if matches(r1, col1, r2, col2) {
				out = append(out, merge(t1, r1, t2, r2))
			}
		}
	}
	return out
}

// outerJoin emits every row from the left side: matched rows paired with
// each right-side match (insertion order), or one left-only row when
// nothing matches. RightJoin reuses this with its arguments swapped.
func outerJoin(t1 string, rows1 []catalog.Row, col1 string, t2 string, rows2 []catalog.Row, col2 string, leftIsT1 bool) []MergedRow {
	var out []MergedRow
	for _, r1 := range rows1 {
		matched := false
		for _, r2 := range rows2 {
			if matches(r1, col1, r2, col2) {
				matched = true
				if leftIsT1 {
					out = append(out, merge(t1, r1, t2, r2))
				} else {
					out = append(out, merge(t2, r2, t1, r1))
				}
			}
		}
		if !matched {
			if leftIsT1 {
				out = append(out, merge(t1, r1, t2, nil))
			} else {
				out = append(out, merge(t2, nil, t1, r1))
			}
		}
	}
	return out
}

// fullJoin is LEFT(t1,t2) followed by the t2 rows that matched nothing on
// the left.
func fullJoin(t1 string, rows1 []catalog.Row, col1 string, t2 string, rows2 []catalog.Row, col2 string) []MergedRow {
	left := outerJoin(t1, rows1, col1, t2, rows2, col2, true)
	var out []MergedRow
	for _, r2 := range rows2 {
		hasMatch := false
		for _, r1 := range rows1 {
			if matches(r1, col1, r2, col2) {
				hasMatch = true
				break
			}
		}
		if !hasMatch {
			out = append(out, merge(t1, nil, t2, r2))
		}
	}
	return append(left, out...)
}

// matches reports whether the join key columns compare equal, including two
// Null keys matching each other: the join condition is a plain equality
// test, and Value.Equal treats Null as equal to Null.
func matches(r1 catalog.Row, col1 string, r2 catalog.Row, col2 string) bool {
	v1, ok1 := foldLookup(r1, col1)
	v2, ok2 := foldLookup(r2, col2)
	if !ok1 || !ok2 {
		return false
	}
	return v1.Equal(v2)
}

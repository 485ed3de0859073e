package whereeval

import (
	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/value"
)

// Compile parses clause into a reusable predicate. A clause that fails to
// parse yields a predicate that excludes every row rather than returning an
// error to the caller.
func Compile(clause string) catalog.Predicate {
	if clause == "" {
		return nil
	}
	expr, err := New(clause).Parse()
	if err != nil {
		return func(catalog.Row) bool { return false }
	}
	return func(row catalog.Row) bool {
		ok, valid := eval(expr, row)
		return valid && ok
	}
}

// eval walks expr against row. The second return reports whether the
// expression evaluated to a definite boolean; a false second value means
// the row should be excluded (a type mismatch mid-evaluation, for example).
func eval(e Expr, row catalog.Row) (result bool, valid bool) {
	switch n := e.(type) {
	case *Literal:
		if n.Value.Kind == value.Bool {
			return n.Value.B, true
		}
		return false, false
	case *LogicalExpr:
		left, lok := eval(n.Left, row)
		right, rok := eval(n.Right, row)
		if !lok || !rok {
			return false, false
		}
		if n.Op == LogicalAnd {
			return left && right, true
		}
		return left || right, true
	case *CompareExpr:
		lv, lok := resolve(n.Left, row)
		rv, rok := resolve(n.Right, row)
		if !lok || !rok {
			return false, false
		}
		return compare(n.Op, lv, rv), true
	default:
		return false, false
	}
}

// resolve turns an operand (ColumnRef or Literal) into a concrete Value.
func resolve(e Expr, row catalog.Row) (value.Value, bool) {
	switch n := e.(type) {
	case *Literal:
		return n.Value, true
	case *ColumnRef:
		v, ok := lookupColumn(row, n.Name)
		return v, ok
	default:
		return value.NullValue, false
	}
}

func lookupColumn(row catalog.Row, name string) (value.Value, bool) {
	if v, ok := row[name]; ok {
		return v, true
	}
	for k, v := range row {
		if foldEq(k, name) {
			return v, true
		}
	}
	return value.NullValue, false
}

func foldEq(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// compare treats Null as excluding everything: if either side is Null, the
// comparison is false, since Null compares equal to nothing.
func compare(op CompareOp, l, r value.Value) bool {
	if l.IsNull() || r.IsNull() {
		return false
	}
	if op == Eq {
		return numericOrTextEqual(l, r)
	}
	if op == Neq {
		return !numericOrTextEqual(l, r)
	}
	ord, ok := orderCompare(l, r)
	if !ok {
		return false
	}
	switch op {
	case Lt:
		return ord < 0
	case Lte:
		return ord <= 0
	case Gt:
		return ord > 0
	case Gte:
		return ord >= 0
	default:
		return false
	}
}

func numericOrTextEqual(l, r value.Value) bool {
	if ln, lok := asFloat(l); lok {
		if rn, rok := asFloat(r); rok {
			return ln == rn
		}
	}
	return l.String() == r.String()
}

// orderCompare returns -1/0/1 for l versus r, numerically when both sides
// parse as numbers, else lexicographically on their printed form.
func orderCompare(l, r value.Value) (int, bool) {
	if ln, lok := asFloat(l); lok {
		if rn, rok := asFloat(r); rok {
			switch {
			case ln < rn:
				return -1, true
			case ln > rn:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	ls, rs := l.String(), r.String()
	switch {
	case ls < rs:
		return -1, true
	case ls > rs:
		return 1, true
	default:
		return 0, true
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.Int64:
		return float64(v.I), true
	case value.Float64:
		return v.F, true
	default:
		return 0, false
	}
}

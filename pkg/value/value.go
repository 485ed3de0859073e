// Package value implements the tagged scalar values tinysql's tables store
// and the type-conformance rules columns enforce against them.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the dynamic type of a Value.
type Kind int

const (
	Null Kind = iota
	Int64
	Float64
	Bool
	Text
	Date
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "NULL"
	case Int64:
		return "INTEGER"
	case Float64:
		return "REAL"
	case Bool:
		return "BOOLEAN"
	case Text:
		return "TEXT"
	case Date:
		return "DATE"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged scalar. Date is modeled as Text per spec: it carries a
// free-form string and is distinguished only by the column's declared type.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
}

// NullValue is the canonical Null value.
var NullValue = Value{Kind: Null}

func Int(i int64) Value    { return Value{Kind: Int64, I: i} }
func Float(f float64) Value { return Value{Kind: Float64, F: f} }
func Boolean(b bool) Value { return Value{Kind: Bool, B: b} }
func Str(s string) Value   { return Value{Kind: Text, S: s} }
func DateOf(s string) Value { return Value{Kind: Date, S: s} }

// Equal compares by tag and content. Two Null values compare equal to each
// other under this method, but WHERE evaluation treats NULL specially (see
// pkg/whereeval) — equality here is used for unique-set and index bookkeeping,
// not for SQL three-valued comparison semantics.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Int64:
		return v.I == o.I
	case Float64:
		return v.F == o.F
	case Bool:
		return v.B == o.B
	case Text, Date:
		return v.S == o.S
	default:
		return false
	}
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.Kind == Null }

// Render prints v as a SQL literal: Text/Date values are single-quoted, other
// kinds use their natural printed form. Used in error messages (such as a
// duplicate-value error) and by GoString; table cells use String instead.
func (v Value) Render() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int64:
		return strconv.FormatInt(v.I, 10)
	case Float64:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case Bool:
		if v.B {
			return "TRUE"
		}
		return "FALSE"
	case Text, Date:
		return "'" + v.S + "'"
	default:
		return ""
	}
}

// String renders the value the way a table cell is displayed: unquoted, with
// Null shown as an empty string.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return ""
	case Int64:
		return strconv.FormatInt(v.I, 10)
	case Float64:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.B)
	case Text, Date:
		return v.S
	default:
		return ""
	}
}

// DataType is one of the column types a Column may declare.
type DataType string

const (
	INTEGER DataType = "INTEGER"
	TEXT    DataType = "TEXT"
	REAL    DataType = "REAL"
	BOOLEAN DataType = "BOOLEAN"
	DATE    DataType = "DATE"
)

// NormalizeType maps common SQL type-name aliases onto the five canonical
// DataTypes, or returns ok=false for an unrecognized name.
func NormalizeType(raw string) (DataType, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	switch t {
	case "INT", "INTEGER":
		return INTEGER, true
	case "VARCHAR", "TEXT", "CHAR", "STRING":
		return TEXT, true
	case "FLOAT", "DOUBLE", "REAL":
		return REAL, true
	case "BOOL", "BOOLEAN":
		return BOOLEAN, true
	case "DATE":
		return DATE, true
	default:
		return "", false
	}
}

// Validate reports whether v conforms to t, allowing the relaxed
// numeric/text coercions implemented below (e.g. the text "42" validates
// against INTEGER, and "true"/"1" validate against BOOLEAN).
func Validate(t DataType, v Value) bool {
	if v.IsNull() {
		return true
	}
	switch t {
	case INTEGER:
		switch v.Kind {
		case Int64:
			return true
		case Float64:
			return v.F == float64(int64(v.F))
		case Text:
			_, err := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
			return err == nil
		default:
			return false
		}
	case REAL:
		switch v.Kind {
		case Int64, Float64:
			return true
		case Text:
			_, err := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
			return err == nil
		default:
			return false
		}
	case BOOLEAN:
		if v.Kind == Bool {
			return true
		}
		if v.Kind == Text {
			switch strings.ToLower(v.S) {
			case "0", "1", "true", "false":
				return true
			}
			return false
		}
		if v.Kind == Int64 {
			return v.I == 0 || v.I == 1
		}
		return false
	case TEXT, DATE:
		return v.Kind == Text || v.Kind == Date
	default:
		return false
	}
}

// Coerce converts v to the representation t stores, assuming Validate(t, v)
// already passed. Used on INSERT/UPDATE so that, e.g., the text "42" stored
// into an INTEGER column compares equal to the integer 42 later on.
func Coerce(t DataType, v Value) Value {
	if v.IsNull() {
		return v
	}
	switch t {
	case INTEGER:
		switch v.Kind {
		case Int64:
			return v
		case Float64:
			return Int(int64(v.F))
		case Text:
			i, _ := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
			return Int(i)
		}
	case REAL:
		switch v.Kind {
		case Int64:
			return Float(float64(v.I))
		case Float64:
			return v
		case Text:
			f, _ := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
			return Float(f)
		}
	case BOOLEAN:
		switch v.Kind {
		case Bool:
			return v
		case Text:
			switch strings.ToLower(v.S) {
			case "1", "true":
				return Boolean(true)
			default:
				return Boolean(false)
			}
		case Int64:
			return Boolean(v.I != 0)
		}
	case DATE:
		if v.Kind == Text {
			return DateOf(v.S)
		}
	}
	return v
}

// ParseLiteral parses a single SQL literal token, trying in order: NULL,
// TRUE/FALSE, single-quoted text, a float containing '.', an integer, else
// the raw text.
func ParseLiteral(tok string) Value {
	t := strings.TrimSpace(tok)
	switch strings.ToUpper(t) {
	case "NULL":
		return NullValue
	case "TRUE":
		return Boolean(true)
	case "FALSE":
		return Boolean(false)
	}
	if len(t) >= 2 && t[0] == '\'' && t[len(t)-1] == '\'' {
		return Str(t[1 : len(t)-1])
	}
	if strings.Contains(t, ".") {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return Float(f)
		}
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(i)
	}
	return Str(t)
}

// GoString supports %#v style debugging and test failure output.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s %s}", v.Kind, v.Render())
}

package catalog

import "github.com/arjunc/tinysql/pkg/value"

// IDColumn is the synthetic field a star projection adds: the row's
// 1-based position at the moment of the read.
const IDColumn = "_id"

// Row maps column name to its current value, one entry per declared column.
// A Row returned from Select carries an extra IDColumn entry; a Row stored
// inside a Table does not.
type Row map[string]value.Value

// Clone returns an independent copy of r so callers can't mutate table state
// through a returned row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Get returns the row's value for col (case-sensitive; callers resolve
// case-insensitivity via Table.ColumnByName before indexing into a Row).
func (r Row) Get(col string) value.Value {
	if v, ok := r[col]; ok {
		return v
	}
	return value.NullValue
}

package catalog

import "github.com/arjunc/tinysql/pkg/value"

// Column describes one table column. Columns are immutable once a table has
// been created or altered to add them; storage is case-sensitive, but SQL
// lookups against a Column's Name are case-insensitive.
type Column struct {
	Name       string
	Type       value.DataType
	PrimaryKey bool
	Unique     bool
	Nullable   bool
}

// effectivelyUnique reports whether C participates in a unique set, which is
// true for both PRIMARY KEY and UNIQUE columns.
func (c Column) effectivelyUnique() bool {
	return c.PrimaryKey || c.Unique
}

package catalog

import (
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/value"
)

// Predicate reports whether row satisfies a WHERE clause. A nil Predicate is
// unconditionally true, matching a statement with no WHERE clause at all.
// Implementations must be side-effect-free.
type Predicate func(row Row) bool

// Table holds one relation's column metadata, its row vector in insertion
// order, the auxiliary structures that enforce uniqueness, and any secondary
// indexes built with CREATE INDEX.
type Table struct {
	Name         string
	Columns      []Column
	rows         []Row
	uniqueValues map[string]map[value.Value]struct{}
	indexes      map[string]*Index
}

// NewTable returns an empty table named name.
func NewTable(name string) *Table {
	return &Table{
		Name:         name,
		uniqueValues: make(map[string]map[value.Value]struct{}),
		indexes:      make(map[string]*Index),
	}
}

// RowCount returns the table's current row count.
func (t *Table) RowCount() int { return len(t.rows) }

// RawRows returns the table's stored rows verbatim, without the synthetic
// IDColumn Select adds and without cloning. Used only by pkg/snapshot to
// serialize a table; callers elsewhere should use Select.
func (t *Table) RawRows() []Row { return t.rows }

// LoadTable reconstructs a table from its columns and previously-stored rows
// (as produced by RawRows), rebuilding every unique set and index from
// scratch rather than trusting anything persisted alongside them. Used by
// pkg/snapshot when restoring a database from disk.
func LoadTable(name string, columns []Column, rows []Row) *Table {
	t := NewTable(name)
	t.Columns = columns
	t.rows = rows
	for _, c := range columns {
		if c.effectivelyUnique() {
			t.ensureUniqueTracking(c.Name)
		}
	}
	t.rebuildAuxiliary()
	return t
}

// ColumnByName resolves name against t's columns case-insensitively, as
// SQL identifier lookups do throughout the engine.
func (t *Table) ColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if equalFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// HasIndex reports whether col has a secondary (or constraint-derived) index.
func (t *Table) HasIndex(col string) bool {
	_, ok := t.indexes[col]
	return ok
}

// Index returns the index on col, if any.
func (t *Table) Index(col string) (*Index, bool) {
	ix, ok := t.indexes[col]
	return ix, ok
}

// AddColumn appends c to the table for ALTER TABLE ADD COLUMN. Existing rows
// receive Null for the new column. If c is unique or primary, its unique set
// and index are initialized and populated from existing rows.
func (t *Table) AddColumn(c Column) {
	t.Columns = append(t.Columns, c)
	for i := range t.rows {
		if _, ok := t.rows[i][c.Name]; !ok {
			t.rows[i][c.Name] = value.NullValue
		}
	}
	if c.effectivelyUnique() {
		t.ensureUniqueTracking(c.Name)
	}
}

func (t *Table) ensureUniqueTracking(col string) {
	if _, ok := t.uniqueValues[col]; !ok {
		t.uniqueValues[col] = make(map[value.Value]struct{})
	}
	t.createIndexIfAbsent(col)
}

// createIndexIfAbsent is the shared implementation behind both
// constraint-derived indexes (unique/primary columns) and CREATE INDEX.
func (t *Table) createIndexIfAbsent(col string) {
	if _, ok := t.indexes[col]; ok {
		return
	}
	ix := newIndex(col)
	ix.rebuild(t.rows)
	t.indexes[col] = ix
}

// Insert validates and appends one row, following the "validate then commit"
// discipline: every error is detected before any field is mutated. Returns
// the new row's 1-based id.
func (t *Table) Insert(values map[string]value.Value) (int64, error) {
	row := make(Row, len(t.Columns))
	newUniques := make(map[string]value.Value)

	for _, c := range t.Columns {
		v, supplied := lookupFold(values, c.Name)
		switch {
		case supplied:
			if !value.Validate(c.Type, v) {
				return 0, sqlerr.BadType(c.Name, c.Type, v)
			}
			v = value.Coerce(c.Type, v)
			if v.IsNull() && !c.Nullable {
				return 0, sqlerr.NullNotAllowed(c.Name)
			}
		case c.PrimaryKey && c.Type == value.INTEGER:
			v = value.Int(int64(len(t.rows) + 1))
		default:
			v = value.NullValue
		}
		if c.effectivelyUnique() && !v.IsNull() {
			if _, exists := t.uniqueValues[c.Name][v]; exists {
				return 0, sqlerr.Duplicate(c.Name, v.Render())
			}
			newUniques[c.Name] = v
		}
		row[c.Name] = v
	}

	// Commit: no error paths remain past this point.
	for col, v := range newUniques {
		t.ensureUniqueTracking(col)
		t.uniqueValues[col][v] = struct{}{}
	}
	t.rows = append(t.rows, row)
	rowID := len(t.rows)
	for col, ix := range t.indexes {
		if v, ok := row[col]; ok {
			ix.add(v, rowID)
		}
	}
	return int64(rowID), nil
}

// Select returns a copy of every row satisfying pred, in row order, each
// augmented with the synthetic IDColumn equal to its 1-based position at the
// time of the call.
func (t *Table) Select(pred Predicate) []Row {
	out := make([]Row, 0, len(t.rows))
	for i, row := range t.rows {
		if pred != nil && !pred(row) {
			continue
		}
		r := row.Clone()
		r[IDColumn] = value.Int(int64(i + 1))
		out = append(out, r)
	}
	return out
}

// Update applies set to every row matching pred, enforcing uniqueness
// against rows NOT being updated before committing any mutation, and keeping
// unique sets and indexes in sync. Returns the count of rows updated.
func (t *Table) Update(set map[string]value.Value, pred Predicate) (int64, error) {
	matched := t.matchIndices(pred)

	// Validate: for every unique column in set, a new value must not collide
	// with any row outside the matched set.
	for colName, newVal := range set {
		col, ok := t.ColumnByName(colName)
		if !ok {
			return 0, sqlerr.NoColumn(t.Name, colName)
		}
		if !col.effectivelyUnique() || newVal.IsNull() {
			continue
		}
		if !value.Validate(col.Type, newVal) {
			return 0, sqlerr.BadType(col.Name, col.Type, newVal)
		}
		newVal = value.Coerce(col.Type, newVal)
		matchedSet := make(map[int]struct{}, len(matched))
		for _, i := range matched {
			matchedSet[i] = struct{}{}
		}
		for _, i := range matched {
			if t.rows[i][col.Name].Equal(newVal) {
				continue
			}
			for j, other := range t.rows {
				if _, inMatch := matchedSet[j]; inMatch {
					continue
				}
				if other[col.Name].Equal(newVal) {
					return 0, sqlerr.Duplicate(col.Name, newVal.Render())
				}
			}
		}
	}

	// Commit.
	resolved := make(map[string]value.Value, len(set))
	for colName, v := range set {
		col, _ := t.ColumnByName(colName)
		if !value.Validate(col.Type, v) {
			return 0, sqlerr.BadType(col.Name, col.Type, v)
		}
		coerced := value.Coerce(col.Type, v)
		if coerced.IsNull() && !col.Nullable {
			return 0, sqlerr.NullNotAllowed(col.Name)
		}
		resolved[col.Name] = coerced
	}
	for _, i := range matched {
		rowID := i + 1
		row := t.rows[i]
		for colName, newVal := range resolved {
			oldVal := row[colName]
			row[colName] = newVal
			if uniq, ok := t.uniqueValues[colName]; ok {
				if !oldVal.IsNull() {
					delete(uniq, oldVal)
				}
				if !newVal.IsNull() {
					uniq[newVal] = struct{}{}
				}
			}
			if ix, ok := t.indexes[colName]; ok {
				ix.remove(oldVal, rowID)
				ix.add(newVal, rowID)
			}
		}
	}
	return int64(len(matched)), nil
}

// Delete removes every row matching pred, repairing unique sets and indexes
// from the surviving rows. Returns the count of rows removed.
func (t *Table) Delete(pred Predicate) int64 {
	matched := t.matchIndices(pred)
	if len(matched) == 0 {
		return 0
	}
	remove := make(map[int]struct{}, len(matched))
	for _, i := range matched {
		remove[i] = struct{}{}
	}
	survivors := make([]Row, 0, len(t.rows)-len(matched))
	for i, row := range t.rows {
		if _, gone := remove[i]; gone {
			continue
		}
		survivors = append(survivors, row)
	}
	t.rows = survivors
	t.rebuildAuxiliary()
	return int64(len(matched))
}

// CreateIndex is idempotent: it creates (or keeps) a secondary index on col
// and populates it from the current rows.
func (t *Table) CreateIndex(col string) {
	t.createIndexIfAbsent(col)
}

func (t *Table) matchIndices(pred Predicate) []int {
	var out []int
	for i, row := range t.rows {
		if pred == nil || pred(row) {
			out = append(out, i)
		}
	}
	return out
}

// rebuildAuxiliary recomputes uniqueValues and every index from t.rows,
// restoring invariants 1 and 2 after a structural change like Delete.
func (t *Table) rebuildAuxiliary() {
	for col := range t.uniqueValues {
		fresh := make(map[value.Value]struct{})
		for _, row := range t.rows {
			if v, ok := row[col]; ok && !v.IsNull() {
				fresh[v] = struct{}{}
			}
		}
		t.uniqueValues[col] = fresh
	}
	for _, ix := range t.indexes {
		ix.rebuild(t.rows)
	}
}

func equalFold(a, b string) bool {
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

func lookupFold(m map[string]value.Value, name string) (value.Value, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if equalFold(k, name) {
			return v, true
		}
	}
	return value.NullValue, false
}

package catalog

// Database is a name plus an ordered collection of tables. The order slice
// gives deterministic iteration for SCHEMA output and snapshot encoding.
type Database struct {
	Name   string
	tables map[string]*Table
	order  []string
}

// New returns an empty database named name.
func New(name string) *Database {
	return &Database{Name: name, tables: make(map[string]*Table)}
}

// Table looks up a table by exact name.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// CreateTable registers t under its own name. Returns false if a table by
// that name already exists.
func (db *Database) CreateTable(t *Table) bool {
	if _, exists := db.tables[t.Name]; exists {
		return false
	}
	db.tables[t.Name] = t
	db.order = append(db.order, t.Name)
	return true
}

// DropTable removes the named table. Dropping an absent table is a no-op,
// matching DROP TABLE IF EXISTS semantics.
func (db *Database) DropTable(name string) {
	if _, ok := db.tables[name]; !ok {
		return
	}
	delete(db.tables, name)
	for i, n := range db.order {
		if n == name {
			db.order = append(db.order[:i], db.order[i+1:]...)
			break
		}
	}
}

// TableNames returns table names in creation order.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// PutTable registers t, overwriting any existing table of the same name and
// appending to the order if it wasn't already present. Used by the snapshot
// codec when rebuilding a database from disk.
func (db *Database) PutTable(t *Table) {
	if _, exists := db.tables[t.Name]; !exists {
		db.order = append(db.order, t.Name)
	}
	db.tables[t.Name] = t
}

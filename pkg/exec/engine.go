package exec

import (
	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/sqlparse"
)

// Engine executes parsed statements against a single Database.
type Engine struct {
	DB *catalog.Database
}

// New wraps db in an Engine.
func New(db *catalog.Database) *Engine {
	return &Engine{DB: db}
}

// Execute dispatches stmt to its statement-specific handler. SELECT and JOIN
// never mutate; every other statement follows the "validate then commit"
// discipline enforced by pkg/catalog.
func (e *Engine) Execute(stmt sqlparse.Stmt) (*Result, error) {
	switch s := stmt.(type) {
	case *sqlparse.CreateTableStmt:
		return e.execCreateTable(s)
	case *sqlparse.AlterTableAddColumnStmt:
		return e.execAlterTable(s)
	case *sqlparse.DropTableStmt:
		return e.execDropTable(s)
	case *sqlparse.CreateIndexStmt:
		return e.execCreateIndex(s)
	case *sqlparse.InsertStmt:
		return e.execInsert(s)
	case *sqlparse.SelectStmt:
		return e.execSelect(s)
	case *sqlparse.UpdateStmt:
		return e.execUpdate(s)
	case *sqlparse.DeleteStmt:
		return e.execDelete(s)
	default:
		return nil, sqlerr.UnsupportedSQL("")
	}
}

func (e *Engine) execCreateTable(s *sqlparse.CreateTableStmt) (*Result, error) {
	if _, exists := e.DB.Table(s.Table); exists {
		return nil, sqlerr.TableExists(s.Table)
	}
	primaries := 0
	for _, c := range s.Columns {
		if c.PrimaryKey {
			primaries++
		}
	}
	if primaries > 1 {
		return nil, sqlerr.Syntax("more than one PRIMARY KEY column in " + s.Table)
	}
	t := catalog.NewTable(s.Table)
	for _, c := range s.Columns {
		t.AddColumn(catalog.Column{
			Name:       c.Name,
			Type:       c.Type,
			PrimaryKey: c.PrimaryKey,
			Unique:     c.Unique,
			Nullable:   c.Nullable,
		})
	}
	e.DB.CreateTable(t)
	return &Result{}, nil
}

func (e *Engine) execAlterTable(s *sqlparse.AlterTableAddColumnStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	if _, exists := t.ColumnByName(s.Column); exists {
		return nil, sqlerr.ColumnExists(s.Table, s.Column)
	}
	t.AddColumn(catalog.Column{Name: s.Column, Type: s.Type, Nullable: true})
	return &Result{}, nil
}

func (e *Engine) execDropTable(s *sqlparse.DropTableStmt) (*Result, error) {
	e.DB.DropTable(s.Table)
	return &Result{}, nil
}

func (e *Engine) execCreateIndex(s *sqlparse.CreateIndexStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	col, exists := t.ColumnByName(s.Column)
	if !exists {
		return nil, sqlerr.NoColumn(s.Table, s.Column)
	}
	t.CreateIndex(col.Name)
	return &Result{}, nil
}

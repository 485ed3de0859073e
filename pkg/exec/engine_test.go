package exec

import (
	"testing"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/sqlparse"
)

func newEngine() *Engine {
	return New(catalog.New("test"))
}

func mustExec(t *testing.T, e *Engine, sql string) *Result {
	t.Helper()
	stmt, err := sqlparse.Parse(sql)
	if err != nil {
		t.Fatalf("Parse(%q): %v", sql, err)
	}
	res, err := e.Execute(stmt)
	if err != nil {
		t.Fatalf("Execute(%q): %v", sql, err)
	}
	return res
}

func TestCreateTableRejectsDuplicateAndMultiplePrimaryKeys(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")

	stmt, _ := sqlparse.Parse("CREATE TABLE users (id INTEGER PRIMARY KEY)")
	if _, err := e.Execute(stmt); !isErrKind(err, sqlerr.AlreadyExists) {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}

	stmt, _ = sqlparse.Parse("CREATE TABLE t2 (a INTEGER PRIMARY KEY, b INTEGER PRIMARY KEY)")
	if _, err := e.Execute(stmt); !isErrKind(err, sqlerr.SyntaxError) {
		t.Fatalf("expected SyntaxError for two primary keys, got %v", err)
	}
}

func TestAlterTableAddColumnRejectsExisting(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	mustExec(t, e, "ALTER TABLE users ADD COLUMN age INTEGER")

	tbl, _ := e.DB.Table("users")
	if len(tbl.Columns) != 3 {
		t.Fatalf("expected 3 columns after ALTER, got %d", len(tbl.Columns))
	}

	stmt, _ := sqlparse.Parse("ALTER TABLE users ADD COLUMN age INTEGER")
	if _, err := e.Execute(stmt); !isErrKind(err, sqlerr.AlreadyExists) {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestDropTableThenCreateIndexOnMissingTable(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
	mustExec(t, e, "DROP TABLE users")
	if _, ok := e.DB.Table("users"); ok {
		t.Fatal("expected users table to be gone")
	}

	stmt, _ := sqlparse.Parse("CREATE INDEX idx_name ON users (id)")
	if _, err := e.Execute(stmt); !isErrKind(err, sqlerr.UnknownTable) {
		t.Fatalf("expected UnknownTable, got %v", err)
	}
}

func TestCreateIndexRejectsUnknownColumn(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
	stmt, _ := sqlparse.Parse("CREATE INDEX idx ON users (missing)")
	if _, err := e.Execute(stmt); !isErrKind(err, sqlerr.UnknownColumn) {
		t.Fatalf("expected UnknownColumn, got %v", err)
	}
}

func TestExecuteRejectsUnknownStmtType(t *testing.T) {
	e := newEngine()
	_, err := e.Execute(nil)
	if !isErrKind(err, sqlerr.Unsupported) {
		t.Fatalf("expected Unsupported for nil stmt, got %v", err)
	}
}

func isErrKind(err error, kind sqlerr.Kind) bool {
	se, ok := err.(*sqlerr.Error)
	return ok && se.Kind == kind
}

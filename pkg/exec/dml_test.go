package exec

import (
	"testing"

	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/sqlparse"
)

func TestExecInsertResolvesColumnsCaseInsensitively(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, NAME TEXT)")

	stmt, err := sqlparse.Parse("INSERT INTO users (name) VALUES ('alice')")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := e.Execute(stmt)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.LastInsertID != 1 || res.RowsAffected != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExecInsertRejectsUnknownColumn(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
	stmt, _ := sqlparse.Parse("INSERT INTO users (missing) VALUES (1)")
	_, err := e.Execute(stmt)
	if !isErrKind(err, sqlerr.UnknownColumn) {
		t.Fatalf("expected UnknownColumn, got %v", err)
	}
}

func TestExecUpdateAppliesWhereClause(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, age INTEGER)")
	mustExec(t, e, "INSERT INTO users (age) VALUES (10)")
	mustExec(t, e, "INSERT INTO users (age) VALUES (20)")

	res := mustExec(t, e, "UPDATE users SET age = 99 WHERE age = 10")
	if res.RowsAffected != 1 {
		t.Fatalf("expected 1 row affected, got %d", res.RowsAffected)
	}

	sel := mustExec(t, e, "SELECT * FROM users WHERE age = 99")
	if len(sel.Rows) != 1 {
		t.Fatalf("expected 1 matching row after update, got %d", len(sel.Rows))
	}
}

func TestExecUpdateRejectsUnknownTable(t *testing.T) {
	e := newEngine()
	stmt, _ := sqlparse.Parse("UPDATE missing SET a = 1 WHERE a = 1")
	_, err := e.Execute(stmt)
	if !isErrKind(err, sqlerr.UnknownTable) {
		t.Fatalf("expected UnknownTable, got %v", err)
	}
}

func TestExecDeleteWithEmptyWhereDeletesEverything(t *testing.T) {
	e := newEngine()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
	mustExec(t, e, "INSERT INTO users (id) VALUES (1)")
	mustExec(t, e, "INSERT INTO users (id) VALUES (2)")

	res := mustExec(t, e, "DELETE FROM users")
	if res.RowsAffected != 2 {
		t.Fatalf("expected 2 rows deleted, got %d", res.RowsAffected)
	}
	tbl, _ := e.DB.Table("users")
	if tbl.RowCount() != 0 {
		t.Fatalf("expected empty table, got %d rows", tbl.RowCount())
	}
}

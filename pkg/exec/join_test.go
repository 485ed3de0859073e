package exec

import "testing"

func seedJoinTables(t *testing.T, e *Engine) {
	t.Helper()
	mustExec(t, e, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	mustExec(t, e, "INSERT INTO users (name) VALUES ('alice')")
	mustExec(t, e, "INSERT INTO users (name) VALUES ('bob')")

	mustExec(t, e, "CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER, item TEXT)")
	mustExec(t, e, "INSERT INTO orders (user_id, item) VALUES (1, 'widget')")
	mustExec(t, e, "INSERT INTO orders (user_id, item) VALUES (1, 'gadget')")
	// bob (id 2) has no orders; a third order belongs to nobody (user_id 99).
	mustExec(t, e, "INSERT INTO orders (user_id, item) VALUES (99, 'orphan')")
}

func TestInnerJoinOnlyMatchedPairs(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	rows, err := e.Join("users", "orders", "users.id = orders.user_id", InnerJoin)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matched rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r["users.name"].String() != "alice" {
			t.Fatalf("expected only alice's orders, got %v", r)
		}
	}
}

func TestLeftJoinIncludesUnmatchedLeftRows(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	rows, err := e.Join("users", "orders", "users.id = orders.user_id", LeftJoin)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	// alice: 2 matches, bob: 1 unmatched row = 3 total.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	found := false
	for _, r := range rows {
		if r["users.name"].String() == "bob" {
			found = true
			if _, ok := r["orders.item"]; ok {
				t.Fatal("expected bob's unmatched row to have no orders.item key")
			}
		}
	}
	if !found {
		t.Fatal("expected an unmatched row for bob")
	}
}

func TestRightJoinIncludesUnmatchedRightRows(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	rows, err := e.Join("users", "orders", "users.id = orders.user_id", RightJoin)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	// alice: 2 matches, the orphan order: 1 unmatched row = 3 total.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	found := false
	for _, r := range rows {
		if r["orders.item"].String() == "orphan" {
			found = true
			if _, ok := r["users.name"]; ok {
				t.Fatal("expected orphan order's row to have no users.name key")
			}
		}
	}
	if !found {
		t.Fatal("expected an unmatched row for the orphan order")
	}
}

func TestFullJoinUnionsUnmatchedBothSides(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	rows, err := e.Join("users", "orders", "users.id = orders.user_id", FullJoin)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	// 2 matched + bob unmatched + orphan unmatched = 4.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
}

func TestCrossJoinIsCartesianProduct(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	rows, err := e.Join("users", "orders", "", CrossJoin)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(rows) != 2*3 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
}

func TestJoinRejectsUnknownTable(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	_, err := e.Join("users", "missing", "users.id = missing.id", InnerJoin)
	if err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestJoinRejectsMalformedOnClause(t *testing.T) {
	e := newEngine()
	seedJoinTables(t, e)
	_, err := e.Join("users", "orders", "not a valid clause", InnerJoin)
	if err == nil {
		t.Fatal("expected syntax error for malformed ON clause")
	}
}

// Package exec implements tinysql's statement executor: it resolves a parsed
// sqlparse.Stmt against a catalog.Database, mutates storage, and returns
// either a row list or an affected-row count / generated id.
package exec

import "github.com/arjunc/tinysql/pkg/catalog"

// Result is what Execute returns for one statement. It deliberately mirrors
// the shape of database/sql.Result (RowsAffected/LastInsertId) even though
// tinysql isn't a database/sql driver — the split between "I mutated N rows"
// and "I read some rows back" is a familiar one for anything database-shaped.
type Result struct {
	Rows         []catalog.Row
	RowsAffected int64
	LastInsertID int64
}

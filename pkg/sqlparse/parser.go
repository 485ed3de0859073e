package sqlparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/value"
)

var (
	createTableRe = regexp.MustCompile(`(?is)^CREATE TABLE\s+(\w+)\s*\((.*)\)$`)
	alterTableRe  = regexp.MustCompile(`(?i)^ALTER TABLE\s+(\w+)\s+ADD COLUMN\s+(\w+)\s+(\S+)$`)
	dropTableRe   = regexp.MustCompile(`(?i)^DROP TABLE\s+(\w+)$`)
	insertRe      = regexp.MustCompile(`(?is)^INSERT INTO\s+(\w+)\s*\((.*?)\)\s*VALUES\s*\((.*)\)$`)
	selectRe      = regexp.MustCompile(`(?is)^SELECT\s+(.*?)\s+FROM\s+(\w+)(?:\s+WHERE\s+(.*?))?(?:\s+ORDER\s+BY\s+(.*?))?(?:\s+LIMIT\s+(\d+))?$`)
	updateRe      = regexp.MustCompile(`(?is)^UPDATE\s+(\w+)\s+SET\s+(.*?)(?:\s+WHERE\s+(.*))?$`)
	deleteRe      = regexp.MustCompile(`(?is)^DELETE FROM\s+(\w+)(?:\s+WHERE\s+(.*))?$`)
	createIndexRe = regexp.MustCompile(`(?i)^CREATE INDEX\s+(\w+)\s+ON\s+(\w+)\s*\((\w+)\)$`)
)

// Parse cleans sql and dispatches to the per-statement parser matching its
// leading keyword. An unrecognized keyword yields Unsupported; a recognized
// keyword whose body doesn't match its shape yields SyntaxError.
func Parse(sql string) (Stmt, error) {
	s := clean(sql)
	upper := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(upper, "CREATE TABLE"):
		return parseCreateTable(s)
	case strings.HasPrefix(upper, "ALTER TABLE"):
		return parseAlterTable(s)
	case strings.HasPrefix(upper, "DROP TABLE"):
		return parseDropTable(s)
	case strings.HasPrefix(upper, "CREATE INDEX"):
		return parseCreateIndex(s)
	case strings.HasPrefix(upper, "INSERT INTO"):
		return parseInsert(s)
	case strings.HasPrefix(upper, "SELECT"):
		return parseSelect(s)
	case strings.HasPrefix(upper, "UPDATE"):
		return parseUpdate(s)
	case strings.HasPrefix(upper, "DELETE"):
		return parseDelete(s)
	default:
		return nil, sqlerr.UnsupportedSQL(firstWord(s))
	}
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func parseCreateTable(s string) (Stmt, error) {
	m := createTableRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	table := m[1]
	defs := splitTopLevel(strings.TrimSpace(m[2]), ',')
	cols := make([]ColumnDef, 0, len(defs))
	for _, def := range defs {
		if def == "" {
			continue
		}
		col, err := parseColumnDef(def)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return &CreateTableStmt{Table: table, Columns: cols}, nil
}

func parseColumnDef(def string) (ColumnDef, error) {
	fields := splitFields(def)
	if len(fields) < 2 {
		return ColumnDef{}, sqlerr.Syntax(def)
	}
	name := trimQuotes(fields[0])
	dt, ok := value.NormalizeType(fields[1])
	if !ok {
		return ColumnDef{}, sqlerr.Syntax(def)
	}
	col := ColumnDef{Name: name, Type: dt, Nullable: true}
	for i := 2; i < len(fields); i++ {
		word := strings.ToUpper(fields[i])
		switch {
		case word == "PRIMARY" && i+1 < len(fields) && strings.ToUpper(fields[i+1]) == "KEY":
			col.PrimaryKey = true
			i++
		case word == "UNIQUE":
			col.Unique = true
		case word == "NOT" && i+1 < len(fields) && strings.ToUpper(fields[i+1]) == "NULL":
			col.Nullable = false
			i++
		}
	}
	if col.PrimaryKey {
		col.Unique = true
		col.Nullable = false
	}
	return col, nil
}

func parseAlterTable(s string) (Stmt, error) {
	m := alterTableRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	dt, ok := value.NormalizeType(m[3])
	if !ok {
		return nil, sqlerr.Syntax(s)
	}
	return &AlterTableAddColumnStmt{Table: m[1], Column: m[2], Type: dt}, nil
}

func parseDropTable(s string) (Stmt, error) {
	m := dropTableRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	return &DropTableStmt{Table: m[1]}, nil
}

func parseCreateIndex(s string) (Stmt, error) {
	m := createIndexRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	return &CreateIndexStmt{IndexName: m[1], Table: m[2], Column: m[3]}, nil
}

func parseInsert(s string) (Stmt, error) {
	m := insertRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	table := m[1]
	colParts := splitTopLevel(m[2], ',')
	cols := make([]string, len(colParts))
	for i, c := range colParts {
		cols[i] = strings.TrimSpace(c)
	}
	valParts := splitTopLevel(m[3], ',')
	if len(cols) != len(valParts) {
		return nil, sqlerr.ArityMismatch(len(cols), len(valParts))
	}
	vals := make([]value.Value, len(valParts))
	for i, v := range valParts {
		vals[i] = value.ParseLiteral(v)
	}
	return &InsertStmt{Table: table, Columns: cols, Values: vals}, nil
}

func parseSelect(s string) (Stmt, error) {
	m := selectRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	colsStr := strings.TrimSpace(m[1])
	stmt := &SelectStmt{Table: m[2], Where: strings.TrimSpace(m[3])}
	if colsStr == "*" {
		stmt.Star = true
	} else {
		for _, c := range splitTopLevel(colsStr, ',') {
			stmt.Columns = append(stmt.Columns, strings.TrimSpace(c))
		}
	}
	if ob := strings.TrimSpace(m[4]); ob != "" {
		parts := strings.Fields(ob)
		order := &OrderBy{Column: parts[0]}
		if len(parts) > 1 && strings.EqualFold(parts[1], "DESC") {
			order.Desc = true
		}
		stmt.OrderBy = order
	}
	if lim := strings.TrimSpace(m[5]); lim != "" {
		n, err := strconv.ParseInt(lim, 10, 64)
		if err != nil {
			return nil, sqlerr.Syntax(s)
		}
		stmt.Limit = &n
	}
	return stmt, nil
}

func parseUpdate(s string) (Stmt, error) {
	m := updateRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	assignments := splitTopLevel(m[2], ',')
	set := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a == "" {
			continue
		}
		eq := strings.IndexByte(a, '=')
		if eq < 0 {
			return nil, sqlerr.Syntax(a)
		}
		col := strings.TrimSpace(a[:eq])
		val := value.ParseLiteral(strings.TrimSpace(a[eq+1:]))
		set = append(set, Assignment{Column: col, Value: val})
	}
	return &UpdateStmt{Table: m[1], Set: set, Where: strings.TrimSpace(m[3])}, nil
}

func parseDelete(s string) (Stmt, error) {
	m := deleteRe.FindStringSubmatch(s)
	if m == nil {
		return nil, sqlerr.Syntax(s)
	}
	return &DeleteStmt{Table: m[1], Where: strings.TrimSpace(m[2])}, nil
}

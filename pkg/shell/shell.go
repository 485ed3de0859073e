// Package shell implements tinysql's line-oriented REPL: it recognizes a
// handful of reserved words case-insensitively and forwards everything else
// to pkg/exec, rendering row results as pipe-separated tables.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/exec"
	"github.com/arjunc/tinysql/pkg/snapshot"
	"github.com/arjunc/tinysql/pkg/sqlparse"
)

// Shell is a single REPL session bound to one Engine and snapshot path.
type Shell struct {
	Engine   *exec.Engine
	DBPath   string
	Out      io.Writer
	watcher  *fileWatcher
	autosave bool
}

// New returns a Shell over engine, persisting to dbPath on SAVE/LOAD and
// writing output to out.
func New(engine *exec.Engine, dbPath string, out io.Writer) *Shell {
	return &Shell{Engine: engine, DBPath: dbPath, Out: out}
}

// Run reads lines from in until EOF or EXIT, printing a "SQL> " prompt to
// out when prompt is true. Errors from individual statements are printed
// and never stop the loop.
func (sh *Shell) Run(in io.Reader, prompt bool) {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(sh.Out, "SQL> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if sh.dispatch(line) {
			break
		}
	}
	if sh.watcher != nil {
		sh.watcher.Close()
	}
}

// dispatch handles one line, returning true if the shell should exit.
func (sh *Shell) dispatch(line string) bool {
	upper := strings.ToUpper(line)
	switch {
	case upper == "EXIT":
		if err := snapshot.Save(sh.Engine.DB, sh.DBPath); err != nil {
			fmt.Fprintf(sh.Out, "Error: %s\n", err)
		}
		return true
	case upper == "HELP":
		sh.printHelp()
	case upper == "SCHEMA":
		sh.printSchema()
	case upper == "SAVE":
		sh.save()
	case upper == "LOAD":
		sh.load()
	case upper == "WATCH ON":
		sh.setWatch(true)
	case upper == "WATCH OFF":
		sh.setWatch(false)
	case strings.HasPrefix(upper, "EXPORT "):
		sh.export(strings.TrimSpace(line[len("EXPORT "):]))
	default:
		sh.execute(line)
	}
	return false
}

func (sh *Shell) execute(line string) {
	stmt, err := sqlparse.Parse(line)
	if err != nil {
		log.Debug("parse failed", "stmt", line, "err", err)
		fmt.Fprintf(sh.Out, "Error: %s\n", err)
		return
	}
	result, err := sh.Engine.Execute(stmt)
	if err != nil {
		log.Debug("execute failed", "stmt", line, "err", err)
		fmt.Fprintf(sh.Out, "Error: %s\n", err)
		return
	}
	sh.renderResult(stmt, result)

	if sh.autosave && mutates(stmt) {
		if err := snapshot.Save(sh.Engine.DB, sh.DBPath); err != nil {
			log.Warn("autosave failed", "path", sh.DBPath, "err", err)
		}
	}
}

// mutates reports whether stmt is a kind that can change the database
// (anything but SELECT), so autosave is skipped after reads. A write that
// matched no rows still counts.
func mutates(stmt sqlparse.Stmt) bool {
	switch stmt.(type) {
	case *sqlparse.SelectStmt:
		return false
	default:
		return true
	}
}

func (sh *Shell) renderResult(stmt sqlparse.Stmt, result *exec.Result) {
	switch {
	case result.Rows != nil:
		renderTable(sh.Out, result.Rows, sh.headerOrder(stmt))
	case result.LastInsertID != 0:
		fmt.Fprintf(sh.Out, "1 row affected, id=%d\n", result.LastInsertID)
	default:
		fmt.Fprintf(sh.Out, "%d rows affected\n", result.RowsAffected)
	}
}

// headerOrder returns the column order a SELECT's result rows should be
// rendered in: the explicit column list as written for a projected SELECT,
// or the table's declared column order with the synthetic id column
// appended last for SELECT *.
func (sh *Shell) headerOrder(stmt sqlparse.Stmt) []string {
	sel, ok := stmt.(*sqlparse.SelectStmt)
	if !ok {
		return nil
	}
	if !sel.Star {
		return sel.Columns
	}
	t, ok := sh.Engine.DB.Table(sel.Table)
	if !ok {
		return nil
	}
	headers := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		headers = append(headers, c.Name)
	}
	return append(headers, catalog.IDColumn)
}

func (sh *Shell) save() {
	if err := snapshot.Save(sh.Engine.DB, sh.DBPath); err != nil {
		log.Warn("save failed", "path", sh.DBPath, "err", err)
		fmt.Fprintf(sh.Out, "Error: %s\n", err)
		return
	}
	fmt.Fprintf(sh.Out, "Saved to %s\n", sh.DBPath)
}

func (sh *Shell) load() {
	db, err := snapshot.Load(sh.DBPath)
	if err != nil {
		log.Warn("load failed", "path", sh.DBPath, "err", err)
		fmt.Fprintf(sh.Out, "Error: %s\n", err)
		return
	}
	sh.Engine.DB = db
	fmt.Fprintf(sh.Out, "Loaded from %s\n", sh.DBPath)
}

func (sh *Shell) printHelp() {
	fmt.Fprint(sh.Out, `Commands:
  SAVE                  - save database to the snapshot file
  LOAD                  - load database from the snapshot file
  SCHEMA                - show database schema
  WATCH ON / WATCH OFF  - autosave after every write, and reload if another
                          process overwrites the snapshot file
  EXPORT <table> <path> - write a table to an .xlsx spreadsheet
  EXIT                  - save and exit
  Any SQL statement     - CREATE/ALTER/DROP TABLE, CREATE INDEX, INSERT,
                          SELECT, UPDATE, DELETE
`)
}

func (sh *Shell) printSchema() {
	db := sh.Engine.DB
	fmt.Fprintf(sh.Out, "Database: %s\n", db.Name)
	for _, name := range db.TableNames() {
		t, _ := db.Table(name)
		fmt.Fprintf(sh.Out, "\n%s (%d rows)\n", t.Name, t.RowCount())
		for _, c := range t.Columns {
			fmt.Fprintf(sh.Out, "  %s: %s%s\n", c.Name, c.Type, constraintMarkers(c))
		}
	}
	fmt.Fprintln(sh.Out)
}

func constraintMarkers(c catalog.Column) string {
	var marks []string
	if c.PrimaryKey {
		marks = append(marks, "PK")
	}
	if c.Unique {
		marks = append(marks, "UNIQUE")
	}
	if !c.Nullable {
		marks = append(marks, "NOT NULL")
	}
	if len(marks) == 0 {
		return ""
	}
	return " (" + strings.Join(marks, ", ") + ")"
}

// renderTable prints rows as a pipe-separated table with headers in order.
// An empty result set prints a one-line notice instead. If order is empty
// (the table couldn't be resolved), the first row's keys are sorted as a
// fallback so the output is at least deterministic.
func renderTable(out io.Writer, rows []catalog.Row, order []string) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "Empty result set")
		return
	}
	headers := order
	if len(headers) == 0 {
		headers = fallbackKeys(rows[0])
	}
	fmt.Fprintln(out, strings.Join(headers, " | "))
	fmt.Fprintln(out, strings.Repeat("-", 40))
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = row.Get(h).String()
		}
		fmt.Fprintln(out, strings.Join(cells, " | "))
	}
	fmt.Fprintf(out, "\n%d rows\n", len(rows))
}

// fallbackKeys sorts row's keys alphabetically when no declared column
// order is available.
func fallbackKeys(row catalog.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}


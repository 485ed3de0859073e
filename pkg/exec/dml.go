package exec

import (
	"github.com/arjunc/tinysql/pkg/sqlerr"
	"github.com/arjunc/tinysql/pkg/sqlparse"
	"github.com/arjunc/tinysql/pkg/value"
	"github.com/arjunc/tinysql/pkg/whereeval"
)

func (e *Engine) execInsert(s *sqlparse.InsertStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	values := make(map[string]value.Value, len(s.Columns))
	for i, name := range s.Columns {
		col, exists := t.ColumnByName(name)
		if !exists {
			return nil, sqlerr.NoColumn(s.Table, name)
		}
		values[col.Name] = s.Values[i]
	}
	id, err := t.Insert(values)
	if err != nil {
		return nil, err
	}
	return &Result{RowsAffected: 1, LastInsertID: id}, nil
}

func (e *Engine) execUpdate(s *sqlparse.UpdateStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	set := make(map[string]value.Value, len(s.Set))
	for _, a := range s.Set {
		col, exists := t.ColumnByName(a.Column)
		if !exists {
			return nil, sqlerr.NoColumn(s.Table, a.Column)
		}
		set[col.Name] = a.Value
	}
	pred := whereeval.Compile(s.Where)
	n, err := t.Update(set, pred)
	if err != nil {
		return nil, err
	}
	return &Result{RowsAffected: n}, nil
}

func (e *Engine) execDelete(s *sqlparse.DeleteStmt) (*Result, error) {
	t, ok := e.DB.Table(s.Table)
	if !ok {
		return nil, sqlerr.NoTable(s.Table)
	}
	pred := whereeval.Compile(s.Where)
	n := t.Delete(pred)
	return &Result{RowsAffected: n}, nil
}

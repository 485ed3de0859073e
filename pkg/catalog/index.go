package catalog

import (
	"sort"

	"github.com/arjunc/tinysql/pkg/value"
)

// Index maps a column value to the sorted list of 1-based row positions
// currently holding it.
type Index struct {
	Column string
	byVal  map[value.Value][]int
}

func newIndex(column string) *Index {
	return &Index{Column: column, byVal: make(map[value.Value][]int)}
}

// add records that rowID (1-based) now holds v, keeping the posting list
// sorted.
func (ix *Index) add(v value.Value, rowID int) {
	if v.IsNull() {
		return
	}
	list := ix.byVal[v]
	i := sort.SearchInts(list, rowID)
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = rowID
	ix.byVal[v] = list
}

// remove drops rowID from v's posting list, if present.
func (ix *Index) remove(v value.Value, rowID int) {
	if v.IsNull() {
		return
	}
	list := ix.byVal[v]
	for i, id := range list {
		if id == rowID {
			ix.byVal[v] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Lookup returns the row positions currently holding v.
func (ix *Index) Lookup(v value.Value) []int {
	return ix.byVal[v]
}

// rebuild discards all postings and repopulates from rows, which is how
// Table.Delete restores the index after removing rows and how snapshot.Load
// reconstructs indexes after a restore.
func (ix *Index) rebuild(rows []Row) {
	ix.byVal = make(map[value.Value][]int)
	for i, row := range rows {
		if v, ok := row[ix.Column]; ok {
			ix.add(v, i+1)
		}
	}
}

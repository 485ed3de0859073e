// Package snapshot implements tinysql's whole-database codec: a single byte
// stream holding the database name and, per table, its column metadata and
// full row vector. It is not a public wire format, so gob — the language's
// self-describing binary encoder — is a reasonable fit (see DESIGN.md for
// why this one concern stays on the standard library).
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/sqlerr"
)

// magic identifies a tinysql snapshot file; version is bumped whenever the
// on-disk shape of tableSnapshot changes incompatibly.
const (
	magic   = "TSQL"
	version = byte(1)
)

// tableSnapshot is the serialized shape of one catalog.Table: column
// metadata and the raw row vector, nothing derived (no indexes, no unique
// sets — those are rebuilt on Load).
type tableSnapshot struct {
	Name    string
	Columns []catalog.Column
	Rows    []catalog.Row
}

// document is the top-level gob payload, wrapped by the magic+version
// header so a stray file is rejected before gob even sees it.
type document struct {
	ID     string
	DBName string
	Tables []tableSnapshot
}

// Save writes db to path as a single gob-encoded snapshot, stamped with a
// fresh id for traceability across successive saves. The whole buffer is
// built in memory and written with one os.WriteFile call, which truncates
// and rewrites the file in place; no fsync or temp-file rename is attempted,
// so the write is not crash-safe.
func Save(db *catalog.Database, path string) error {
	doc := document{ID: uuid.NewString(), DBName: db.Name}
	for _, name := range db.TableNames() {
		t, _ := db.Table(name)
		doc.Tables = append(doc.Tables, tableSnapshot{
			Name:    t.Name,
			Columns: t.Columns,
			Rows:    t.RawRows(),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.WriteByte(version)
	if err := gob.NewEncoder(&buf).Encode(doc); err != nil {
		return sqlerr.IO(fmt.Errorf("encoding snapshot: %w", err))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return sqlerr.IO(fmt.Errorf("writing %s: %w", path, err))
	}
	log.Debug("snapshot saved", "path", path, "id", doc.ID, "tables", len(doc.Tables))
	return nil
}

// Load reads a snapshot written by Save and rebuilds a Database from it.
// Every index and unique set is recomputed from the restored rows rather
// than trusted from the file, and an unrecognized header or a gob decode
// failure both surface as sqlerr.FormatError.
func Load(path string) (*catalog.Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, sqlerr.IO(fmt.Errorf("reading %s: %w", path, err))
	}
	if len(raw) < len(magic)+1 || string(raw[:len(magic)]) != magic {
		return nil, sqlerr.BadFormat("missing snapshot magic")
	}
	if raw[len(magic)] != version {
		return nil, sqlerr.BadFormat(fmt.Sprintf("unsupported snapshot version %d", raw[len(magic)]))
	}

	var doc document
	dec := gob.NewDecoder(bytes.NewReader(raw[len(magic)+1:]))
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, sqlerr.BadFormat(fmt.Sprintf("decoding snapshot: %v", err))
	}

	db := catalog.New(doc.DBName)
	for _, ts := range doc.Tables {
		db.PutTable(catalog.LoadTable(ts.Name, ts.Columns, ts.Rows))
	}
	log.Debug("snapshot loaded", "path", path, "id", doc.ID, "tables", len(doc.Tables))
	return db, nil
}

// Exists reports whether path names an existing snapshot file. Its presence
// signals that a caller should load rather than start with an empty
// database.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

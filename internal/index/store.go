package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS classes (
    name TEXT PRIMARY KEY,
    package TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    class TEXT NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    ord INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_class ON members(class);
CREATE INDEX IF NOT EXISTS idx_members_name ON members(name);
`

// Store persists a completed scan to SQLite so tooling can inspect the
// last index without rescanning. The in-memory table stays canonical:
// the store is an export sink, never a source for analysis.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens or creates the snapshot database at the given path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	// WAL for concurrent reader tooling
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func initSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Fresh or pre-schema database
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("setting schema version: %w", err)
		}
		return nil
	}

	if version < schemaVersion {
		if _, err := db.Exec("UPDATE schema_version SET version = ?", schemaVersion); err != nil {
			return fmt.Errorf("updating schema version: %w", err)
		}
	}

	return nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given table in one
// transaction.
func (s *Store) Save(table *Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM members"); err != nil {
		return fmt.Errorf("clearing members: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM classes"); err != nil {
		return fmt.Errorf("clearing classes: %w", err)
	}

	classStmt, err := tx.Prepare("INSERT INTO classes (name, package) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing class insert: %w", err)
	}
	defer classStmt.Close()

	memberStmt, err := tx.Prepare("INSERT INTO members (class, kind, name, ord) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing member insert: %w", err)
	}
	defer memberStmt.Close()

	for _, rec := range table.Classes() {
		if _, err := classStmt.Exec(rec.Name, rec.Package); err != nil {
			return fmt.Errorf("inserting class %s: %w", rec.Name, err)
		}
		for i, fn := range rec.Functions {
			if _, err := memberStmt.Exec(rec.Name, "function", fn, i); err != nil {
				return fmt.Errorf("inserting function %s.%s: %w", rec.Name, fn, err)
			}
		}
		for i, v := range rec.Variables {
			if _, err := memberStmt.Exec(rec.Name, "variable", v, i); err != nil {
				return fmt.Errorf("inserting variable %s.%s: %w", rec.Name, v, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load rebuilds a table from the stored snapshot, preserving member
// declaration order.
func (s *Store) Load() (*Table, error) {
	table := NewTable()

	rows, err := s.db.Query("SELECT name, package FROM classes")
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec := &ClassRecord{}
		if err := rows.Scan(&rec.Name, &rec.Package); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		table.put(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberRows, err := s.db.Query("SELECT class, kind, name FROM members ORDER BY class, kind, ord")
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var class, kind, name string
		if err := memberRows.Scan(&class, &kind, &name); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		rec, ok := table.Class(class)
		if !ok {
			continue
		}
		switch kind {
		case "function":
			rec.Functions = append(rec.Functions, name)
		case "variable":
			rec.Variables = append(rec.Variables, name)
		}
	}

	return table, memberRows.Err()
}

// Stats returns the stored class and member counts.
func (s *Store) Stats() (classCount, memberCount int, err error) {
	if err := s.db.QueryRow("SELECT COUNT(*) FROM classes").Scan(&classCount); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM members").Scan(&memberCount); err != nil {
		return 0, 0, err
	}
	return classCount, memberCount, nil
}

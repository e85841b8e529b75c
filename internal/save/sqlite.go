package save

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// schema migrations, applied in order and recorded in _migrations
var schema = []struct {
	name string
	sql  string
}{
	{"001_save_data", `
CREATE TABLE save_data (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    version    INTEGER NOT NULL,
    body       TEXT    NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`},
	{"002_completions", `
CREATE TABLE completions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    level       INTEGER NOT NULL,
    stars       INTEGER NOT NULL,
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`},
}

// SQLiteStore keeps the record in a single-row SQLite table
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and applies
// pending schema migrations
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range schema {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("applied")
	}
	return nil
}

// Load reads the record, writing defaults when none exists yet
func (s *SQLiteStore) Load() (*Data, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM save_data WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info().Msg("no saved record; creating defaults")
		d := Default()
		return d, s.Save(d)
	}
	if err != nil {
		return nil, fmt.Errorf("query save_data: %w", err)
	}
	return Decode([]byte(body))
}

// Save upserts the record
func (s *SQLiteStore) Save(d *Data) error {
	body, err := d.Encode()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
        INSERT INTO save_data (id, version, body) VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            version = excluded.version,
            body = excluded.body,
            updated_at = CURRENT_TIMESTAMP`,
		d.Version, string(body),
	)
	if err != nil {
		return fmt.Errorf("write save_data: %w", err)
	}
	return nil
}

// LogCompletion appends a level win to the completion history
func (s *SQLiteStore) LogCompletion(levelIdx, rank int) error {
	if _, err := s.db.Exec(`INSERT INTO completions (level, stars) VALUES (?, ?)`, levelIdx, rank); err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

// Completions returns how many wins have been logged for a level
func (s *SQLiteStore) Completions(levelIdx int) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM completions WHERE level=?`, levelIdx).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

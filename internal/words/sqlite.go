// internal/words/sqlite.go
//
// SQLite-backed word source.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Loading a List for one word length from an existing database, read-only.
//   - Importing word files into the DB (creating it if needed).

package words

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OpenDB opens (and creates if missing) a SQLite database file and brings
// its schema up to date.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/words.db, etc.
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
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies migrations/*.sql in lexical order, each in its own
// transaction, skipping files already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
	}
	return nil
}

// LoadSQLite reads the words of the given length from the database at dsn.
// The database must already exist; it is opened read-only and never migrated,
// so a mistyped path fails instead of leaving an empty database behind.
func LoadSQLite(ctx context.Context, dsn string, length int) (*List, error) {
	if _, err := os.Stat(dsn); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("word database %s: %w", dsn, err)
		}
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+dsn+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT word, answer FROM words WHERE length=? ORDER BY word`, length)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var answers, allowed []string
	for rows.Next() {
		var (
			w      string
			answer bool
		)
		if err := rows.Scan(&w, &answer); err != nil {
			return nil, err
		}
		if answer {
			answers = append(answers, w)
		} else {
			allowed = append(allowed, w)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(length, answers, allowed)
}

// ImportSQLite stores answers and allowed words of any length in the
// database at dsn. A word imported as an answer stays an answer.
// It returns the number of words written.
func ImportSQLite(ctx context.Context, dsn string, answers, allowed []string) (int, error) {
	db, err := OpenDB(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO words (word, length, answer) VALUES (?, ?, ?)
        ON CONFLICT(word) DO UPDATE SET answer = MAX(answer, excluded.answer)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	put := func(list []string, answer bool) error {
		for _, w := range list {
			w, ok := normalize(w, len(strings.TrimSpace(w)))
			if !ok || w == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, w, len(w), answer); err != nil {
				return fmt.Errorf("insert %s: %w", w, err)
			}
			n++
		}
		return nil
	}
	if err := put(answers, true); err != nil {
		return 0, err
	}
	if err := put(allowed, false); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

package connection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteMemory is the path of a private in-memory database.
const SqliteMemory = ":memory:"

// Sqlite describes a SQLite database file.
type Sqlite struct {
	Path string
}

// Connect opens the database, creating its directory if needed.
func (s *Sqlite) Connect(ctx context.Context) (*sqlx.DB, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	dsn := s.Path
	if s.Path != SqliteMemory {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating sqlite directory: %w", err)
		}
		dsn = "file:" + s.Path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite: %w", err)
	}

	// SQLite allows a single writer; an in-memory database also only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	return db, nil
}

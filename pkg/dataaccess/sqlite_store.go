package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// sqliteSchema is applied in order every time the store is opened.
var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS panels (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guild_id TEXT NOT NULL,
	channel_id TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	banner_url TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	button_label TEXT NOT NULL,
	button_color TEXT NOT NULL,
	button_emoji TEXT NOT NULL,
	staff_roles TEXT NOT NULL DEFAULT '[]',
	dropdown_options TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
`, `
CREATE INDEX IF NOT EXISTS panels_guild_id_idx ON panels(guild_id);
`, `
CREATE TABLE IF NOT EXISTS tickets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	panel_id INTEGER NOT NULL,
	guild_id TEXT NOT NULL,
	channel_id TEXT NOT NULL UNIQUE,
	creator_id TEXT NOT NULL,
	status TEXT NOT NULL,
	claimed_by TEXT NOT NULL DEFAULT '',
	category_selected TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	closed_at TIMESTAMP
);
`, `
CREATE UNIQUE INDEX IF NOT EXISTS tickets_one_open_per_creator_idx ON tickets(creator_id, panel_id) WHERE status = 'open';
`}

type sqliteStore struct {
	// l is the logger.
	l *slog.Logger

	// db is the database.
	db *sqlx.DB
}

// NewSqliteStore creates a store backed by the given SQLite database and applies the schema.
func NewSqliteStore(ctx context.Context, l *slog.Logger, db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite database is nil")
	}

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("error applying schema: %w", err)
		}
	}

	return &sqliteStore{
		l:  l.With(slog.String(logging.KeyDal, "sqlite")),
		db: db,
	}, nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging sqlite: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("error closing sqlite: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"careercompass/internal/modules/session/domain"
	sessionout "careercompass/internal/modules/session/port/out"
	"careercompass/internal/platform/clock"
	apperrors "careercompass/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteLocalStore keeps session keys in a key/value table, the on-disk
// counterpart of browser local storage.
type SQLiteLocalStore struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteLocalStore(dbPath string, clk clock.Clock) (sessionout.Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// tea.Cmd goroutines share the handle; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &SQLiteLocalStore{db: db, clock: clk}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteLocalStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS local_storage (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create local_storage table: %w", err)
	}
	return nil
}

func (s *SQLiteLocalStore) Save(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO local_storage (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.clock.Now().Format("2006-01-02T15:04:05Z07:00")
	values := session.Values()
	for _, key := range domain.Keys {
		if _, err := tx.ExecContext(ctx, stmt, key, values[key], now); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session save: %w", err)
	}
	return nil
}

func (s *SQLiteLocalStore) Load(ctx context.Context) (domain.Session, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(domain.Keys)), ",")
	args := make([]any, len(domain.Keys))
	for i, key := range domain.Keys {
		args[i] = key
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM local_storage WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return domain.Session{}, fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Session{}, fmt.Errorf("scan session: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("iterate session: %w", err)
	}
	session := domain.FromValues(values)
	if !session.Valid() {
		return domain.Session{}, apperrors.ErrNoSession
	}
	return session, nil
}

// Clear wipes every key, not only the session ones.
func (s *SQLiteLocalStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage`); err != nil {
		return fmt.Errorf("clear local storage: %w", err)
	}
	return nil
}

func (s *SQLiteLocalStore) Close() error {
	return s.db.Close()
}

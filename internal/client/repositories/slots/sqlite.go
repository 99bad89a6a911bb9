package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/daastan/internal/client/migrations"
	"github.com/dmitrijs2005/daastan/internal/dbx"
	"github.com/dmitrijs2005/daastan/internal/filex"
	"github.com/google/uuid"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenSQLite opens (creating if needed) the session database at dsn and
// applies migrations. ":memory:" opens a private shared-cache database
// behind a single connection.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	shared := false
	switch {
	case dsn == ":memory:":
		dsn = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
		shared = true
	case !strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, "_pragma="):
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		// other processes may hold the write lock briefly
		dsn += sep + "_pragma=busy_timeout(5000)"
		if _, err := filex.EnsureParentDir(dsnPath(dsn)); err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if shared {
		// shared-cache table locks fail fast with SQLITE_LOCKED instead of
		// honouring busy_timeout
		db.SetMaxOpenConns(1)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dsnPath returns the file path part of a SQLite DSN.
func dsnPath(dsn string) string {
	p, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	return p
}

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds a repository to db, which may be a *sql.DB or a
// *sql.Tx. Apply opens its own transaction only when db can start one.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := set(ctx, r.db, key, value); err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if err := del(ctx, r.db, key); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_slots`); err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session_slots`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slot rows: %w", err)
	}
	return result, nil
}

// Apply writes every entry of b in a single transaction.
func (r *SQLiteRepository) Apply(ctx context.Context, b Batch) error {
	if len(b) == 0 {
		return nil
	}
	starter, ok := r.db.(dbx.TxStarter)
	if !ok {
		return applyBatch(ctx, r.db, b)
	}
	return dbx.WithTx(ctx, starter, func(ctx context.Context, tx dbx.DBTX) error {
		return applyBatch(ctx, tx, b)
	})
}

func applyBatch(ctx context.Context, db dbx.DBTX, b Batch) error {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if v := b[k]; v != nil {
			if err := set(ctx, db, k, v); err != nil {
				return fmt.Errorf("failed to set slot[%s]: %w", k, err)
			}
			continue
		}
		if err := del(ctx, db, k); err != nil {
			return fmt.Errorf("failed to delete slot[%s]: %w", k, err)
		}
	}
	return nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session_slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM session_slots WHERE key = ?`, key)
	return err
}

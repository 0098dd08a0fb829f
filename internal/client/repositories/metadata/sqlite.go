// Package metadata is the key/value store backing the persisted session.
// Keys are short names such as "token" or "username"; values are raw bytes.
package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// SQLiteRepository is bound to a dbx.DBTX, so the same code runs against the
// database or inside a transaction opened with dbx.WithTx.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to db, which may be a *sql.DB or
// a *sql.Tx obtained through dbx.WithTx.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders, args := inClause(keys)
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete metadata%v: %w", keys, err)
	}
	return nil
}

// List returns the rows for keys in a single query, or every row when no key
// is given. Missing keys are simply absent from the map.
func (r *SQLiteRepository) List(ctx context.Context, keys ...string) (map[string][]byte, error) {
	query := `SELECT key, value FROM metadata`
	placeholders, args := inClause(keys)
	if len(keys) > 0 {
		query += ` WHERE key IN (` + placeholders + `)`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		if value == nil {
			value = []byte{}
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}
	return result, nil
}

func inClause(keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(keys)), ","), args
}

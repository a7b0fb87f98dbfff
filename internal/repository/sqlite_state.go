package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/plangrid/internal/db"
)

// SQLiteStateRepo implements StateRepo on the app_state table.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Load(ctx context.Context, key string) (*StateRecord, error) {
	query := `SELECT key, schema_version, payload, updated_at FROM app_state WHERE key = ?`

	var (
		rec       StateRecord
		payload   string
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&rec.Key, &rec.SchemaVersion, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading state %q: %w", key, err)
	}
	rec.Payload = []byte(payload)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return &rec, nil
}

func (r *SQLiteStateRepo) Save(ctx context.Context, rec *StateRecord) error {
	query := `INSERT INTO app_state (key, schema_version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.Key,
		rec.SchemaVersion,
		string(rec.Payload),
		formatTimestamp(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving state %q: %w", rec.Key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DiabolusGX/snack-track/internal/repository"
)

type settingRepo struct {
	db *sql.DB
}

func (r *settingRepo) Get(ctx context.Context, key string) (*repository.Setting, error) {
	const query = `SELECT key, value, updated_at FROM settings WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, key)
	var s repository.Setting
	var updatedAt int64
	if err := row.Scan(&s.Key, &s.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &s, nil
}

func (r *settingRepo) Upsert(ctx context.Context, setting *repository.Setting) error {
	const stmt = `INSERT INTO settings(key, value, updated_at) VALUES(?, ?, ?)
                  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	updatedAt := setting.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, stmt, setting.Key, setting.Value, updatedAt.Unix())
	return err
}

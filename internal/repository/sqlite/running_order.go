package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/DiabolusGX/snack-track/internal/order"
)

type runningOrderRepo struct {
	db *sql.DB
}

func (r *runningOrderRepo) List(ctx context.Context) ([]order.RunningOrder, error) {
	const query = `SELECT hash_id, status, label FROM running_orders ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshot []order.RunningOrder
	for rows.Next() {
		var rec order.RunningOrder
		if err := rows.Scan(&rec.HashID, &rec.Status, &rec.Label); err != nil {
			return nil, err
		}
		snapshot = append(snapshot, rec)
	}
	return snapshot, rows.Err()
}

// Replace swaps the whole snapshot in one transaction so a reader never
// observes a half-written generation.
func (r *runningOrderRepo) Replace(ctx context.Context, snapshot []order.RunningOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM running_orders`); err != nil {
		return err
	}

	const stmt = `INSERT INTO running_orders(hash_id, status, label, updated_at) VALUES(?, ?, ?, ?)`
	now := time.Now().UTC().Unix()
	for _, rec := range snapshot {
		if _, err := tx.ExecContext(ctx, stmt, rec.HashID, rec.Status, rec.Label, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

package repository

import (
	"context"

	"github.com/DiabolusGX/snack-track/internal/order"
)

// Store exposes one repository per persisted aggregate.
type Store interface {
	Settings() SettingRepository
	RunningOrders() RunningOrderRepository
}

// SettingRepository handles whole-value reads and writes of scalar
// settings. Get returns ErrNotFound for an absent key so callers can tell
// "not configured" apart from a storage failure.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, setting *Setting) error
}

// RunningOrderRepository persists the snapshot of currently-tracked live
// orders. The snapshot is read and replaced as a whole once per poll
// cycle; there are no partial updates.
type RunningOrderRepository interface {
	List(ctx context.Context) ([]order.RunningOrder, error)
	Replace(ctx context.Context, snapshot []order.RunningOrder) error
}

package sqlite

import (
	"database/sql"

	"github.com/DiabolusGX/snack-track/internal/repository"
)

// Store wires the SQLite-backed repository implementations.
type Store struct {
	db            *sql.DB
	settings      repository.SettingRepository
	runningOrders repository.RunningOrderRepository
}

// NewStore constructs a SQLite-backed repository store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		settings:      &settingRepo{db: db},
		runningOrders: &runningOrderRepo{db: db},
	}
}

func (s *Store) Settings() repository.SettingRepository {
	return s.settings
}

func (s *Store) RunningOrders() repository.RunningOrderRepository {
	return s.runningOrders
}

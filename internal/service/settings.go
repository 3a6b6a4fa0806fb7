// Package service holds typed access to persisted settings on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DiabolusGX/snack-track/internal/cache"
	"github.com/DiabolusGX/snack-track/internal/repository"
)

const settingCacheTTL = time.Minute

// Settings reads and writes tracker settings, with a short-lived read
// cache invalidated on every write.
type Settings struct {
	repo   repository.SettingRepository
	cache  cache.Store
	logger *slog.Logger
}

// NewSettings builds the settings service.
func NewSettings(repo repository.SettingRepository, store cache.Store, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = cache.NewStore(cache.Options{DefaultTTL: settingCacheTTL})
	}
	return &Settings{repo: repo, cache: store, logger: logger}
}

// RoutingID returns the configured webhook routing identifier.
// ErrRoutingNotConfigured when absent; storage errors propagate as-is so
// the cycle does not mistake a broken store for a missing setting.
func (s *Settings) RoutingID(ctx context.Context) (string, error) {
	value, err := s.get(ctx, repository.SettingRoutingID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrRoutingNotConfigured
	}
	if err != nil {
		return "", fmt.Errorf("read routing id: %w", err)
	}
	if value == "" {
		return "", ErrRoutingNotConfigured
	}
	return value, nil
}

// SetRoutingID persists the routing identifier.
func (s *Settings) SetRoutingID(ctx context.Context, routingID string) error {
	return s.set(ctx, repository.SettingRoutingID, routingID)
}

// TrackerEnabled reports the persisted indicator state. A missing setting
// defaults to disabled: the tracker stays off until the settings-save
// flow arms it.
func (s *Settings) TrackerEnabled(ctx context.Context) (bool, error) {
	value, err := s.get(ctx, repository.SettingTrackerEnabled)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read tracker indicator: %w", err)
	}
	return value == "on", nil
}

// SetTrackerEnabled persists the indicator state.
func (s *Settings) SetTrackerEnabled(ctx context.Context, enabled bool) error {
	value := "off"
	if enabled {
		value = "on"
	}
	return s.set(ctx, repository.SettingTrackerEnabled, value)
}

func (s *Settings) get(ctx context.Context, key string) (string, error) {
	if value, ok := s.cache.GetString(ctx, key); ok {
		return value, nil
	}
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if err := s.cache.SetString(ctx, key, setting.Value, settingCacheTTL); err != nil {
		s.logger.Warn("setting cache write failed", "key", key, "error", err)
	}
	return setting.Value, nil
}

func (s *Settings) set(ctx context.Context, key, value string) error {
	err := s.repo.Upsert(ctx, &repository.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	s.cache.Delete(ctx, key)
	return nil
}

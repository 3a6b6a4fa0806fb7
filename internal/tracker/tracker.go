// Package tracker runs the poll cycle: fetch the current order list,
// reconcile it against the persisted snapshot, dispatch notifications for
// every change, and persist the next snapshot.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/DiabolusGX/snack-track/internal/notifier"
	"github.com/DiabolusGX/snack-track/internal/order"
	"github.com/DiabolusGX/snack-track/internal/provider"
	"github.com/DiabolusGX/snack-track/internal/repository"
	"github.com/DiabolusGX/snack-track/internal/service"
)

// Indicator is the tracker's visible on/off state, the daemon's analogue
// of the extension badge.
type Indicator int32

const (
	IndicatorOff Indicator = iota
	IndicatorOn
)

func (i Indicator) String() string {
	if i == IndicatorOn {
		return "on"
	}
	return "off"
}

// OrderSource supplies the current order list.
type OrderSource interface {
	FetchOrders(ctx context.Context) ([]order.Order, error)
}

// Dispatcher pushes notifications for reconciliation events.
type Dispatcher interface {
	Dispatch(ctx context.Context, routingID string, events []order.Event) []notifier.Outcome
}

// CycleSummary describes the most recent completed cycle.
type CycleSummary struct {
	At     time.Time `json:"at"`
	Events int       `json:"events"`
	Error  string    `json:"error,omitempty"`
}

// Tracker owns the indicator and executes poll cycles one at a time.
type Tracker struct {
	settings   *service.Settings
	source     OrderSource
	snapshots  repository.RunningOrderRepository
	dispatcher Dispatcher
	alerts     notifier.Notifier
	metrics    *Metrics
	logger     *slog.Logger

	// mu serializes whole cycles: the snapshot read-then-write is not
	// atomic, so an overlapping timer tick must wait behind the cycle in
	// flight.
	mu        sync.Mutex
	indicator atomic.Int32

	lastMu sync.RWMutex
	last   CycleSummary
}

// New wires a tracker. The initial indicator state comes from the caller,
// which reads it from persisted settings at boot.
func New(settings *service.Settings, source OrderSource, snapshots repository.RunningOrderRepository, dispatcher Dispatcher, alerts notifier.Notifier, metrics *Metrics, logger *slog.Logger, initial Indicator) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		settings:   settings,
		source:     source,
		snapshots:  snapshots,
		dispatcher: dispatcher,
		alerts:     alerts,
		metrics:    metrics,
		logger:     logger,
	}
	t.indicator.Store(int32(initial))
	return t
}

// Name returns the job identifier for the scheduler.
func (t *Tracker) Name() string { return "orders.track" }

// Indicator reports the current visible state.
func (t *Tracker) Indicator() Indicator {
	return Indicator(t.indicator.Load())
}

// SetIndicator flips the visible state and persists it so a restart comes
// back in the same state. Persistence failures are logged only; the
// in-memory state is authoritative for the running process.
func (t *Tracker) SetIndicator(ctx context.Context, state Indicator) {
	t.indicator.Store(int32(state))
	if err := t.settings.SetTrackerEnabled(ctx, state == IndicatorOn); err != nil {
		t.logger.Warn("indicator persist failed", "state", state.String(), "error", err)
	}
}

// LastCycle returns a copy of the most recent cycle summary.
func (t *Tracker) LastCycle() CycleSummary {
	t.lastMu.RLock()
	defer t.lastMu.RUnlock()
	return t.last
}

// Run executes one poll cycle. Cycles never overlap; a tick that fires
// mid-cycle waits for the previous one. While the indicator is off the
// tick is a no-op until the settings-save flow re-arms it.
func (t *Tracker) Run(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Indicator() == IndicatorOff {
		t.logger.Debug("tracker disabled, skipping cycle")
		return nil
	}

	events, err := t.runCycle(ctx)
	t.recordCycle(events, err)
	if err != nil {
		t.metrics.CycleFinished(classify(err))
		t.SetIndicator(ctx, IndicatorOff)
		t.alert(ctx, err)
		return err
	}
	t.metrics.CycleFinished(cycleSuccess)
	return nil
}

func (t *Tracker) runCycle(ctx context.Context) (int, error) {
	routingID, err := t.settings.RoutingID(ctx)
	if err != nil {
		return 0, err
	}

	orders, err := t.source.FetchOrders(ctx)
	if err != nil {
		return 0, err
	}

	previous, err := t.snapshots.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	events, next := order.Reconcile(orders, previous)
	outcomes := t.dispatcher.Dispatch(ctx, routingID, events)
	for _, out := range outcomes {
		t.metrics.EventDispatched(out)
	}

	// The snapshot advances even past failed deliveries: a transition is
	// notified at most once, never replayed on the next poll.
	if err := t.snapshots.Replace(ctx, next); err != nil {
		return len(events), fmt.Errorf("persist snapshot: %w", err)
	}

	t.logger.Info("cycle complete", "orders", len(orders), "events", len(events), "tracked", len(next))
	return len(events), nil
}

func (t *Tracker) recordCycle(events int, err error) {
	summary := CycleSummary{At: time.Now().UTC(), Events: events}
	if err != nil {
		summary.Error = err.Error()
	}
	t.lastMu.Lock()
	t.last = summary
	t.lastMu.Unlock()
}

// alert surfaces a cycle failure to the user with a call to action.
func (t *Tracker) alert(ctx context.Context, cause error) {
	message := "Order tracking stopped: " + cause.Error()
	switch {
	case errors.Is(cause, service.ErrRoutingNotConfigured):
		message = "Open Snack Track settings and save a routing id to start tracking."
	case errors.Is(cause, provider.ErrUnauthenticated):
		message = "Log in to your delivery account again to resume order tracking."
	case errors.Is(cause, provider.ErrUnavailable):
		message = "The delivery provider is unreachable; tracking paused until you re-enable it."
	}
	n := notifier.Notification{
		ID:      uuid.NewString(),
		Title:   "Snack Track paused",
		Message: message,
		Actions: []string{"Open settings"},
	}
	if err := t.alerts.Notify(ctx, n); err != nil {
		t.logger.Warn("failure alert not shown", "error", err)
	}
}

const (
	cycleSuccess     = "success"
	cycleConfigError = "config_error"
	cycleAuthError   = "auth_error"
	cycleProvider    = "provider_error"
	cycleStorage     = "storage_error"
)

func classify(err error) string {
	switch {
	case errors.Is(err, service.ErrRoutingNotConfigured):
		return cycleConfigError
	case errors.Is(err, provider.ErrUnauthenticated):
		return cycleAuthError
	case errors.Is(err, provider.ErrUnavailable):
		return cycleProvider
	default:
		return cycleStorage
	}
}

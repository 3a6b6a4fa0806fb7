// Package order holds the canonical order model and the reconciliation
// engine that diffs a fresh provider fetch against the persisted snapshot.
package order

// Status is the provider's small integer order state.
type Status int

// Terminal statuses observed on the provider feed. An order that reaches
// one of these is no longer tracked.
const (
	StatusDelivered Status = 6
	StatusCancelled Status = 7
	StatusRefunded  Status = 8
)

// PaymentConfirmed is the provider's payment_status value for a paid order.
const PaymentConfirmed = 1

// Order is the canonical in-memory order shape, rebuilt from the provider
// on every poll and never persisted as-is.
type Order struct {
	OrderID         uint64
	HashID          string
	Status          Status
	PaymentStatus   int
	DeliveryLabel   string
	DeliveryMessage string
	RestaurantName  string
}

// RunningOrder is the minimal projection persisted between polls: just
// enough to detect a future status or label change.
type RunningOrder struct {
	HashID string
	Status Status
	Label  string
}

// IsRunning reports whether the order is still worth tracking: paid and
// not yet in a terminal state. This predicate is the sole authority for
// snapshot membership.
func IsRunning(o Order) bool {
	switch o.Status {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return false
	}
	return o.PaymentStatus == PaymentConfirmed
}

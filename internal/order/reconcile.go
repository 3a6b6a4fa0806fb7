package order

// EventKind classifies a notification-worthy change.
type EventKind string

const (
	// KindNew marks an order seen for the first time while still live.
	KindNew EventKind = "new"
	// KindUpdated marks a tracked order whose status or label moved.
	KindUpdated EventKind = "updated"
)

// Event is a transient change record handed to the dispatch layer. It is
// never persisted.
type Event struct {
	Kind  EventKind
	Order Order
}

// Reconcile diffs the current fetch against the previous snapshot. It
// returns the notification events for every changed order and the next
// snapshot to persist.
//
// Events are ordered: all updates in input order, then all new orders in
// input order. The next snapshot carries previous records that did not
// change, plus the changed orders that are still live with status and
// label refreshed; changed orders that went terminal are retired. Orders
// never seen live (first observed already terminal or unpaid) produce no
// event and are never tracked.
func Reconcile(current []Order, previous []RunningOrder) ([]Event, []RunningOrder) {
	prev := make(map[string]RunningOrder, len(previous))
	for _, rec := range previous {
		prev[rec.HashID] = rec
	}

	var updated, fresh []Order
	for _, o := range current {
		rec, tracked := prev[o.HashID]
		if tracked {
			if rec.Status != o.Status || rec.Label != o.DeliveryLabel {
				updated = append(updated, o)
			}
			continue
		}
		if IsRunning(o) {
			fresh = append(fresh, o)
		}
	}

	events := make([]Event, 0, len(updated)+len(fresh))
	for _, o := range updated {
		events = append(events, Event{Kind: KindUpdated, Order: o})
	}
	for _, o := range fresh {
		events = append(events, Event{Kind: KindNew, Order: o})
	}

	changed := make(map[string]struct{}, len(events))
	for _, ev := range events {
		changed[ev.Order.HashID] = struct{}{}
	}

	next := make([]RunningOrder, 0, len(previous)+len(fresh))
	for _, rec := range previous {
		if _, ok := changed[rec.HashID]; !ok {
			next = append(next, rec)
		}
	}
	for _, ev := range events {
		if !IsRunning(ev.Order) {
			continue
		}
		next = append(next, RunningOrder{
			HashID: ev.Order.HashID,
			Status: ev.Order.Status,
			Label:  ev.Order.DeliveryLabel,
		})
	}
	return events, next
}

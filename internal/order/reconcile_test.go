package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRunning(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"paid and in flight", Order{Status: 3, PaymentStatus: PaymentConfirmed}, true},
		{"paid and just placed", Order{Status: 0, PaymentStatus: PaymentConfirmed}, true},
		{"delivered", Order{Status: StatusDelivered, PaymentStatus: PaymentConfirmed}, false},
		{"cancelled", Order{Status: StatusCancelled, PaymentStatus: PaymentConfirmed}, false},
		{"refunded", Order{Status: StatusRefunded, PaymentStatus: PaymentConfirmed}, false},
		{"unpaid", Order{Status: 0, PaymentStatus: 0}, false},
		{"unpaid and terminal", Order{Status: StatusDelivered, PaymentStatus: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRunning(tt.order))
		})
	}
}

func TestReconcileNewOrder(t *testing.T) {
	current := []Order{{OrderID: 42, HashID: "A", Status: 0, PaymentStatus: 1, DeliveryLabel: "Preparing"}}

	events, next := Reconcile(current, nil)

	require.Len(t, events, 1)
	assert.Equal(t, KindNew, events[0].Kind)
	assert.Equal(t, "A", events[0].Order.HashID)
	require.Len(t, next, 1)
	assert.Equal(t, RunningOrder{HashID: "A", Status: 0, Label: "Preparing"}, next[0])
}

func TestReconcileUnpaidNeverTracked(t *testing.T) {
	for _, status := range []Status{0, 2, 5, StatusDelivered, StatusRefunded} {
		current := []Order{{HashID: "A", Status: status, PaymentStatus: 0}}
		events, next := Reconcile(current, nil)
		assert.Empty(t, events, "status %d", status)
		assert.Empty(t, next, "status %d", status)
	}
}

func TestReconcileUnknownTerminalIgnored(t *testing.T) {
	// Completed between two polls without ever being observed live: no event.
	current := []Order{{HashID: "A", Status: StatusDelivered, PaymentStatus: 1}}

	events, next := Reconcile(current, nil)

	assert.Empty(t, events)
	assert.Empty(t, next)
}

func TestReconcileNoChangeNoEvent(t *testing.T) {
	previous := []RunningOrder{{HashID: "A", Status: 3, Label: "On the way"}}
	current := []Order{{HashID: "A", Status: 3, PaymentStatus: 1, DeliveryLabel: "On the way"}}

	events, next := Reconcile(current, previous)

	assert.Empty(t, events)
	assert.Equal(t, previous, next)
}

func TestReconcileTerminalRetirement(t *testing.T) {
	previous := []RunningOrder{{HashID: "A", Status: 3, Label: "On the way"}}
	current := []Order{{HashID: "A", Status: StatusDelivered, PaymentStatus: 1, DeliveryLabel: "Delivered"}}

	events, next := Reconcile(current, previous)

	require.Len(t, events, 1)
	assert.Equal(t, KindUpdated, events[0].Kind)
	assert.Empty(t, next, "terminal order must drop out of the snapshot")
}

func TestReconcileLabelChangeAlone(t *testing.T) {
	previous := []RunningOrder{{HashID: "A", Status: 3, Label: "Being prepared"}}
	current := []Order{{HashID: "A", Status: 3, PaymentStatus: 1, DeliveryLabel: "Rider assigned"}}

	events, next := Reconcile(current, previous)

	require.Len(t, events, 1)
	assert.Equal(t, KindUpdated, events[0].Kind)
	require.Len(t, next, 1)
	assert.Equal(t, "Rider assigned", next[0].Label)
}

func TestReconcileMissingFromFetchCarriedOver(t *testing.T) {
	// A tracked order absent from the current page stays in the snapshot
	// untouched; it produces no event.
	previous := []RunningOrder{{HashID: "A", Status: 2, Label: "Preparing"}}

	events, next := Reconcile([]Order{{HashID: "B", Status: 0, PaymentStatus: 1, DeliveryLabel: "Placed"}}, previous)

	require.Len(t, events, 1)
	assert.Equal(t, KindNew, events[0].Kind)
	require.Len(t, next, 2)
	assert.Equal(t, "A", next[0].HashID)
	assert.Equal(t, "B", next[1].HashID)
}

func TestReconcileEndToEnd(t *testing.T) {
	previous := []RunningOrder{{HashID: "A", Status: 0, Label: "Preparing"}}
	current := []Order{
		{HashID: "A", Status: 3, PaymentStatus: 1, DeliveryLabel: "On the way"},
		{HashID: "B", Status: 0, PaymentStatus: 1, DeliveryLabel: "Preparing"},
	}

	events, next := Reconcile(current, previous)

	require.Len(t, events, 2)
	assert.Equal(t, KindUpdated, events[0].Kind)
	assert.Equal(t, "A", events[0].Order.HashID)
	assert.Equal(t, KindNew, events[1].Kind)
	assert.Equal(t, "B", events[1].Order.HashID)

	require.Equal(t, []RunningOrder{
		{HashID: "A", Status: 3, Label: "On the way"},
		{HashID: "B", Status: 0, Label: "Preparing"},
	}, next)
}

func TestReconcileIdempotent(t *testing.T) {
	previous := []RunningOrder{{HashID: "A", Status: 0, Label: "Preparing"}}
	current := []Order{
		{HashID: "A", Status: 3, PaymentStatus: 1, DeliveryLabel: "On the way"},
		{HashID: "B", Status: 0, PaymentStatus: 1, DeliveryLabel: "Preparing"},
	}

	_, next := Reconcile(current, previous)
	events, again := Reconcile(current, next)

	assert.Empty(t, events, "re-running the same fetch must be silent")
	assert.Equal(t, next, again)
}

func TestReconcileEventOrdering(t *testing.T) {
	previous := []RunningOrder{
		{HashID: "U1", Status: 1, Label: "a"},
		{HashID: "U2", Status: 1, Label: "b"},
	}
	current := []Order{
		{HashID: "N1", Status: 0, PaymentStatus: 1, DeliveryLabel: "x"},
		{HashID: "U2", Status: 2, PaymentStatus: 1, DeliveryLabel: "b"},
		{HashID: "N2", Status: 0, PaymentStatus: 1, DeliveryLabel: "y"},
		{HashID: "U1", Status: 2, PaymentStatus: 1, DeliveryLabel: "a"},
	}

	events, _ := Reconcile(current, previous)

	require.Len(t, events, 4)
	// Updates first, in fetch order; then new orders, in fetch order.
	assert.Equal(t, "U2", events[0].Order.HashID)
	assert.Equal(t, "U1", events[1].Order.HashID)
	assert.Equal(t, "N1", events[2].Order.HashID)
	assert.Equal(t, "N2", events[3].Order.HashID)
}

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiabolusGX/snack-track/internal/order"
)

type recordingNotifier struct {
	seen    []Notification
	failFor map[string]bool
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.seen = append(r.seen, n)
	if r.failFor[n.Message] {
		return errors.New("channel down")
	}
	return nil
}

func testEvents() []order.Event {
	return []order.Event{
		{Kind: order.KindUpdated, Order: order.Order{OrderID: 1, HashID: "A", Status: 3, PaymentStatus: 1, DeliveryLabel: "On the way", RestaurantName: "Pizza Palace"}},
		{Kind: order.KindNew, Order: order.Order{OrderID: 2, HashID: "B", Status: 0, PaymentStatus: 1, DeliveryLabel: "Preparing", RestaurantName: "Wok Show"}},
	}
}

func TestDispatchDeliversEveryEvent(t *testing.T) {
	var received []OrderUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var upd OrderUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
		received = append(received, upd)
		w.Write([]byte(OKSentinel))
	}))
	defer srv.Close()

	local := &recordingNotifier{}
	d := NewDispatcher(local, NewWebhookSink(srv.URL, 0, nil), nil)

	outcomes := d.Dispatch(context.Background(), "C042", testEvents())

	require.Len(t, outcomes, 2)
	for _, out := range outcomes {
		assert.True(t, out.Notified)
		assert.True(t, out.Delivered)
	}

	require.Len(t, received, 2)
	assert.Equal(t, "C042", received[0].RoutingID)
	assert.Equal(t, "updated", received[0].Kind)
	assert.Equal(t, "A", received[0].Order.HashID)
	assert.Equal(t, "new", received[1].Kind)

	require.Len(t, local.seen, 2)
	assert.Equal(t, "Order update", local.seen[0].Title)
	assert.Contains(t, local.seen[0].Message, "Pizza Palace")
	assert.Equal(t, "New order placed", local.seen[1].Title)
	assert.NotEmpty(t, local.seen[0].ID)
}

func TestDispatchIsolatesWebhookFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(OKSentinel))
	}))
	defer srv.Close()

	events := []order.Event{
		{Kind: order.KindNew, Order: order.Order{OrderID: 1, HashID: "A", Status: 0, PaymentStatus: 1}},
		{Kind: order.KindNew, Order: order.Order{OrderID: 2, HashID: "B", Status: 0, PaymentStatus: 1}},
		{Kind: order.KindNew, Order: order.Order{OrderID: 3, HashID: "C", Status: 0, PaymentStatus: 1}},
	}

	d := NewDispatcher(&recordingNotifier{}, NewWebhookSink(srv.URL, 0, nil), nil)
	outcomes := d.Dispatch(context.Background(), "C042", events)

	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Delivered)
	assert.False(t, outcomes[1].Delivered, "second delivery failed")
	assert.True(t, outcomes[2].Delivered, "third delivery still runs")
	assert.Equal(t, 3, calls)
}

func TestDispatchEmptyResponseIsNotDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with an empty body.
	}))
	defer srv.Close()

	d := NewDispatcher(&recordingNotifier{}, NewWebhookSink(srv.URL, 0, nil), nil)
	outcomes := d.Dispatch(context.Background(), "C042", testEvents()[:1])

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Notified)
	assert.False(t, outcomes[0].Delivered)
}

func TestDispatchContinuesPastNotifierFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(OKSentinel))
	}))
	defer srv.Close()

	local := &recordingNotifier{failFor: map[string]bool{
		"Order 1 from Pizza Palace is On the way": true,
	}}
	d := NewDispatcher(local, NewWebhookSink(srv.URL, 0, nil), nil)

	outcomes := d.Dispatch(context.Background(), "C042", testEvents())

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Notified)
	assert.True(t, outcomes[0].Delivered, "webhook still fires when the local channel fails")
	assert.True(t, outcomes[1].Notified)
}

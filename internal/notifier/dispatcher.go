package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DiabolusGX/snack-track/internal/order"
)

// OrderUpdate is the webhook payload for one changed order.
type OrderUpdate struct {
	RoutingID string       `json:"routingId"`
	Kind      string       `json:"kind"`
	Order     OrderPayload `json:"order"`
}

// OrderPayload mirrors the provider's order entity on the wire.
type OrderPayload struct {
	OrderID         uint64 `json:"orderId"`
	HashID          string `json:"hashId"`
	Status          int    `json:"status"`
	PaymentStatus   int    `json:"paymentStatus"`
	DeliveryLabel   string `json:"deliveryLabel"`
	DeliveryMessage string `json:"deliveryMessage"`
	RestaurantName  string `json:"restaurantName"`
}

// Outcome records what happened to a single event during dispatch.
type Outcome struct {
	Event     order.Event
	Notified  bool
	Delivered bool
}

// Dispatcher pushes one local notification and one webhook delivery per
// event. Each event is handled independently: a failure is logged and the
// loop continues, so a broken channel never blocks the snapshot from
// advancing past the transition.
type Dispatcher struct {
	notifier Notifier
	sink     *WebhookSink
	logger   *slog.Logger
}

// NewDispatcher wires the local notifier and the webhook sink.
func NewDispatcher(n Notifier, sink *WebhookSink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{notifier: n, sink: sink, logger: logger}
}

// Dispatch handles every event in order and reports per-event outcomes.
func (d *Dispatcher) Dispatch(ctx context.Context, routingID string, events []order.Event) []Outcome {
	outcomes := make([]Outcome, 0, len(events))
	for _, ev := range events {
		out := Outcome{Event: ev}

		if err := d.notifier.Notify(ctx, renderNotification(ev)); err != nil {
			d.logger.Warn("local notification failed", "order", ev.Order.OrderID, "error", err)
		} else {
			out.Notified = true
		}

		resp, err := d.sink.Deliver(ctx, OrderUpdate{
			RoutingID: routingID,
			Kind:      string(ev.Kind),
			Order: OrderPayload{
				OrderID:         ev.Order.OrderID,
				HashID:          ev.Order.HashID,
				Status:          int(ev.Order.Status),
				PaymentStatus:   ev.Order.PaymentStatus,
				DeliveryLabel:   ev.Order.DeliveryLabel,
				DeliveryMessage: ev.Order.DeliveryMessage,
				RestaurantName:  ev.Order.RestaurantName,
			},
		})
		switch {
		case err != nil:
			d.logger.Warn("webhook delivery failed", "order", ev.Order.OrderID, "error", err)
		case resp == "":
			d.logger.Warn("webhook delivery returned empty response", "order", ev.Order.OrderID)
		default:
			out.Delivered = true
		}

		outcomes = append(outcomes, out)
	}
	return outcomes
}

func renderNotification(ev order.Event) Notification {
	title := "Order update"
	if ev.Kind == order.KindNew {
		title = "New order placed"
	}
	msg := fmt.Sprintf("Order %d from %s is %s", ev.Order.OrderID, ev.Order.RestaurantName, ev.Order.DeliveryLabel)
	if ev.Order.DeliveryMessage != "" {
		msg += " " + ev.Order.DeliveryMessage
	}
	return Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: msg,
	}
}

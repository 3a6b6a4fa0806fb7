package provider

import "github.com/DiabolusGX/snack-track/internal/order"

// Raw wire shapes for the provider's order-listing endpoint.

type ordersResponse struct {
	Orders []rawOrder `json:"orders"`
}

type rawOrder struct {
	OrderID         uint64           `json:"orderId"`
	HashID          string           `json:"hashId"`
	Status          int              `json:"status"`
	PaymentStatus   int              `json:"paymentStatus"`
	DeliveryDetails *deliveryDetails `json:"deliveryDetails"`
	ResInfo         *resInfo         `json:"resInfo"`
}

type deliveryDetails struct {
	DeliveryStatus  int    `json:"deliveryStatus"`
	DeliveryLabel   string `json:"deliveryLabel"`
	DeliveryMessage string `json:"deliveryMessage"`
}

type resInfo struct {
	Name string `json:"name"`
}

// normalize maps a raw provider entity onto the canonical order shape.
func (r rawOrder) normalize() order.Order {
	o := order.Order{
		OrderID:       r.OrderID,
		HashID:        r.HashID,
		Status:        order.Status(r.Status),
		PaymentStatus: r.PaymentStatus,
	}
	if r.DeliveryDetails != nil {
		o.DeliveryLabel = r.DeliveryDetails.DeliveryLabel
		o.DeliveryMessage = r.DeliveryDetails.DeliveryMessage
	}
	if r.ResInfo != nil {
		o.RestaurantName = r.ResInfo.Name
	}
	return o
}

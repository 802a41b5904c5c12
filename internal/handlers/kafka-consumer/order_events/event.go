package order_events

import (
	"time"

	"route-engine/internal/entities"
)

type locationPayload struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

type windowPayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type orderPayload struct {
	ID                   string          `json:"id"`
	Kind                 string          `json:"kind"`
	BuyerID              string          `json:"buyer_id"`
	SellerID             string          `json:"seller_id"`
	Origin               locationPayload `json:"origin"`
	Destination          locationPayload `json:"destination"`
	ItemCount            int             `json:"item_count"`
	RequiresLargeVehicle bool            `json:"requires_large_vehicle"`
	Fragile              bool            `json:"fragile"`
	RequestedWindow      *windowPayload  `json:"requested_window,omitempty"`
}

// orderEvent сообщение топика заказов маркетплейса. Для отмены достаточно
// order_id, для подтверждения нужен полный заказ.
type orderEvent struct {
	Event   string        `json:"event"`
	OrderID string        `json:"order_id"`
	Order   *orderPayload `json:"order,omitempty"`
}

func (e orderEvent) toOrder() entities.Order {
	if e.Order == nil {
		return entities.Order{ID: e.OrderID}
	}

	p := e.Order
	order := entities.Order{
		ID:                   p.ID,
		Kind:                 entities.OrderKind(p.Kind),
		BuyerID:              p.BuyerID,
		SellerID:             p.SellerID,
		Origin:               entities.Location(p.Origin),
		Destination:          entities.Location(p.Destination),
		ItemCount:            p.ItemCount,
		RequiresLargeVehicle: p.RequiresLargeVehicle,
		Fragile:              p.Fragile,
	}
	if order.ID == "" {
		order.ID = e.OrderID
	}
	if p.RequestedWindow != nil {
		order.RequestedWindow = &entities.TimeWindow{
			Start: p.RequestedWindow.Start,
			End:   p.RequestedWindow.End,
		}
	}
	return order
}

package notifier

import (
	"time"

	"route-engine/internal/entities"
)

// eventMessage формат события для слоя push-уведомлений.
type eventMessage struct {
	Type       string    `json:"type"`
	RouteID    string    `json:"route_id,omitempty"`
	StopID     string    `json:"stop_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	DriverID   string    `json:"driver_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toMessage(ev entities.Event) eventMessage {
	return eventMessage{
		Type:       string(ev.Type),
		RouteID:    ev.RouteID,
		StopID:     ev.StopID,
		OrderID:    ev.OrderID,
		DriverID:   ev.DriverID,
		Status:     ev.Status,
		Message:    ev.Message,
		OccurredAt: ev.OccurredAt.UTC(),
	}
}

// partitionKey события одного маршрута попадают в одну партицию.
func partitionKey(ev entities.Event) string {
	if ev.RouteID != "" {
		return ev.RouteID
	}
	return ev.OrderID
}

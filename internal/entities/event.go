package entities

import "time"

type EventType string

const (
	EventRouteCreated      EventType = "route.created"
	EventRouteSequenced    EventType = "route.sequenced"
	EventRouteClaimed      EventType = "route.claimed"
	EventRouteReleased     EventType = "route.released"
	EventRouteStarted      EventType = "route.started"
	EventRouteCompleted    EventType = "route.completed"
	EventRouteExpired      EventType = "route.expired"
	EventRouteCancelled    EventType = "route.cancelled"
	EventRouteUnderReview  EventType = "route.under_review"
	EventStopStatusChanged EventType = "stop.status_changed"
	EventOrderDelayed      EventType = "order.delayed"
	EventOrderCancelled    EventType = "order.cancelled"
	EventEarningsSettled   EventType = "earnings.settled"
	EventEarningsAdjusted  EventType = "earnings.adjusted"
)

// Event уведомление о смене состояния для слоя push-уведомлений.
type Event struct {
	Type       EventType
	RouteID    string
	StopID     string
	OrderID    string
	DriverID   string
	Status     string
	Message    string
	OccurredAt time.Time
}

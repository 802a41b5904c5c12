package entities

import "time"

type StopKind string

const (
	StopPickup  StopKind = "pickup"
	StopDropoff StopKind = "dropoff"
)

func (k StopKind) String() string {
	return string(k)
}

type StopStatus string

const (
	StopPending   StopStatus = "pending"
	StopArrived   StopStatus = "arrived"
	StopCompleted StopStatus = "completed"
	StopFailed    StopStatus = "failed"
)

func (s StopStatus) String() string {
	return string(s)
}

func (s StopStatus) Terminal() bool {
	return s == StopCompleted || s == StopFailed
}

func (s StopStatus) Valid() bool {
	switch s {
	case StopPending, StopArrived, StopCompleted, StopFailed:
		return true
	}
	return false
}

// rank порядок статусов вдоль нормального пути pending -> arrived -> completed.
func (s StopStatus) rank() int {
	switch s {
	case StopPending:
		return 0
	case StopArrived:
		return 1
	case StopCompleted:
		return 2
	}
	return -1
}

// Reached сообщает, пройден ли уже статус target на нормальном пути.
func (s StopStatus) Reached(target StopStatus) bool {
	if s == StopFailed || target == StopFailed {
		return s == target
	}
	return s.rank() >= target.rank()
}

type Stop struct {
	ID             string
	OrderID        string
	Kind           StopKind
	Location       Location
	RouteID        string
	Position       *int
	Status         StopStatus
	Window         TimeWindow
	Cell           string
	LargeItem      bool
	Delayed        bool
	FailureReason  string
	OrderCreatedAt time.Time
	CreatedAt      time.Time
	ArrivedAt      *time.Time
	CompletedAt    *time.Time
	FailedAt       *time.Time
	Version        int64
}

func (s Stop) Pooled() bool {
	return s.RouteID == "" && s.Status == StopPending
}

// PoolKey ключ пула ожидающих стопов.
type PoolKey struct {
	WindowStart time.Time
	Cell        string
}

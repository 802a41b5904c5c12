package entities

import "time"

type RouteStatus string

const (
	RouteOpen        RouteStatus = "open"
	RouteClaimed     RouteStatus = "claimed"
	RouteInProgress  RouteStatus = "in_progress"
	RouteCompleted   RouteStatus = "completed"
	RouteExpired     RouteStatus = "expired"
	RouteCancelled   RouteStatus = "cancelled"
	RouteUnderReview RouteStatus = "under_review"
)

func (s RouteStatus) String() string {
	return string(s)
}

// Archived маршрут больше не меняется.
func (s RouteStatus) Archived() bool {
	return s == RouteCompleted || s == RouteExpired || s == RouteCancelled
}

type Route struct {
	ID               string
	Window           TimeWindow
	Cell             string
	StopIDs          []string
	MaxStops         int
	Sealed           bool
	Sequenced        bool
	Status           RouteStatus
	DriverID         *string
	ClaimExpiresAt   *time.Time
	TotalMiles       float64
	DistanceDegraded bool
	HasLargeItem     bool
	AccruedCents     Cents
	ReviewReason     string
	CreatedAt        time.Time
	ClaimedAt        *time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
	Version          int64
}

// ClaimExpired захват просрочен к моменту now.
func (r Route) ClaimExpired(now time.Time) bool {
	return r.Status == RouteClaimed && r.ClaimExpiresAt != nil && !now.Before(*r.ClaimExpiresAt)
}

// EffectiveStatus статус с учетом просроченного захвата.
func (r Route) EffectiveStatus(now time.Time) RouteStatus {
	if r.ClaimExpired(now) {
		return RouteOpen
	}
	return r.Status
}

func (r Route) HeldBy(driverID string) bool {
	return r.DriverID != nil && *r.DriverID == driverID
}

func (r Route) Free() int {
	return r.MaxStops - len(r.StopIDs)
}

// Reopen сбрасывает захват.
func (r *Route) Reopen() {
	r.Status = RouteOpen
	r.DriverID = nil
	r.ClaimExpiresAt = nil
	r.ClaimedAt = nil
}

type RouteFilter struct {
	WindowStart *time.Time
	Cell        string
	Statuses    []RouteStatus
	DriverID    *string
	Sealed      *bool
}

// RouteSummary маршрут в выдаче водителю.
type RouteSummary struct {
	Route            Route
	StopCount        int
	DistanceToStart  *float64
	EstimatedMinutes int
	EstimatedPayout  Cents
}

type StopProgress struct {
	StopID   string
	OrderID  string
	Kind     StopKind
	Status   StopStatus
	Position int
	Total    int
}

type RouteProgress struct {
	RouteID   string
	Status    RouteStatus
	Completed int
	Failed    int
	Total     int
	Percent   float64
	Stops     []StopProgress
}

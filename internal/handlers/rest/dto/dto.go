// Package dto JSON представление ресурсов REST API. Деньги передаются в центах.
package dto

import "time"

type PingResponse struct {
	Message    string    `json:"message"`
	Service    string    `json:"service"`
	ServerTime time.Time `json:"server_time"`
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
}

type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type OrderCreate struct {
	ID                   string      `json:"id"`
	Kind                 string      `json:"kind"`
	BuyerID              string      `json:"buyer_id"`
	SellerID             string      `json:"seller_id"`
	Origin               Location    `json:"origin"`
	Destination          Location    `json:"destination"`
	ItemCount            int         `json:"item_count"`
	RequiresLargeVehicle bool        `json:"requires_large_vehicle"`
	Fragile              bool        `json:"fragile"`
	RequestedWindow      *TimeWindow `json:"requested_window,omitempty"`
}

type Order struct {
	ID                   string      `json:"id"`
	Kind                 string      `json:"kind"`
	BuyerID              string      `json:"buyer_id"`
	SellerID             string      `json:"seller_id"`
	Origin               Location    `json:"origin"`
	Destination          Location    `json:"destination"`
	ItemCount            int         `json:"item_count"`
	RequiresLargeVehicle bool        `json:"requires_large_vehicle"`
	Fragile              bool        `json:"fragile"`
	RequestedWindow      *TimeWindow `json:"requested_window,omitempty"`
	Window               TimeWindow  `json:"window"`
	Cell                 string      `json:"cell"`
	Status               string      `json:"status"`
	CreatedAt            time.Time   `json:"created_at"`
	CancelledAt          *time.Time  `json:"cancelled_at,omitempty"`
}

type OrderCreateResponse struct {
	Order         Order  `json:"order"`
	PickupStopID  string `json:"pickup_stop_id"`
	DropoffStopID string `json:"dropoff_stop_id"`
	Rescheduled   bool   `json:"rescheduled"`
}

type DriverRequest struct {
	DriverID string `json:"driver_id"`
}

type Route struct {
	ID               string     `json:"id"`
	Window           TimeWindow `json:"window"`
	Cell             string     `json:"cell"`
	StopIDs          []string   `json:"stop_ids"`
	Status           string     `json:"status"`
	DriverID         *string    `json:"driver_id,omitempty"`
	ClaimExpiresAt   *time.Time `json:"claim_expires_at,omitempty"`
	Sealed           bool       `json:"sealed"`
	Sequenced        bool       `json:"sequenced"`
	TotalMiles       float64    `json:"total_miles"`
	DistanceDegraded bool       `json:"distance_degraded"`
	HasLargeItem     bool       `json:"has_large_item"`
	AccruedCents     int64      `json:"accrued_cents"`
	ReviewReason     string     `json:"review_reason,omitempty"`
	Version          int64      `json:"version"`
}

type RouteSummary struct {
	Route                Route    `json:"route"`
	StopCount            int      `json:"stop_count"`
	DistanceToStartMiles *float64 `json:"distance_to_start_miles,omitempty"`
	EstimatedMinutes     int      `json:"estimated_minutes"`
	EstimatedPayoutCents int64    `json:"estimated_payout_cents"`
}

type RouteComplete struct {
	Route    Route           `json:"route"`
	Earnings *EarningsRecord `json:"earnings,omitempty"`
}

type StopProgress struct {
	StopID   string `json:"stop_id"`
	OrderID  string `json:"order_id"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

type RouteProgress struct {
	RouteID   string         `json:"route_id"`
	Status    string         `json:"status"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Total     int            `json:"total"`
	Percent   float64        `json:"percent"`
	Stops     []StopProgress `json:"stops"`
}

type StopStatusUpdate struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

type Stop struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Kind          string     `json:"kind"`
	Location      Location   `json:"location"`
	RouteID       string     `json:"route_id,omitempty"`
	Position      *int       `json:"position,omitempty"`
	Status        string     `json:"status"`
	Delayed       bool       `json:"delayed"`
	FailureReason string     `json:"failure_reason,omitempty"`
	ArrivedAt     *time.Time `json:"arrived_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	FailedAt      *time.Time `json:"failed_at,omitempty"`
}

type EarningsLine struct {
	Kind        string `json:"kind"`
	Quantity    string `json:"quantity"`
	RateCents   int64  `json:"rate_cents"`
	AmountCents int64  `json:"amount_cents"`
}

type EarningsRecord struct {
	ID          string         `json:"id"`
	RouteID     string         `json:"route_id"`
	DriverID    string         `json:"driver_id"`
	Kind        string         `json:"kind"`
	Lines       []EarningsLine `json:"lines"`
	TotalCents  int64          `json:"total_cents"`
	ReferenceID *string        `json:"reference_id,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	SettledAt   time.Time      `json:"settled_at"`
}

type EarningsCorrection struct {
	Reason string `json:"reason"`
}

type TipCreate struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
}

type Tip struct {
	ID          string    `json:"id"`
	RouteID     string    `json:"route_id"`
	OrderID     string    `json:"order_id,omitempty"`
	DriverID    string    `json:"driver_id,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	RecordID    *string   `json:"record_id,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type TipCreateResponse struct {
	Tip        Tip             `json:"tip"`
	Adjustment *EarningsRecord `json:"adjustment,omitempty"`
}

type CostSplit struct {
	OrderID          string    `json:"order_id"`
	RouteID          string    `json:"route_id"`
	LegMiles         float64   `json:"leg_miles"`
	TotalCents       int64     `json:"total_cents"`
	BuyerShareCents  int64     `json:"buyer_share_cents"`
	SellerShareCents int64     `json:"seller_share_cents"`
	ComputedAt       time.Time `json:"computed_at"`
}

type DriverEarnings struct {
	DriverID   string           `json:"driver_id"`
	From       *time.Time       `json:"from,omitempty"`
	To         *time.Time       `json:"to,omitempty"`
	Records    []EarningsRecord `json:"records"`
	TotalCents int64            `json:"total_cents"`
}

type RouteCancel struct {
	Reason string `json:"reason"`
}

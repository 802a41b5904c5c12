package route

import "time"

type RouteDB struct {
	ID               string     `db:"id"`
	WindowStart      time.Time  `db:"window_start"`
	WindowEnd        time.Time  `db:"window_end"`
	Cell             string     `db:"cell"`
	StopIDs          []string   `db:"stop_ids"`
	MaxStops         int        `db:"max_stops"`
	Sealed           bool       `db:"sealed"`
	Sequenced        bool       `db:"sequenced"`
	Status           string     `db:"status"`
	DriverID         *string    `db:"driver_id"`
	ClaimExpiresAt   *time.Time `db:"claim_expires_at"`
	TotalMiles       float64    `db:"total_miles"`
	DistanceDegraded bool       `db:"distance_degraded"`
	HasLargeItem     bool       `db:"has_large_item"`
	AccruedCents     int64      `db:"accrued_cents"`
	ReviewReason     string     `db:"review_reason"`
	CreatedAt        time.Time  `db:"created_at"`
	ClaimedAt        *time.Time `db:"claimed_at"`
	StartedAt        *time.Time `db:"started_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	Version          int64      `db:"version"`
}

var columns = []string{
	"id",
	"window_start",
	"window_end",
	"cell",
	"stop_ids",
	"max_stops",
	"sealed",
	"sequenced",
	"status",
	"driver_id",
	"claim_expires_at",
	"total_miles",
	"distance_degraded",
	"has_large_item",
	"accrued_cents",
	"review_reason",
	"created_at",
	"claimed_at",
	"started_at",
	"completed_at",
	"version",
}

func (r *RouteDB) values() []any {
	return []any{
		r.ID,
		r.WindowStart,
		r.WindowEnd,
		r.Cell,
		r.StopIDs,
		r.MaxStops,
		r.Sealed,
		r.Sequenced,
		r.Status,
		r.DriverID,
		r.ClaimExpiresAt,
		r.TotalMiles,
		r.DistanceDegraded,
		r.HasLargeItem,
		r.AccruedCents,
		r.ReviewReason,
		r.CreatedAt,
		r.ClaimedAt,
		r.StartedAt,
		r.CompletedAt,
		r.Version,
	}
}

// mutable колонки, которые переписывает Update.
func (r *RouteDB) changes() map[string]any {
	return map[string]any{
		"stop_ids":          r.StopIDs,
		"max_stops":         r.MaxStops,
		"sealed":            r.Sealed,
		"sequenced":         r.Sequenced,
		"status":            r.Status,
		"driver_id":         r.DriverID,
		"claim_expires_at":  r.ClaimExpiresAt,
		"total_miles":       r.TotalMiles,
		"distance_degraded": r.DistanceDegraded,
		"has_large_item":    r.HasLargeItem,
		"accrued_cents":     r.AccruedCents,
		"review_reason":     r.ReviewReason,
		"claimed_at":        r.ClaimedAt,
		"started_at":        r.StartedAt,
		"completed_at":      r.CompletedAt,
	}
}

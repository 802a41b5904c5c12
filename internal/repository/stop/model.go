package stop

import "time"

type StopDB struct {
	ID             string     `db:"id"`
	OrderID        string     `db:"order_id"`
	Kind           string     `db:"kind"`
	Lat            float64    `db:"lat"`
	Lon            float64    `db:"lon"`
	Address        string     `db:"address"`
	RouteID        *string    `db:"route_id"`
	Position       *int       `db:"position"`
	Status         string     `db:"status"`
	WindowStart    time.Time  `db:"window_start"`
	WindowEnd      time.Time  `db:"window_end"`
	Cell           string     `db:"cell"`
	LargeItem      bool       `db:"large_item"`
	Delayed        bool       `db:"delayed"`
	FailureReason  string     `db:"failure_reason"`
	OrderCreatedAt time.Time  `db:"order_created_at"`
	CreatedAt      time.Time  `db:"created_at"`
	ArrivedAt      *time.Time `db:"arrived_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	FailedAt       *time.Time `db:"failed_at"`
	Version        int64      `db:"version"`
}

type PoolKeyDB struct {
	WindowStart time.Time `db:"window_start"`
	Cell        string    `db:"cell"`
}

var columns = []string{
	"id",
	"order_id",
	"kind",
	"lat",
	"lon",
	"address",
	"route_id",
	"position",
	"status",
	"window_start",
	"window_end",
	"cell",
	"large_item",
	"delayed",
	"failure_reason",
	"order_created_at",
	"created_at",
	"arrived_at",
	"completed_at",
	"failed_at",
	"version",
}

func (s *StopDB) values() []any {
	return []any{
		s.ID,
		s.OrderID,
		s.Kind,
		s.Lat,
		s.Lon,
		s.Address,
		s.RouteID,
		s.Position,
		s.Status,
		s.WindowStart,
		s.WindowEnd,
		s.Cell,
		s.LargeItem,
		s.Delayed,
		s.FailureReason,
		s.OrderCreatedAt,
		s.CreatedAt,
		s.ArrivedAt,
		s.CompletedAt,
		s.FailedAt,
		s.Version,
	}
}

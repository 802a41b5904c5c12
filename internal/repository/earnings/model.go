package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordDB struct {
	ID          string    `db:"id"`
	RouteID     string    `db:"route_id"`
	DriverID    string    `db:"driver_id"`
	Kind        string    `db:"kind"`
	Lines       []byte    `db:"lines"`
	Total       int64     `db:"total"`
	ReferenceID *string   `db:"reference_id"`
	Reason      string    `db:"reason"`
	SettledAt   time.Time `db:"settled_at"`
}

// LineDB строка начисления в jsonb колонке lines.
type LineDB struct {
	Kind     string          `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     int64           `json:"rate"`
	Amount   int64           `json:"amount"`
}

type TipDB struct {
	ID         string    `db:"id"`
	RouteID    string    `db:"route_id"`
	OrderID    string    `db:"order_id"`
	DriverID   string    `db:"driver_id"`
	Amount     int64     `db:"amount"`
	RecordID   *string   `db:"record_id"`
	RecordedAt time.Time `db:"recorded_at"`
}

type CostSplitDB struct {
	OrderID     string    `db:"order_id"`
	RouteID     string    `db:"route_id"`
	LegMiles    float64   `db:"leg_miles"`
	Total       int64     `db:"total"`
	BuyerShare  int64     `db:"buyer_share"`
	SellerShare int64     `db:"seller_share"`
	ComputedAt  time.Time `db:"computed_at"`
}

var (
	recordColumns = []string{"id", "route_id", "driver_id", "kind", "lines", "total", "reference_id", "reason", "settled_at"}
	tipColumns    = []string{"id", "route_id", "order_id", "driver_id", "amount", "record_id", "recorded_at"}
	splitColumns  = []string{"order_id", "route_id", "leg_miles", "total", "buyer_share", "seller_share", "computed_at"}
)

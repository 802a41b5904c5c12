package order

import "time"

type OrderDB struct {
	ID                   string     `db:"id"`
	Kind                 string     `db:"kind"`
	BuyerID              string     `db:"buyer_id"`
	SellerID             string     `db:"seller_id"`
	OriginLat            float64    `db:"origin_lat"`
	OriginLon            float64    `db:"origin_lon"`
	OriginAddress        string     `db:"origin_address"`
	DestLat              float64    `db:"dest_lat"`
	DestLon              float64    `db:"dest_lon"`
	DestAddress          string     `db:"dest_address"`
	ItemCount            int        `db:"item_count"`
	RequiresLargeVehicle bool       `db:"requires_large_vehicle"`
	Fragile              bool       `db:"fragile"`
	RequestedWindowStart *time.Time `db:"requested_window_start"`
	RequestedWindowEnd   *time.Time `db:"requested_window_end"`
	WindowStart          time.Time  `db:"window_start"`
	WindowEnd            time.Time  `db:"window_end"`
	Cell                 string     `db:"cell"`
	Status               string     `db:"status"`
	CreatedAt            time.Time  `db:"created_at"`
	CancelledAt          *time.Time `db:"cancelled_at"`
}

var columns = []string{
	"id",
	"kind",
	"buyer_id",
	"seller_id",
	"origin_lat",
	"origin_lon",
	"origin_address",
	"dest_lat",
	"dest_lon",
	"dest_address",
	"item_count",
	"requires_large_vehicle",
	"fragile",
	"requested_window_start",
	"requested_window_end",
	"window_start",
	"window_end",
	"cell",
	"status",
	"created_at",
	"cancelled_at",
}

func (o *OrderDB) values() []any {
	return []any{
		o.ID,
		o.Kind,
		o.BuyerID,
		o.SellerID,
		o.OriginLat,
		o.OriginLon,
		o.OriginAddress,
		o.DestLat,
		o.DestLon,
		o.DestAddress,
		o.ItemCount,
		o.RequiresLargeVehicle,
		o.Fragile,
		o.RequestedWindowStart,
		o.RequestedWindowEnd,
		o.WindowStart,
		o.WindowEnd,
		o.Cell,
		o.Status,
		o.CreatedAt,
		o.CancelledAt,
	}
}

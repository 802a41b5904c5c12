package entities

import "time"

type OrderKind string

const (
	OrderBuy     OrderKind = "buy"
	OrderSell    OrderKind = "sell"
	OrderService OrderKind = "service"
)

func (k OrderKind) String() string {
	return string(k)
}

func (k OrderKind) Valid() bool {
	switch k {
	case OrderBuy, OrderSell, OrderService:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order заказ маркетплейса. После создания меняется только статус отмены.
type Order struct {
	ID                   string
	Kind                 OrderKind
	BuyerID              string
	SellerID             string
	Origin               Location
	Destination          Location
	ItemCount            int
	RequiresLargeVehicle bool
	Fragile              bool
	RequestedWindow      *TimeWindow
	Window               TimeWindow
	Cell                 string
	Status               OrderStatus
	CreatedAt            time.Time
	CancelledAt          *time.Time
}

func (o Order) Cancelled() bool {
	return o.Status == OrderCancelled
}

// Intake результат приема заказа.
type Intake struct {
	Order       Order
	Pickup      Stop
	Dropoff     Stop
	Rescheduled bool
}

package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Cents денежная сумма в центах.
type Cents int64

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return fmt.Sprintf("$%s", c.Decimal().StringFixed(2))
}

// CentsFromDecimal переводит сумму в долларах в центы, округляя половину от нуля.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

type LineKind string

const (
	LinePickupFee  LineKind = "pickup_fee"
	LineDropoffFee LineKind = "dropoff_fee"
	LineMileage    LineKind = "mileage"
	LineTips       LineKind = "tips"
	LineLargeItem  LineKind = "large_item_surcharge"
	LineAdjustment LineKind = "adjustment"
)

type EarningsLine struct {
	Kind     LineKind
	Quantity decimal.Decimal
	Rate     Cents
	Amount   Cents
}

type RecordKind string

const (
	RecordSettlement    RecordKind = "settlement"
	RecordTipAdjustment RecordKind = "tip_adjustment"
	RecordReversal      RecordKind = "reversal"
	RecordCorrection    RecordKind = "correction"
)

func (k RecordKind) String() string {
	return string(k)
}

// EarningsRecord неизменяемая запись начислений водителю.
type EarningsRecord struct {
	ID          string
	RouteID     string
	DriverID    string
	Kind        RecordKind
	Lines       []EarningsLine
	Total       Cents
	ReferenceID *string
	Reason      string
	SettledAt   time.Time
}

func SumLines(lines []EarningsLine) Cents {
	var total Cents
	for _, l := range lines {
		total += l.Amount
	}
	return total
}

type Tip struct {
	ID         string
	RouteID    string
	OrderID    string
	DriverID   string
	Amount     Cents
	RecordID   *string
	RecordedAt time.Time
}

// CostSplit распределение стоимости доставки заказа. BuyerShare+SellerShare == Total.
type CostSplit struct {
	OrderID     string
	RouteID     string
	LegMiles    float64
	Total       Cents
	BuyerShare  Cents
	SellerShare Cents
	ComputedAt  time.Time
}

// DriverEarnings выдача начислений водителя за период.
type DriverEarnings struct {
	DriverID string
	From     time.Time
	To       time.Time
	Records  []EarningsRecord
	Total    Cents
}

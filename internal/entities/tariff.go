package entities

import "github.com/shopspring/decimal"

// Tariff ставки оплаты водителя и правила распределения стоимости.
type Tariff struct {
	PickupFee          Cents
	DropoffFee         Cents
	MileageRate        Cents // за милю
	LargeItemSurcharge Cents
	BuyerSharePercent  int64
	RoundingUnit       Cents
}

func DefaultTariff() Tariff {
	return Tariff{
		PickupFee:          400,
		DropoffFee:         200,
		MileageRate:        50,
		LargeItemSurcharge: 2500,
		BuyerSharePercent:  50,
		RoundingUnit:       1,
	}
}

func (t Tariff) StopFee(kind StopKind) Cents {
	if kind == StopPickup {
		return t.PickupFee
	}
	return t.DropoffFee
}

// Mileage оплата за пробег, округление один раз на итоговой сумме.
func (t Tariff) Mileage(miles float64) Cents {
	return CentsFromDecimal(MilesDecimal(miles).Mul(t.MileageRate.Decimal()))
}

// MilesDecimal пробег с точностью до 1/10000 мили.
func MilesDecimal(miles float64) decimal.Decimal {
	return decimal.NewFromFloat(miles).Round(4)
}

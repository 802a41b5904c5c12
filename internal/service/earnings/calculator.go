package earnings

import (
	"sort"

	"github.com/shopspring/decimal"
	"route-engine/internal/entities"
)

type stopCounts struct {
	pickups  int64
	dropoffs int64
}

func countCompleted(stops []entities.Stop) stopCounts {
	var c stopCounts
	for _, s := range stops {
		if s.Status != entities.StopCompleted {
			continue
		}
		if s.Kind == entities.StopPickup {
			c.pickups++
		} else {
			c.dropoffs++
		}
	}
	return c
}

// carriesLargeItem надбавка положена, если на маршруте есть крупногабаритный
// стоп, который не провален. Флаг маршрута для расчета не используется:
// отмена заказа после упорядочивания его не снимает.
func carriesLargeItem(stops []entities.Stop) bool {
	for _, s := range stops {
		if s.LargeItem && s.Status != entities.StopFailed {
			return true
		}
	}
	return false
}

// settlementLines строки итогового расчета. Пустые строки не пишутся,
// кроме платы за остановки, чтобы итог было видно целиком.
func settlementLines(t entities.Tariff, c stopCounts, miles float64, tips entities.Cents, large bool) []entities.EarningsLine {
	lines := []entities.EarningsLine{
		{
			Kind:     entities.LinePickupFee,
			Quantity: decimal.NewFromInt(c.pickups),
			Rate:     t.PickupFee,
			Amount:   t.PickupFee * entities.Cents(c.pickups),
		},
		{
			Kind:     entities.LineDropoffFee,
			Quantity: decimal.NewFromInt(c.dropoffs),
			Rate:     t.DropoffFee,
			Amount:   t.DropoffFee * entities.Cents(c.dropoffs),
		},
		{
			Kind:     entities.LineMileage,
			Quantity: entities.MilesDecimal(miles),
			Rate:     t.MileageRate,
			Amount:   t.Mileage(miles),
		},
	}
	if tips != 0 {
		lines = append(lines, entities.EarningsLine{
			Kind:     entities.LineTips,
			Quantity: decimal.NewFromInt(1),
			Rate:     tips,
			Amount:   tips,
		})
	}
	if large {
		lines = append(lines, entities.EarningsLine{
			Kind:     entities.LineLargeItem,
			Quantity: decimal.NewFromInt(1),
			Rate:     t.LargeItemSurcharge,
			Amount:   t.LargeItemSurcharge,
		})
	}
	return lines
}

func negateLines(lines []entities.EarningsLine) []entities.EarningsLine {
	res := make([]entities.EarningsLine, len(lines))
	for i, l := range lines {
		l.Amount = -l.Amount
		l.Quantity = l.Quantity.Neg()
		res[i] = l
	}
	return res
}

// allocate делит total пропорционально весам методом наибольших остатков.
// Сумма долей всегда равна total. Нулевые веса делят поровну.
func allocate(total entities.Cents, keys []string, weights map[string]decimal.Decimal) map[string]entities.Cents {
	res := make(map[string]entities.Cents, len(keys))
	if len(keys) == 0 {
		return res
	}

	sum := decimal.Zero
	for _, k := range keys {
		sum = sum.Add(weights[k])
	}
	if sum.IsZero() {
		weights = make(map[string]decimal.Decimal, len(keys))
		for _, k := range keys {
			weights[k] = decimal.NewFromInt(1)
		}
		sum = decimal.NewFromInt(int64(len(keys)))
	}

	type rest struct {
		key  string
		frac decimal.Decimal
	}
	totalDec := decimal.NewFromInt(int64(total))
	allocated := entities.Cents(0)
	rests := make([]rest, 0, len(keys))
	for _, k := range keys {
		exact := totalDec.Mul(weights[k]).Div(sum)
		floor := exact.Floor()
		res[k] = entities.Cents(floor.IntPart())
		allocated += res[k]
		rests = append(rests, rest{key: k, frac: exact.Sub(floor)})
	}

	sort.SliceStable(rests, func(i, j int) bool {
		if c := rests[i].frac.Cmp(rests[j].frac); c != 0 {
			return c > 0
		}
		return rests[i].key < rests[j].key
	})
	for i := 0; allocated < total; i = (i + 1) % len(rests) {
		res[rests[i].key]++
		allocated++
	}
	return res
}

// split делит стоимость заказа. Доля продавца округляется вниз до единицы
// округления, остаток уходит покупателю.
func split(t entities.Tariff, total entities.Cents) (buyer, seller entities.Cents) {
	unit := t.RoundingUnit
	if unit <= 0 {
		unit = 1
	}
	sellerPercent := 100 - t.BuyerSharePercent
	seller = total * entities.Cents(sellerPercent) / 100
	seller -= seller % unit
	return total - seller, seller
}

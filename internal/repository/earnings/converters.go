package earnings

import (
	"encoding/json"
	"fmt"

	"route-engine/internal/entities"
)

func RecordToDomain(r *RecordDB) (*entities.EarningsRecord, error) {
	var linesDB []LineDB
	err := json.Unmarshal(r.Lines, &linesDB)
	if err != nil {
		return nil, fmt.Errorf("decode lines of record %s: %w", r.ID, err)
	}

	lines := make([]entities.EarningsLine, len(linesDB))
	for i, l := range linesDB {
		lines[i] = entities.EarningsLine{
			Kind:     entities.LineKind(l.Kind),
			Quantity: l.Quantity,
			Rate:     entities.Cents(l.Rate),
			Amount:   entities.Cents(l.Amount),
		}
	}

	return &entities.EarningsRecord{
		ID:          r.ID,
		RouteID:     r.RouteID,
		DriverID:    r.DriverID,
		Kind:        entities.RecordKind(r.Kind),
		Lines:       lines,
		Total:       entities.Cents(r.Total),
		ReferenceID: r.ReferenceID,
		Reason:      r.Reason,
		SettledAt:   r.SettledAt.UTC(),
	}, nil
}

func RecordFromDomain(r *entities.EarningsRecord) (*RecordDB, error) {
	linesDB := make([]LineDB, len(r.Lines))
	for i, l := range r.Lines {
		linesDB[i] = LineDB{
			Kind:     string(l.Kind),
			Quantity: l.Quantity,
			Rate:     int64(l.Rate),
			Amount:   int64(l.Amount),
		}
	}

	lines, err := json.Marshal(linesDB)
	if err != nil {
		return nil, fmt.Errorf("encode lines of record %s: %w", r.ID, err)
	}

	return &RecordDB{
		ID:          r.ID,
		RouteID:     r.RouteID,
		DriverID:    r.DriverID,
		Kind:        r.Kind.String(),
		Lines:       lines,
		Total:       int64(r.Total),
		ReferenceID: r.ReferenceID,
		Reason:      r.Reason,
		SettledAt:   r.SettledAt,
	}, nil
}

func TipToDomain(t *TipDB) entities.Tip {
	return entities.Tip{
		ID:         t.ID,
		RouteID:    t.RouteID,
		OrderID:    t.OrderID,
		DriverID:   t.DriverID,
		Amount:     entities.Cents(t.Amount),
		RecordID:   t.RecordID,
		RecordedAt: t.RecordedAt.UTC(),
	}
}

func SplitToDomain(s *CostSplitDB) *entities.CostSplit {
	return &entities.CostSplit{
		OrderID:     s.OrderID,
		RouteID:     s.RouteID,
		LegMiles:    s.LegMiles,
		Total:       entities.Cents(s.Total),
		BuyerShare:  entities.Cents(s.BuyerShare),
		SellerShare: entities.Cents(s.SellerShare),
		ComputedAt:  s.ComputedAt.UTC(),
	}
}

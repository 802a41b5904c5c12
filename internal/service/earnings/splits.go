package earnings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// ComputeSplits распределяет стоимость маршрута по заказам. legMiles - пробег
// по маршруту от забора до доставки каждого заказа, в котором обе точки
// получили позицию. Доли пробега в сумме равны оплате пробега маршрута.
func (s *Service) ComputeSplits(ctx context.Context, route entities.Route, stops []entities.Stop, legMiles map[string]float64) ([]entities.CostSplit, error) {
	orderIDs := make([]string, 0, len(legMiles))
	for id := range legMiles {
		orderIDs = append(orderIDs, id)
	}
	sort.Strings(orderIDs)

	weights := make(map[string]decimal.Decimal, len(orderIDs))
	for _, id := range orderIDs {
		weights[id] = entities.MilesDecimal(legMiles[id])
	}
	mileage := allocate(s.tariff.Mileage(route.TotalMiles), orderIDs, weights)

	large := make(map[string]bool)
	for _, st := range stops {
		if st.LargeItem {
			large[st.OrderID] = true
		}
	}

	now := s.clock.Now()
	splits := make([]entities.CostSplit, 0, len(orderIDs))
	for _, id := range orderIDs {
		total := mileage[id] + s.tariff.PickupFee + s.tariff.DropoffFee
		if large[id] {
			total += s.tariff.LargeItemSurcharge
		}
		buyer, seller := split(s.tariff, total)

		cs := entities.CostSplit{
			OrderID:     id,
			RouteID:     route.ID,
			LegMiles:    legMiles[id],
			Total:       total,
			BuyerShare:  buyer,
			SellerShare: seller,
			ComputedAt:  now,
		}
		if err := s.repo.SaveCostSplit(ctx, cs); err != nil {
			return nil, fmt.Errorf("save cost split %s: %w", id, err)
		}
		splits = append(splits, cs)
	}

	s.log.Info("cost splits computed",
		logger.NewField("route", route.ID),
		logger.NewField("orders", len(splits)),
	)
	return splits, nil
}

// DropCostSplit снимает раскладку отмененного заказа, чтобы ни покупатель,
// ни продавец не платили за него. Повторный вызов ничего не меняет.
func (s *Service) DropCostSplit(ctx context.Context, orderID string) error {
	if !isValidID(orderID) {
		return ErrInvalidID
	}
	if err := s.repo.DeleteCostSplit(ctx, orderID); err != nil {
		return fmt.Errorf("delete cost split: %w", err)
	}
	return nil
}

func (s *Service) GetCostSplit(ctx context.Context, orderID string) (*entities.CostSplit, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidID
	}
	cs, err := s.repo.GetCostSplit(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrSplitNotFound, orderID)
		}
		return nil, fmt.Errorf("get cost split: %w", err)
	}
	return cs, nil
}

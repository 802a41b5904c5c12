package earnings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

// RecordTip чаевые идут водителю целиком. До расчета маршрута они попадут
// в итоговую запись, после - оформляются отдельной записью tip_adjustment.
func (s *Service) RecordTip(ctx context.Context, routeID, orderID string, amount entities.Cents) (*entities.Tip, *entities.EarningsRecord, error) {
	if !isValidID(routeID) {
		return nil, nil, ErrInvalidID
	}
	if amount <= 0 {
		return nil, nil, ErrInvalidTip
	}

	var (
		tip        *entities.Tip
		adjustment *entities.EarningsRecord
	)
	err := s.withRouteLock(ctx, routeID, func(ctx context.Context) error {
		route, err := s.routes.GetByID(ctx, routeID)
		if err != nil {
			return fmt.Errorf("get route: %w", err)
		}
		if route.Status == entities.RouteCancelled || route.Status == entities.RouteExpired {
			return fmt.Errorf("%w: status %s", ErrRouteClosed, route.Status)
		}
		if route.DriverID == nil {
			return ErrNoDriver
		}

		if orderID != "" {
			stops, err := s.stops.ListByRoute(ctx, routeID)
			if err != nil {
				return fmt.Errorf("list stops: %w", err)
			}
			if !hasOrder(stops, orderID) {
				return ErrOrderNotOnRoute
			}
		}

		now := s.clock.Now()
		tip = &entities.Tip{
			ID:         uuid.NewString(),
			RouteID:    routeID,
			OrderID:    orderID,
			DriverID:   *route.DriverID,
			Amount:     amount,
			RecordedAt: now,
		}
		if err := s.repo.CreateTip(ctx, tip); err != nil {
			return fmt.Errorf("create tip: %w", err)
		}

		_, err = s.repo.GetSettlement(ctx, routeID)
		if errors.Is(err, apperr.NotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get settlement: %w", err)
		}

		adjustment = &entities.EarningsRecord{
			ID:       uuid.NewString(),
			RouteID:  routeID,
			DriverID: *route.DriverID,
			Kind:     entities.RecordTipAdjustment,
			Lines: []entities.EarningsLine{{
				Kind:     entities.LineTips,
				Quantity: decimal.NewFromInt(1),
				Rate:     amount,
				Amount:   amount,
			}},
			Total:     amount,
			SettledAt: now,
		}
		if err := s.repo.CreateRecord(ctx, adjustment); err != nil {
			return fmt.Errorf("create tip adjustment: %w", err)
		}
		if err := s.repo.MarkTipsSettled(ctx, []string{tip.ID}, adjustment.ID); err != nil {
			return fmt.Errorf("mark tip settled: %w", err)
		}
		tip.RecordID = &adjustment.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("tip recorded",
		logger.NewField("route", routeID),
		logger.NewField("amount", amount.String()),
		logger.NewField("after_settlement", adjustment != nil),
	)
	if adjustment != nil {
		RecordsTotal.WithLabelValues(adjustment.Kind.String()).Inc()
		s.notifier.Publish(ctx, entities.Event{
			Type:       entities.EventEarningsAdjusted,
			RouteID:    routeID,
			DriverID:   adjustment.DriverID,
			Message:    "tip " + amount.String(),
			OccurredAt: adjustment.SettledAt,
		})
	}
	return tip, adjustment, nil
}

func unsettledTips(tips []entities.Tip) ([]string, entities.Cents) {
	var (
		ids   []string
		total entities.Cents
	)
	for _, t := range tips {
		if t.RecordID != nil {
			continue
		}
		ids = append(ids, t.ID)
		total += t.Amount
	}
	return ids, total
}

func tipsOf(tips []entities.Tip, recordID string) entities.Cents {
	var total entities.Cents
	for _, t := range tips {
		if t.RecordID != nil && *t.RecordID == recordID {
			total += t.Amount
		}
	}
	return total
}

func hasOrder(stops []entities.Stop, orderID string) bool {
	for _, s := range stops {
		if s.OrderID == orderID {
			return true
		}
	}
	return false
}

package earnings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/internal/pkg/cas"
	"route-engine/pkg/logger"
	"route-engine/pkg/retrier"
)

type Service struct {
	routes    RouteRepository
	stops     StopRepository
	repo      Repository
	txManager TxManager
	locker    Locker
	notifier  Notifier
	clock     Clock
	tariff    entities.Tariff
	cas       retrier.Retrier
	log       serviceLogger
}

func New(
	log serviceLogger,
	routes RouteRepository,
	stops StopRepository,
	repo Repository,
	txManager TxManager,
	locker Locker,
	notifier Notifier,
	clock Clock,
	tariff entities.Tariff,
) *Service {
	return &Service{
		routes:    routes,
		stops:     stops,
		repo:      repo,
		txManager: txManager,
		locker:    locker,
		notifier:  notifier,
		clock:     clock,
		tariff:    tariff,
		cas:       cas.New(cas.DefaultAttempts),
		log:       log.With(logger.NewField("service", "earnings")),
	}
}

func (s *Service) Tariff() entities.Tariff {
	return s.tariff
}

// CreditStop добавляет плату за остановку к текущему итогу маршрута.
func (s *Service) CreditStop(ctx context.Context, routeID string, stop entities.Stop) (entities.Cents, error) {
	fee := s.tariff.StopFee(stop.Kind)

	var accrued entities.Cents
	err := cas.Do(ctx, s.cas, func(ctx context.Context) error {
		route, err := s.routes.GetByID(ctx, routeID)
		if err != nil {
			return fmt.Errorf("get route: %w", err)
		}
		route.AccruedCents += fee
		if err := s.routes.Update(ctx, route); err != nil {
			return fmt.Errorf("update route: %w", err)
		}
		accrued = route.AccruedCents
		return nil
	})
	if err != nil {
		return 0, err
	}
	return accrued, nil
}

// FinalizeEarnings создает единственную итоговую запись по завершенному маршруту.
func (s *Service) FinalizeEarnings(ctx context.Context, routeID string) (*entities.EarningsRecord, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidID
	}

	var record *entities.EarningsRecord
	err := s.withRouteLock(ctx, routeID, func(ctx context.Context) error {
		route, err := s.routes.GetByID(ctx, routeID)
		if err != nil {
			return fmt.Errorf("get route: %w", err)
		}
		if route.Status != entities.RouteCompleted {
			return fmt.Errorf("%w: status %s", ErrRouteNotCompleted, route.Status)
		}
		if route.DriverID == nil {
			return ErrNoDriver
		}

		_, err = s.repo.GetSettlement(ctx, routeID)
		switch {
		case err == nil:
			return ErrAlreadySettled
		case !errors.Is(err, apperr.NotFound):
			return fmt.Errorf("get settlement: %w", err)
		}

		stops, err := s.stops.ListByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("list stops: %w", err)
		}

		tips, err := s.repo.ListTipsByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("list tips: %w", err)
		}
		pending, pendingTotal := unsettledTips(tips)

		lines := settlementLines(s.tariff, countCompleted(stops), route.TotalMiles, pendingTotal, carriesLargeItem(stops))
		record = &entities.EarningsRecord{
			ID:        uuid.NewString(),
			RouteID:   routeID,
			DriverID:  *route.DriverID,
			Kind:      entities.RecordSettlement,
			Lines:     lines,
			Total:     entities.SumLines(lines),
			SettledAt: s.clock.Now(),
		}

		if err := s.repo.CreateRecord(ctx, record); err != nil {
			if errors.Is(err, apperr.AlreadySettled) {
				return ErrAlreadySettled
			}
			return fmt.Errorf("create settlement: %w", err)
		}
		if len(pending) > 0 {
			if err := s.repo.MarkTipsSettled(ctx, pending, record.ID); err != nil {
				return fmt.Errorf("mark tips settled: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	RecordsTotal.WithLabelValues(record.Kind.String()).Inc()
	SettledCentsTotal.Add(float64(record.Total))

	s.log.Info("route earnings finalized",
		logger.NewField("route", routeID),
		logger.NewField("driver", record.DriverID),
		logger.NewField("total", record.Total.String()),
	)
	s.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventEarningsSettled,
		RouteID:    routeID,
		DriverID:   record.DriverID,
		Message:    record.Total.String(),
		OccurredAt: record.SettledAt,
	})
	return record, nil
}

// Correct пересчитывает итог маршрута. Если сумма изменилась, действующая
// запись сторнируется и пишется корректировка. Без изменений - пустой результат.
func (s *Service) Correct(ctx context.Context, routeID, reason string) ([]entities.EarningsRecord, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidID
	}

	var written []entities.EarningsRecord
	err := s.withRouteLock(ctx, routeID, func(ctx context.Context) error {
		route, err := s.routes.GetByID(ctx, routeID)
		if err != nil {
			return fmt.Errorf("get route: %w", err)
		}

		records, err := s.repo.ListRecordsByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		settlement, effective := effectiveRecord(records)
		if settlement == nil {
			return ErrNotSettled
		}

		stops, err := s.stops.ListByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("list stops: %w", err)
		}
		tips, err := s.repo.ListTipsByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("list tips: %w", err)
		}

		lines := settlementLines(s.tariff, countCompleted(stops), route.TotalMiles, tipsOf(tips, settlement.ID), carriesLargeItem(stops))
		total := entities.SumLines(lines)
		if total == effective.Total {
			return errNoChange
		}

		now := s.clock.Now()
		reversal := entities.EarningsRecord{
			ID:          uuid.NewString(),
			RouteID:     routeID,
			DriverID:    effective.DriverID,
			Kind:        entities.RecordReversal,
			Lines:       negateLines(effective.Lines),
			Total:       -effective.Total,
			ReferenceID: &effective.ID,
			Reason:      reason,
			SettledAt:   now,
		}
		correction := entities.EarningsRecord{
			ID:          uuid.NewString(),
			RouteID:     routeID,
			DriverID:    effective.DriverID,
			Kind:        entities.RecordCorrection,
			Lines:       lines,
			Total:       total,
			ReferenceID: &settlement.ID,
			Reason:      reason,
			SettledAt:   now,
		}
		for _, rec := range []*entities.EarningsRecord{&reversal, &correction} {
			if err := s.repo.CreateRecord(ctx, rec); err != nil {
				return fmt.Errorf("create %s: %w", rec.Kind, err)
			}
		}
		written = []entities.EarningsRecord{reversal, correction}
		return nil
	})
	if errors.Is(err, errNoChange) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, rec := range written {
		RecordsTotal.WithLabelValues(rec.Kind.String()).Inc()
	}
	s.log.Warn("route earnings corrected",
		logger.NewField("route", routeID),
		logger.NewField("reason", reason),
		logger.NewField("total", written[1].Total.String()),
	)
	s.notifier.Publish(ctx, entities.Event{
		Type:       entities.EventEarningsAdjusted,
		RouteID:    routeID,
		DriverID:   written[1].DriverID,
		Message:    reason,
		OccurredAt: written[1].SettledAt,
	})
	return written, nil
}

// GetEarnings записи водителя за период [from, to). Нулевые границы - без ограничения.
func (s *Service) GetEarnings(ctx context.Context, driverID string, from, to time.Time) (*entities.DriverEarnings, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidID
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, ErrInvalidRange
	}

	records, err := s.repo.ListRecordsByDriver(ctx, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	res := &entities.DriverEarnings{
		DriverID: driverID,
		From:     from,
		To:       to,
		Records:  records,
	}
	for _, r := range records {
		res.Total += r.Total
	}
	return res, nil
}

// Estimate ожидаемая оплата маршрута, если все живые остановки будут выполнены.
func (s *Service) Estimate(route entities.Route, stops []entities.Stop) entities.Cents {
	var total entities.Cents
	for _, st := range stops {
		if st.Status == entities.StopFailed {
			continue
		}
		total += s.tariff.StopFee(st.Kind)
	}
	total += s.tariff.Mileage(route.TotalMiles)
	if carriesLargeItem(stops) {
		total += s.tariff.LargeItemSurcharge
	}
	return total
}

func (s *Service) withRouteLock(ctx context.Context, routeID string, fn func(ctx context.Context) error) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		unlock, err := s.locker.Lock(ctx, "earnings:"+routeID)
		if err != nil {
			return fmt.Errorf("lock route earnings: %w", err)
		}
		defer unlock()
		return fn(ctx)
	})
}

// effectiveRecord итоговая запись и действующая на сейчас: settlement или
// корректировка, которую не сторнировала ни одна reversal-запись. Порядок
// записей в списке не важен.
func effectiveRecord(records []entities.EarningsRecord) (settlement, effective *entities.EarningsRecord) {
	reversed := make(map[string]bool)
	for _, rec := range records {
		if rec.Kind == entities.RecordReversal && rec.ReferenceID != nil {
			reversed[*rec.ReferenceID] = true
		}
	}

	for i := range records {
		rec := &records[i]
		switch rec.Kind {
		case entities.RecordSettlement:
			settlement = rec
		case entities.RecordCorrection:
		default:
			continue
		}
		if !reversed[rec.ID] {
			effective = rec
		}
	}
	if effective == nil {
		effective = settlement
	}
	return settlement, effective
}

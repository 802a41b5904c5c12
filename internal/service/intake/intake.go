package intake

import (
	"context"
	"errors"
	"fmt"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/internal/pkg/geo"
	"route-engine/pkg/logger"
)

type Service struct {
	orders        OrderRepository
	stops         StopRepository
	windows       Windows
	txManager     TxManager
	notifier      Notifier
	clock         Clock
	cellPrecision uint
	log           serviceLogger
}

func New(
	log serviceLogger,
	cellPrecision uint,
	orders OrderRepository,
	stops StopRepository,
	windows Windows,
	txManager TxManager,
	notifier Notifier,
	clock Clock,
) *Service {
	if cellPrecision == 0 {
		cellPrecision = geo.DefaultCellPrecision
	}
	return &Service{
		orders:        orders,
		stops:         stops,
		windows:       windows,
		txManager:     txManager,
		notifier:      notifier,
		clock:         clock,
		cellPrecision: cellPrecision,
		log:           log.With(logger.NewField("service", "intake")),
	}
}

// DeriveStops превращает заказ в пару стопов: забор в точке отправления и
// доставку в точке назначения. Оба стопа ожидают в пуле.
func DeriveStops(order entities.Order) (entities.Stop, entities.Stop, error) {
	if err := validateOrder(order); err != nil {
		return entities.Stop{}, entities.Stop{}, err
	}

	base := entities.Stop{
		OrderID:        order.ID,
		Status:         entities.StopPending,
		Window:         order.Window,
		Cell:           order.Cell,
		LargeItem:      order.RequiresLargeVehicle,
		OrderCreatedAt: order.CreatedAt,
		CreatedAt:      order.CreatedAt,
	}

	pickup := base
	pickup.ID = order.ID + "-pickup"
	pickup.Kind = entities.StopPickup
	pickup.Location = order.Origin

	dropoff := base
	dropoff.ID = order.ID + "-dropoff"
	dropoff.Kind = entities.StopDropoff
	dropoff.Location = order.Destination

	return pickup, dropoff, nil
}

// Submit принимает заказ: назначает окно и ячейку, кладет стопы в пул.
// Если прием в запрошенное окно закрыт, заказ уходит в ближайшее открытое.
func (s *Service) Submit(ctx context.Context, order entities.Order) (*entities.Intake, error) {
	if err := validateOrder(order); err != nil {
		OrdersSubmittedTotal.WithLabelValues(apperr.Kind(err)).Inc()
		return nil, err
	}

	now := s.clock.Now()
	window, rescheduled := s.windows.Resolve(order.RequestedWindow, now)
	order.Window = window
	order.Cell = geo.Cell(order.Origin, s.cellPrecision)
	order.Status = entities.OrderActive
	order.CancelledAt = nil
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}

	pickup, dropoff, err := DeriveStops(order)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, &order); err != nil {
			if errors.Is(err, apperr.Conflict) {
				return fmt.Errorf("%w: %s", ErrOrderAlreadyExist, order.ID)
			}
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.stops.CreateBatch(ctx, []entities.Stop{pickup, dropoff}); err != nil {
			return fmt.Errorf("create stops: %w", err)
		}
		return nil
	})
	if err != nil {
		OrdersSubmittedTotal.WithLabelValues(apperr.Kind(err)).Inc()
		return nil, err
	}

	OrdersSubmittedTotal.WithLabelValues("accepted").Inc()
	fields := []logger.Field{
		logger.NewField("order", order.ID),
		logger.NewField("window", window.Key()),
		logger.NewField("cell", order.Cell),
	}
	if rescheduled {
		s.log.Warn("order moved to next open window", fields...)
		s.notifier.Publish(ctx, entities.Event{
			Type:       entities.EventOrderDelayed,
			OrderID:    order.ID,
			Status:     order.Status.String(),
			Message:    "requested window closed, moved to " + window.Key(),
			OccurredAt: now,
		})
	} else {
		s.log.Info("order accepted", fields...)
	}

	return &entities.Intake{
		Order:       order,
		Pickup:      pickup,
		Dropoff:     dropoff,
		Rescheduled: rescheduled,
	}, nil
}

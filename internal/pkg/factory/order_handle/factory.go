package order_handle

import (
	"context"
	"errors"
	"fmt"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
)

const (
	EventOrderConfirmed = "order.confirmed"
	EventOrderCancelled = "order.cancelled"
)

var ErrUndefinedEvent = errors.New("undefined order event")

type ExecuteFn func(ctx context.Context, order entities.Order) error

type Intake interface {
	Submit(ctx context.Context, order entities.Order) (*entities.Intake, error)
}

type Tracking interface {
	CancelOrder(ctx context.Context, orderID string) (*entities.Order, error)
}

// EventHandlerFactory выбирает обработчик события заказа маркетплейса.
type EventHandlerFactory struct {
	intake   Intake
	tracking Tracking
}

func NewEventHandlerFactory(intake Intake, tracking Tracking) *EventHandlerFactory {
	return &EventHandlerFactory{
		intake:   intake,
		tracking: tracking,
	}
}

func (f *EventHandlerFactory) GetHandler(event string) (ExecuteFn, error) {
	switch event {
	case EventOrderConfirmed:
		return f.confirmedHandler, nil
	case EventOrderCancelled:
		return f.cancelledHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUndefinedEvent, event)
	}
}

// confirmedHandler повторная доставка уже принятого заказа не ошибка.
func (f *EventHandlerFactory) confirmedHandler(ctx context.Context, order entities.Order) error {
	_, err := f.intake.Submit(ctx, order)
	if err != nil && !errors.Is(err, apperr.Conflict) {
		return fmt.Errorf("submit confirmed order %s: %w", order.ID, err)
	}
	return nil
}

func (f *EventHandlerFactory) cancelledHandler(ctx context.Context, order entities.Order) error {
	_, err := f.tracking.CancelOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("cancel order %s: %w", order.ID, err)
	}
	return nil
}

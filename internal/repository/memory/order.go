package memory

import (
	"context"
	"fmt"
	"sync"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]entities.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]entities.Order)}
}

func (r *OrderRepository) Create(_ context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("%w: order %s already exists", apperr.Conflict, order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperr.NotFound, id)
	}
	res := cloneOrder(o)
	return &res, nil
}

func (r *OrderRepository) Update(_ context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("%w: order %s", apperr.NotFound, order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

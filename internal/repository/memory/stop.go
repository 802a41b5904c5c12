package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
)

type StopRepository struct {
	mu    sync.RWMutex
	stops map[string]entities.Stop
}

func NewStopRepository() *StopRepository {
	return &StopRepository{stops: make(map[string]entities.Stop)}
}

func (r *StopRepository) CreateBatch(_ context.Context, stops []entities.Stop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range stops {
		if _, ok := r.stops[s.ID]; ok {
			return fmt.Errorf("%w: stop %s already exists", apperr.Conflict, s.ID)
		}
	}
	for _, s := range stops {
		s.Version = 1
		r.stops[s.ID] = cloneStop(s)
	}
	return nil
}

func (r *StopRepository) GetByID(_ context.Context, id string) (*entities.Stop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stops[id]
	if !ok {
		return nil, fmt.Errorf("%w: stop %s", apperr.NotFound, id)
	}
	res := cloneStop(s)
	return &res, nil
}

func (r *StopRepository) ListByOrder(_ context.Context, orderID string) ([]entities.Stop, error) {
	return r.filter(func(s entities.Stop) bool { return s.OrderID == orderID }, byKind), nil
}

func (r *StopRepository) ListByRoute(_ context.Context, routeID string) ([]entities.Stop, error) {
	return r.filter(func(s entities.Stop) bool { return s.RouteID == routeID }, byPosition), nil
}

func (r *StopRepository) ListPooled(_ context.Context, key entities.PoolKey) ([]entities.Stop, error) {
	return r.filter(func(s entities.Stop) bool {
		return s.Pooled() && s.Cell == key.Cell && s.Window.Start.Equal(key.WindowStart)
	}, byOrderAge), nil
}

func (r *StopRepository) ListPoolKeys(_ context.Context) ([]entities.PoolKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[entities.PoolKey]struct{})
	var keys []entities.PoolKey
	for _, s := range r.stops {
		if !s.Pooled() {
			continue
		}
		k := entities.PoolKey{WindowStart: s.Window.Start, Cell: s.Cell}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].WindowStart.Equal(keys[j].WindowStart) {
			return keys[i].WindowStart.Before(keys[j].WindowStart)
		}
		return keys[i].Cell < keys[j].Cell
	})
	return keys, nil
}

// Update пишет стоп, если версия не изменилась, и увеличивает stop.Version.
func (r *StopRepository) Update(_ context.Context, stop *entities.Stop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.stops[stop.ID]
	if !ok {
		return fmt.Errorf("%w: stop %s", apperr.NotFound, stop.ID)
	}
	if cur.Version != stop.Version {
		return fmt.Errorf("%w: stop %s", apperr.VersionConflict, stop.ID)
	}
	stop.Version++
	r.stops[stop.ID] = cloneStop(*stop)
	return nil
}

func (r *StopRepository) filter(match func(entities.Stop) bool, less func(a, b entities.Stop) bool) []entities.Stop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []entities.Stop
	for _, s := range r.stops {
		if match(s) {
			res = append(res, cloneStop(s))
		}
	}
	sort.Slice(res, func(i, j int) bool { return less(res[i], res[j]) })
	return res
}

func byKind(a, b entities.Stop) bool {
	if a.Kind != b.Kind {
		return a.Kind == entities.StopPickup
	}
	return a.ID < b.ID
}

func byPosition(a, b entities.Stop) bool {
	switch {
	case a.Position != nil && b.Position != nil && *a.Position != *b.Position:
		return *a.Position < *b.Position
	case a.Position != nil && b.Position == nil:
		return true
	case a.Position == nil && b.Position != nil:
		return false
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func byOrderAge(a, b entities.Stop) bool {
	if !a.OrderCreatedAt.Equal(b.OrderCreatedAt) {
		return a.OrderCreatedAt.Before(b.OrderCreatedAt)
	}
	if a.OrderID != b.OrderID {
		return a.OrderID < b.OrderID
	}
	return byKind(a, b)
}

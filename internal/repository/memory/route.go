package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
)

type RouteRepository struct {
	mu     sync.RWMutex
	routes map[string]entities.Route
}

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{routes: make(map[string]entities.Route)}
}

func (r *RouteRepository) Create(_ context.Context, route *entities.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[route.ID]; ok {
		return fmt.Errorf("%w: route %s already exists", apperr.Conflict, route.ID)
	}
	route.Version = 1
	r.routes[route.ID] = cloneRoute(*route)
	return nil
}

func (r *RouteRepository) GetByID(_ context.Context, id string) (*entities.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return nil, fmt.Errorf("%w: route %s", apperr.NotFound, id)
	}
	res := cloneRoute(route)
	return &res, nil
}

// Update compare-and-swap по версии маршрута.
func (r *RouteRepository) Update(_ context.Context, route *entities.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.routes[route.ID]
	if !ok {
		return fmt.Errorf("%w: route %s", apperr.NotFound, route.ID)
	}
	if cur.Version != route.Version {
		return fmt.Errorf("%w: route %s version %d, stored %d", apperr.VersionConflict, route.ID, route.Version, cur.Version)
	}
	route.Version++
	r.routes[route.ID] = cloneRoute(*route)
	return nil
}

func (r *RouteRepository) List(_ context.Context, filter entities.RouteFilter) ([]entities.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []entities.Route
	for _, route := range r.routes {
		if matchRoute(route, filter) {
			res = append(res, cloneRoute(route))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func matchRoute(route entities.Route, f entities.RouteFilter) bool {
	if f.WindowStart != nil && !route.Window.Start.Equal(*f.WindowStart) {
		return false
	}
	if f.Cell != "" && route.Cell != f.Cell {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, route.Status) {
		return false
	}
	if f.DriverID != nil && !route.HeldBy(*f.DriverID) {
		return false
	}
	if f.Sealed != nil && route.Sealed != *f.Sealed {
		return false
	}
	return true
}

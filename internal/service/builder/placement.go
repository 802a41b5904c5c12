package builder

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"route-engine/internal/entities"
	"route-engine/internal/pkg/geo"
)

// placement открытые для вставки маршруты окна и индекс их стопов.
type placement struct {
	routes []*entities.Route
	index  *geo.Index
	sizes  map[string]int
}

func (s *Service) loadPlacement(ctx context.Context, window entities.TimeWindow, cell string) (*placement, error) {
	sealed := false
	open, err := s.routes.List(ctx, entities.RouteFilter{
		WindowStart: &window.Start,
		Cell:        cell,
		Statuses:    []entities.RouteStatus{entities.RouteOpen},
		Sealed:      &sealed,
	})
	if err != nil {
		return nil, fmt.Errorf("list open routes: %w", err)
	}

	p := &placement{index: geo.NewIndex(), sizes: make(map[string]int)}
	for i := range open {
		stops, err := s.stops.ListByRoute(ctx, open[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list route stops: %w", err)
		}
		p.add(&open[i], stops)
	}
	return p, nil
}

func (p *placement) add(route *entities.Route, stops []entities.Stop) {
	p.routes = append(p.routes, route)
	for _, st := range stops {
		p.index.Insert(indexKey(route.ID, st.ID), st.Location)
		p.sizes[route.ID]++
	}
}

// placed учитывает вставленную пару. Закрытый маршрут выходит из выбора.
func (p *placement) placed(route *entities.Route, pr pair) {
	p.index.Insert(indexKey(route.ID, pr.pickup.ID), pr.pickup.Location)
	p.index.Insert(indexKey(route.ID, pr.dropoff.ID), pr.dropoff.Location)
	p.sizes[route.ID] += 2

	if !route.Sealed {
		return
	}
	for i, r := range p.routes {
		if r.ID == route.ID {
			p.routes = append(p.routes[:i], p.routes[i+1:]...)
			return
		}
	}
}

func (p *placement) openCount() int {
	return len(p.routes)
}

// choose наименее заполненный маршрут, в который пара помещается и все
// стопы которого лежат в радиусе от забора и от доставки. При равной
// заполненности - ближайший, затем более старый.
func (p *placement) choose(pr pair, radius float64) *entities.Route {
	nearPickup := p.near(pr.pickup.Location, radius)
	nearDropoff := p.near(pr.dropoff.Location, radius)

	type candidate struct {
		route *entities.Route
		miles float64
	}
	var candidates []candidate
	for _, r := range p.routes {
		if r.Free() < 2 {
			continue
		}
		if pr.large() && r.HasLargeItem {
			continue
		}
		size := p.sizes[r.ID]
		if size == 0 {
			candidates = append(candidates, candidate{route: r, miles: math.Inf(1)})
			continue
		}
		hp, hd := nearPickup[r.ID], nearDropoff[r.ID]
		if hp.count < size || hd.count < size {
			continue
		}
		candidates = append(candidates, candidate{route: r, miles: hp.nearest})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if len(a.route.StopIDs) != len(b.route.StopIDs) {
			return len(a.route.StopIDs) < len(b.route.StopIDs)
		}
		if a.miles != b.miles {
			return a.miles < b.miles
		}
		if !a.route.CreatedAt.Equal(b.route.CreatedAt) {
			return a.route.CreatedAt.Before(b.route.CreatedAt)
		}
		return a.route.ID < b.route.ID
	})
	return candidates[0].route
}

type proximity struct {
	count   int
	nearest float64
}

func (p *placement) near(loc entities.Location, radius float64) map[string]proximity {
	res := make(map[string]proximity)
	for _, hit := range p.index.Within(loc, radius) {
		routeID, _, _ := strings.Cut(hit.Key, "|")
		pr, ok := res[routeID]
		if !ok || hit.Miles < pr.nearest {
			pr.nearest = hit.Miles
		}
		pr.count++
		res[routeID] = pr
	}
	return res
}

func indexKey(routeID, stopID string) string {
	return routeID + "|" + stopID
}

package sequencer

import (
	"context"
	"math"
	"sort"

	"route-engine/internal/entities"
)

const distanceEpsilon = 1e-9

// Plan порядок обхода стопов и пробег от стартовой точки.
type Plan struct {
	Stops    []entities.Stop
	Miles    float64
	Degraded bool
}

// meter кэширует расстояния между стопами в пределах одного планирования.
type meter struct {
	provider DistanceProvider
	memo     map[[2]string]float64
	degraded bool
}

func newMeter(provider DistanceProvider) *meter {
	return &meter{provider: provider, memo: make(map[[2]string]float64)}
}

func (m *meter) measure(ctx context.Context, fromKey string, from entities.Location, to entities.Stop) float64 {
	key := [2]string{fromKey, to.ID}
	if d, ok := m.memo[key]; ok {
		return d
	}
	d := m.provider.Measure(ctx, from, to.Location)
	if d.Degraded {
		m.degraded = true
	}
	m.memo[key] = d.Miles
	return d.Miles
}

// Plan жадно выбирает ближайший допустимый стоп от start. Доставка допустима,
// когда ее забор уже в плане или отмечен в placed. Равные расстояния
// решаются по времени создания заказа, затем по id стопа.
func (s *Service) Plan(ctx context.Context, start entities.Location, stops []entities.Stop, placed map[string]bool) Plan {
	m := newMeter(s.distance)
	ordered, miles := plan(ctx, m, "start", start, stops, placed)
	return Plan{Stops: ordered, Miles: miles, Degraded: m.degraded}
}

func plan(ctx context.Context, m *meter, startKey string, start entities.Location, stops []entities.Stop, placed map[string]bool) ([]entities.Stop, float64) {
	remaining := make([]entities.Stop, len(stops))
	copy(remaining, stops)
	sort.SliceStable(remaining, func(i, j int) bool { return tieLess(remaining[i], remaining[j]) })

	done := make(map[string]bool, len(placed)+len(stops))
	for id, ok := range placed {
		done[id] = ok
	}

	var (
		ordered = make([]entities.Stop, 0, len(stops))
		miles   float64
		curKey  = startKey
		cur     = start
	)
	for len(remaining) > 0 {
		best := -1
		bestMiles := math.Inf(1)
		for i, st := range remaining {
			if st.Kind == entities.StopDropoff && !done[st.OrderID] {
				continue
			}
			d := m.measure(ctx, curKey, cur, st)
			if d < bestMiles-distanceEpsilon {
				best, bestMiles = i, d
			}
		}
		if best < 0 {
			// оставшиеся доставки без забора, их ловит проверка порядка
			ordered = append(ordered, remaining...)
			break
		}

		st := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		ordered = append(ordered, st)
		miles += bestMiles
		if st.Kind == entities.StopPickup {
			done[st.OrderID] = true
		}
		curKey, cur = st.ID, st.Location
	}
	return ordered, miles
}

// tieLess порядок при равных расстояниях.
func tieLess(a, b entities.Stop) bool {
	if !a.OrderCreatedAt.Equal(b.OrderCreatedAt) {
		return a.OrderCreatedAt.Before(b.OrderCreatedAt)
	}
	return a.ID < b.ID
}

package entities

import (
	"math"
	"time"
)

type Location struct {
	Lat     float64
	Lon     float64
	Address string
}

const coordEpsilon = 1e-7

func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lon == 0
}

func (l Location) Valid() bool {
	if l.IsZero() {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

func (l Location) SameAs(other Location) bool {
	return math.Abs(l.Lat-other.Lat) < coordEpsilon && math.Abs(l.Lon-other.Lon) < coordEpsilon
}

// TimeWindow окно доставки [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero()
}

func (w TimeWindow) Key() string {
	return w.Start.UTC().Format(time.RFC3339)
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Distance результат оценки расстояния. Degraded - значение подставлено
// вместо ответа провайдера.
type Distance struct {
	Miles    float64
	Degraded bool
}

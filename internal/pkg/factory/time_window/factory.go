package time_window

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"route-engine/internal/entities"
)

// DefaultSlots дневные слоты доставки.
const DefaultSlots = "09:00-12:00,12:00-15:00,15:00-18:00,18:00-21:00"

// горизонт поиска следующего слота
const searchDays = 8

var ErrInvalidSlots = errors.New("invalid delivery slots")

type slot struct {
	start time.Duration // смещение от полуночи
	end   time.Duration
}

// Factory строит окна доставки из дневных слотов. Прием заказов в окно
// закрывается за cutoff до его начала, с этого момента окно в фазе захвата.
type Factory struct {
	slots  []slot
	loc    *time.Location
	cutoff time.Duration
}

func New(slots string, loc *time.Location, cutoff time.Duration) (*Factory, error) {
	parsed, err := parseSlots(slots)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Factory{slots: parsed, loc: loc, cutoff: cutoff}, nil
}

func (f *Factory) Cutoff(w entities.TimeWindow) time.Time {
	return w.Start.Add(-f.cutoff)
}

// AcceptsOrders окно еще открыто для новых заказов.
func (f *Factory) AcceptsOrders(w entities.TimeWindow, now time.Time) bool {
	return now.Before(f.Cutoff(w))
}

// NextOpen первое окно, принимающее заказы в момент now.
func (f *Factory) NextOpen(now time.Time) entities.TimeWindow {
	w, _ := f.firstAfter(now, func(w entities.TimeWindow) bool {
		return f.AcceptsOrders(w, now)
	})
	return w
}

// Next окно, следующее за w.
func (f *Factory) Next(w entities.TimeWindow) entities.TimeWindow {
	next, _ := f.firstAfter(w.Start, func(c entities.TimeWindow) bool {
		return c.Start.After(w.Start)
	})
	return next
}

// Containing слот, в который попадает t. false, если t вне слотов.
func (f *Factory) Containing(t time.Time) (entities.TimeWindow, bool) {
	local := t.In(f.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, f.loc)
	for _, s := range f.slots {
		w := f.window(day, s)
		if w.Contains(t) {
			return w, true
		}
	}
	return entities.TimeWindow{}, false
}

// Resolve окно для заказа. Запрошенное окно приводится к слоту; если прием
// в него уже закрыт, заказ переносится в ближайшее открытое окно.
func (f *Factory) Resolve(requested *entities.TimeWindow, now time.Time) (entities.TimeWindow, bool) {
	if requested == nil || requested.IsZero() {
		return f.NextOpen(now), false
	}

	w, ok := f.Containing(requested.Start)
	if !ok {
		w, _ = f.firstAfter(requested.Start, func(c entities.TimeWindow) bool {
			return !c.Start.Before(requested.Start)
		})
	}
	if f.AcceptsOrders(w, now) {
		return w, false
	}
	return f.NextOpen(now), true
}

func (f *Factory) firstAfter(from time.Time, match func(entities.TimeWindow) bool) (entities.TimeWindow, bool) {
	local := from.In(f.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, f.loc)
	for d := 0; d < searchDays; d++ {
		for _, s := range f.slots {
			w := f.window(day.AddDate(0, 0, d), s)
			if match(w) {
				return w, true
			}
		}
	}
	return entities.TimeWindow{}, false
}

func (f *Factory) window(day time.Time, s slot) entities.TimeWindow {
	return entities.TimeWindow{
		Start: day.Add(s.start).UTC(),
		End:   day.Add(s.end).UTC(),
	}
}

func parseSlots(raw string) ([]slot, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultSlots
	}

	var slots []slot
	for _, part := range strings.Split(raw, ",") {
		bounds := strings.Split(strings.TrimSpace(part), "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlots, part)
		}
		start, err := parseClock(bounds[0])
		if err != nil {
			return nil, err
		}
		end, err := parseClock(bounds[1])
		if err != nil {
			return nil, err
		}
		if end <= start {
			return nil, fmt.Errorf("%w: %q ends before it starts", ErrInvalidSlots, part)
		}
		if len(slots) > 0 && start < slots[len(slots)-1].end {
			return nil, fmt.Errorf("%w: %q overlaps previous slot", ErrInvalidSlots, part)
		}
		slots = append(slots, slot{start: start, end: end})
	}
	return slots, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidSlots, s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/pkg/logger"
)

type Service struct {
	routes    RouteRepository
	stops     StopRepository
	sequencer Sequencer
	windows   Windows
	txManager TxManager
	locker    Locker
	notifier  Notifier
	clock     Clock
	config    Config
	log       serviceLogger
}

func New(
	log serviceLogger,
	config Config,
	routes RouteRepository,
	stops StopRepository,
	sequencer Sequencer,
	windows Windows,
	txManager TxManager,
	locker Locker,
	notifier Notifier,
	clock Clock,
) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Service{
		routes:    routes,
		stops:     stops,
		sequencer: sequencer,
		windows:   windows,
		txManager: txManager,
		locker:    locker,
		notifier:  notifier,
		clock:     clock,
		config:    config,
		log:       log.With(logger.NewField("service", "builder")),
	}, nil
}

// Result итог прохода по пулу.
type Result struct {
	Assigned int
	Waiting  int
	Deferred int
	Opened   []string
	Sealed   []string
}

func (r *Result) add(other Result) {
	r.Assigned += other.Assigned
	r.Waiting += other.Waiting
	r.Deferred += other.Deferred
	r.Opened = append(r.Opened, other.Opened...)
	r.Sealed = append(r.Sealed, other.Sealed...)
}

// Sweep раскладывает ожидающие заказы окна и ячейки по открытым маршрутам.
// Заполненный маршрут закрывается для вставки и сразу упорядочивается.
func (s *Service) Sweep(ctx context.Context, window entities.TimeWindow, cell string) (Result, error) {
	return s.run(ctx, window, cell, false)
}

// CloseWindow последний проход перед началом разбора маршрутов водителями:
// все маршруты окна закрываются, не поместившиеся заказы уходят в следующее окно.
func (s *Service) CloseWindow(ctx context.Context, window entities.TimeWindow, cell string) (Result, error) {
	return s.run(ctx, window, cell, true)
}

func (s *Service) run(ctx context.Context, window entities.TimeWindow, cell string, closing bool) (Result, error) {
	if window.IsZero() {
		return Result{}, ErrInvalidWindow
	}
	if strings.TrimSpace(cell) == "" {
		return Result{}, ErrInvalidCell
	}

	mode := "sweep"
	if closing {
		mode = "close"
	}
	start := time.Now()
	defer func() {
		SweepDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	var (
		res    Result
		events []entities.Event
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		unlock, err := s.locker.Lock(ctx, lockKey(window, cell))
		if err != nil {
			return fmt.Errorf("lock pool: %w", err)
		}
		defer unlock()

		res, events, err = s.fill(ctx, window, cell, closing)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	s.notifier.Publish(ctx, events...)
	s.sequenceAll(ctx, res.Sealed)

	if res.Assigned > 0 || res.Deferred > 0 || len(res.Sealed) > 0 {
		s.log.Info("pool swept",
			logger.NewField("mode", mode),
			logger.NewField("window", window.Key()),
			logger.NewField("cell", cell),
			logger.NewField("assigned", res.Assigned),
			logger.NewField("waiting", res.Waiting),
			logger.NewField("deferred", res.Deferred),
			logger.NewField("sealed", len(res.Sealed)),
		)
	}
	return res, nil
}

func (s *Service) fill(ctx context.Context, window entities.TimeWindow, cell string, closing bool) (Result, []entities.Event, error) {
	var (
		res    Result
		events []entities.Event
		now    = s.clock.Now()
	)

	pooled, err := s.stops.ListPooled(ctx, entities.PoolKey{WindowStart: window.Start, Cell: cell})
	if err != nil {
		return res, nil, fmt.Errorf("list pool: %w", err)
	}

	p, err := s.loadPlacement(ctx, window, cell)
	if err != nil {
		return res, nil, err
	}

	var waiting []entities.Stop
	for _, pr := range pairs(pooled) {
		route := p.choose(pr, s.config.RadiusMiles)
		if route == nil && p.openCount() < s.config.MaxOpenRoutes {
			route, err = s.openRoute(ctx, window, cell, now)
			if err != nil {
				return res, nil, err
			}
			p.add(route, nil)
			res.Opened = append(res.Opened, route.ID)
			events = append(events, entities.Event{
				Type: entities.EventRouteCreated, RouteID: route.ID, Status: route.Status.String(), OccurredAt: now,
			})
		}
		if route == nil {
			waiting = append(waiting, pr.pickup, pr.dropoff)
			res.Waiting++
			continue
		}

		if err := s.insert(ctx, route, &pr); err != nil {
			return res, nil, err
		}
		p.placed(route, pr)
		res.Assigned++
		if route.Sealed {
			res.Sealed = append(res.Sealed, route.ID)
		}
	}

	if !closing {
		return res, events, nil
	}

	for _, route := range p.routes {
		route.Sealed = true
		if len(route.StopIDs) == 0 {
			route.Status = entities.RouteCancelled
			route.ReviewReason = "no orders at window close"
		}
		if err := s.routes.Update(ctx, route); err != nil {
			return res, nil, fmt.Errorf("seal route %s: %w", route.ID, err)
		}
		if route.Status == entities.RouteOpen {
			res.Sealed = append(res.Sealed, route.ID)
		}
	}

	deferred, delayed, err := s.moveToOpenWindow(ctx, waiting, now)
	if err != nil {
		return res, nil, err
	}
	res.Deferred = deferred
	res.Waiting = 0
	events = append(events, delayed...)
	return res, events, nil
}

// Defer возвращает ожидающие стопы в пул. Если прием в их окно закрыт,
// стопы переносятся в ближайшее открытое окно с флагом Delayed.
func (s *Service) Defer(ctx context.Context, stops []entities.Stop) (int, error) {
	fresh := make([]entities.Stop, 0, len(stops))
	for _, st := range stops {
		cur, err := s.stops.GetByID(ctx, st.ID)
		if err != nil {
			return 0, fmt.Errorf("get stop %s: %w", st.ID, err)
		}
		if cur.Status != entities.StopPending {
			continue
		}
		fresh = append(fresh, *cur)
	}

	_, events, err := s.moveToOpenWindow(ctx, fresh, s.clock.Now())
	if err != nil {
		return 0, err
	}
	s.notifier.Publish(ctx, events...)
	return len(fresh), nil
}

// moveToOpenWindow возвращает число перенесенных в другое окно заказов.
func (s *Service) moveToOpenWindow(ctx context.Context, stops []entities.Stop, now time.Time) (int, []entities.Event, error) {
	var (
		events  []entities.Event
		orders  = make(map[string]bool)
		delayed int
	)
	for i := range stops {
		st := &stops[i]
		st.RouteID = ""
		st.Position = nil
		moved := !now.Before(s.windows.Cutoff(st.Window))
		if moved {
			st.Window = s.windows.NextOpen(now)
			st.Delayed = true
			delayed++
		}
		if err := s.stops.Update(ctx, st); err != nil {
			return 0, nil, fmt.Errorf("return stop %s to pool: %w", st.ID, err)
		}
		if moved && !orders[st.OrderID] {
			orders[st.OrderID] = true
			events = append(events, entities.Event{
				Type:       entities.EventOrderDelayed,
				OrderID:    st.OrderID,
				Message:    "moved to window " + st.Window.Key(),
				OccurredAt: now,
			})
		}
	}
	StopsDeferredTotal.Add(float64(delayed))
	for id := range orders {
		s.log.Warn("order delayed to next window", logger.NewField("order", id))
	}
	return len(orders), events, nil
}

// SweepAll обходит все окна и ячейки, где есть ожидающие заказы или
// открытые маршруты. После отсечки окна выполняется CloseWindow.
func (s *Service) SweepAll(ctx context.Context) (Result, error) {
	now := s.clock.Now()

	type target struct {
		window entities.TimeWindow
		cell   string
	}
	var (
		targets []target
		seen    = make(map[string]bool)
	)
	addTarget := func(w entities.TimeWindow, cell string) {
		k := w.Key() + "|" + cell
		if seen[k] {
			return
		}
		seen[k] = true
		targets = append(targets, target{window: w, cell: cell})
	}

	keys, err := s.stops.ListPoolKeys(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list pool keys: %w", err)
	}
	for _, k := range keys {
		w, ok := s.windows.Containing(k.WindowStart)
		if !ok || !w.Start.Equal(k.WindowStart) {
			w = entities.TimeWindow{Start: k.WindowStart, End: k.WindowStart}
		}
		addTarget(w, k.Cell)
	}

	open, err := s.routes.List(ctx, entities.RouteFilter{Statuses: []entities.RouteStatus{entities.RouteOpen}})
	if err != nil {
		return Result{}, fmt.Errorf("list open routes: %w", err)
	}
	var unsequenced []string
	for _, r := range open {
		switch {
		case !r.Sealed:
			addTarget(r.Window, r.Cell)
		case !r.Sequenced:
			unsequenced = append(unsequenced, r.ID)
		}
	}
	s.sequenceAll(ctx, unsequenced)

	var (
		total Result
		errs  []error
	)
	for _, t := range targets {
		var (
			res Result
			err error
		)
		if now.Before(s.windows.Cutoff(t.window)) {
			res, err = s.Sweep(ctx, t.window, t.cell)
		} else {
			res, err = s.CloseWindow(ctx, t.window, t.cell)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("window %s cell %s: %w", t.window.Key(), t.cell, err))
			continue
		}
		total.add(res)
	}
	return total, errors.Join(errs...)
}

// sequenceAll ошибки упорядочивания не прерывают проход: маршрут остается
// неупорядоченным и будет подобран следующим SweepAll.
func (s *Service) sequenceAll(ctx context.Context, routeIDs []string) {
	for _, id := range routeIDs {
		if _, err := s.sequencer.Sequence(ctx, id); err != nil {
			if errors.Is(err, apperr.SequencingViolation) {
				continue
			}
			s.log.Error("sequence sealed route", logger.NewField("route", id), logger.NewField("error", err))
		}
	}
}

func (s *Service) openRoute(ctx context.Context, window entities.TimeWindow, cell string, now time.Time) (*entities.Route, error) {
	route := &entities.Route{
		ID:        uuid.NewString(),
		Window:    window,
		Cell:      cell,
		MaxStops:  s.config.MaxStops,
		Status:    entities.RouteOpen,
		CreatedAt: now,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	RoutesOpenedTotal.Inc()
	return route, nil
}

func (s *Service) insert(ctx context.Context, route *entities.Route, pr *pair) error {
	for _, st := range []*entities.Stop{&pr.pickup, &pr.dropoff} {
		st.RouteID = route.ID
		st.Position = nil
		if err := s.stops.Update(ctx, st); err != nil {
			return fmt.Errorf("assign stop %s: %w", st.ID, err)
		}
	}

	route.StopIDs = append(route.StopIDs, pr.pickup.ID, pr.dropoff.ID)
	if pr.large() {
		route.HasLargeItem = true
	}
	if route.Free() < 2 {
		route.Sealed = true
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return fmt.Errorf("update route %s: %w", route.ID, err)
	}
	return nil
}

func lockKey(window entities.TimeWindow, cell string) string {
	return "sweep:" + window.Key() + ":" + cell
}

type pair struct {
	pickup  entities.Stop
	dropoff entities.Stop
}

func (p pair) large() bool {
	return p.pickup.LargeItem || p.dropoff.LargeItem
}

// pairs собирает стопы пула в пары заказа, сохраняя порядок поступления.
// Заказ без одной из пар в пуле пропускается.
func pairs(stops []entities.Stop) []pair {
	byOrder := make(map[string]*pair)
	var order []string
	for _, st := range stops {
		p, ok := byOrder[st.OrderID]
		if !ok {
			p = &pair{}
			byOrder[st.OrderID] = p
			order = append(order, st.OrderID)
		}
		if st.Kind == entities.StopPickup {
			p.pickup = st
		} else {
			p.dropoff = st
		}
	}

	res := make([]pair, 0, len(order))
	for _, id := range order {
		p := byOrder[id]
		if p.pickup.ID == "" || p.dropoff.ID == "" {
			continue
		}
		res = append(res, *p)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].pickup.OrderCreatedAt.Before(res[j].pickup.OrderCreatedAt)
	})
	return res
}

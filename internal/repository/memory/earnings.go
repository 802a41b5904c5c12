package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"route-engine/internal/apperr"
	"route-engine/internal/entities"
)

type EarningsRepository struct {
	mu      sync.RWMutex
	records map[string]entities.EarningsRecord
	settled map[string]string // route -> settlement record
	tips    map[string]entities.Tip
	splits  map[string]entities.CostSplit
}

func NewEarningsRepository() *EarningsRepository {
	return &EarningsRepository{
		records: make(map[string]entities.EarningsRecord),
		settled: make(map[string]string),
		tips:    make(map[string]entities.Tip),
		splits:  make(map[string]entities.CostSplit),
	}
}

// CreateRecord сохраняет запись. Вторая settlement-запись по маршруту - apperr.AlreadySettled.
func (r *EarningsRepository) CreateRecord(_ context.Context, record *entities.EarningsRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; ok {
		return fmt.Errorf("%w: earnings record %s already exists", apperr.Conflict, record.ID)
	}
	if record.Kind == entities.RecordSettlement {
		if _, ok := r.settled[record.RouteID]; ok {
			return fmt.Errorf("%w: route %s", apperr.AlreadySettled, record.RouteID)
		}
		r.settled[record.RouteID] = record.ID
	}
	r.records[record.ID] = cloneRecord(*record)
	return nil
}

func (r *EarningsRepository) GetSettlement(_ context.Context, routeID string) (*entities.EarningsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.settled[routeID]
	if !ok {
		return nil, fmt.Errorf("%w: settlement for route %s", apperr.NotFound, routeID)
	}
	rec := cloneRecord(r.records[id])
	return &rec, nil
}

func (r *EarningsRepository) ListRecordsByRoute(_ context.Context, routeID string) ([]entities.EarningsRecord, error) {
	return r.listRecords(func(rec entities.EarningsRecord) bool { return rec.RouteID == routeID }), nil
}

func (r *EarningsRepository) ListRecordsByDriver(_ context.Context, driverID string, from, to time.Time) ([]entities.EarningsRecord, error) {
	return r.listRecords(func(rec entities.EarningsRecord) bool {
		return rec.DriverID == driverID && inRange(rec.SettledAt, from, to)
	}), nil
}

func (r *EarningsRepository) listRecords(match func(entities.EarningsRecord) bool) []entities.EarningsRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []entities.EarningsRecord
	for _, rec := range r.records {
		if match(rec) {
			res = append(res, cloneRecord(rec))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].SettledAt.Equal(res[j].SettledAt) {
			return res[i].SettledAt.Before(res[j].SettledAt)
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func (r *EarningsRepository) CreateTip(_ context.Context, tip *entities.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tips[tip.ID]; ok {
		return fmt.Errorf("%w: tip %s already exists", apperr.Conflict, tip.ID)
	}
	r.tips[tip.ID] = cloneTip(*tip)
	return nil
}

func (r *EarningsRepository) ListTipsByRoute(_ context.Context, routeID string) ([]entities.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []entities.Tip
	for _, t := range r.tips {
		if t.RouteID == routeID {
			res = append(res, cloneTip(t))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].RecordedAt.Equal(res[j].RecordedAt) {
			return res[i].RecordedAt.Before(res[j].RecordedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// MarkTipsSettled привязывает чаевые к записи. Уже привязанные - конфликт.
func (r *EarningsRepository) MarkTipsSettled(_ context.Context, tipIDs []string, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range tipIDs {
		t, ok := r.tips[id]
		if !ok {
			return fmt.Errorf("%w: tip %s", apperr.NotFound, id)
		}
		if t.RecordID != nil {
			return fmt.Errorf("%w: tip %s already settled", apperr.Conflict, id)
		}
	}
	for _, id := range tipIDs {
		t := r.tips[id]
		rid := recordID
		t.RecordID = &rid
		r.tips[id] = t
	}
	return nil
}

func (r *EarningsRepository) SaveCostSplit(_ context.Context, split entities.CostSplit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.splits[split.OrderID] = split
	return nil
}

func (r *EarningsRepository) DeleteCostSplit(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.splits, orderID)
	return nil
}

func (r *EarningsRepository) GetCostSplit(_ context.Context, orderID string) (*entities.CostSplit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.splits[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: cost split for order %s", apperr.NotFound, orderID)
	}
	return &s, nil
}

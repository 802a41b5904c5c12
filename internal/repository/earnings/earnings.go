package earnings

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/internal/repository"
)

const (
	recordsTable = "earnings_records"
	tipsTable    = "tips"
	splitsTable  = "cost_splits"

	// единственная settlement-запись на маршрут
	settlementConstraint = "earnings_records_settlement_uniq"
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) CreateRecord(ctx context.Context, record *entities.EarningsRecord) error {
	recordDB, err := RecordFromDomain(record)
	if err != nil {
		return err
	}

	query, args, err := repository.QB.
		Insert(recordsTable).
		Columns(recordColumns...).
		Values(
			recordDB.ID,
			recordDB.RouteID,
			recordDB.DriverID,
			recordDB.Kind,
			recordDB.Lines,
			recordDB.Total,
			recordDB.ReferenceID,
			recordDB.Reason,
			recordDB.SettledAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected earnings repository createrecord error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		switch {
		case repository.IsUniqueViolationOn(err, settlementConstraint):
			return fmt.Errorf("%w: route %s", apperr.AlreadySettled, record.RouteID)
		case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation):
			return fmt.Errorf("%w: earnings record %s already exists", apperr.Conflict, record.ID)
		}
		return fmt.Errorf("unexpected earnings repository createrecord error: %w", err)
	}
	return nil
}

func (r *Repository) GetSettlement(ctx context.Context, routeID string) (*entities.EarningsRecord, error) {
	records, err := r.listRecords(ctx, sq.Eq{
		"route_id": routeID,
		"kind":     entities.RecordSettlement.String(),
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: settlement for route %s", apperr.NotFound, routeID)
	}
	return &records[0], nil
}

func (r *Repository) ListRecordsByRoute(ctx context.Context, routeID string) ([]entities.EarningsRecord, error) {
	return r.listRecords(ctx, sq.Eq{"route_id": routeID})
}

// ListRecordsByDriver записи за [from, to). Нулевая граница не ограничивает выборку.
func (r *Repository) ListRecordsByDriver(ctx context.Context, driverID string, from, to time.Time) ([]entities.EarningsRecord, error) {
	where := sq.And{sq.Eq{"driver_id": driverID}}
	if !from.IsZero() {
		where = append(where, sq.GtOrEq{"settled_at": from})
	}
	if !to.IsZero() {
		where = append(where, sq.Lt{"settled_at": to})
	}
	return r.listRecords(ctx, where)
}

func (r *Repository) listRecords(ctx context.Context, where sq.Sqlizer) ([]entities.EarningsRecord, error) {
	query, args, err := repository.QB.
		Select(recordColumns...).
		From(recordsTable).
		Where(where).
		OrderBy("settled_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository list error: %w", err)
	}

	recordsDB, err := pgx.CollectRows(rows, pgx.RowToStructByName[RecordDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository list error: %w", err)
	}

	records := make([]entities.EarningsRecord, 0, len(recordsDB))
	for i := range recordsDB {
		record, err := RecordToDomain(&recordsDB[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (r *Repository) CreateTip(ctx context.Context, tip *entities.Tip) error {
	query, args, err := repository.QB.
		Insert(tipsTable).
		Columns(tipColumns...).
		Values(tip.ID, tip.RouteID, tip.OrderID, tip.DriverID, int64(tip.Amount), tip.RecordID, tip.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected earnings repository createtip error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return fmt.Errorf("%w: tip %s already exists", apperr.Conflict, tip.ID)
		}
		return fmt.Errorf("unexpected earnings repository createtip error: %w", err)
	}
	return nil
}

func (r *Repository) ListTipsByRoute(ctx context.Context, routeID string) ([]entities.Tip, error) {
	return r.listTips(ctx, sq.Eq{"route_id": routeID}, "")
}

// MarkTipsSettled привязывает чаевые к записи. Уже привязанные - конфликт.
func (r *Repository) MarkTipsSettled(ctx context.Context, tipIDs []string, recordID string) error {
	if len(tipIDs) == 0 {
		return nil
	}

	tips, err := r.listTips(ctx, sq.Eq{"id": tipIDs}, "FOR UPDATE")
	if err != nil {
		return err
	}

	found := make(map[string]entities.Tip, len(tips))
	for _, t := range tips {
		found[t.ID] = t
	}
	for _, id := range tipIDs {
		t, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: tip %s", apperr.NotFound, id)
		}
		if t.RecordID != nil {
			return fmt.Errorf("%w: tip %s already settled", apperr.Conflict, id)
		}
	}

	query, args, err := repository.QB.
		Update(tipsTable).
		Set("record_id", recordID).
		Where(sq.Eq{"id": tipIDs, "record_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected earnings repository marktipssettled error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected earnings repository marktipssettled error: %w", err)
	}
	if tag.RowsAffected() != int64(len(tipIDs)) {
		return fmt.Errorf("%w: tips settled concurrently", apperr.Conflict)
	}
	return nil
}

func (r *Repository) listTips(ctx context.Context, where sq.Sqlizer, suffix string) ([]entities.Tip, error) {
	builder := repository.QB.
		Select(tipColumns...).
		From(tipsTable).
		Where(where).
		OrderBy("recorded_at", "id")
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository listtips error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository listtips error: %w", err)
	}

	tipsDB, err := pgx.CollectRows(rows, pgx.RowToStructByName[TipDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository listtips error: %w", err)
	}

	tips := make([]entities.Tip, len(tipsDB))
	for i := range tipsDB {
		tips[i] = TipToDomain(&tipsDB[i])
	}
	return tips, nil
}

// SaveCostSplit перезаписывает раскладку заказа при пересчете маршрута.
func (r *Repository) SaveCostSplit(ctx context.Context, split entities.CostSplit) error {
	query, args, err := repository.QB.
		Insert(splitsTable).
		Columns(splitColumns...).
		Values(
			split.OrderID,
			split.RouteID,
			split.LegMiles,
			int64(split.Total),
			int64(split.BuyerShare),
			int64(split.SellerShare),
			split.ComputedAt,
		).
		Suffix(`ON CONFLICT (order_id) DO UPDATE SET
			route_id = EXCLUDED.route_id,
			leg_miles = EXCLUDED.leg_miles,
			total = EXCLUDED.total,
			buyer_share = EXCLUDED.buyer_share,
			seller_share = EXCLUDED.seller_share,
			computed_at = EXCLUDED.computed_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected earnings repository savecostsplit error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected earnings repository savecostsplit error: %w", err)
	}
	return nil
}

func (r *Repository) GetCostSplit(ctx context.Context, orderID string) (*entities.CostSplit, error) {
	query, args, err := repository.QB.
		Select(splitColumns...).
		From(splitsTable).
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository getcostsplit error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected earnings repository getcostsplit error: %w", err)
	}

	splitDB, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[CostSplitDB])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cost split for order %s", apperr.NotFound, orderID)
		}
		return nil, fmt.Errorf("unexpected earnings repository getcostsplit error: %w", err)
	}

	return SplitToDomain(&splitDB), nil
}

// DeleteCostSplit удаляет раскладку отмененного заказа. Отсутствие строки не ошибка.
func (r *Repository) DeleteCostSplit(ctx context.Context, orderID string) error {
	query, args, err := repository.QB.
		Delete(splitsTable).
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected earnings repository deletecostsplit error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected earnings repository deletecostsplit error: %w", err)
	}
	return nil
}

package stop

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"route-engine/internal/apperr"
	"route-engine/internal/entities"
	"route-engine/internal/repository"
)

const table = "stops"

const (
	orderByKind     = "(kind = 'dropoff'), id"
	orderByPosition = "position NULLS LAST, created_at, id"
	orderByAge      = "order_created_at, order_id, (kind = 'dropoff'), id"
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CreateBatch вставляет стопы одним round-trip. Версия новых стопов 1.
func (r *Repository) CreateBatch(ctx context.Context, stops []entities.Stop) error {
	batch := &pgx.Batch{}
	for i := range stops {
		stopDB := FromDomain(&stops[i])
		stopDB.Version = 1

		query, args, err := repository.QB.
			Insert(table).
			Columns(columns...).
			Values(stopDB.values()...).
			ToSql()
		if err != nil {
			return fmt.Errorf("unexpected stop repository createbatch error: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := r.querier.SendBatch(ctx, batch)
	for i := range stops {
		_, err := results.Exec()
		if err != nil {
			closeErr := results.Close()
			if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
				return fmt.Errorf("%w: stop %s already exists", apperr.Conflict, stops[i].ID)
			}
			return errors.Join(fmt.Errorf("unexpected stop repository createbatch error: %w", err), closeErr)
		}
	}

	err := results.Close()
	if err != nil {
		return fmt.Errorf("unexpected stop repository createbatch error: %w", err)
	}

	for i := range stops {
		stops[i].Version = 1
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Stop, error) {
	stops, err := r.list(ctx, sq.Eq{"id": id}, "id")
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: stop %s", apperr.NotFound, id)
	}
	return &stops[0], nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]entities.Stop, error) {
	return r.list(ctx, sq.Eq{"order_id": orderID}, orderByKind)
}

func (r *Repository) ListByRoute(ctx context.Context, routeID string) ([]entities.Stop, error) {
	return r.list(ctx, sq.Eq{"route_id": routeID}, orderByPosition)
}

func (r *Repository) ListPooled(ctx context.Context, key entities.PoolKey) ([]entities.Stop, error) {
	return r.list(ctx, sq.And{
		pooled(),
		sq.Eq{"cell": key.Cell},
		sq.Eq{"window_start": key.WindowStart},
	}, orderByAge)
}

func (r *Repository) ListPoolKeys(ctx context.Context) ([]entities.PoolKey, error) {
	query, args, err := repository.QB.
		Select("window_start", "cell").
		Distinct().
		From(table).
		Where(pooled()).
		OrderBy("window_start", "cell").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository listpoolkeys error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository listpoolkeys error: %w", err)
	}

	keysDB, err := pgx.CollectRows(rows, pgx.RowToStructByName[PoolKeyDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository listpoolkeys error: %w", err)
	}

	keys := make([]entities.PoolKey, len(keysDB))
	for i, k := range keysDB {
		keys[i] = entities.PoolKey{WindowStart: k.WindowStart.UTC(), Cell: k.Cell}
	}
	return keys, nil
}

// Update compare-and-swap по версии стопа, при успехе увеличивает stop.Version.
func (r *Repository) Update(ctx context.Context, stop *entities.Stop) error {
	stopDB := FromDomain(stop)

	query, args, err := repository.QB.
		Update(table).
		SetMap(map[string]any{
			"route_id":       stopDB.RouteID,
			"position":       stopDB.Position,
			"status":         stopDB.Status,
			"window_start":   stopDB.WindowStart,
			"window_end":     stopDB.WindowEnd,
			"delayed":        stopDB.Delayed,
			"failure_reason": stopDB.FailureReason,
			"arrived_at":     stopDB.ArrivedAt,
			"completed_at":   stopDB.CompletedAt,
			"failed_at":      stopDB.FailedAt,
			"version":        sq.Expr("version + 1"),
		}).
		Where(sq.Eq{"id": stop.ID, "version": stop.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected stop repository update error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected stop repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_, getErr := r.GetByID(ctx, stop.ID)
		if getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: stop %s", apperr.VersionConflict, stop.ID)
	}

	stop.Version++
	return nil
}

func (r *Repository) list(ctx context.Context, where sq.Sqlizer, orderBy string) ([]entities.Stop, error) {
	query, args, err := repository.QB.
		Select(columns...).
		From(table).
		Where(where).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository list error: %w", err)
	}

	stopsDB, err := pgx.CollectRows(rows, pgx.RowToStructByName[StopDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected stop repository list error: %w", err)
	}

	return ToDomainList(stopsDB), nil
}

func pooled() sq.Sqlizer {
	return sq.And{
		sq.Eq{"route_id": nil},
		sq.Eq{"status": entities.StopPending.String()},
	}
}

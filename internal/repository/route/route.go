package route

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

const table = "routes"

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, route *entities.Route) error {
	routeDB := FromDomain(route)
	routeDB.Version = 1

	query, args, err := repository.QB.
		Insert(table).
		Columns(columns...).
		Values(routeDB.values()...).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected route repository create error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return fmt.Errorf("%w: route %s already exists", apperr.Conflict, route.ID)
		}
		return fmt.Errorf("unexpected route repository create error: %w", err)
	}

	route.Version = 1
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Route, error) {
	query, args, err := repository.QB.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository getbyid error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository getbyid error: %w", err)
	}

	routeDB, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[RouteDB])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: route %s", apperr.NotFound, id)
		}
		return nil, fmt.Errorf("unexpected route repository getbyid error: %w", err)
	}

	return ToDomain(&routeDB), nil
}

// Update compare-and-swap: UPDATE ... WHERE id = $1 AND version = $2.
func (r *Repository) Update(ctx context.Context, route *entities.Route) error {
	changes := FromDomain(route).changes()
	changes["version"] = sq.Expr("version + 1")

	query, args, err := repository.QB.
		Update(table).
		SetMap(changes).
		Where(sq.Eq{"id": route.ID, "version": route.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected route repository update error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected route repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		stored, getErr := r.GetByID(ctx, route.ID)
		if getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: route %s version %d, stored %d", apperr.VersionConflict, route.ID, route.Version, stored.Version)
	}

	route.Version++
	return nil
}

func (r *Repository) List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error) {
	builder := repository.QB.
		Select(columns...).
		From(table)

	if filter.WindowStart != nil {
		builder = builder.Where(sq.Eq{"window_start": *filter.WindowStart})
	}
	if filter.Cell != "" {
		builder = builder.Where(sq.Eq{"cell": filter.Cell})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.DriverID != nil {
		builder = builder.Where(sq.Eq{"driver_id": *filter.DriverID})
	}
	if filter.Sealed != nil {
		builder = builder.Where(sq.Eq{"sealed": *filter.Sealed})
	}

	query, args, err := builder.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}

	routesDB, err := pgx.CollectRows(rows, pgx.RowToStructByName[RouteDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}

	return ToDomainList(routesDB), nil
}

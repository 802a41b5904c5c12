package order

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

const table = "orders"

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, order *entities.Order) error {
	query, args, err := repository.QB.
		Insert(table).
		Columns(columns...).
		Values(FromDomain(order).values()...).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return fmt.Errorf("%w: order %s already exists", apperr.Conflict, order.ID)
		}
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := repository.QB.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderDB, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[OrderDB])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", apperr.NotFound, id)
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(&orderDB), nil
}

// Update меняет только статус отмены, остальные поля заказа неизменны.
func (r *Repository) Update(ctx context.Context, order *entities.Order) error {
	query, args, err := repository.QB.
		Update(table).
		Set("status", order.Status.String()).
		Set("cancelled_at", order.CancelledAt).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperr.NotFound, order.ID)
	}
	return nil
}

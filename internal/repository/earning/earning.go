package earning

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/earnings"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const eventColumns = `id, order_id, courier_id, amount, type, status, created_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CreateEvent пишет событие начисления. Уникальность (order_id, courier_id)
// держит база: повторная запись возвращает существующее событие и false.
func (r *Repository) CreateEvent(ctx context.Context, event entities.EarningEvent) (*entities.EarningEvent, bool, error) {
	query := `
		INSERT INTO earning_events (order_id, courier_id, amount, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id, courier_id) DO NOTHING
		RETURNING ` + eventColumns

	eventDB, err := scanEvent(r.querier.QueryRow(
		ctx,
		query,
		event.OrderID,
		event.CourierID,
		event.Amount,
		string(event.Type),
		string(event.Status),
		event.CreatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.getByOrder(ctx, event.OrderID, event.CourierID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, false, earnings.ErrCourierNotFound
		}
		return nil, false, fmt.Errorf("unexpected earning repository create error: %w", repository.WrapConflict(err))
	}

	return ToDomain(eventDB), true, nil
}

func (r *Repository) ListByCourier(ctx context.Context, courierID int64) ([]entities.EarningEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM earning_events
		WHERE courier_id = $1
		ORDER BY created_at, id`

	rows, err := r.querier.Query(ctx, query, courierID)
	if err != nil {
		return nil, fmt.Errorf("unexpected earning repository list error: %w", err)
	}
	defer rows.Close()

	eventModels := make([]EarningEventDB, 0, 8)
	for rows.Next() {
		eventModel, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected earning repository list error: %w", err)
		}
		eventModels = append(eventModels, *eventModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected earning repository list error: %w", err)
	}

	return ToDomainList(eventModels), nil
}

// SettlePending помечает PAID самые старые PENDING-начисления,
// пока их нарастающая сумма укладывается в amount.
func (r *Repository) SettlePending(ctx context.Context, courierID int64, amount decimal.Decimal) (int64, error) {
	query := `
		UPDATE earning_events e
		SET status = 'paid'
		FROM (
			SELECT id, SUM(amount) OVER (ORDER BY created_at, id) AS running_total
			FROM earning_events
			WHERE courier_id = $1
				AND status = 'pending'
		) pending
		WHERE e.id = pending.id
			AND pending.running_total <= $2
	`

	result, err := r.querier.Exec(ctx, query, courierID, amount)
	if err != nil {
		return 0, fmt.Errorf("unexpected earning repository settle error: %w", repository.WrapConflict(err))
	}

	return result.RowsAffected(), nil
}

func (r *Repository) CreatePayout(ctx context.Context, payout entities.Payout) (*entities.Payout, error) {
	query := `
		INSERT INTO courier_payouts (courier_id, amount, balance_after, settled_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, courier_id, amount, balance_after, settled_count, created_at
	`

	var payoutDB PayoutDB
	err := r.querier.QueryRow(
		ctx,
		query,
		payout.CourierID,
		payout.Amount,
		payout.BalanceAfter,
		payout.SettledCount,
		payout.CreatedAt,
	).Scan(
		&payoutDB.ID,
		&payoutDB.CourierID,
		&payoutDB.Amount,
		&payoutDB.BalanceAfter,
		&payoutDB.SettledCount,
		&payoutDB.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, earnings.ErrCourierNotFound
		}
		return nil, fmt.Errorf("unexpected earning repository create payout error: %w", repository.WrapConflict(err))
	}

	return PayoutToDomain(&payoutDB), nil
}

func (r *Repository) getByOrder(ctx context.Context, orderID string, courierID int64) (*entities.EarningEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM earning_events
		WHERE order_id = $1
			AND courier_id = $2`

	eventDB, err := scanEvent(r.querier.QueryRow(ctx, query, orderID, courierID))
	if err != nil {
		return nil, fmt.Errorf("unexpected earning repository get error: %w", err)
	}

	return ToDomain(eventDB), nil
}

func scanEvent(row pgx.Row) (*EarningEventDB, error) {
	var eventModel EarningEventDB
	err := row.Scan(
		&eventModel.ID,
		&eventModel.OrderID,
		&eventModel.CourierID,
		&eventModel.Amount,
		&eventModel.Type,
		&eventModel.Status,
		&eventModel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &eventModel, nil
}

package courier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/courier"
	"dispatch/internal/service/earnings"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// activeOrderCount считается по заказам, отдельного счетчика нет
const activeOrderCount = `(
	SELECT COUNT(*)
	FROM orders o
	WHERE o.courier_id = c.id
		AND o.status IN ('assigned', 'processing', 'picked_up', 'delivering', 'delivered')
) AS active_order_count`

const courierColumns = `c.id, c.name, c.phone, c.status, c.on_duty, c.lat, c.lng, c.last_location_at,
	c.rating, c.total_deliveries, c.tier, c.balance, c.is_verified,
	c.avg_response_seconds, c.response_samples, ` + activeOrderCount + `, c.created_at, c.updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, courierModifyEntity entities.CourierModify) (int64, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)
	query := `INSERT INTO couriers (name, phone, status, on_duty, rating, tier, is_verified)
		VALUES ($1, $2, $3, FALSE, $4, $5, $6)
		RETURNING id`

	isVerified := courierModifyModel.IsVerified != nil && *courierModifyModel.IsVerified

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		courierModifyModel.Name,
		courierModifyModel.Phone,
		entities.CourierOffline.String(),
		entities.DefaultRating,
		entities.TierBronze.String(),
		isVerified,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, courier.ErrConflict
		}
		return 0, fmt.Errorf("unexpected courier repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, courierModifyEntity entities.CourierModify) (*entities.Courier, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)

	builder := qb.
		Update("couriers c")

	// опционные поля
	if courierModifyModel.Name != nil {
		builder = builder.Set("name", courierModifyModel.Name)
	}
	if courierModifyModel.Phone != nil {
		builder = builder.Set("phone", courierModifyModel.Phone)
	}
	if courierModifyModel.IsVerified != nil {
		builder = builder.Set("is_verified", courierModifyModel.IsVerified)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"c.id": courierModifyModel.ID}).
		Suffix("RETURNING " + courierColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, courier.ErrConflict
		}

		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	return ToDomain(courierModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Courier, error) {
	query := `SELECT ` + courierColumns + `
		FROM couriers c
		WHERE c.id = $1`

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}

		return nil, fmt.Errorf("unexpected courier repository getbyid error: %w", err)
	}

	return ToDomain(courierModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Courier, error) {
	builder := qb.
		Select(courierColumns).
		From("couriers c").
		OrderBy("c.id")

	return r.list(ctx, builder)
}

func (r *Repository) UpdateLocation(ctx context.Context, id int64, location entities.Location, reportedAt time.Time) (*entities.Courier, error) {
	query := `
		UPDATE couriers c
		SET lat = $2,
			lng = $3,
			last_location_at = $4,
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + courierColumns

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, id, location.Lat, location.Lng, reportedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}
		return nil, fmt.Errorf("unexpected courier repository update location error: %w", err)
	}

	return ToDomain(courierModel), nil
}

// SetDuty статус всегда выставляется вместе с флагом смены.
func (r *Repository) SetDuty(ctx context.Context, id int64, onDuty bool) (*entities.Courier, error) {
	query := `
		UPDATE couriers c
		SET on_duty = $2,
			status = $3,
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + courierColumns

	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, id, onDuty, entities.StatusForDuty(onDuty).String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}
		return nil, fmt.Errorf("unexpected courier repository set duty error: %w", err)
	}

	return ToDomain(courierModel), nil
}

// GetCandidates курьеры на смене, верифицированные, с геопозицией не старше FreshSince.
func (r *Repository) GetCandidates(ctx context.Context, filter entities.CandidateFilter) ([]entities.Courier, error) {
	builder := qb.
		Select(courierColumns).
		From("couriers c").
		Where(sq.Eq{"c.on_duty": true, "c.is_verified": true}).
		Where(sq.NotEq{"c.lat": nil}).
		Where(sq.GtOrEq{"c.last_location_at": filter.FreshSince}).
		OrderBy("c.id")

	if len(filter.Exclude) > 0 {
		builder = builder.Where(sq.NotEq{"c.id": filter.Exclude})
	}

	return r.list(ctx, builder)
}

// RecordResponse скользящее среднее времени ответа.
func (r *Repository) RecordResponse(ctx context.Context, id int64, seconds float64) error {
	query := `
		UPDATE couriers
		SET avg_response_seconds = (avg_response_seconds * response_samples + $2) / (response_samples + 1),
			response_samples = response_samples + 1,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id, seconds)
	if err != nil {
		return fmt.Errorf("unexpected courier repository record response error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return courier.ErrCourierNotFound
	}
	return nil
}

func (r *Repository) AddBalance(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Courier, error) {
	query := `
		UPDATE couriers c
		SET balance = balance + $2,
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + courierColumns

	return r.credit(ctx, query, courierID, amount)
}

// AddDelivery учитывает завершенную доставку и ее оплату одним обновлением.
func (r *Repository) AddDelivery(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Courier, error) {
	query := `
		UPDATE couriers c
		SET balance = balance + $2,
			total_deliveries = total_deliveries + 1,
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + courierColumns

	return r.credit(ctx, query, courierID, amount)
}

func (r *Repository) SetTier(ctx context.Context, courierID int64, tier entities.CourierTier) error {
	query := `
		UPDATE couriers
		SET tier = $2,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, courierID, tier.String())
	if err != nil {
		return fmt.Errorf("unexpected courier repository set tier error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return courier.ErrCourierNotFound
	}
	return nil
}

// DebitBalance списывает сумму, только если баланса хватает.
func (r *Repository) DebitBalance(ctx context.Context, courierID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE couriers
		SET balance = balance - $2,
			updated_at = NOW()
		WHERE id = $1
			AND balance >= $2
		RETURNING balance
	`

	var balance decimal.Decimal
	err := r.querier.QueryRow(ctx, query, courierID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, err := r.GetByID(ctx, courierID); err != nil {
				return decimal.Zero, err
			}
			return decimal.Zero, earnings.ErrInsufficientBalance
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return decimal.Zero, earnings.ErrInsufficientBalance
		}
		return decimal.Zero, fmt.Errorf("unexpected courier repository debit error: %w", repository.WrapConflict(err))
	}

	return balance, nil
}

func (r *Repository) credit(ctx context.Context, query string, courierID int64, amount decimal.Decimal) (*entities.Courier, error) {
	courierModel, err := scanCourier(r.querier.QueryRow(ctx, query, courierID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, courier.ErrCourierNotFound
		}
		return nil, fmt.Errorf("unexpected courier repository credit error: %w", repository.WrapConflict(err))
	}

	return ToDomain(courierModel), nil
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Courier, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
	}
	defer rows.Close()

	// начальная емкость, на смене обычно немного курьеров
	courierModels := make([]CourierDB, 0, 8)
	for rows.Next() {
		courierModel, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
		}
		courierModels = append(courierModels, *courierModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository list error: %w", err)
	}

	return ToDomainList(courierModels), nil
}

func scanCourier(row pgx.Row) (*CourierDB, error) {
	var courierModel CourierDB
	err := row.Scan(
		&courierModel.ID,
		&courierModel.Name,
		&courierModel.Phone,
		&courierModel.Status,
		&courierModel.OnDuty,
		&courierModel.Lat,
		&courierModel.Lng,
		&courierModel.LastLocationAt,
		&courierModel.Rating,
		&courierModel.TotalDeliveries,
		&courierModel.Tier,
		&courierModel.Balance,
		&courierModel.IsVerified,
		&courierModel.AvgResponseSeconds,
		&courierModel.ResponseSamples,
		&courierModel.ActiveOrderCount,
		&courierModel.CreatedAt,
		&courierModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &courierModel, nil
}

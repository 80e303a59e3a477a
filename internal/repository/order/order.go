package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/lifecycle"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, status, payment_status, courier_id, total, delivery_fee,
	pickup_lat, pickup_lng, delivery_lat, delivery_lng, delivery_photo_ref, cancel_reason,
	assigned_at, created_at, updated_at, finished_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create сохраняет заказ из оформления. Если заказ с таким id уже есть,
// возвращает его без изменений и false.
func (r *Repository) Create(ctx context.Context, newOrder entities.NewOrder, deliveryFee decimal.Decimal) (*entities.Order, bool, error) {
	pickupLat, pickupLng := fromLocation(newOrder.Pickup)
	deliveryLat, deliveryLng := fromLocation(newOrder.Delivery)

	query := `
		INSERT INTO orders (id, status, payment_status, total, delivery_fee,
			pickup_lat, pickup_lng, delivery_lat, delivery_lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
		RETURNING ` + orderColumns

	orderDB, err := scanOrder(r.querier.QueryRow(
		ctx,
		query,
		newOrder.ID,
		entities.OrderCreated.String(),
		entities.PaymentUnpaid.String(),
		newOrder.Total,
		deliveryFee,
		pickupLat,
		pickupLng,
		deliveryLat,
		deliveryLng,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByID(ctx, newOrder.ID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("unexpected order repository create error: %w", repository.WrapConflict(err))
	}

	return ToDomain(orderDB), true, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, lifecycle.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", repository.WrapConflict(err))
	}

	return ToDomain(orderDB), nil
}

// UpdateStatus условное обновление: применяется, только если статус в хранилище
// все еще from. Иначе ErrConcurrentModification.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id string,
	from entities.OrderStatusType,
	orderModifyEntity entities.OrderModify,
) (*entities.Order, error) {
	orderModifyModel := FromDomainModify(&orderModifyEntity)

	builder := qb.
		Update("orders")

	// опционные поля
	if orderModifyModel.Status != nil {
		builder = builder.Set("status", orderModifyModel.Status)
	}
	if orderModifyModel.PaymentStatus != nil {
		builder = builder.Set("payment_status", orderModifyModel.PaymentStatus)
	}
	if orderModifyModel.DeliveryPhotoRef != nil {
		builder = builder.Set("delivery_photo_ref", orderModifyModel.DeliveryPhotoRef)
	}
	if orderModifyModel.CancelReason != nil {
		builder = builder.Set("cancel_reason", orderModifyModel.CancelReason)
	}
	if orderModifyModel.FinishedAt != nil {
		builder = builder.Set("finished_at", orderModifyModel.FinishedAt)
	}

	switch {
	case orderModifyModel.ClearCourier:
		builder = builder.
			Set("courier_id", nil).
			Set("assigned_at", nil)
	case orderModifyModel.CourierID != nil:
		builder = builder.Set("courier_id", orderModifyModel.CourierID)
		if orderModifyModel.AssignedAt != nil {
			builder = builder.Set("assigned_at", orderModifyModel.AssignedAt)
		}
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": id, "status": from.String()}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missedUpdate(ctx, id)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", repository.WrapConflict(err))
	}

	return ToDomain(orderDB), nil
}

// Claim закрепляет заказ за курьером одним условным UPDATE. Параллельные
// попытки для одного заказа сериализуются блокировкой строки, поэтому
// выигрывает ровно одна.
func (r *Repository) Claim(ctx context.Context, orderID string, courierID int64, assignedAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET courier_id = $2,
			status = 'assigned',
			assigned_at = $3,
			updated_at = NOW()
		WHERE id = $1
			AND status = 'created'
			AND courier_id IS NULL
			AND EXISTS (
				SELECT 1
				FROM couriers c
				WHERE c.id = $2
					AND c.on_duty
					AND c.is_verified
			)
	`

	result, err := r.querier.Exec(ctx, query, orderID, courierID, assignedAt)
	if err != nil {
		return false, fmt.Errorf("unexpected order repository claim error: %w", repository.WrapConflict(err))
	}

	return result.RowsAffected() == 1, nil
}

func (r *Repository) Release(ctx context.Context, orderID string, courierID int64) (*entities.Order, error) {
	query := `
		UPDATE orders
		SET courier_id = NULL,
			status = 'created',
			assigned_at = NULL,
			updated_at = NOW()
		WHERE id = $1
			AND status = 'assigned'
			AND courier_id = $2
		RETURNING ` + orderColumns

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, orderID, courierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missedUpdate(ctx, orderID)
		}
		return nil, fmt.Errorf("unexpected order repository release error: %w", repository.WrapConflict(err))
	}

	return ToDomain(orderDB), nil
}

// ListUnassigned заказы в CREATED, самые старые первыми.
func (r *Repository) ListUnassigned(ctx context.Context, limit uint64) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"status": entities.OrderCreated.String()}).
		OrderBy("created_at", "id").
		Limit(limit)

	return r.list(ctx, builder)
}

func (r *Repository) ListAssignedBefore(ctx context.Context, before time.Time, limit uint64) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"status": entities.OrderAssigned.String()}).
		Where(sq.Lt{"assigned_at": before}).
		OrderBy("assigned_at", "id").
		Limit(limit)

	return r.list(ctx, builder)
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Order, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", repository.WrapConflict(err))
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

// условие не выполнилось: заказа нет или его уже изменили
func (r *Repository) missedUpdate(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return lifecycle.ErrOrderChanged
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.Status,
		&orderModel.PaymentStatus,
		&orderModel.CourierID,
		&orderModel.Total,
		&orderModel.DeliveryFee,
		&orderModel.PickupLat,
		&orderModel.PickupLng,
		&orderModel.DeliveryLat,
		&orderModel.DeliveryLng,
		&orderModel.DeliveryPhotoRef,
		&orderModel.CancelReason,
		&orderModel.AssignedAt,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
		&orderModel.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}

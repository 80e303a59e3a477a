package settings

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/settings"
	"github.com/jackc/pgx/v5"
)

const settingsColumns = `weight_distance, weight_rating, weight_workload, weight_response, delivery_fee, updated_at`

// Repository настройки диспетчеризации хранятся одной строкой с id = 1.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Get(ctx context.Context) (*entities.DispatchSettings, error) {
	query := `SELECT ` + settingsColumns + `
		FROM dispatch_settings
		WHERE id = 1`

	settingsDB, err := scanSettings(r.querier.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("unexpected settings repository get error: %w", err)
	}

	return ToDomain(settingsDB), nil
}

func (r *Repository) Save(ctx context.Context, dispatchSettings entities.DispatchSettings) (*entities.DispatchSettings, error) {
	settingsModel := FromDomain(&dispatchSettings)
	query := `
		INSERT INTO dispatch_settings (id, weight_distance, weight_rating, weight_workload, weight_response, delivery_fee, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE
		SET weight_distance = EXCLUDED.weight_distance,
			weight_rating = EXCLUDED.weight_rating,
			weight_workload = EXCLUDED.weight_workload,
			weight_response = EXCLUDED.weight_response,
			delivery_fee = EXCLUDED.delivery_fee,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + settingsColumns

	settingsDB, err := scanSettings(r.querier.QueryRow(
		ctx,
		query,
		settingsModel.WeightDistance,
		settingsModel.WeightRating,
		settingsModel.WeightWorkload,
		settingsModel.WeightResponse,
		settingsModel.DeliveryFee,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("dispatch settings rejected by store: %w", entities.ErrConfigInvalid)
		}
		return nil, fmt.Errorf("unexpected settings repository save error: %w", repository.WrapConflict(err))
	}

	return ToDomain(settingsDB), nil
}

func scanSettings(row pgx.Row) (*DispatchSettingsDB, error) {
	var settingsModel DispatchSettingsDB
	err := row.Scan(
		&settingsModel.WeightDistance,
		&settingsModel.WeightRating,
		&settingsModel.WeightWorkload,
		&settingsModel.WeightResponse,
		&settingsModel.DeliveryFee,
		&settingsModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &settingsModel, nil
}

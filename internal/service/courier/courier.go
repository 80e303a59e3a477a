package courier

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

const DefaultLocationFreshness = 10 * time.Minute

type Config struct {
	// LocationFreshness сколько живет последняя отметка геопозиции.
	// Курьер с более старой отметкой не попадает в кандидаты.
	LocationFreshness time.Duration
}

// Courier реестр курьеров: смена, позиция, скорость ответа и отбор кандидатов.
type Courier struct {
	repository Repository
	cfg        Config
}

func New(repository Repository, cfg Config) *Courier {
	if cfg.LocationFreshness <= 0 {
		cfg.LocationFreshness = DefaultLocationFreshness
	}
	return &Courier{
		repository: repository,
		cfg:        cfg,
	}
}

func (s *Courier) CreateCourier(ctx context.Context, courierModify entities.CourierModify) (int64, error) {
	if courierModify.Name == nil || courierModify.Phone == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidName(*courierModify.Name) {
		return 0, ErrInvalidName
	}
	if !isValidPhone(*courierModify.Phone) {
		return 0, ErrInvalidPhone
	}

	id, err := s.repository.Create(ctx, courierModify)
	if err != nil {
		return 0, fmt.Errorf("create courier: %w", err)
	}

	return id, nil
}

func (s *Courier) UpdateCourier(ctx context.Context, courierModify entities.CourierModify) (*entities.Courier, error) {
	if courierModify.ID == nil || !isValidCourierID(*courierModify.ID) {
		return nil, ErrInvalidCourierID
	}
	if courierModify.Name == nil &&
		courierModify.Phone == nil &&
		courierModify.IsVerified == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if courierModify.Name != nil && !isValidName(*courierModify.Name) {
		return nil, ErrInvalidName
	}
	if courierModify.Phone != nil && !isValidPhone(*courierModify.Phone) {
		return nil, ErrInvalidPhone
	}

	courier, err := s.repository.Update(ctx, courierModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update courier: %w", err)
	}
	return courier, nil
}

func (s *Courier) GetCourier(ctx context.Context, id int64) (*entities.Courier, error) {
	if !isValidCourierID(id) {
		return nil, ErrInvalidCourierID
	}

	courier, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return courier, nil
}

func (s *Courier) GetCouriers(ctx context.Context) ([]entities.Courier, error) {
	couriers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get couriers: %w", err)
	}

	return couriers, nil
}

// ReportLocation обновляет позицию курьера. Смену не трогает:
// отметка геопозиции сама по себе не выводит курьера на линию.
func (s *Courier) ReportLocation(ctx context.Context, id int64, lat, lng float64) (*entities.Courier, error) {
	if !isValidCourierID(id) {
		return nil, ErrInvalidCourierID
	}
	if !isValidLocation(lat, lng) {
		return nil, ErrInvalidLocation
	}

	courier, err := s.repository.UpdateLocation(ctx, id, entities.Location{Lat: lat, Lng: lng}, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("report location: %w", err)
	}
	return courier, nil
}

// SetDuty идемпотентен: повторный вызов с тем же значением ничего не меняет.
func (s *Courier) SetDuty(ctx context.Context, id int64, onDuty bool) (*entities.Courier, error) {
	if !isValidCourierID(id) {
		return nil, ErrInvalidCourierID
	}

	courier, err := s.repository.SetDuty(ctx, id, onDuty)
	if err != nil {
		return nil, fmt.Errorf("set duty: %w", err)
	}
	return courier, nil
}

// CandidatesFor курьеры на смене, верифицированные и со свежей геопозицией.
// Пустой список не ошибка. exclude убирает курьеров только из этой выборки.
func (s *Courier) CandidatesFor(ctx context.Context, order entities.Order, exclude ...int64) ([]entities.Courier, error) {
	filter := entities.CandidateFilter{
		FreshSince: time.Now().UTC().Add(-s.cfg.LocationFreshness),
		Exclude:    exclude,
	}

	candidates, err := s.repository.GetCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get candidates for order %s: %w", order.ID, err)
	}
	return candidates, nil
}

// RecordResponse учитывает время ответа курьера на предложение заказа
// в скользящем среднем.
func (s *Courier) RecordResponse(ctx context.Context, id int64, assignedAt, respondedAt time.Time) error {
	seconds := respondedAt.Sub(assignedAt).Seconds()
	if seconds < 0 {
		seconds = 0
	}

	if err := s.repository.RecordResponse(ctx, id, seconds); err != nil {
		return fmt.Errorf("record response: %w", err)
	}
	return nil
}

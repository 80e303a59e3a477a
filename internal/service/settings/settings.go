package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dispatch/internal/entities"
	"github.com/shopspring/decimal"
)

// Service хранит действующие веса диспетчеризации и тариф за заказ.
// Читатели получают снимок без блокировок, запись меняет его целиком,
// поэтому частично примененной конфигурации не бывает.
type Service struct {
	repository Repository
	current    atomic.Pointer[entities.DispatchSettings]
	writeMu    sync.Mutex
}

// New проверяет стартовые значения (из окружения) и делает их действующими.
func New(repository Repository, initial entities.DispatchSettings) (*Service, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial dispatch settings: %w", err)
	}

	s := &Service{repository: repository}
	s.current.Store(&initial)
	return s, nil
}

func (s *Service) Current() entities.DispatchSettings {
	return *s.current.Load()
}

func (s *Service) Weights() entities.DispatchWeights {
	return s.current.Load().Weights
}

func (s *Service) DeliveryFee() decimal.Decimal {
	return s.current.Load().DeliveryFee
}

// Update применяет изменение весов и/или тарифа. Невалидное изменение
// отклоняется с ErrConfigInvalid, действующие значения остаются прежними.
func (s *Service) Update(ctx context.Context, modify entities.DispatchSettingsModify) (*entities.DispatchSettings, error) {
	if modify.Weights == nil && modify.DeliveryFee == nil {
		return nil, ErrEmptyUpdate
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Current()
	if modify.Weights != nil {
		next.Weights = *modify.Weights
	}
	if modify.DeliveryFee != nil {
		next.DeliveryFee = *modify.DeliveryFee
	}
	next.UpdatedAt = time.Now().UTC()

	if err := next.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.repository.Save(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save dispatch settings: %w", err)
	}

	s.current.Store(saved)
	return saved, nil
}

// Reload подтягивает настройки из хранилища. Если их там нет, туда
// записываются действующие. Невалидная запись в хранилище не применяется.
func (s *Service) Reload(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.repository.Get(ctx)
	if errors.Is(err, entities.ErrNotFound) {
		seeded, err := s.repository.Save(ctx, s.Current())
		if err != nil {
			return fmt.Errorf("seed dispatch settings: %w", err)
		}
		s.current.Store(seeded)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load dispatch settings: %w", err)
	}

	if err := stored.Validate(); err != nil {
		return fmt.Errorf("stored dispatch settings rejected: %w", err)
	}

	s.current.Store(stored)
	return nil
}

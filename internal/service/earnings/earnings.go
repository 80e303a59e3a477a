package earnings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"github.com/shopspring/decimal"
)

// Ledger журнал начислений курьерам. Баланс растет только через события
// журнала и уменьшается только через выплату.
type Ledger struct {
	repository        Repository
	courierRepository CourierRepository
	txManager         TxManager
}

func New(repository Repository, courierRepository CourierRepository, txManager TxManager) *Ledger {
	return &Ledger{
		repository:        repository,
		courierRepository: courierRepository,
		txManager:         txManager,
	}
}

// Credit записывает начисление за заказ. Повторный вызов для той же пары
// (orderID, courierID) ничего не делает.
func (l *Ledger) Credit(ctx context.Context, courierID int64, orderID string, amount decimal.Decimal) (*entities.Completion, error) {
	return l.credit(ctx, courierID, orderID, amount, false)
}

// RecordCompletion то же начисление, но вместе с ним растет счетчик доставок
// и пересчитывается уровень курьера. Все изменения в одной транзакции.
func (l *Ledger) RecordCompletion(ctx context.Context, courierID int64, orderID string, fee decimal.Decimal) (*entities.Completion, error) {
	return l.credit(ctx, courierID, orderID, fee, true)
}

func (l *Ledger) credit(
	ctx context.Context,
	courierID int64,
	orderID string,
	amount decimal.Decimal,
	countDelivery bool,
) (*entities.Completion, error) {
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	completion := entities.Completion{}
	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		event, created, err := l.repository.CreateEvent(ctx, entities.EarningEvent{
			OrderID:   orderID,
			CourierID: courierID,
			Amount:    amount,
			Type:      entities.EarningDeliveryFee,
			Status:    entities.EarningPending,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create earning event: %w", err)
		}
		completion.Event = event
		if !created {
			return nil
		}

		var courier *entities.Courier
		if countDelivery {
			courier, err = l.courierRepository.AddDelivery(ctx, courierID, amount)
		} else {
			courier, err = l.courierRepository.AddBalance(ctx, courierID, amount)
		}
		if err != nil {
			return fmt.Errorf("credit courier balance: %w", err)
		}

		tier := entities.TierFor(courier.TotalDeliveries)
		if tier != courier.Tier {
			if err := l.courierRepository.SetTier(ctx, courierID, tier); err != nil {
				return fmt.Errorf("update courier tier: %w", err)
			}
			courier.Tier = tier
		}

		completion.Courier = courier
		completion.Credited = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &completion, nil
}

// Payout списывает сумму с баланса и закрывает самые старые начисления,
// которые в нее укладываются.
func (l *Ledger) Payout(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Payout, error) {
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var payout *entities.Payout
	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		balanceAfter, err := l.courierRepository.DebitBalance(ctx, courierID, amount)
		if err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}

		settled, err := l.repository.SettlePending(ctx, courierID, amount)
		if err != nil {
			return fmt.Errorf("settle earnings: %w", err)
		}

		payout, err = l.repository.CreatePayout(ctx, entities.Payout{
			CourierID:    courierID,
			Amount:       amount,
			BalanceAfter: balanceAfter,
			SettledCount: settled,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create payout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payout, nil
}

func (l *Ledger) ListEarnings(ctx context.Context, courierID int64) ([]entities.EarningEvent, error) {
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}

	events, err := l.repository.ListByCourier(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}
	return events, nil
}

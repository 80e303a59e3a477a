package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager инкапсулирует логику управления транзакциями.
// Вложенные Do присоединяются к уже открытой транзакции (PropagationRequired).
type Manager struct {
	internal *manager.Manager
	level    pgx.TxIsoLevel
}

// New создаёт менеджер транзакций с заданным уровнем изоляции.
// Пустой уровень означает Read Committed: все изменения состояния
// заказа и курьера у нас условные (compare-and-set), этого достаточно.
func New(db pgxv5.Transactional, level pgx.TxIsoLevel) *Manager {
	if level == "" {
		level = pgx.ReadCommitted
	}
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		level:    level,
	}
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, m.level, fn)
}

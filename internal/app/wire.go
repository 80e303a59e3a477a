//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/gateway/notify"
	"dispatch/internal/handlers/tasks/dispatch_sweep"
	"dispatch/internal/handlers/tasks/settings_reload"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/offer_deadline"
	"dispatch/internal/pkg/factory/order_action"
	courierRepo "dispatch/internal/repository/courier"
	earningRepo "dispatch/internal/repository/earning"
	orderRepo "dispatch/internal/repository/order"
	settingsRepo "dispatch/internal/repository/settings"
	courierService "dispatch/internal/service/courier"
	dispatchService "dispatch/internal/service/dispatch"
	earningsService "dispatch/internal/service/earnings"
	lifecycleService "dispatch/internal/service/lifecycle"
	orderService "dispatch/internal/service/order"
	"dispatch/internal/service/scoring"
	settingsService "dispatch/internal/service/settings"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideCourierRepository,
	provideOrderRepository,
	provideEarningRepository,
	provideSettingsRepository,

	wire.Bind(new(courierService.Repository), new(*courierRepo.Repository)),
	wire.Bind(new(earningsService.CourierRepository), new(*courierRepo.Repository)),
	wire.Bind(new(earningsService.Repository), new(*earningRepo.Repository)),
	wire.Bind(new(lifecycleService.Repository), new(*orderRepo.Repository)),
	wire.Bind(new(dispatchService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(settingsService.Repository), new(*settingsRepo.Repository)),

	wire.Bind(new(earningsService.TxManager), new(*tx.Manager)),
	wire.Bind(new(lifecycleService.TxManager), new(*tx.Manager)),
)

var coreSet = wire.NewSet(
	repositorySet,

	provideServiceCourier,
	provideScoring,
	provideServiceSettings,
	provideServiceEarnings,
	provideNotifyGateway,
	provideOfferDeadlineFactory,
	provideServiceLifecycle,
	provideServiceDispatch,
	provideActionHandlerFactory,
	provideOrderService,

	wire.Bind(new(dispatchService.Registry), new(*courierService.Courier)),
	wire.Bind(new(lifecycleService.ResponseRecorder), new(*courierService.Courier)),
	wire.Bind(new(dispatchService.Scorer), new(*scoring.Engine)),
	wire.Bind(new(dispatchService.Settings), new(*settingsService.Service)),
	wire.Bind(new(lifecycleService.Settings), new(*settingsService.Service)),
	wire.Bind(new(lifecycleService.Ledger), new(*earningsService.Ledger)),
	wire.Bind(new(dispatchService.Notifier), new(*notify.Gateway)),
	wire.Bind(new(lifecycleService.Notifier), new(*notify.Gateway)),
	wire.Bind(new(dispatchService.OfferDeadlineFactory), new(*offer_deadline.OfferDeadlineFactory)),
	wire.Bind(new(orderService.Lifecycle), new(*lifecycleService.Lifecycle)),
	wire.Bind(new(orderService.Dispatcher), new(*dispatchService.Dispatcher)),
	wire.Bind(new(orderService.HandlerFactory), new(*order_action.ActionHandlerFactory)),

	provideReloadInterval,
	provideSettingsReloadTask,
	wire.Bind(new(settings_reload.Service), new(*settingsService.Service)),

	provideBackgroundWorkers,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	proofStore lifecycleService.ProofStore,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		coreSet,

		provideSweepInterval,
		provideDispatchSweepTask,
		provideTaskList,

		wire.Bind(new(dispatch_sweep.Service), new(*dispatchService.Dispatcher)),

		wire.Bind(new(ServiceCourier), new(*courierService.Courier)),
		wire.Bind(new(ServiceEarnings), new(*earningsService.Ledger)),
		wire.Bind(new(ServiceLifecycle), new(*lifecycleService.Lifecycle)),
		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatcher)),
		wire.Bind(new(ServiceSettings), new(*settingsService.Service)),

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-courier-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	proofStore lifecycleService.ProofStore,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		coreSet,

		provideWorkerTaskList,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

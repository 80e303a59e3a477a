package app

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/notify"
	"dispatch/internal/handlers/rest/courier_duty_put"
	"dispatch/internal/handlers/rest/courier_earnings_get"
	"dispatch/internal/handlers/rest/courier_get"
	"dispatch/internal/handlers/rest/courier_location_put"
	"dispatch/internal/handlers/rest/courier_payout_post"
	"dispatch/internal/handlers/rest/courier_post"
	"dispatch/internal/handlers/rest/courier_put"
	"dispatch/internal/handlers/rest/couriers_get"
	"dispatch/internal/handlers/rest/dispatch_expired_get"
	"dispatch/internal/handlers/rest/dispatch_settings_get"
	"dispatch/internal/handlers/rest/dispatch_settings_put"
	"dispatch/internal/handlers/rest/order_action_post"
	"dispatch/internal/handlers/rest/order_cancel_post"
	"dispatch/internal/handlers/rest/order_complete_post"
	"dispatch/internal/handlers/rest/order_dispatch_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_pay_post"
	"dispatch/internal/handlers/rest/order_reject_post"
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
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	SweepInterval  time.Duration
	ReloadInterval time.Duration
)

type Application struct {
	ServiceCourier    ServiceCourier
	ServiceEarnings   ServiceEarnings
	ServiceLifecycle  ServiceLifecycle
	ServiceOrder      ServiceOrder
	ServiceDispatch   ServiceDispatch
	ServiceSettings   ServiceSettings
	BackgroundWorkers *background.Worker
}

type ServiceCourier interface {
	courier_get.Service
	courier_post.Service
	courier_put.Service
	couriers_get.Service
	courier_duty_put.Service
	courier_location_put.Service
}

type ServiceEarnings interface {
	courier_earnings_get.Service
	courier_payout_post.Service
}

type ServiceLifecycle interface {
	order_get.Service
	order_cancel_post.Service
	order_pay_post.Service
	order_complete_post.Service
	order_reject_post.Orders
}

type ServiceOrder interface {
	order_action_post.Service
}

type ServiceDispatch interface {
	order_dispatch_post.Service
	order_reject_post.Dispatcher
	dispatch_expired_get.Service
	dispatch_sweep.Service
}

type ServiceSettings interface {
	dispatch_settings_get.Service
	dispatch_settings_put.Service
	settings_reload.Service
}

type KafkaWorkerApp struct {
	OrderService      *orderService.Service
	BackgroundWorkers *background.Worker
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool, "")
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideEarningRepository(querier *querier.Querier) *earningRepo.Repository {
	return earningRepo.New(querier)
}

func provideSettingsRepository(querier *querier.Querier) *settingsRepo.Repository {
	return settingsRepo.New(querier)
}

func provideServiceCourier(repository courierService.Repository, cfg *config.Config) *courierService.Courier {
	return courierService.New(repository, courierService.Config{
		LocationFreshness: cfg.Dispatch.LocationFreshness,
	})
}

func provideScoring(cfg *config.Config) *scoring.Engine {
	return scoring.New(scoring.Config{
		MaxRadiusKm:         cfg.Dispatch.MaxRadiusKm,
		MaxConcurrentOrders: cfg.Dispatch.MaxConcurrentOrders,
		MaxResponseSeconds:  cfg.Dispatch.MaxResponseSeconds,
	})
}

// provideServiceSettings стартует с настроек из окружения и сразу
// подтягивает сохраненные администратором.
func provideServiceSettings(ctx context.Context, repository settingsService.Repository, cfg *config.Config) (*settingsService.Service, error) {
	service, err := settingsService.New(repository, entities.DispatchSettings{
		Weights:     cfg.Dispatch.Weights,
		DeliveryFee: cfg.Dispatch.DeliveryFee,
	})
	if err != nil {
		return nil, err
	}

	if err := service.Reload(ctx); err != nil {
		return nil, fmt.Errorf("load dispatch settings: %w", err)
	}
	return service, nil
}

func provideServiceEarnings(
	repository earningsService.Repository,
	courierRepository earningsService.CourierRepository,
	txManager earningsService.TxManager,
) *earningsService.Ledger {
	return earningsService.New(repository, courierRepository, txManager)
}

func provideNotifyGateway(producer sarama.SyncProducer, cfg *config.Config) *notify.Gateway {
	return notify.New(producer, notify.Config{
		CourierTopic:  cfg.Kafka.Producer.CourierNotificationsTopic,
		CustomerTopic: cfg.Kafka.Producer.CustomerNotificationsTopic,
	})
}

func provideOfferDeadlineFactory(cfg *config.Config) *offer_deadline.OfferDeadlineFactory {
	return offer_deadline.New(cfg.Dispatch.OfferWindow)
}

func provideServiceLifecycle(
	log logger.Logger,
	repository lifecycleService.Repository,
	ledger lifecycleService.Ledger,
	settings lifecycleService.Settings,
	notifier lifecycleService.Notifier,
	proofStore lifecycleService.ProofStore,
	responses lifecycleService.ResponseRecorder,
	txManager lifecycleService.TxManager,
) *lifecycleService.Lifecycle {
	return lifecycleService.New(
		log,
		repository,
		ledger,
		settings,
		notifier,
		proofStore,
		responses,
		txManager,
	)
}

func provideServiceDispatch(
	log logger.Logger,
	registry dispatchService.Registry,
	scorer dispatchService.Scorer,
	settings dispatchService.Settings,
	orders dispatchService.OrderRepository,
	notifier dispatchService.Notifier,
	deadlines dispatchService.OfferDeadlineFactory,
	cfg *config.Config,
) *dispatchService.Dispatcher {
	return dispatchService.New(
		log,
		registry,
		scorer,
		settings,
		orders,
		notifier,
		deadlines,
		dispatchService.Config{SweepBatchSize: cfg.Dispatch.SweepBatchSize},
	)
}

func provideActionHandlerFactory(
	lifecycle orderService.Lifecycle,
	dispatcher orderService.Dispatcher,
) *order_action.ActionHandlerFactory {
	return order_action.NewActionHandlerFactory(lifecycle, dispatcher)
}

// provideOrderService обрабатывает события из Kafka и действия курьеров из REST
func provideOrderService(
	log logger.Logger,
	lifecycle orderService.Lifecycle,
	dispatcher orderService.Dispatcher,
	handlerFactory orderService.HandlerFactory,
) *orderService.Service {
	return orderService.New(log, lifecycle, dispatcher, handlerFactory)
}

func provideSweepInterval(cfg *config.Config) SweepInterval {
	return SweepInterval(cfg.Tasks.DispatchSweepInterval)
}

func provideReloadInterval(cfg *config.Config) ReloadInterval {
	return ReloadInterval(cfg.Tasks.SettingsReloadInterval)
}

func provideDispatchSweepTask(
	log logger.Logger,
	dispatcher dispatch_sweep.Service,
	interval SweepInterval,
) *dispatch_sweep.DispatchSweep {
	return dispatch_sweep.NewDispatchSweep(log, dispatcher, time.Duration(interval))
}

func provideSettingsReloadTask(
	settings settings_reload.Service,
	interval ReloadInterval,
) *settings_reload.SettingsReload {
	return settings_reload.NewSettingsReload(settings, time.Duration(interval))
}

func provideTaskList(
	dispatchSweepTask *dispatch_sweep.DispatchSweep,
	settingsReloadTask *settings_reload.SettingsReload,
) []background.Task {
	return []background.Task{
		settingsReloadTask,
		dispatchSweepTask,
	}
}

// provideWorkerTaskList воркеру нужен только свежий тариф и веса
func provideWorkerTaskList(settingsReloadTask *settings_reload.SettingsReload) []background.Task {
	return []background.Task{
		settingsReloadTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

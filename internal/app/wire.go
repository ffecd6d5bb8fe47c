//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	delivery_job_claim_post "marketplace/internal/handlers/rest/delivery_job_claim_post"
	delivery_job_delete "marketplace/internal/handlers/rest/delivery_job_delete"
	delivery_job_get "marketplace/internal/handlers/rest/delivery_job_get"
	delivery_job_status_put "marketplace/internal/handlers/rest/delivery_job_status_put"
	delivery_jobs_get "marketplace/internal/handlers/rest/delivery_jobs_get"
	delivery_jobs_post "marketplace/internal/handlers/rest/delivery_jobs_post"
	order_get "marketplace/internal/handlers/rest/order_get"
	order_status_put "marketplace/internal/handlers/rest/order_status_put"
	orders_list_get "marketplace/internal/handlers/rest/orders_list_get"
	orders_post "marketplace/internal/handlers/rest/orders_post"
	"marketplace/internal/handlers/tasks/realtime_heartbeat"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/factory/delivery_charge"
	"marketplace/internal/pkg/factory/transition_hook"
	"marketplace/internal/pkg/realtime"

	auditLogRepo "marketplace/internal/repository/auditlog"
	deliveryJobRepo "marketplace/internal/repository/deliveryjob"
	listingRepo "marketplace/internal/repository/listing"
	notificationRepo "marketplace/internal/repository/notification"
	orderRepo "marketplace/internal/repository/order"
	userRepo "marketplace/internal/repository/user"

	actorService "marketplace/internal/service/actor"
	auditLogService "marketplace/internal/service/auditlog"
	deliveryService "marketplace/internal/service/delivery"
	dispatcherService "marketplace/internal/service/dispatcher"
	listingService "marketplace/internal/service/listing"
	orderService "marketplace/internal/service/order"

	"marketplace/internal/gateway/http/push"
	"marketplace/internal/gateway/kafka/audit"

	"marketplace/pkg/background"
	"marketplace/pkg/logger"
	"marketplace/pkg/querier"
	"marketplace/pkg/tx"
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceDelivery   ServiceDelivery
	Registry          *realtime.Registry
	Dispatcher        *dispatcherService.Dispatcher
	BackgroundWorkers *background.Worker
	DB                *querier.Querier
}

type ServiceOrder interface {
	orders_post.Service
	orders_list_get.Service
	order_get.Service
	order_status_put.Service
}

type ServiceDelivery interface {
	delivery_jobs_get.Service
	delivery_jobs_post.Service
	delivery_job_get.Service
	delivery_job_status_put.Service
	delivery_job_delete.Service
	delivery_job_claim_post.Service
}

type AuditWorkerApp struct {
	AuditLogService *auditLogService.Service
	DB              *querier.Querier
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	registry *realtime.Registry,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideDeliveryJobRepository,
		provideListingRepository,
		provideUserRepository,
		provideNotificationRepository,

		provideListingService,
		provideActorService,
		delivery_charge.New,
		provideStatusHookFactory,

		providePushGateway,
		provideAuditGateway,
		provideDispatcher,

		provideServiceOrder,
		provideServiceDelivery,

		provideRealtimeHeartbeatTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.JobReader), new(*deliveryJobRepo.Repository)),
		wire.Bind(new(orderService.ListingProvider), new(*listingService.Service)),
		wire.Bind(new(orderService.ActorResolver), new(*actorService.Service)),
		wire.Bind(new(orderService.ChargeCalculator), new(*delivery_charge.ChargeCalculator)),
		wire.Bind(new(orderService.HookFactory), new(*transition_hook.StatusHookFactory)),
		wire.Bind(new(orderService.Dispatcher), new(*dispatcherService.Dispatcher)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(deliveryService.Repository), new(*deliveryJobRepo.Repository)),
		wire.Bind(new(deliveryService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(deliveryService.ListingProvider), new(*listingService.Service)),
		wire.Bind(new(deliveryService.ActorResolver), new(*actorService.Service)),
		wire.Bind(new(deliveryService.DistanceCalculator), new(*delivery_charge.ChargeCalculator)),
		wire.Bind(new(deliveryService.Dispatcher), new(*dispatcherService.Dispatcher)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Bind(new(transition_hook.JobStore), new(*deliveryJobRepo.Repository)),
		wire.Bind(new(transition_hook.ListingProvider), new(*listingService.Service)),
		wire.Bind(new(transition_hook.PaymentMarker), new(*orderRepo.Repository)),

		wire.Bind(new(listingService.Repository), new(*listingRepo.Repository)),
		wire.Bind(new(actorService.Repository), new(*userRepo.Repository)),

		wire.Bind(new(dispatcherService.NotificationRepository), new(*notificationRepo.Repository)),
		wire.Bind(new(dispatcherService.Publisher), new(*realtime.Registry)),
		wire.Bind(new(dispatcherService.PushGateway), new(*push.Gateway)),
		wire.Bind(new(dispatcherService.AuditLog), new(*audit.Gateway)),

		wire.Bind(new(realtime_heartbeat.Registry), new(*realtime.Registry)),
	)
	return &Application{}, nil
}

// InitializeAuditWorkerApp для Kafka воркера (cmd/worker-audit-log)
func InitializeAuditWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*AuditWorkerApp, error) {
	wire.Build(
		provideQuerier,
		provideAuditLogRepository,
		provideAuditLogService,

		wire.Bind(new(auditLogService.Repository), new(*auditLogRepo.Repository)),

		wire.Struct(new(AuditWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool, cfg *config.Config) *tx.Manager {
	return tx.New(pool, tx.WithTimeout(cfg.Database.TxTimeout))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideDeliveryJobRepository(querier *querier.Querier) *deliveryJobRepo.Repository {
	return deliveryJobRepo.New(querier)
}

func provideListingRepository(querier *querier.Querier) *listingRepo.Repository {
	return listingRepo.New(querier)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

func provideNotificationRepository(querier *querier.Querier) *notificationRepo.Repository {
	return notificationRepo.New(querier)
}

func provideAuditLogRepository(querier *querier.Querier) *auditLogRepo.Repository {
	return auditLogRepo.New(querier)
}

func provideListingService(repository listingService.Repository) *listingService.Service {
	return listingService.New(repository)
}

func provideActorService(repository actorService.Repository) *actorService.Service {
	return actorService.New(repository)
}

func provideAuditLogService(repository auditLogService.Repository) *auditLogService.Service {
	return auditLogService.New(repository)
}

func provideStatusHookFactory(
	jobs transition_hook.JobStore,
	listings transition_hook.ListingProvider,
	payments transition_hook.PaymentMarker,
) *transition_hook.StatusHookFactory {
	return transition_hook.NewStatusHookFactory(jobs, listings, payments)
}

func providePushGateway(cfg *config.Config) *push.Gateway {
	return push.New(cfg.Push.ServiceURL, &http.Client{Timeout: cfg.Push.Timeout})
}

func provideAuditGateway(producer sarama.SyncProducer, cfg *config.Config) *audit.Gateway {
	return audit.New(producer, cfg.Kafka.AuditTopic)
}

func provideDispatcher(
	notifications dispatcherService.NotificationRepository,
	publisher dispatcherService.Publisher,
	pushGateway dispatcherService.PushGateway,
	auditLog dispatcherService.AuditLog,
	log logger.Logger,
	cfg *config.Config,
) *dispatcherService.Dispatcher {
	return dispatcherService.New(notifications, publisher, pushGateway, auditLog, log, cfg.SideEffects.DispatchTimeout)
}

func provideServiceOrder(
	repository orderService.Repository,
	jobs orderService.JobReader,
	listings orderService.ListingProvider,
	actors orderService.ActorResolver,
	calculator orderService.ChargeCalculator,
	hookFactory orderService.HookFactory,
	dispatcher orderService.Dispatcher,
	txManager orderService.TxManager,
	log logger.Logger,
) *orderService.Service {
	return orderService.New(
		repository,
		jobs,
		listings,
		actors,
		calculator,
		hookFactory,
		dispatcher,
		txManager,
		log,
	)
}

func provideServiceDelivery(
	repository deliveryService.Repository,
	orders deliveryService.OrderRepository,
	listings deliveryService.ListingProvider,
	actors deliveryService.ActorResolver,
	calculator deliveryService.DistanceCalculator,
	dispatcher deliveryService.Dispatcher,
	txManager deliveryService.TxManager,
	log logger.Logger,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		orders,
		listings,
		actors,
		calculator,
		dispatcher,
		txManager,
		log,
	)
}

func provideRealtimeHeartbeatTask(
	log logger.Logger,
	registry realtime_heartbeat.Registry,
	cfg *config.Config,
) *realtime_heartbeat.RealtimeHeartbeat {
	return realtime_heartbeat.NewRealtimeHeartbeat(log, registry, cfg.Realtime.HeartbeatInterval)
}

func provideTaskList(
	heartbeatTask *realtime_heartbeat.RealtimeHeartbeat,
) []background.Task {
	return []background.Task{
		heartbeatTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

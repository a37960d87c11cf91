//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	deliveryGateway "fulfillment/internal/gateway/http/delivery"
	directoryGateway "fulfillment/internal/gateway/http/directory"
	notifyGateway "fulfillment/internal/gateway/http/notify"
	orderGateway "fulfillment/internal/gateway/http/order"

	emailGateway "fulfillment/internal/gateway/email"

	"fulfillment/internal/handlers/rest/deliveries_get"
	"fulfillment/internal/handlers/rest/deliveries_post"
	"fulfillment/internal/handlers/rest/delivery_complete_patch"
	"fulfillment/internal/handlers/rest/delivery_get"
	"fulfillment/internal/handlers/rest/delivery_location_patch"
	"fulfillment/internal/handlers/rest/delivery_status_patch"
	"fulfillment/internal/handlers/rest/driver_status_patch"
	"fulfillment/internal/handlers/rest/drivers_get"
	"fulfillment/internal/handlers/rest/drivers_post"
	"fulfillment/internal/handlers/rest/order_cancel_patch"
	"fulfillment/internal/handlers/rest/order_get"
	"fulfillment/internal/handlers/rest/order_status_patch"
	"fulfillment/internal/handlers/rest/orders_get"
	"fulfillment/internal/handlers/rest/orders_post"
	"fulfillment/internal/handlers/rest/rating_average_get"
	"fulfillment/internal/handlers/rest/ratings_get"
	"fulfillment/internal/handlers/rest/ratings_post"
	"fulfillment/internal/handlers/rest/vehicles_post"
	"fulfillment/internal/handlers/tasks/driver_day_reset"
	"fulfillment/internal/pkg/config"
	buskafka "fulfillment/internal/pkg/eventbus/kafka"
	"fulfillment/internal/pkg/factory/order_number"
	"fulfillment/internal/pkg/factory/route_schedule"
	"fulfillment/internal/pkg/sideeffect"

	deliveryRepo "fulfillment/internal/repository/delivery"
	fleetRepo "fulfillment/internal/repository/fleet"
	orderRepo "fulfillment/internal/repository/order"
	ratingRepo "fulfillment/internal/repository/rating"
	coordinatorService "fulfillment/internal/service/coordinator"
	deliveryService "fulfillment/internal/service/delivery"
	fleetService "fulfillment/internal/service/fleet"
	notificationService "fulfillment/internal/service/notification"
	orderService "fulfillment/internal/service/order"
	ratingService "fulfillment/internal/service/rating"

	"fulfillment/pkg/background"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	ResetInterval time.Duration
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceDelivery   ServiceDelivery
	ServiceRating     ServiceRating
	ServiceFleet      ServiceFleet
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	orders_post.Service
	orders_get.Service
	order_get.Service
	order_status_patch.Service
	order_cancel_patch.Service
}

type ServiceDelivery interface {
	deliveries_post.Service
	deliveries_get.Service
	delivery_get.Service
	delivery_status_patch.Service
	delivery_location_patch.Service
	delivery_complete_patch.Service
}

type ServiceRating interface {
	ratings_post.Service
	ratings_get.Service
	rating_average_get.Service
}

type ServiceFleet interface {
	drivers_post.Service
	drivers_get.Service
	driver_status_patch.Service
	vehicles_post.Service
}

// InitializeApplication assembles the HTTP service (cmd/service).
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *buskafka.Producer,
	client *http.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideRecorder,
		provideResetInterval,

		provideOrderRepository,
		provideDeliveryRepository,
		provideFleetRepository,
		provideRatingRepository,

		provideOrderGateway,
		provideDeliveryGateway,
		provideNotifyGateway,
		provideDirectoryGateway,

		order_number.New,
		route_schedule.New,

		provideServiceFleet,
		provideServiceCoordinator,
		provideServiceOrder,
		provideServiceDelivery,
		provideServiceRating,

		provideDriverDayResetTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Order)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceRating), new(*ratingService.Rating)),
		wire.Bind(new(ServiceFleet), new(*fleetService.Fleet)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(fleetService.Repository), new(*fleetRepo.Repository)),
		wire.Bind(new(ratingService.Repository), new(*ratingRepo.Repository)),

		wire.Bind(new(orderService.EventPublisher), new(*buskafka.Producer)),
		wire.Bind(new(deliveryService.EventPublisher), new(*buskafka.Producer)),
		wire.Bind(new(ratingService.EventPublisher), new(*buskafka.Producer)),

		wire.Bind(new(orderService.Directory), new(*directoryGateway.DirectoryGateway)),
		wire.Bind(new(orderService.DeliveryScheduler), new(*deliveryGateway.DeliveryGateway)),
		wire.Bind(new(orderService.PickupCoordinator), new(*coordinatorService.Coordinator)),
		wire.Bind(new(orderService.Notifier), new(*notifyGateway.NotifyGateway)),
		wire.Bind(new(orderService.NumberFactory), new(*order_number.Factory)),

		wire.Bind(new(deliveryService.OrderGateway), new(*orderGateway.OrderGateway)),
		wire.Bind(new(deliveryService.FleetService), new(*fleetService.Fleet)),
		wire.Bind(new(deliveryService.Notifier), new(*notifyGateway.NotifyGateway)),
		wire.Bind(new(deliveryService.ScheduleFactory), new(*route_schedule.Factory)),

		wire.Bind(new(coordinatorService.DeliveryGateway), new(*deliveryGateway.DeliveryGateway)),
		wire.Bind(new(coordinatorService.OrderGateway), new(*orderGateway.OrderGateway)),
		wire.Bind(new(coordinatorService.FleetService), new(*fleetService.Fleet)),

		wire.Bind(new(ratingService.OrderService), new(*orderService.Order)),

		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
		wire.Bind(new(fleetService.TxManager), new(*tx.Manager)),

		wire.Bind(new(sideeffect.Recorder), new(*sideeffect.PrometheusRecorder)),

		wire.Bind(new(driver_day_reset.Service), new(*fleetService.Fleet)),
	)
	return &Application{}, nil
}

type WorkerApp struct {
	NotificationEngine *notificationService.Engine
	Coordinator        *coordinatorService.Coordinator
}

// InitializeWorkerApp assembles the event worker (cmd/worker-notification).
func InitializeWorkerApp(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	client *http.Client,
	cfg *config.Config,
) (*WorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideRecorder,

		provideFleetRepository,

		provideOrderGateway,
		provideDeliveryGateway,
		provideNotifyGateway,
		provideEmailSender,

		provideServiceFleet,
		provideServiceCoordinator,
		provideNotificationEngine,

		wire.Struct(new(WorkerApp), "*"),

		wire.Bind(new(fleetService.Repository), new(*fleetRepo.Repository)),
		wire.Bind(new(fleetService.TxManager), new(*tx.Manager)),

		wire.Bind(new(coordinatorService.DeliveryGateway), new(*deliveryGateway.DeliveryGateway)),
		wire.Bind(new(coordinatorService.OrderGateway), new(*orderGateway.OrderGateway)),
		wire.Bind(new(coordinatorService.FleetService), new(*fleetService.Fleet)),

		wire.Bind(new(notificationService.PushGateway), new(*notifyGateway.NotifyGateway)),
		wire.Bind(new(notificationService.EmailSender), new(*emailGateway.Sender)),

		wire.Bind(new(sideeffect.Recorder), new(*sideeffect.PrometheusRecorder)),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideRecorder() *sideeffect.PrometheusRecorder {
	return sideeffect.NewPrometheusRecorder()
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideFleetRepository(querier *querier.Querier) *fleetRepo.Repository {
	return fleetRepo.New(querier)
}

func provideRatingRepository(querier *querier.Querier) *ratingRepo.Repository {
	return ratingRepo.New(querier)
}

func provideOrderGateway(client *http.Client, cfg *config.Config) *orderGateway.OrderGateway {
	return orderGateway.New(client, cfg.Services.OrderBaseURL)
}

func provideDeliveryGateway(client *http.Client, cfg *config.Config) *deliveryGateway.DeliveryGateway {
	return deliveryGateway.New(client, cfg.Services.DeliveryBaseURL)
}

func provideNotifyGateway(client *http.Client, cfg *config.Config) *notifyGateway.NotifyGateway {
	return notifyGateway.New(client, cfg.Services.NotifyBaseURL)
}

func provideDirectoryGateway(client *http.Client, cfg *config.Config) *directoryGateway.DirectoryGateway {
	return directoryGateway.New(client, cfg.Services.DirectoryBaseURL)
}

func provideEmailSender(log logger.Logger, cfg *config.Config) *emailGateway.Sender {
	return emailGateway.New(log, &cfg.Email)
}

func provideServiceFleet(
	repository fleetService.Repository,
	txManager fleetService.TxManager,
) *fleetService.Fleet {
	return fleetService.New(repository, txManager)
}

func provideServiceCoordinator(
	log logger.Logger,
	deliveries coordinatorService.DeliveryGateway,
	orders coordinatorService.OrderGateway,
	fleet coordinatorService.FleetService,
	recorder sideeffect.Recorder,
) *coordinatorService.Coordinator {
	return coordinatorService.New(log, deliveries, orders, fleet, recorder)
}

func provideServiceOrder(
	log logger.Logger,
	repository orderService.Repository,
	publisher orderService.EventPublisher,
	directory orderService.Directory,
	deliveries orderService.DeliveryScheduler,
	coordinator orderService.PickupCoordinator,
	notifier orderService.Notifier,
	numbers orderService.NumberFactory,
	recorder sideeffect.Recorder,
	txManager orderService.TxManager,
) *orderService.Order {
	return orderService.New(
		log,
		repository,
		publisher,
		directory,
		deliveries,
		coordinator,
		notifier,
		numbers,
		recorder,
		txManager,
	)
}

func provideServiceDelivery(
	log logger.Logger,
	repository deliveryService.Repository,
	publisher deliveryService.EventPublisher,
	orders deliveryService.OrderGateway,
	fleet deliveryService.FleetService,
	notifier deliveryService.Notifier,
	schedule deliveryService.ScheduleFactory,
	recorder sideeffect.Recorder,
) *deliveryService.Delivery {
	return deliveryService.New(
		log,
		repository,
		publisher,
		orders,
		fleet,
		notifier,
		schedule,
		recorder,
	)
}

func provideServiceRating(
	log logger.Logger,
	repository ratingService.Repository,
	orders ratingService.OrderService,
	publisher ratingService.EventPublisher,
) *ratingService.Rating {
	return ratingService.New(log, repository, orders, publisher)
}

func provideNotificationEngine(
	log logger.Logger,
	push notificationService.PushGateway,
	email notificationService.EmailSender,
	recorder sideeffect.Recorder,
) *notificationService.Engine {
	return notificationService.New(log, push, email, recorder)
}

func provideResetInterval(cfg *config.Config) ResetInterval {
	return ResetInterval(cfg.Tasks.DriverDayCounterResetInterval)
}

func provideDriverDayResetTask(
	log logger.Logger,
	fleet driver_day_reset.Service,
	interval ResetInterval,
) *driver_day_reset.DriverDayReset {
	return driver_day_reset.New(log, fleet, time.Duration(interval))
}

func provideTaskList(
	driverDayResetTask *driver_day_reset.DriverDayReset,
) []background.Task {
	return []background.Task{
		driverDayResetTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

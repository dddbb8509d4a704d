package cmd

import (
	"errors"
	"log/slog"
	"time"

	httpadapter "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/kafka"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/idempotencyrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/redis"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"
	"pizzeria/internal/metrics"
	"pizzeria/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	clock       ports.Clock
	orderLocks  *keylock.KeyLock
	metrics     *metrics.Metrics
	idempotency ports.IdempotencyStore
	redisClient *goredis.Client
	publisher   *kafka.Publisher
	logger      *slog.Logger
}

// NewCompositionRoot wires adapters from configs. The idempotency store is
// backed by Redis when REDIS_ADDR is set and by the database otherwise; the
// Kafka publisher exists only when KAFKA_BROKERS is set.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	clock := ports.ClockFunc(func() time.Time { return time.Now().UTC() })

	root := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock,
		orderLocks: keylock.New(),
		metrics:    metrics.New(),
		logger:     logger,
	}

	if configs.RedisAddr != "" {
		root.redisClient = goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
		root.idempotency = redis.NewIdempotencyStore(root.redisClient, configs.IdempotencyTTL)
	} else {
		root.idempotency = idempotencyrepo.NewGormIdempotencyStore(gormDB, configs.IdempotencyTTL, clock)
	}

	if configs.KafkaBrokers != "" {
		root.publisher = kafka.NewPublisher(configs.KafkaBrokers, configs.KafkaTopicPrefix)
	}
	return root
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.idempotency, c.clock, c.configs.StorageTimeout, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.orderLocks, c.clock, c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateUpsertCatalogItemCommandHandler() commands.UpsertCatalogItemCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertCatalogItemCommandHandler(f, c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateDeleteCatalogItemCommandHandler() commands.DeleteCatalogItemCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteCatalogItemCommandHandler(f, c.configs.StorageTimeout)
}

// CreateRelayOutboxCommandHandler reports false when no broker is configured.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, bool) {
	if c.publisher == nil {
		return commands.RelayOutboxCommandHandler{}, false
	}
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, c.clock, c.configs.StorageTimeout), true
}

func (c *CompositionRoot) CreateListCatalogItemsQueryHandler() queries.ListCatalogItemsQueryHandler {
	return queries.NewListCatalogItemsQueryHandler(catalogrepo.NewGormCatalogRepository(c.gormDB), c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateGetCatalogItemQueryHandler() queries.GetCatalogItemQueryHandler {
	return queries.NewGetCatalogItemQueryHandler(catalogrepo.NewGormCatalogRepository(c.gormDB), c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader(), c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader(), c.clock, c.configs.Location(), c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.configs.StorageTimeout)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(
		c.orderReader(),
		services.NewStatisticsAggregator(c.configs.Location()),
		c.clock,
		c.configs.StorageTimeout,
	)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.CreateGetStatisticsQueryHandler(), c.CreateListOrdersQueryHandler())
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		UpsertCatalogItem: c.CreateUpsertCatalogItemCommandHandler(),
		DeleteCatalogItem: c.CreateDeleteCatalogItemCommandHandler(),
		ListCatalogItems:  c.CreateListCatalogItemsQueryHandler(),
		GetCatalogItem:    c.CreateGetCatalogItemQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetOrderHistory:   c.CreateGetOrderHistoryQueryHandler(),
		GetStatistics:     c.CreateGetStatisticsQueryHandler(),
		GetDashboard:      c.CreateGetDashboardQueryHandler(),
	}, c.logger)
	return httpadapter.NewRouter(server, c.metrics, c.logger)
}

// CreateJobManager registers the statistics refresh and, with a broker
// configured, the outbox relay.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	manager := jobs.NewJobManager()

	if relay, ok := c.CreateRelayOutboxCommandHandler(); ok {
		job, err := jobs.NewOutboxRelayJob(relay, c.metrics, c.configs.OutboxRelaySchedule, c.configs.OutboxBatchSize, c.logger)
		if err != nil {
			return nil, err
		}
		manager.Register("outbox relay", job)
	} else {
		c.logger.Warn("KAFKA_BROKERS is not set, outbox messages stay pending")
	}

	stats, err := jobs.NewStatisticsRefreshJob(c.CreateGetStatisticsQueryHandler(), c.metrics, c.configs.StatisticsSchedule, c.logger)
	if err != nil {
		return nil, err
	}
	manager.Register("statistics refresh", stats)
	return manager, nil
}

// Close releases the broker and cache connections. The database is owned by
// the caller.
func (c *CompositionRoot) Close() error {
	var publisherErr, redisErr error
	if c.publisher != nil {
		publisherErr = c.publisher.Close()
	}
	if c.redisClient != nil {
		redisErr = c.redisClient.Close()
	}
	return errors.Join(publisherErr, redisErr)
}

func (c *CompositionRoot) orderReader() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

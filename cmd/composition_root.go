package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tailorshop/internal/adapters/in/cli"
	httpadapter "tailorshop/internal/adapters/in/http"
	"tailorshop/internal/adapters/out/catalogfile"
	"tailorshop/internal/adapters/out/events"
	"tailorshop/internal/adapters/out/locks"
	"tailorshop/internal/adapters/out/postgres"
	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/core/application/usecases/queries"
	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/core/ports"
	"tailorshop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	stages     *catalog.Catalog
	locker     ports.OrderLocker
	publisher  ports.EventPublisher
	logger     *slog.Logger
	closers    []func() error
}

func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	stages, err := newCatalog(configs)
	if err != nil {
		return nil, err
	}
	c.stages = stages

	if err = c.initLocker(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err = c.initPublisher(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

func newCatalog(configs Config) (*catalog.Catalog, error) {
	if configs.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalogfile.Load(configs.CatalogFile)
}

func (c *CompositionRoot) initLocker(ctx context.Context) error {
	switch c.configs.LockBackend {
	case "", LockBackendMemory:
		c.locker = locks.NewMemoryLocker()
	case LockBackendRedis:
		client, err := locks.NewRedisClient(ctx, c.configs.RedisURL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Close)
		c.locker = locks.NewRedisLocker(client, c.configs.LockTTL, c.logger)
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.configs.LockBackend)
	}
	return nil
}

func (c *CompositionRoot) initPublisher() error {
	var (
		next ports.EventPublisher
		err  error
	)

	switch c.configs.EventsBroker {
	case "", EventsBrokerNone:
		c.publisher = events.NewNoopPublisher(c.logger)
		return nil
	case EventsBrokerRabbitMQ:
		next, err = events.NewRabbitMQPublisher(c.configs.RabbitMQURL, c.logger)
	case EventsBrokerKafka:
		next, err = events.NewKafkaPublisher(
			strings.Split(c.configs.KafkaHost, ","),
			c.configs.KafkaOrderChangedTopic,
			c.logger,
		)
	default:
		return fmt.Errorf("unknown EVENTS_BROKER %q", c.configs.EventsBroker)
	}
	if err != nil {
		return err
	}

	c.publisher = events.NewBreakerPublisher(next, events.DefaultBreakerConfig(), c.logger)
	c.closers = append(c.closers, c.publisher.Close)
	return nil
}

// Close releases broker and lock connections in reverse creation order.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// orderReader reads outside any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.stages)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(
		c.orderUoWFactory(),
		c.locker,
		services.NewStatusEngine(c.stages, nil),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRunLegacyMigrationCommandHandler() commands.RunLegacyMigrationCommandHandler {
	return commands.NewRunLegacyMigrationCommandHandler(c.orderUoWFactory(), c.locker, c.stages, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveredOrdersQueryHandler() queries.GetDeliveredOrdersQueryHandler {
	return queries.NewGetDeliveredOrdersQueryHandler(c.orderReader(), c.stages)
}

func (c *CompositionRoot) CreateGetReadyForDeliveryOrdersQueryHandler() queries.GetReadyForDeliveryOrdersQueryHandler {
	return queries.NewGetReadyForDeliveryOrdersQueryHandler(c.orderReader(), c.stages, c.logger)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.orderReader(), c.stages, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderStatusCommandHandler(),
		c.CreateRunLegacyMigrationCommandHandler(),
		c.CreateGetDeliveredOrdersQueryHandler(),
		c.CreateGetReadyForDeliveryOrdersQueryHandler(),
		c.CreateGetOrderProgressQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateRunLegacyMigrationCommandHandler()
	return jobs.NewJobManager(&handler, c.configs.LegacyMigrationSchedule, c.configs.MigrationWorkers, c.logger)
}

func (c *CompositionRoot) CreateCLIApp() *cli.App {
	create := c.CreateCreateOrderCommandHandler()
	advance := c.CreateAdvanceOrderStatusCommandHandler()
	migrate := c.CreateRunLegacyMigrationCommandHandler()
	return &cli.App{
		CreateOrderHandler:               &create,
		AdvanceOrderStatusHandler:        &advance,
		RunLegacyMigrationHandler:        &migrate,
		GetDeliveredOrdersHandler:        c.CreateGetDeliveredOrdersQueryHandler(),
		GetReadyForDeliveryOrdersHandler: c.CreateGetReadyForDeliveryOrdersQueryHandler(),
		GetOrderProgressHandler:          c.CreateGetOrderProgressQueryHandler(),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

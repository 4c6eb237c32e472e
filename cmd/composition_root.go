package cmd

import (
	"log/slog"

	httpin "deliveryhub/internal/adapters/in/http"
	"deliveryhub/internal/adapters/in/ws"
	"deliveryhub/internal/adapters/out/credentials"
	"deliveryhub/internal/adapters/out/kafka"
	"deliveryhub/internal/adapters/out/postgres"
	"deliveryhub/internal/adapters/out/postgres/outboxrepo"
	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/jobs"
	"deliveryhub/internal/realtime"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     *services.AccessPolicy
	creds      *credentials.JWTCredentialService
	hub        *realtime.Hub
	dispatcher *realtime.Dispatcher
	producer   *kafka.OrderEventProducer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	creds, err := credentials.NewJWTCredentialService(config.JWTSecret, config.JWTTokenTTL)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(creds, logger)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		creds:      creds,
		hub:        hub,
		dispatcher: realtime.NewDispatcher(hub, logger),
		producer:   kafka.NewOrderEventProducer(config.KafkaHost, config.KafkaOrderEventsTopic),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveryPersonnelQueryHandler() queries.ListDeliveryPersonnelQueryHandler {
	return queries.NewListDeliveryPersonnelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateUpdateLocationCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.CreateListDeliveryPersonnelQueryHandler(),
		c.config.RequestTimeout,
	)
}

func (c *CompositionRoot) CreateAuthMiddleware() echo.MiddlewareFunc {
	return httpin.BearerAuth(c.creds)
}

func (c *CompositionRoot) CreateWSHandler() *ws.Handler {
	return ws.NewHandler(c.hub, c.CreateUpdateLocationCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var outbox ports.OutboxRepository = outboxrepo.NewGormOutboxRepository(c.gormDB)
	return jobs.NewJobManager(outbox, c.producer, c.logger)
}

// Close releases outbound resources.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

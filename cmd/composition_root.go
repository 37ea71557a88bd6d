package cmd

import (
	"log/slog"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	httpadapter "porter/internal/adapters/in/http"
	"porter/internal/adapters/out/postgres"
	"porter/internal/adapters/out/redisbus"
	"porter/internal/adapters/out/stripepay"
	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/ports"
	"porter/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	subscriber ports.EventSubscriber
	gateway    ports.PaymentGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  redisbus.NewPublisher(redisClient),
		subscriber: redisbus.NewSubscriber(redisClient, logger),
		gateway:    stripepay.NewGateway(config.StripeAPIKey),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateBookDeliveryCommandHandler() commands.BookDeliveryCommandHandler {
	return commands.NewBookDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.fulfillmentUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	return commands.NewAdvanceDeliveryCommandHandler(c.fulfillmentUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePayDeliveryCommandHandler() commands.PayDeliveryCommandHandler {
	return commands.NewPayDeliveryCommandHandler(c.deliveryUoWFactory(), c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdminUpdateDeliveryCommandHandler() commands.AdminUpdateDeliveryCommandHandler {
	return commands.NewAdminUpdateDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireStalePendingCommandHandler() commands.ExpireStalePendingCommandHandler {
	return commands.NewExpireStalePendingCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreatePorterCommandHandler() commands.CreatePorterCommandHandler {
	return commands.NewCreatePorterCommandHandler(c.porterUoWFactory())
}

func (c *CompositionRoot) CreateRatePorterCommandHandler() commands.RatePorterCommandHandler {
	return commands.NewRatePorterCommandHandler(c.porterUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDeliveriesQueryHandler() queries.GetAvailableDeliveriesQueryHandler {
	return queries.NewGetAvailableDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnpaidDeliveriesQueryHandler() queries.GetUnpaidDeliveriesQueryHandler {
	return queries.NewGetUnpaidDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingPointsQueryHandler() queries.GetTrackingPointsQueryHandler {
	return queries.NewGetTrackingPointsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server with every handler wired.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		BookDelivery:        c.CreateBookDeliveryCommandHandler(),
		AcceptDelivery:      c.CreateAcceptDeliveryCommandHandler(),
		AdvanceDelivery:     c.CreateAdvanceDeliveryCommandHandler(),
		CancelDelivery:      c.CreateCancelDeliveryCommandHandler(),
		DeleteDelivery:      c.CreateDeleteDeliveryCommandHandler(),
		PayDelivery:         c.CreatePayDeliveryCommandHandler(),
		AdminUpdateDelivery: c.CreateAdminUpdateDeliveryCommandHandler(),
		CreatePorter:        c.CreateCreatePorterCommandHandler(),
		RatePorter:          c.CreateRatePorterCommandHandler(),
		ActiveDeliveries:    c.CreateGetActiveDeliveriesQueryHandler(),
		DeliveryHistory:     c.CreateGetDeliveryHistoryQueryHandler(),
		AvailableDeliveries: c.CreateGetAvailableDeliveriesQueryHandler(),
		UnpaidDeliveries:    c.CreateGetUnpaidDeliveriesQueryHandler(),
		DeliveryStats:       c.CreateGetDeliveryStatsQueryHandler(),
		TrackingPoints:      c.CreateGetTrackingPointsQueryHandler(),
	}, c.subscriber)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateExpireStalePendingCommandHandler(),
		c.CreateGetUnpaidDeliveriesQueryHandler(),
		c.publisher,
		c.config.StaleThresholdHours,
		c.config.PaymentReminderHours,
		c.logger,
	)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) porterUoWFactory() commands.PorterUoWFactory {
	return FuncPorterUoWFactory(func() commands.PorterUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncPorterUoWFactory func() commands.PorterUoW

func (f FuncPorterUoWFactory) Create() commands.PorterUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

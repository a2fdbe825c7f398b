package cmd

import (
	"log/slog"

	"ups/internal/adapters/in/http"
	"ups/internal/adapters/in/peer"
	"ups/internal/adapters/out/postgres"
	"ups/internal/adapters/out/world"
	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/application/usecases/queries"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/ports"
	"ups/internal/jobs"
	"ups/internal/pkg/exchange"
	"ups/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	exchanger  *exchange.Exchanger
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, m *metrics.Metrics, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    m,
		exchanger: exchange.New(exchange.Config{
			MaxAttempts: cfg.MaxAttempts,
			Timeout:     cfg.IOTimeout,
		}, logger, m),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateWorldClient(conn exchange.Conn) *world.Client {
	var opts []world.Option
	if c.cfg.WorldSimSpeed > 0 {
		opts = append(opts, world.WithSimSpeed(c.cfg.WorldSimSpeed))
	}
	return world.NewClient(conn, c.exchanger, c.logger, opts...)
}

func (c *CompositionRoot) CreatePeerGateway(conn exchange.Conn) *peer.Gateway {
	return peer.NewGateway(conn, c.exchanger, c.logger)
}

func (c *CompositionRoot) CreateCreateWorldCommandHandler(w ports.WorldGateway) commands.CreateWorldCommandHandler {
	return commands.NewCreateWorldCommandHandler(c.fleetUoWFactory(), w, c.logger)
}

func (c *CompositionRoot) CreateAnnounceWorldCommandHandler(p ports.PeerGateway) commands.AnnounceWorldCommandHandler {
	return commands.NewAnnounceWorldCommandHandler(p, c.logger)
}

func (c *CompositionRoot) CreateAllocateTruckCommandHandler() commands.AllocateTruckCommandHandler {
	return commands.NewAllocateTruckCommandHandler(c.fleetUoWFactory(), commands.CapacityPolicy{
		PollInterval: c.cfg.CapacityPollInterval,
		PollAttempts: c.cfg.CapacityPollAttempts,
	}, c.logger)
}

func (c *CompositionRoot) CreateReleaseTruckCommandHandler() commands.ReleaseTruckCommandHandler {
	return commands.NewReleaseTruckCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateRegisterPackageCommandHandler() commands.RegisterPackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPackageCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchToWarehouseCommandHandler(
	w ports.WorldGateway,
) commands.DispatchToWarehouseCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchToWarehouseCommandHandler(f, w, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateSendTruckCommandHandler(
	w ports.WorldGateway,
	worldID kernel.WorldID,
) commands.SendTruckCommandHandler {
	return commands.NewSendTruckCommandHandler(
		worldID,
		c.CreateAllocateTruckCommandHandler(),
		c.CreateRegisterPackageCommandHandler(),
		c.CreateReleaseTruckCommandHandler(),
		c.CreateDispatchToWarehouseCommandHandler(w),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetAllTrucksQueryHandler() queries.GetAllTrucksQueryHandler {
	return queries.NewGetAllTrucksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountTrucksByStatusQueryHandler() queries.CountTrucksByStatusQueryHandler {
	return queries.NewCountTrucksByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer(worldID kernel.WorldID) *http.Server {
	return http.NewServer(worldID, c.CreateGetAllTrucksQueryHandler())
}

func (c *CompositionRoot) CreateJobManager(worldID kernel.WorldID) *jobs.JobManager {
	return jobs.NewJobManager(
		worldID,
		c.CreateCountTrucksByStatusQueryHandler(),
		c.metrics,
		c.cfg.FleetReportSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) fleetUoWFactory() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

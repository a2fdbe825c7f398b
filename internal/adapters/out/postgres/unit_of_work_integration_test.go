package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ups/cmd"
	"ups/internal/adapters/out/postgres"
	"ups/internal/adapters/out/postgres/packagerepo"
	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/parcel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const world kernel.WorldID = 3

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (s *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres.Migrate(ctx, db))
	s.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (s *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *UnitOfWorkIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE items, packages, world_orders, trucks RESTART IDENTITY CASCADE").Error)
}

func (s *UnitOfWorkIntegrationTestSuite) addTrucks(n int) []kernel.TruckID {
	return s.addTrucksIn(world, n)
}

func (s *UnitOfWorkIntegrationTestSuite) addTrucksIn(worldID kernel.WorldID, n int) []kernel.TruckID {
	ctx := context.Background()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	ids := make([]kernel.TruckID, 0, n)
	for range n {
		fresh, err := truck.New(kernel.Origin())
		s.Require().NoError(err)
		s.Require().NoError(fresh.JoinWorld(worldID))
		saved, err := uow.TruckRepository().Add(ctx, fresh)
		s.Require().NoError(err)
		ids = append(ids, saved.ID())
	}

	s.Require().NoError(uow.Commit(ctx))
	return ids
}

func (s *UnitOfWorkIntegrationTestSuite) allocator() commands.AllocateTruckCommandHandler {
	fleet := cmd.FuncFleetUoWFactory(func() commands.FleetUoW {
		return s.factory.Create()
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return commands.NewAllocateTruckCommandHandler(fleet, commands.CapacityPolicy{PollAttempts: 0}, logger)
}

func (s *UnitOfWorkIntegrationTestSuite) allocate(ctx context.Context) (kernel.TruckID, error) {
	return s.allocator().Handle(ctx, commands.NewAllocateTruckCommand(world))
}

func (s *UnitOfWorkIntegrationTestSuite) TestAddTruck_AssignsIdentityAndStartsIdle() {
	ctx := context.Background()
	ids := s.addTrucks(5)

	s.Len(ids, 5)
	for i, id := range ids {
		s.Equal(kernel.TruckID(i+1), id)
		got, err := s.factory.Create().TruckRepository().Get(ctx, id)
		s.Require().NoError(err)
		s.Equal(truck.Idle, got.Status())
		s.True(got.Location().Equals(kernel.Origin()))
	}
}

func (s *UnitOfWorkIntegrationTestSuite) TestAcquireIdle_ConcurrentAllocationsGetDistinctTrucks() {
	const idle, workers = 4, 12
	s.addTrucks(idle)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		allocated []kernel.TruckID
		empty     int
		failures  []error
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.allocate(context.Background())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				allocated = append(allocated, id)
			case errors.Is(err, commands.ErrNoIdleTruck):
				empty++
			default:
				failures = append(failures, err)
			}
		}()
	}
	wg.Wait()

	s.Empty(failures)
	s.Len(allocated, idle)
	s.Equal(workers-idle, empty)

	seen := make(map[kernel.TruckID]bool, len(allocated))
	for _, id := range allocated {
		s.False(seen[id], "truck %d allocated twice", id)
		seen[id] = true
	}

	var traveling int64
	s.Require().NoError(s.db.Table("trucks").Where("status = ?", int(truck.Traveling)).Count(&traveling).Error)
	s.Equal(int64(idle), traveling)
}

func (s *UnitOfWorkIntegrationTestSuite) TestAcquireIdle_SkipsRowsLockedByOpenTransaction() {
	ctx := context.Background()
	s.addTrucks(2)

	holder := s.factory.Create()
	s.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()

	held, err := holder.TruckRepository().AcquireIdle(ctx, world)
	s.Require().NoError(err)

	other, err := s.allocate(ctx)
	s.Require().NoError(err)
	s.NotEqual(held.ID(), other)

	_, err = s.allocate(ctx)
	s.ErrorIs(err, commands.ErrNoIdleTruck)
}

func (s *UnitOfWorkIntegrationTestSuite) TestAcquireIdle_IgnoresTrucksOfOtherWorlds() {
	ctx := context.Background()
	s.addTrucksIn(world-1, 3)
	ids := s.addTrucks(1)

	id, err := s.allocate(ctx)
	s.Require().NoError(err)
	s.Equal(ids[0], id)

	_, err = s.allocate(ctx)
	s.ErrorIs(err, commands.ErrNoIdleTruck)

	var idle int64
	s.Require().NoError(s.db.Table("trucks").
		Where("world_id = ? AND status = ?", int64(world-1), int(truck.Idle)).
		Count(&idle).Error)
	s.Equal(int64(3), idle)
}

func (s *UnitOfWorkIntegrationTestSuite) TestUpdateTruck_PersistsWorld() {
	ctx := context.Background()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	fresh, err := truck.New(kernel.Origin())
	s.Require().NoError(err)
	saved, err := uow.TruckRepository().Add(ctx, fresh)
	s.Require().NoError(err)
	s.Require().NoError(saved.JoinWorld(world))
	s.Require().NoError(uow.TruckRepository().Update(ctx, saved))
	s.Require().NoError(uow.Commit(ctx))

	got, err := s.factory.Create().TruckRepository().Get(ctx, saved.ID())
	s.Require().NoError(err)
	worldID, ok := got.WorldID()
	s.True(ok)
	s.Equal(world, worldID)
}

func (s *UnitOfWorkIntegrationTestSuite) TestRollback_KeepsTruckIdle() {
	ctx := context.Background()
	ids := s.addTrucks(1)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	t, err := uow.TruckRepository().AcquireIdle(ctx, world)
	s.Require().NoError(err)
	s.Require().NoError(t.Allocate())
	s.Require().NoError(uow.TruckRepository().Update(ctx, t))
	s.Require().NoError(uow.Rollback(ctx))

	got, err := s.factory.Create().TruckRepository().Get(ctx, ids[0])
	s.Require().NoError(err)
	s.Equal(truck.Idle, got.Status())
}

func (s *UnitOfWorkIntegrationTestSuite) TestUpdateTruck_UnknownTruck() {
	ctx := context.Background()
	ghost, err := truck.Restore(404, kernel.Origin(), truck.Idle)
	s.Require().NoError(err)

	err = s.factory.Create().TruckRepository().Update(ctx, ghost)

	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *UnitOfWorkIntegrationTestSuite) TestAddWorldOrder_SequenceStrictlyIncreases() {
	ctx := context.Background()
	s.addTrucks(1)

	var previous kernel.SeqNo
	for i := range 5 {
		order, err := worldorder.New(worldorder.Delivery, 1, kernel.PackageID(100+i), 7)
		s.Require().NoError(err)

		uow := s.factory.Create()
		s.Require().NoError(uow.Begin(ctx))
		saved, err := uow.WorldOrderRepository().Add(ctx, order)
		s.Require().NoError(err)
		s.Require().NoError(uow.Commit(ctx))

		s.Greater(saved.SeqNo(), previous)
		s.Equal(worldorder.Delivery, saved.Kind())
		previous = saved.SeqNo()
	}
}

func (s *UnitOfWorkIntegrationTestSuite) TestGetWorldOrder_BySeqNo() {
	ctx := context.Background()
	s.addTrucks(2)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	earlier, err := worldorder.New(worldorder.Delivery, 1, 54, 7)
	s.Require().NoError(err)
	first, err := uow.WorldOrderRepository().Add(ctx, earlier)
	s.Require().NoError(err)
	delivery, err := worldorder.New(worldorder.Delivery, 2, 55, 8)
	s.Require().NoError(err)
	second, err := uow.WorldOrderRepository().Add(ctx, delivery)
	s.Require().NoError(err)
	s.Require().NoError(uow.Commit(ctx))

	repo := s.factory.Create().WorldOrderRepository()
	got, err := repo.Get(ctx, first.SeqNo())
	s.Require().NoError(err)
	s.Equal(kernel.TruckID(1), got.TruckID())
	s.Equal(kernel.PackageID(54), got.PackageID())

	got, err = repo.Get(ctx, second.SeqNo())
	s.Require().NoError(err)
	s.Equal(kernel.TruckID(2), got.TruckID())

	_, err = repo.Get(ctx, second.SeqNo()+100)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *UnitOfWorkIntegrationTestSuite) TestAddPackage_StoresItemsAndAbsentRequester() {
	ctx := context.Background()
	s.addTrucks(1)

	book, err := parcel.NewItem("book", 2)
	s.Require().NoError(err)
	pen, err := parcel.NewItem("pen", 0)
	s.Require().NoError(err)
	pkg, err := parcel.New(42, 1, 7, nil, kernel.NewLocation(10, 4), []parcel.Item{book, pen})
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.PackageRepository().Add(ctx, pkg))
	s.Require().NoError(uow.Commit(ctx))

	var stored packagerepo.PackageDTO
	s.Require().NoError(s.db.Preload("Items").First(&stored, 42).Error)
	s.Equal(int64(-1), stored.UserID)
	s.Equal(int32(1), stored.TruckID)
	s.Equal(int32(7), stored.WarehouseID)
	s.Equal(int32(10), stored.Destination.X)
	s.Equal(int32(4), stored.Destination.Y)
	s.Require().Len(stored.Items, 2)

	var itemRows int64
	s.Require().NoError(s.db.Model(&packagerepo.ItemDTO{}).Where("package_id = ?", 42).Count(&itemRows).Error)
	s.Equal(int64(2), itemRows)
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	s.ErrorIs(s.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

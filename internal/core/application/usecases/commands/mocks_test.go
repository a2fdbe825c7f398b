package commands_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/parcel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// testWorld is the world every fixture truck belongs to.
const testWorld kernel.WorldID = 11

type MockTruckRepository struct{ mock.Mock }

func (m *MockTruckRepository) Add(ctx context.Context, t *truck.Truck) (*truck.Truck, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*truck.Truck), args.Error(1)
}

func (m *MockTruckRepository) Update(ctx context.Context, t *truck.Truck) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTruckRepository) Get(ctx context.Context, id kernel.TruckID) (*truck.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*truck.Truck), args.Error(1)
}

func (m *MockTruckRepository) AcquireIdle(ctx context.Context, worldID kernel.WorldID) (*truck.Truck, error) {
	args := m.Called(ctx, worldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*truck.Truck), args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *parcel.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockWorldOrderRepository struct{ mock.Mock }

func (m *MockWorldOrderRepository) Add(ctx context.Context, o *worldorder.WorldOrder) (*worldorder.WorldOrder, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worldorder.WorldOrder), args.Error(1)
}

func (m *MockWorldOrderRepository) Get(ctx context.Context, seqNo kernel.SeqNo) (*worldorder.WorldOrder, error) {
	args := m.Called(ctx, seqNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worldorder.WorldOrder), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TruckRepository() ports.TruckRepository {
	args := m.Called()
	return args.Get(0).(ports.TruckRepository)
}

func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockUoW) WorldOrderRepository() ports.WorldOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorldOrderRepository)
}

type MockFleetUoWFactory struct{ mock.Mock }

func (m *MockFleetUoWFactory) Create() commands.FleetUoW {
	args := m.Called()
	return args.Get(0).(commands.FleetUoW)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorldGateway struct{ mock.Mock }

func (m *MockWorldGateway) Connect(ctx context.Context, fleet []*truck.Truck) (kernel.WorldID, error) {
	args := m.Called(ctx, fleet)
	return args.Get(0).(kernel.WorldID), args.Error(1)
}

func (m *MockWorldGateway) Pickup(ctx context.Context, o *worldorder.WorldOrder) (ports.WorldReport, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(ports.WorldReport), args.Error(1)
}

type MockPeerGateway struct{ mock.Mock }

func (m *MockPeerGateway) AnnounceWorld(ctx context.Context, id kernel.WorldID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

// restoreTruck builds a persisted truck for test fixtures.
func restoreTruck(id kernel.TruckID, status truck.Status) *truck.Truck {
	t, err := truck.Restore(id, kernel.Origin(), status)
	if err != nil {
		panic(err)
	}
	return t
}

package commands_test

import (
	"testing"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterPackageCommand_ValidInput(t *testing.T) {
	user := kernel.UserID(9)
	cmd, err := commands.NewRegisterPackageCommand(42, 3, 7, &user, kernel.NewLocation(10, 4),
		[]commands.LineItem{{Description: "book", Count: 2}})

	require.NoError(t, err)
	assert.Equal(t, kernel.PackageID(42), cmd.PackageID())
	assert.Equal(t, kernel.TruckID(3), cmd.TruckID())
	assert.Equal(t, kernel.WarehouseID(7), cmd.WarehouseID())
	assert.Equal(t, &user, cmd.Requester())
	require.Len(t, cmd.Items(), 1)
	assert.Equal(t, "book", cmd.Items()[0].Description())
	assert.Equal(t, int32(2), cmd.Items()[0].Count())
}

func TestNewRegisterPackageCommand_InvalidTruck(t *testing.T) {
	_, err := commands.NewRegisterPackageCommand(42, 0, 7, nil, kernel.Origin(), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewRegisterPackageCommand_NegativeItemCount(t *testing.T) {
	_, err := commands.NewRegisterPackageCommand(42, 3, 7, nil, kernel.Origin(),
		[]commands.LineItem{{Description: "book", Count: -1}})
	assert.Error(t, err)
}

func TestNewRegisterPackageCommand_InvalidDestination(t *testing.T) {
	_, err := commands.NewRegisterPackageCommand(42, 3, 7, nil, kernel.Location{}, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

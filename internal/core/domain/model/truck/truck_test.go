package truck_test

import (
	"testing"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsIdleWithoutIdentity(t *testing.T) {
	tr, err := truck.New(kernel.Origin())

	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	assert.Equal(t, kernel.TruckID(0), tr.ID())
	assert.Equal(t, truck.Idle, tr.Status())
	assert.True(t, tr.Location().Equals(kernel.Origin()))
}

func TestNew_RequiresLocation(t *testing.T) {
	_, err := truck.New(kernel.Location{})

	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}

func TestRestore(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tr, err := truck.Restore(3, kernel.NewLocation(4, 5), truck.Traveling)

		require.NoError(t, err)
		assert.Equal(t, kernel.TruckID(3), tr.ID())
		assert.Equal(t, truck.Traveling, tr.Status())
	})

	t.Run("non positive id", func(t *testing.T) {
		_, err := truck.Restore(0, kernel.Origin(), truck.Idle)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := truck.Restore(1, kernel.Origin(), truck.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTruck_ZeroValueIsInvalid(t *testing.T) {
	var tr *truck.Truck

	require.ErrorIs(t, tr.Validate(), truck.ErrTruckIsNotConstructed)
	require.ErrorIs(t, (&truck.Truck{}).Validate(), truck.ErrTruckIsNotConstructed)
}

func TestTruck_AllocateAndRelease(t *testing.T) {
	tr, err := truck.Restore(3, kernel.Origin(), truck.Idle)
	require.NoError(t, err)

	require.NoError(t, tr.Allocate())
	assert.Equal(t, truck.Traveling, tr.Status())

	require.ErrorIs(t, tr.Allocate(), errs.ErrValueIsInvalid)

	require.NoError(t, tr.Release())
	assert.Equal(t, truck.Idle, tr.Status())
}

func TestTruck_JoinWorld(t *testing.T) {
	tr, err := truck.New(kernel.Origin())
	require.NoError(t, err)

	_, ok := tr.WorldID()
	assert.False(t, ok)

	require.NoError(t, tr.JoinWorld(11))
	require.NoError(t, tr.JoinWorld(11))

	id, ok := tr.WorldID()
	assert.True(t, ok)
	assert.Equal(t, kernel.WorldID(11), id)

	require.ErrorIs(t, tr.JoinWorld(12), errs.ErrValueIsInvalid)
	id, _ = tr.WorldID()
	assert.Equal(t, kernel.WorldID(11), id)
}

func TestTruck_Finish(t *testing.T) {
	tr, err := truck.Restore(3, kernel.Origin(), truck.Traveling)
	require.NoError(t, err)

	require.NoError(t, tr.Finish(kernel.NewLocation(2, 9), truck.ArriveWarehouse))
	assert.Equal(t, truck.ArriveWarehouse, tr.Status())
	assert.True(t, tr.Location().Equals(kernel.NewLocation(2, 9)))

	require.NoError(t, tr.Finish(kernel.NewLocation(7, 7), truck.Idle))
	assert.Equal(t, truck.Idle, tr.Status())

	require.ErrorIs(t, tr.Finish(kernel.Origin(), truck.Delivering), errs.ErrValueIsInvalid)
}

package commands_test

import (
	"testing"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReleaseTruckCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewReleaseTruckCommand(4)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, kernel.TruckID(4), cmd.TruckID())
	})

	t.Run("non positive truck id", func(t *testing.T) {
		_, err := commands.NewReleaseTruckCommand(0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value", func(t *testing.T) {
		require.ErrorIs(t, commands.ReleaseTruckCommand{}.Validate(), commands.ErrReleaseTruckCommandIsNotConstructed)
	})
}

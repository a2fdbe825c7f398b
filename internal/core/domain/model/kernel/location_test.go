package kernel_test

import (
	"testing"

	"ups/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	loc := kernel.NewLocation(-3, 12)

	require.NoError(t, loc.Validate())
	assert.Equal(t, int32(-3), loc.X())
	assert.Equal(t, int32(12), loc.Y())
	assert.Equal(t, "(-3,12)", loc.String())
}

func TestOrigin(t *testing.T) {
	origin := kernel.Origin()

	require.NoError(t, origin.Validate())
	assert.True(t, origin.Equals(kernel.NewLocation(0, 0)))
}

func TestLocation_ZeroValueIsInvalid(t *testing.T) {
	var loc kernel.Location

	require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
}

func TestLocation_Equals(t *testing.T) {
	assert.True(t, kernel.NewLocation(1, 2).Equals(kernel.NewLocation(1, 2)))
	assert.False(t, kernel.NewLocation(1, 2).Equals(kernel.NewLocation(2, 1)))
}

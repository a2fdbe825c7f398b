package queries_test

import (
	"testing"

	"ups/internal/core/application/usecases/queries"
	"ups/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllTrucksQuery_Valid(t *testing.T) {
	query := queries.NewGetAllTrucksQuery(4)
	require.NoError(t, query.Validate())
	assert.Equal(t, kernel.WorldID(4), query.WorldID())
}

func TestGetAllTrucksQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllTrucksQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllTrucksQueryIsNotConstructed)
}

func TestCountTrucksByStatusQuery_NotConstructedViaConstructor(t *testing.T) {
	require.NoError(t, queries.NewCountTrucksByStatusQuery(4).Validate())
	assert.ErrorIs(t, queries.CountTrucksByStatusQuery{}.Validate(), queries.ErrCountTrucksByStatusQueryIsNotConstructed)
}

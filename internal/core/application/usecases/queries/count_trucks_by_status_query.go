package queries

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/guard"
)

var (
	ErrCountTrucksByStatusQueryIsNotConstructed = errors.New(
		"CountTrucksByStatusQuery must be created via NewCountTrucksByStatusQuery constructor",
	)
)

// CountTrucksByStatusQuery summarises fleet utilisation of one world.
type CountTrucksByStatusQuery struct {
	worldID kernel.WorldID

	guard guard.ConstructorGuard
}

func NewCountTrucksByStatusQuery(worldID kernel.WorldID) CountTrucksByStatusQuery {
	return CountTrucksByStatusQuery{
		worldID: worldID,
		guard:   guard.NewConstructorGuard(),
	}
}

func (q CountTrucksByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountTrucksByStatusQueryIsNotConstructed)
}

func (q CountTrucksByStatusQuery) WorldID() kernel.WorldID {
	return q.worldID
}

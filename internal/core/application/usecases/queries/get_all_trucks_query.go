// Package queries contains read operations for retrieving system state.
// Queries bypass the domain model and return read models built with plain SQL.
package queries

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/pkg/guard"
)

var (
	ErrGetAllTrucksQueryIsNotConstructed = errors.New(
		"GetAllTrucksQuery must be created via NewGetAllTrucksQuery constructor",
	)
)

// GetAllTrucksQuery retrieves the fleet of one world with current positions and statuses.
//
// Example:
//
//	query := NewGetAllTrucksQuery(worldID)
//	handler := NewGetAllTrucksQueryHandler(db)
//
//	trucks, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve trucks: %w", err)
//	}
//
//	for _, t := range trucks {
//	    fmt.Printf("Truck %d at %s is %s\n", t.ID, t.Location, t.Status)
//	}
type GetAllTrucksQuery struct {
	worldID kernel.WorldID

	guard guard.ConstructorGuard
}

// NewGetAllTrucksQuery creates a query to retrieve all trucks of a world.
func NewGetAllTrucksQuery(worldID kernel.WorldID) GetAllTrucksQuery {
	return GetAllTrucksQuery{
		worldID: worldID,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetAllTrucksQuery) Validate() error {
	return q.guard.Validate(ErrGetAllTrucksQueryIsNotConstructed)
}

func (q GetAllTrucksQuery) WorldID() kernel.WorldID {
	return q.worldID
}

// GetAllTrucksQueryResponse is the fleet read model.
type GetAllTrucksQueryResponse struct {
	ID       kernel.TruckID
	Location kernel.Location
	Status   truck.Status
}

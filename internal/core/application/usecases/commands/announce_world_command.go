package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/guard"
)

var ErrAnnounceWorldCommandIsNotConstructed = errors.New(
	"AnnounceWorldCommand must be created via NewAnnounceWorldCommand constructor",
)

// AnnounceWorldCommand hands a created world over to the order source.
type AnnounceWorldCommand struct {
	worldID kernel.WorldID

	guard guard.ConstructorGuard
}

// NewAnnounceWorldCommand creates the command.
func NewAnnounceWorldCommand(worldID kernel.WorldID) AnnounceWorldCommand {
	return AnnounceWorldCommand{
		worldID: worldID,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AnnounceWorldCommand) Validate() error {
	return c.guard.Validate(ErrAnnounceWorldCommandIsNotConstructed)
}

// WorldID returns the world to announce.
func (c AnnounceWorldCommand) WorldID() kernel.WorldID {
	return c.worldID
}

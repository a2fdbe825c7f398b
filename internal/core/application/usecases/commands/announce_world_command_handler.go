package commands

import (
	"context"
	"log/slog"

	"ups/internal/core/ports"
)

// AnnounceWorldCommandHandler registers the world with the order source.
//
// Exhausting the retry bound is reported to the caller like a failed world
// creation: the order source cannot send requests for a world it never joined,
// so startup stops in both cases.
type AnnounceWorldCommandHandler struct {
	peer   ports.PeerGateway
	logger *slog.Logger
}

// NewAnnounceWorldCommandHandler creates the handler.
func NewAnnounceWorldCommandHandler(peer ports.PeerGateway, logger *slog.Logger) AnnounceWorldCommandHandler {
	return AnnounceWorldCommandHandler{
		peer:   peer,
		logger: logger.With("component", "announce_world"),
	}
}

// Handle sends the world identity to the order source and waits for its consent.
func (h AnnounceWorldCommandHandler) Handle(ctx context.Context, cmd AnnounceWorldCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.peer.AnnounceWorld(ctx, cmd.WorldID()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order source joined the world", "world_id", cmd.WorldID())
	return nil
}

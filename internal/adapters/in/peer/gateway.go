// Package peer serves the order source: the world handshake, and the sessions
// that turn its delivery requests into dispatched trucks.
package peer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/ports"
	"ups/internal/pkg/exchange"
)

const resultSuccess = "success"

// ErrHandshakeRefused marks an AzConnected whose result was not a success.
var ErrHandshakeRefused = errors.New("order source refused world")

var _ ports.PeerGateway = (*Gateway)(nil)

// Gateway implements ports.PeerGateway on the connection to the order source.
type Gateway struct {
	conn      exchange.Conn
	exchanger *exchange.Exchanger
	logger    *slog.Logger
}

// NewGateway creates the gateway.
func NewGateway(conn exchange.Conn, exchanger *exchange.Exchanger, logger *slog.Logger) *Gateway {
	return &Gateway{
		conn:      conn,
		exchanger: exchanger,
		logger:    logger.With("component", "peer_gateway"),
	}
}

// AnnounceWorld sends UtoAzConnect and waits for a successful AzConnected.
func (g *Gateway) AnnounceWorld(ctx context.Context, worldID kernel.WorldID) error {
	payload, err := toAzConnect{worldID: int64(worldID)}.marshal()
	if err != nil {
		return err
	}

	resp, err := exchange.Do(ctx, g.exchanger, g.conn, "peer_handshake", payload, parseAzConnected)
	if err != nil {
		return err
	}

	g.logger.DebugContext(ctx, "Handshake accepted", "world_id", worldID, "peer_world_id", resp.worldID)
	return nil
}

func parseAzConnected(payload []byte) (azConnected, error) {
	resp, err := unmarshalAzConnected(payload)
	if err != nil {
		return azConnected{}, err
	}
	if resp.result != resultSuccess {
		return azConnected{}, fmt.Errorf("%w: %q", ErrHandshakeRefused, resp.result)
	}
	return resp, nil
}

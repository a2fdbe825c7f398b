package peer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/frame"
)

// SendTruckHandler serves one delivery request.
type SendTruckHandler interface {
	Handle(ctx context.Context, cmd commands.SendTruckCommand) (commands.Acknowledgement, error)
}

// Session reads delivery requests from one order source connection and answers
// each served request with a truck-at-warehouse message.
//
// Requests that cannot be served are dropped with a warning and the session
// keeps reading. Only an exhausted exchange with the world, or a broken
// connection, ends the session with an error.
type Session struct {
	id      string
	conn    io.ReadWriter
	handler SendTruckHandler
	logger  *slog.Logger
}

// NewSession creates a session over conn. If conn is an io.Closer it is closed
// when the context passed to Serve is done.
func NewSession(conn io.ReadWriter, handler SendTruckHandler, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		conn:    conn,
		handler: handler,
		logger:  logger.With("component", "peer_session", "session_id", id),
	}
}

// ID returns the correlation id attached to the session logs.
func (s *Session) ID() string {
	return s.id
}

// Serve runs the request loop until the order source disconnects, ctx is done,
// or a fatal error occurs. Disconnect and cancellation return nil.
func (s *Session) Serve(ctx context.Context) error {
	if closer, ok := s.conn.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() {
			_ = closer.Close()
		})
		defer stop()
	}

	s.logger.InfoContext(ctx, "Session started")
	for {
		payload, err := frame.Read(s.conn)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.InfoContext(ctx, "Session stopped")
				return nil
			}
			if errors.Is(err, io.EOF) {
				s.logger.InfoContext(ctx, "Order source closed the connection")
				return nil
			}
			return fmt.Errorf("read delivery request: %w", err)
		}

		if err := s.serveRequest(ctx, payload); err != nil {
			return err
		}
	}
}

func (s *Session) serveRequest(ctx context.Context, payload []byte) error {
	msg, err := unmarshalAMessage(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "Dropping malformed message", "error", err)
		return nil
	}
	if msg.sendTruck == nil {
		s.logger.WarnContext(ctx, "Dropping message without a delivery request")
		return nil
	}

	cmd, err := toSendTruckCommand(*msg.sendTruck)
	if err != nil {
		s.logger.WarnContext(ctx, "Dropping invalid delivery request",
			"package_id", msg.sendTruck.packageID,
			"error", err,
		)
		return nil
	}

	ack, err := s.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrNoIdleTruck):
		s.logger.WarnContext(ctx, "Dropping delivery request, no idle truck",
			"package_id", cmd.PackageID(),
			"warehouse_id", cmd.WarehouseID(),
		)
		return nil
	case errors.Is(err, errs.ErrRetryExhausted):
		return err
	case ctx.Err() != nil:
		return nil
	default:
		s.logger.ErrorContext(ctx, "Failed to serve delivery request",
			"package_id", cmd.PackageID(),
			"error", err,
		)
		return nil
	}

	reply := truckAtWH{
		truckID:     int32(ack.TruckID),
		packageID:   int64(ack.PackageID),
		warehouseID: int32(ack.WarehouseID),
	}
	out, err := reply.marshalUMessage()
	if err != nil {
		return fmt.Errorf("encode truck at warehouse: %w", err)
	}
	if err := frame.Write(s.conn, out); err != nil {
		return fmt.Errorf("send truck at warehouse: %w", err)
	}

	s.logger.InfoContext(ctx, "Acknowledged delivery request",
		"truck_id", ack.TruckID,
		"package_id", ack.PackageID,
		"warehouse_id", ack.WarehouseID,
	)
	return nil
}

func toSendTruckCommand(m sendTruck) (commands.SendTruckCommand, error) {
	var requester *kernel.UserID
	if m.userID != nil {
		user := kernel.UserID(*m.userID)
		requester = &user
	}

	lines := make([]commands.LineItem, 0, len(m.items))
	for _, it := range m.items {
		lines = append(lines, commands.LineItem{Description: it.description, Count: it.count})
	}

	return commands.NewSendTruckCommand(
		kernel.PackageID(m.packageID),
		kernel.WarehouseID(m.warehouseID),
		requester,
		kernel.NewLocation(m.x, m.y),
		lines,
	)
}

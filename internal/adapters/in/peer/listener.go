package peer

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"
)

// Listener accepts order source connections and runs one Session per connection.
type Listener struct {
	ln         net.Listener
	handler    SendTruckHandler
	baseLogger *slog.Logger
	logger     *slog.Logger
}

// NewListener wraps an open listener.
func NewListener(ln net.Listener, handler SendTruckHandler, logger *slog.Logger) *Listener {
	return &Listener{
		ln:         ln,
		handler:    handler,
		baseLogger: logger,
		logger:     logger.With("component", "peer_listener"),
	}
}

// Addr returns the listening address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve accepts connections until ctx is done. A fatal session error stops every
// session and is returned.
func (l *Listener) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	stop := context.AfterFunc(gctx, func() {
		_ = l.ln.Close()
	})
	defer stop()

	g.Go(func() error {
		for {
			conn, err := l.ln.Accept()
			if err != nil {
				if gctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}

			session := NewSession(conn, l.handler, l.baseLogger)
			l.logger.InfoContext(gctx, "Order source connected",
				"remote_addr", conn.RemoteAddr().String(),
				"session_id", session.ID(),
			)

			g.Go(func() error {
				defer conn.Close()
				return session.Serve(gctx)
			})
		}
	})

	return g.Wait()
}

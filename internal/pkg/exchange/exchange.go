// Package exchange runs the bounded request/response protocol spoken with both
// peers: send one framed request, read one framed response, parse it, and retry
// the whole round trip on any failure up to a fixed number of attempts.
package exchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ups/internal/pkg/errs"
	"ups/internal/pkg/frame"
	"ups/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxAttempts is the attempt bound used when Config.MaxAttempts is not positive.
const DefaultMaxAttempts = 10

// Conn is the byte stream an exchange runs over.
// If it also implements SetDeadline, each attempt is bounded by Config.Timeout.
type Conn interface {
	io.Reader
	io.Writer
}

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Config bounds an Exchanger.
type Config struct {
	// MaxAttempts is the total number of round trips tried before giving up.
	MaxAttempts int
	// Timeout bounds a single attempt. Zero disables deadlines.
	Timeout time.Duration
}

// Exchanger holds the retry policy shared by every exchange of a process.
type Exchanger struct {
	maxAttempts int
	timeout     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// New creates an Exchanger. A nil metrics recorder is allowed.
func New(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Exchanger {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Exchanger{
		maxAttempts: maxAttempts,
		timeout:     cfg.Timeout,
		logger:      logger.With("component", "exchange"),
		metrics:     m,
	}
}

// MaxAttempts returns the attempt bound.
func (e *Exchanger) MaxAttempts() int {
	return e.maxAttempts
}

// Parser turns a response payload into T. Returning an error marks the attempt
// as failed, exactly like a transport error.
type Parser[T any] func(payload []byte) (T, error)

// Do performs the exchange on conn. Attempts follow each other without delay.
// When every attempt fails Do returns an *errs.RetryExhaustedError holding the last
// failure; when ctx is done it stops early and returns ctx.Err().
//
// Do does not serialize access to conn; callers sharing a connection must.
func Do[T any](
	ctx context.Context,
	e *Exchanger,
	conn Conn,
	operation string,
	request []byte,
	parse Parser[T],
) (T, error) {
	attempt := 0

	op := func() (T, error) {
		attempt++
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}

		resp, err := roundTrip(e, conn, request, parse)
		e.metrics.RecordExchangeAttempt(operation, err == nil)
		if err != nil {
			e.logger.WarnContext(ctx, "Exchange attempt failed",
				"operation", operation,
				"attempt", attempt,
				"max_attempts", e.maxAttempts,
				"error", err,
			)
			return resp, err
		}

		return resp, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(e.maxAttempts-1)),
		ctx,
	)

	resp, err := backoff.RetryWithData[T](op, policy)
	if err == nil {
		return resp, nil
	}

	var zero T
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}

	e.logger.ErrorContext(ctx, "Exchange failed on every attempt",
		"operation", operation,
		"attempts", attempt,
		"error", err,
	)
	return zero, errs.NewRetryExhaustedError(operation, attempt, err)
}

func roundTrip[T any](e *Exchanger, conn Conn, request []byte, parse Parser[T]) (T, error) {
	var zero T

	if d, ok := conn.(deadliner); ok && e.timeout > 0 {
		if err := d.SetDeadline(time.Now().Add(e.timeout)); err != nil {
			return zero, fmt.Errorf("set deadline: %w", err)
		}
		defer func() {
			_ = d.SetDeadline(time.Time{})
		}()
	}

	if err := frame.Write(conn, request); err != nil {
		return zero, err
	}

	payload, err := frame.Read(conn)
	if err != nil {
		return zero, err
	}

	resp, err := parse(payload)
	if err != nil {
		return zero, fmt.Errorf("parse response: %w", err)
	}

	return resp, nil
}

// Package world is the client side of the world simulator protocol. It creates
// the world and issues pickup commands over a single shared connection.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/core/ports"
	"ups/internal/pkg/exchange"
)

// resultConnected is the only UConnected.result that means the world exists.
const resultConnected = "connected!"

// ErrConnectRefused marks a UConnected whose result was not a success.
var ErrConnectRefused = errors.New("world refused connect")

var _ ports.WorldGateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithSimSpeed sets the simulation speed sent with every command batch.
func WithSimSpeed(speed uint32) Option {
	return func(c *Client) {
		c.simSpeed = &speed
	}
}

// Client implements ports.WorldGateway on one connection. Calls are serialized,
// so one request and its response are always adjacent on the stream.
//
// Sequence numbers of completions and errors the world reported are acknowledged
// with the next command batch.
type Client struct {
	mu          sync.Mutex
	conn        exchange.Conn
	exchanger   *exchange.Exchanger
	simSpeed    *uint32
	pendingAcks []int64
	logger      *slog.Logger
}

// NewClient creates a client over an established connection.
func NewClient(conn exchange.Conn, exchanger *exchange.Exchanger, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		conn:      conn,
		exchanger: exchanger,
		logger:    logger.With("component", "world_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect asks the world to create a new world containing fleet.
func (c *Client) Connect(ctx context.Context, fleet []*truck.Truck) (kernel.WorldID, error) {
	req := connectRequest{isAmazon: false}
	for _, t := range fleet {
		req.trucks = append(req.trucks, initTruck{
			id: int32(t.ID()),
			x:  t.Location().X(),
			y:  t.Location().Y(),
		})
	}

	payload, err := req.marshal()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := exchange.Do(ctx, c.exchanger, c.conn, "world_connect", payload, parseConnected)
	if err != nil {
		return 0, err
	}

	return kernel.WorldID(resp.worldID), nil
}

// Pickup sends the order's truck to the order's warehouse.
func (c *Client) Pickup(ctx context.Context, order *worldorder.WorldOrder) (ports.WorldReport, error) {
	if err := order.Validate(); err != nil {
		return ports.WorldReport{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	req := commandsRequest{
		pickups: []goPickup{{
			truckID:     int32(order.TruckID()),
			warehouseID: int32(order.WarehouseID()),
			seqNum:      int64(order.SeqNo()),
		}},
		simSpeed: c.simSpeed,
		acks:     c.pendingAcks,
	}
	payload, err := req.marshal()
	if err != nil {
		return ports.WorldReport{}, err
	}

	resp, err := exchange.Do(ctx, c.exchanger, c.conn, "world_pickup", payload, unmarshalResponses)
	if err != nil {
		return ports.WorldReport{}, err
	}

	c.pendingAcks = nil
	if !slices.Contains(resp.acks, int64(order.SeqNo())) {
		c.logger.DebugContext(ctx, "World did not acknowledge pickup", "seqnum", order.SeqNo())
	}

	return c.report(ctx, resp), nil
}

func (c *Client) report(ctx context.Context, resp responses) ports.WorldReport {
	var report ports.WorldReport

	for _, f := range resp.completions {
		c.pendingAcks = append(c.pendingAcks, f.seqNum)

		status, err := truck.ParseWorldStatus(f.status)
		if err != nil {
			c.logger.WarnContext(ctx, "Skipping completion with unknown status",
				"truck_id", f.truckID,
				"status", f.status,
			)
			continue
		}

		report.Completions = append(report.Completions, ports.Completion{
			TruckID:  kernel.TruckID(f.truckID),
			Location: kernel.NewLocation(f.x, f.y),
			Status:   status,
			SeqNo:    kernel.SeqNo(f.seqNum),
		})
	}

	for _, e := range resp.errors {
		c.pendingAcks = append(c.pendingAcks, e.seqNum)
		report.Errors = append(report.Errors, ports.CommandError{
			Message:     e.message,
			SeqNo:       kernel.SeqNo(e.seqNum),
			OriginSeqNo: kernel.SeqNo(e.originSeqNum),
		})
	}

	return report
}

func parseConnected(payload []byte) (connectedResponse, error) {
	resp, err := unmarshalConnected(payload)
	if err != nil {
		return connectedResponse{}, err
	}
	if resp.result != resultConnected {
		return connectedResponse{}, fmt.Errorf("%w: %q", ErrConnectRefused, resp.result)
	}
	return resp, nil
}

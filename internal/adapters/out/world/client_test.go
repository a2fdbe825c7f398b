package world

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/exchange"
	"ups/internal/pkg/frame"
	"ups/internal/pkg/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// fakeWorld answers each framed request on conn with reply(request). It stops
// when the connection closes.
func fakeWorld(t *testing.T, conn net.Conn, reply func(req []byte) []byte) *sync.WaitGroup {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			req, err := frame.Read(conn)
			if err != nil {
				return
			}
			if err := frame.Write(conn, reply(req)); err != nil {
				return
			}
		}
	}()
	return &wg
}

func newTestClient(t *testing.T, reply func(req []byte) []byte, opts ...Option) *Client {
	t.Helper()
	clientConn, worldConn := net.Pipe()
	wg := fakeWorld(t, worldConn, reply)
	t.Cleanup(func() {
		_ = clientConn.Close()
		_ = worldConn.Close()
		wg.Wait()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ex := exchange.New(exchange.Config{MaxAttempts: 10, Timeout: 2 * time.Second}, logger, nil)
	return NewClient(clientConn, ex, logger, opts...)
}

func encode(t *testing.T, msg *wire.Message) []byte {
	t.Helper()
	b, err := msg.Marshal()
	require.NoError(t, err)
	return b
}

func connectedReply(t *testing.T, worldID int64, result string) []byte {
	return encode(t, schema.New("UConnected").
		SetInt64("worldid", worldID).
		SetString("result", result))
}

type sentCommands struct {
	pickups  []goPickup
	simSpeed uint32
	acks     []int64
}

func decodeCommands(t *testing.T, payload []byte) sentCommands {
	t.Helper()
	msg, err := schema.Unmarshal("UCommands", payload)
	require.NoError(t, err)

	cmds := sentCommands{
		simSpeed: msg.Uint32("simspeed"),
		acks:     msg.Int64s("acks"),
	}
	for _, p := range msg.Messages("pickups") {
		cmds.pickups = append(cmds.pickups, goPickup{
			truckID:     p.Int32("truckid"),
			warehouseID: p.Int32("whid"),
			seqNum:      p.Int64("seqnum"),
		})
	}
	return cmds
}

func finishedMsg(truckID, x, y int32, status string, seq int64) *wire.Message {
	return schema.New("UFinished").
		SetInt32("truckid", truckID).
		SetInt32("x", x).
		SetInt32("y", y).
		SetString("status", status).
		SetInt64("seqnum", seq)
}

func errMsg(message string, origin, seq int64) *wire.Message {
	return schema.New("UErr").
		SetString("err", message).
		SetInt64("originseqnum", origin).
		SetInt64("seqnum", seq)
}

func pickupOrder(t *testing.T, seq kernel.SeqNo) *worldorder.WorldOrder {
	t.Helper()
	o, err := worldorder.Restore(seq, worldorder.Delivery, 3, 42, 7)
	require.NoError(t, err)
	return o
}

func idleFleet(t *testing.T, n int) []*truck.Truck {
	t.Helper()
	fleet := make([]*truck.Truck, 0, n)
	for i := 1; i <= n; i++ {
		tr, err := truck.Restore(kernel.TruckID(i), kernel.Origin(), truck.Idle)
		require.NoError(t, err)
		fleet = append(fleet, tr)
	}
	return fleet
}

func TestClient_Connect_FirstAttempt(t *testing.T) {
	var (
		requests int
		trucks   []initTruck
		isAmazon = true
		worldSet bool
	)
	client := newTestClient(t, func(req []byte) []byte {
		requests++
		msg, err := schema.Unmarshal("UConnect", req)
		require.NoError(t, err)
		worldSet = msg.Has("worldid")
		isAmazon = msg.Bool("isAmazon")
		for _, tm := range msg.Messages("trucks") {
			trucks = append(trucks, initTruck{id: tm.Int32("id"), x: tm.Int32("x"), y: tm.Int32("y")})
		}
		return connectedReply(t, 17, "connected!")
	})

	worldID, err := client.Connect(t.Context(), idleFleet(t, 5))

	require.NoError(t, err)
	assert.Equal(t, kernel.WorldID(17), worldID)
	assert.Equal(t, 1, requests)
	assert.False(t, worldSet, "a new world is requested without an id")
	assert.False(t, isAmazon)
	require.Len(t, trucks, 5)
	for i, it := range trucks {
		assert.Equal(t, initTruck{id: int32(i + 1)}, it)
	}
}

func TestClient_Connect_FailsOnEveryAttempt(t *testing.T) {
	requests := 0
	client := newTestClient(t, func([]byte) []byte {
		requests++
		return connectedReply(t, 0, "error: world is full")
	})

	worldID, err := client.Connect(t.Context(), idleFleet(t, 5))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrConnectRefused)
	assert.Zero(t, worldID)
	assert.Equal(t, 10, requests)
}

func TestClient_Connect_SucceedsAfterGarbage(t *testing.T) {
	requests := 0
	client := newTestClient(t, func([]byte) []byte {
		requests++
		if requests < 3 {
			return []byte{0xff}
		}
		return connectedReply(t, 5, "connected!")
	})

	worldID, err := client.Connect(t.Context(), idleFleet(t, 1))

	require.NoError(t, err)
	assert.Equal(t, kernel.WorldID(5), worldID)
	assert.Equal(t, 3, requests)
}

func TestClient_Pickup_ReportsErrorsAndCompletionsAndAcksThem(t *testing.T) {
	var sent []sentCommands
	client := newTestClient(t, func(req []byte) []byte {
		cmds := decodeCommands(t, req)
		sent = append(sent, cmds)

		resp := schema.New("UResponses").AddInt64("acks", cmds.pickups[0].seqNum)
		if len(sent) == 1 {
			resp.AddMessage("completions", finishedMsg(5, 4, 6, "IDLE", 20)).
				AddMessage("completions", finishedMsg(6, 1, 1, "FLYING", 21)).
				AddMessage("error", errMsg("truck is busy", 8, 9))
		}
		return encode(t, resp)
	}, WithSimSpeed(200))

	report, err := client.Pickup(t.Context(), pickupOrder(t, 12))
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, []goPickup{{truckID: 3, warehouseID: 7, seqNum: 12}}, sent[0].pickups)
	assert.Equal(t, uint32(200), sent[0].simSpeed)
	assert.Empty(t, sent[0].acks)

	require.Len(t, report.Completions, 1, "completions with unknown status are skipped")
	assert.Equal(t, kernel.TruckID(5), report.Completions[0].TruckID)
	assert.Equal(t, truck.Idle, report.Completions[0].Status)
	assert.True(t, report.Completions[0].Location.Equals(kernel.NewLocation(4, 6)))

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "truck is busy", report.Errors[0].Message)
	assert.Equal(t, kernel.SeqNo(9), report.Errors[0].SeqNo)
	assert.Equal(t, kernel.SeqNo(8), report.Errors[0].OriginSeqNo)

	_, err = client.Pickup(t.Context(), pickupOrder(t, 13))
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, []int64{20, 21, 9}, sent[1].acks)
}

func TestClient_Pickup_SerializesConcurrentCallers(t *testing.T) {
	client := newTestClient(t, func(req []byte) []byte {
		cmds := decodeCommands(t, req)
		seq := cmds.pickups[0].seqNum
		return encode(t, schema.New("UResponses").AddMessage("error", errMsg("echo", seq, seq+1000)))
	})

	var wg sync.WaitGroup
	for seq := kernel.SeqNo(1); seq <= 8; seq++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := client.Pickup(context.Background(), pickupOrder(t, seq))
			if !assert.NoError(t, err) {
				return
			}
			if assert.Len(t, report.Errors, 1) {
				assert.Equal(t, seq, report.Errors[0].OriginSeqNo)
			}
		}()
	}
	wg.Wait()
}

func TestUnmarshalResponses_ErrorWithoutSeqNum(t *testing.T) {
	inner := protowire.AppendTag(nil, 1, protowire.BytesType)
	inner = protowire.AppendString(inner, "truck is busy")
	inner = protowire.AppendTag(inner, 2, protowire.VarintType)
	inner = protowire.AppendVarint(inner, 8)

	b := protowire.AppendTag(nil, 6, protowire.BytesType)
	b = protowire.AppendBytes(b, inner)

	_, err := unmarshalResponses(b)

	assert.ErrorIs(t, err, wire.ErrMalformed)
}

func TestUnmarshalResponses_FinishedAndPackedAcks(t *testing.T) {
	packed := protowire.AppendVarint(nil, 20)
	packed = protowire.AppendVarint(packed, 21)

	b := protowire.AppendTag(nil, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	resp, err := unmarshalResponses(b)

	require.NoError(t, err)
	assert.True(t, resp.finished)
	assert.Equal(t, []int64{20, 21}, resp.acks)
}

func TestCommandsRequest_Marshal(t *testing.T) {
	speed := uint32(100)
	payload, err := commandsRequest{
		pickups:    []goPickup{{truckID: 1, warehouseID: 2, seqNum: 3}},
		simSpeed:   &speed,
		disconnect: true,
		acks:       []int64{4, 5},
	}.marshal()
	require.NoError(t, err)

	msg, err := schema.Unmarshal("UCommands", payload)
	require.NoError(t, err)
	assert.True(t, msg.Bool("disconnect"))
	assert.Equal(t, sentCommands{
		pickups:  []goPickup{{truckID: 1, warehouseID: 2, seqNum: 3}},
		simSpeed: 100,
		acks:     []int64{4, 5},
	}, decodeCommands(t, payload))
}

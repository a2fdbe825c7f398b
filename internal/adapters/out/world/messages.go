package world

import (
	"ups/internal/pkg/wire"
)

// schema is the subset of world_ups the coordinator speaks.
var schema = wire.MustSchema("world_ups.proto", "world_ups",
	wire.MessageType("UInitTruck",
		wire.Required(1, "id", wire.Int32),
		wire.Required(2, "x", wire.Int32),
		wire.Required(3, "y", wire.Int32),
	),
	wire.MessageType("UConnect",
		wire.Optional(1, "worldid", wire.Int64),
		wire.RepeatedMessage(2, "trucks", "UInitTruck"),
		wire.Required(3, "isAmazon", wire.Bool),
	),
	wire.MessageType("UConnected",
		wire.Required(1, "worldid", wire.Int64),
		wire.Required(2, "result", wire.String),
	),
	wire.MessageType("UGoPickup",
		wire.Required(1, "truckid", wire.Int32),
		wire.Required(2, "whid", wire.Int32),
		wire.Required(3, "seqnum", wire.Int64),
	),
	wire.MessageType("UCommands",
		wire.RepeatedMessage(1, "pickups", "UGoPickup"),
		wire.Optional(3, "simspeed", wire.Uint32),
		wire.Optional(4, "disconnect", wire.Bool),
		wire.Repeated(6, "acks", wire.Int64),
	),
	wire.MessageType("UFinished",
		wire.Required(1, "truckid", wire.Int32),
		wire.Required(2, "x", wire.Int32),
		wire.Required(3, "y", wire.Int32),
		wire.Required(4, "status", wire.String),
		wire.Required(5, "seqnum", wire.Int64),
	),
	wire.MessageType("UErr",
		wire.Required(1, "err", wire.String),
		wire.Required(2, "originseqnum", wire.Int64),
		wire.Required(3, "seqnum", wire.Int64),
	),
	wire.MessageType("UResponses",
		wire.RepeatedMessage(1, "completions", "UFinished"),
		wire.Optional(3, "finished", wire.Bool),
		wire.Repeated(4, "acks", wire.Int64),
		wire.RepeatedMessage(6, "error", "UErr"),
	),
)

type initTruck struct {
	id, x, y int32
}

// connectRequest is UConnect. A nil worldID asks the world to create a new world.
type connectRequest struct {
	worldID  *int64
	trucks   []initTruck
	isAmazon bool
}

func (m connectRequest) marshal() ([]byte, error) {
	msg := schema.New("UConnect")
	if m.worldID != nil {
		msg.SetInt64("worldid", *m.worldID)
	}
	for _, t := range m.trucks {
		msg.AddMessage("trucks", schema.New("UInitTruck").
			SetInt32("id", t.id).
			SetInt32("x", t.x).
			SetInt32("y", t.y))
	}
	return msg.SetBool("isAmazon", m.isAmazon).Marshal()
}

// connectedResponse is UConnected.
type connectedResponse struct {
	worldID int64
	result  string
}

func unmarshalConnected(b []byte) (connectedResponse, error) {
	msg, err := schema.Unmarshal("UConnected", b)
	if err != nil {
		return connectedResponse{}, err
	}
	return connectedResponse{
		worldID: msg.Int64("worldid"),
		result:  msg.Text("result"),
	}, nil
}

type goPickup struct {
	truckID     int32
	warehouseID int32
	seqNum      int64
}

// commandsRequest is UCommands.
type commandsRequest struct {
	pickups    []goPickup
	simSpeed   *uint32
	disconnect bool
	acks       []int64
}

func (m commandsRequest) marshal() ([]byte, error) {
	msg := schema.New("UCommands")
	for _, p := range m.pickups {
		msg.AddMessage("pickups", schema.New("UGoPickup").
			SetInt32("truckid", p.truckID).
			SetInt32("whid", p.warehouseID).
			SetInt64("seqnum", p.seqNum))
	}
	if m.simSpeed != nil {
		msg.SetUint32("simspeed", *m.simSpeed)
	}
	if m.disconnect {
		msg.SetBool("disconnect", true)
	}
	for _, ack := range m.acks {
		msg.AddInt64("acks", ack)
	}
	return msg.Marshal()
}

// finished is UFinished.
type finished struct {
	truckID int32
	x, y    int32
	status  string
	seqNum  int64
}

// commandErr is UErr.
type commandErr struct {
	message      string
	originSeqNum int64
	seqNum       int64
}

// responses is UResponses.
type responses struct {
	completions []finished
	finished    bool
	acks        []int64
	errors      []commandErr
}

func unmarshalResponses(b []byte) (responses, error) {
	msg, err := schema.Unmarshal("UResponses", b)
	if err != nil {
		return responses{}, err
	}

	resp := responses{
		finished: msg.Bool("finished"),
		acks:     msg.Int64s("acks"),
	}
	for _, f := range msg.Messages("completions") {
		resp.completions = append(resp.completions, finished{
			truckID: f.Int32("truckid"),
			x:       f.Int32("x"),
			y:       f.Int32("y"),
			status:  f.Text("status"),
			seqNum:  f.Int64("seqnum"),
		})
	}
	for _, e := range msg.Messages("error") {
		resp.errors = append(resp.errors, commandErr{
			message:      e.Text("err"),
			originSeqNum: e.Int64("originseqnum"),
			seqNum:       e.Int64("seqnum"),
		})
	}
	return resp, nil
}

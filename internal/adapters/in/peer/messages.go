package peer

import (
	"ups/internal/pkg/wire"
)

// schema is the amazon_ups protocol spoken with the order source.
var schema = wire.MustSchema("amazon_ups.proto", "amazon_ups",
	wire.MessageType("UtoAzConnect",
		wire.Required(1, "worldid", wire.Int64),
	),
	wire.MessageType("AzConnected",
		wire.Optional(1, "worldid", wire.Int64),
		wire.Required(2, "result", wire.String),
	),
	wire.MessageType("AItem",
		wire.Required(1, "description", wire.String),
		wire.Required(2, "count", wire.Int32),
	),
	wire.MessageType("ASendTruck",
		wire.Required(1, "package_id", wire.Int64),
		wire.Required(2, "warehouse_id", wire.Int32),
		wire.Optional(3, "user_id", wire.Int64),
		wire.Required(4, "x", wire.Int32),
		wire.Required(5, "y", wire.Int32),
		wire.RepeatedMessage(6, "items", "AItem"),
	),
	wire.MessageType("AMessage",
		wire.OptionalMessage(1, "sendTruck", "ASendTruck"),
	),
	wire.MessageType("UTruckAtWH",
		wire.Required(1, "truck_id", wire.Int32),
		wire.Required(2, "package_id", wire.Int64),
		wire.Required(3, "warehouse_id", wire.Int32),
	),
	wire.MessageType("UMessage",
		wire.OptionalMessage(1, "truckAtWH", "UTruckAtWH"),
	),
)

// toAzConnect is UtoAzConnect.
type toAzConnect struct {
	worldID int64
}

func (m toAzConnect) marshal() ([]byte, error) {
	return schema.New("UtoAzConnect").SetInt64("worldid", m.worldID).Marshal()
}

// azConnected is AzConnected.
type azConnected struct {
	worldID int64
	result  string
}

func unmarshalAzConnected(b []byte) (azConnected, error) {
	msg, err := schema.Unmarshal("AzConnected", b)
	if err != nil {
		return azConnected{}, err
	}
	return azConnected{
		worldID: msg.Int64("worldid"),
		result:  msg.Text("result"),
	}, nil
}

type item struct {
	description string
	count       int32
}

// sendTruck is ASendTruck. userID is nil when the request names no user.
type sendTruck struct {
	packageID   int64
	warehouseID int32
	userID      *int64
	x, y        int32
	items       []item
}

// aMessage is AMessage. sendTruck is nil when the field is absent.
type aMessage struct {
	sendTruck *sendTruck
}

func unmarshalAMessage(b []byte) (aMessage, error) {
	msg, err := schema.Unmarshal("AMessage", b)
	if err != nil {
		return aMessage{}, err
	}

	st := msg.Message("sendTruck")
	if st == nil {
		return aMessage{}, nil
	}

	req := sendTruck{
		packageID:   st.Int64("package_id"),
		warehouseID: st.Int32("warehouse_id"),
		x:           st.Int32("x"),
		y:           st.Int32("y"),
	}
	if st.Has("user_id") {
		user := st.Int64("user_id")
		req.userID = &user
	}
	for _, it := range st.Messages("items") {
		req.items = append(req.items, item{
			description: it.Text("description"),
			count:       it.Int32("count"),
		})
	}
	return aMessage{sendTruck: &req}, nil
}

// truckAtWH is UTruckAtWH wrapped in a UMessage.
type truckAtWH struct {
	truckID     int32
	packageID   int64
	warehouseID int32
}

func (m truckAtWH) marshalUMessage() ([]byte, error) {
	inner := schema.New("UTruckAtWH").
		SetInt32("truck_id", m.truckID).
		SetInt64("package_id", m.packageID).
		SetInt32("warehouse_id", m.warehouseID)
	return schema.New("UMessage").SetMessage("truckAtWH", inner).Marshal()
}

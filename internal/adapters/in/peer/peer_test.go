package peer

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/pkg/frame"
	"ups/internal/pkg/wire"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSendTruckHandler struct{ mock.Mock }

func (m *MockSendTruckHandler) Handle(ctx context.Context, cmd commands.SendTruckCommand) (commands.Acknowledgement, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Acknowledgement), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func itemMsg(description string, count int32) *wire.Message {
	return schema.New("AItem").
		SetString("description", description).
		SetInt32("count", count)
}

// sendTruckRequest encodes an AMessage carrying one ASendTruck. A nil user omits
// the optional user_id field.
func sendTruckRequest(packageID int64, warehouseID int32, user *int64, x, y int32, items ...*wire.Message) []byte {
	st := schema.New("ASendTruck").
		SetInt64("package_id", packageID).
		SetInt32("warehouse_id", warehouseID).
		SetInt32("x", x).
		SetInt32("y", y)
	if user != nil {
		st.SetInt64("user_id", *user)
	}
	for _, it := range items {
		st.AddMessage("items", it)
	}

	b, err := schema.New("AMessage").SetMessage("sendTruck", st).Marshal()
	if err != nil {
		panic(err)
	}
	return b
}

func decodeTruckAtWH(t *testing.T, payload []byte) truckAtWH {
	t.Helper()
	msg, err := schema.Unmarshal("UMessage", payload)
	require.NoError(t, err)
	inner := msg.Message("truckAtWH")
	require.NotNil(t, inner)
	return truckAtWH{
		truckID:     inner.Int32("truck_id"),
		packageID:   inner.Int64("package_id"),
		warehouseID: inner.Int32("warehouse_id"),
	}
}

// readReply reads one frame from conn, failing the test after a timeout.
func readReply(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	payload, err := frame.Read(conn)
	require.NoError(t, err)
	return payload
}

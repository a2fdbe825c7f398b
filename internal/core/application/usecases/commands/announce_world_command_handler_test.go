package commands_test

import (
	"testing"

	"ups/internal/core/application/usecases/commands"
	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounceWorldCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	peer := new(MockPeerGateway)
	peer.On("AnnounceWorld", ctx, kernel.WorldID(17)).Return(nil).Once()

	handler := commands.NewAnnounceWorldCommandHandler(peer, discardLogger())
	err := handler.Handle(ctx, commands.NewAnnounceWorldCommand(17))

	require.NoError(t, err)
	peer.AssertExpectations(t)
}

func TestAnnounceWorldCommandHandler_Handle_ExhaustionIsReturned(t *testing.T) {
	ctx := t.Context()
	exhausted := errs.NewRetryExhaustedError("peer handshake", 10, assert.AnError)
	peer := new(MockPeerGateway)
	peer.On("AnnounceWorld", ctx, kernel.WorldID(17)).Return(exhausted).Once()

	handler := commands.NewAnnounceWorldCommandHandler(peer, discardLogger())
	err := handler.Handle(ctx, commands.NewAnnounceWorldCommand(17))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrRetryExhausted)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAnnounceWorldCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewAnnounceWorldCommandHandler(new(MockPeerGateway), discardLogger())

	err := handler.Handle(t.Context(), commands.AnnounceWorldCommand{})

	assert.ErrorIs(t, err, commands.ErrAnnounceWorldCommandIsNotConstructed)
}

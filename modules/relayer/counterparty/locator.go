package counterparty

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/gogoproto/proto"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibctm "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"

	"github.com/cosmos/ibc-go/relayer/internal/collections"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// readableStates are the channel states for which acknowledgements may still need relaying.
var readableStates = []channeltypes.State{channeltypes.OPEN, channeltypes.CLOSED}

// LocateChannel queries the channel end identified by portID and channelID on the
// given chain and resolves its counterparty chain, port and channel.
func LocateChannel(ctx context.Context, querier types.ChannelQuerier, chainID, portID, channelID string) (types.ChannelDescriptor, error) {
	res, err := querier.Channel(ctx, &channeltypes.QueryChannelRequest{
		PortId:    portID,
		ChannelId: channelID,
	})
	if err != nil {
		return types.ChannelDescriptor{}, types.WrapQueryError(chainID, types.QueryChannel, err)
	}

	if res == nil || res.Channel == nil {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(types.ErrChannelNotFound, "chain %s: port ID (%s) channel ID (%s)", chainID, portID, channelID)
	}

	channel := res.Channel
	if !collections.Contains(channel.State, readableStates) {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(
			types.ErrInvalidChannelState,
			"chain %s: channel %s/%s is in state %s, expected one of %v", chainID, portID, channelID, channel.State, readableStates,
		)
	}

	if channel.Counterparty.PortId == "" || channel.Counterparty.ChannelId == "" {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: channel %s/%s has no counterparty", chainID, portID, channelID)
	}

	if len(channel.ConnectionHops) == 0 {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: channel %s/%s has no connection hops", chainID, portID, channelID)
	}

	csRes, err := querier.ChannelClientState(ctx, &channeltypes.QueryChannelClientStateRequest{
		PortId:    portID,
		ChannelId: channelID,
	})
	if err != nil {
		return types.ChannelDescriptor{}, types.WrapQueryError(chainID, types.QueryChannelClientState, err)
	}

	if csRes == nil || csRes.IdentifiedClientState == nil || csRes.IdentifiedClientState.ClientState == nil {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: channel %s/%s returned no client state", chainID, portID, channelID)
	}

	counterpartyChainID, err := clientChainID(csRes.IdentifiedClientState.ClientState)
	if err != nil {
		return types.ChannelDescriptor{}, errorsmod.Wrapf(err, "chain %s: client %s", chainID, csRes.IdentifiedClientState.ClientId)
	}

	return types.ChannelDescriptor{
		ChainID:               chainID,
		PortID:                portID,
		ChannelID:             channelID,
		State:                 channel.State,
		Ordering:              channel.Ordering,
		ConnectionID:          channel.ConnectionHops[0],
		ClientID:              csRes.IdentifiedClientState.ClientId,
		CounterpartyChainID:   counterpartyChainID,
		CounterpartyPortID:    channel.Counterparty.PortId,
		CounterpartyChannelID: channel.Counterparty.ChannelId,
	}, nil
}

// clientChainID decodes the chain id tracked by a 07-tendermint client state.
func clientChainID(clientState *codectypes.Any) (string, error) {
	var tmClientState ibctm.ClientState
	if typeURL := "/" + proto.MessageName(&tmClientState); clientState.TypeUrl != typeURL {
		return "", errorsmod.Wrapf(types.ErrMalformedResponse, "unsupported client state type %s, expected %s", clientState.TypeUrl, typeURL)
	}

	if err := proto.Unmarshal(clientState.Value, &tmClientState); err != nil {
		return "", errorsmod.Wrapf(types.ErrMalformedResponse, "failed to decode client state: %s", err)
	}

	if tmClientState.ChainId == "" {
		return "", errorsmod.Wrap(types.ErrMalformedResponse, "client state has an empty chain id")
	}

	return tmClientState.ChainId, nil
}

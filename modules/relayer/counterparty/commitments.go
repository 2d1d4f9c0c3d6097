package counterparty

import (
	"bytes"
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/types/query"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// FetchCommitments pages through every packet commitment stored on the given chain
// for the port and channel and returns their sequences. A pageLimit of zero uses
// types.DefaultCommitmentPageLimit.
func FetchCommitments(ctx context.Context, querier types.CommitmentQuerier, chainID, portID, channelID string, pageLimit uint64) (types.CommitmentSet, error) {
	if pageLimit == 0 {
		pageLimit = types.DefaultCommitmentPageLimit
	}

	commitments := types.NewSequenceSet()

	var nextKey []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, types.WrapQueryError(chainID, types.QueryPacketCommitments, err)
		}

		res, err := querier.PacketCommitments(ctx, &channeltypes.QueryPacketCommitmentsRequest{
			PortId:    portID,
			ChannelId: channelID,
			Pagination: &query.PageRequest{
				Key:   nextKey,
				Limit: pageLimit,
			},
		})
		if err != nil {
			return nil, types.WrapQueryError(chainID, types.QueryPacketCommitments, err)
		}

		if res == nil {
			return nil, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: empty packet commitments response", chainID)
		}

		for i, commitment := range res.Commitments {
			sequence, err := decodePacketState(commitment, portID, channelID)
			if err != nil {
				return nil, errorsmod.Wrapf(err, "chain %s: packet commitment %d", chainID, i)
			}

			commitments.Add(sequence)
		}

		if res.Pagination == nil || len(res.Pagination.NextKey) == 0 {
			return commitments, nil
		}

		if bytes.Equal(res.Pagination.NextKey, nextKey) {
			return nil, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: pagination key did not advance", chainID)
		}

		nextKey = res.Pagination.NextKey
	}
}

// decodePacketState returns the sequence of a packet state returned for the given port and channel.
func decodePacketState(state *channeltypes.PacketState, portID, channelID string) (uint64, error) {
	if state == nil {
		return 0, errorsmod.Wrap(types.ErrMalformedResponse, "packet state cannot be nil")
	}

	if state.Sequence == 0 {
		return 0, errorsmod.Wrap(types.ErrMalformedResponse, "packet sequence cannot be 0")
	}

	if state.PortId != portID || state.ChannelId != channelID {
		return 0, errorsmod.Wrapf(
			types.ErrMalformedResponse,
			"packet state for %s/%s returned for query on %s/%s", state.PortId, state.ChannelId, portID, channelID,
		)
	}

	return state.Sequence, nil
}

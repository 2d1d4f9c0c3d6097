package counterparty

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/internal/collections"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// QueryAcknowledgementPresence returns the subset of candidates for which the given
// chain has written a packet acknowledgement on the port and channel.
//
// Candidates are sent in ascending order as batched existence queries of at most
// batchSize sequences, a batchSize of zero sends them all at once. Sequences the
// chain does not confirm are dropped: a missing acknowledgement has simply not been
// written yet. A failed batch fails the whole query.
func QueryAcknowledgementPresence(
	ctx context.Context,
	querier types.AcknowledgementQuerier,
	chainID, portID, channelID string,
	candidates types.CommitmentSet,
	batchSize int,
) (types.AcknowledgementPresenceSet, error) {
	acks := types.NewSequenceSet()

	// an empty sequence list would make the chain fall back to a paginated query of every acknowledgement
	if candidates == nil || candidates.Cardinality() == 0 {
		return acks, nil
	}

	for _, batch := range collections.Chunk(collections.Sorted(candidates), batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, types.WrapQueryError(chainID, types.QueryPacketAcknowledgements, err)
		}

		res, err := querier.PacketAcknowledgements(ctx, &channeltypes.QueryPacketAcknowledgementsRequest{
			PortId:                    portID,
			ChannelId:                 channelID,
			PacketCommitmentSequences: batch,
		})
		if err != nil {
			return nil, types.WrapQueryError(chainID, types.QueryPacketAcknowledgements, err)
		}

		if res == nil {
			return nil, errorsmod.Wrapf(types.ErrMalformedResponse, "chain %s: empty packet acknowledgements response", chainID)
		}

		queried := types.NewSequenceSet(batch...)
		for i, ack := range res.Acknowledgements {
			sequence, err := decodePacketState(ack, portID, channelID)
			if err != nil {
				return nil, errorsmod.Wrapf(err, "chain %s: packet acknowledgement %d", chainID, i)
			}

			if len(ack.Data) == 0 || !queried.Contains(sequence) {
				continue
			}

			acks.Add(sequence)
		}
	}

	return acks, nil
}

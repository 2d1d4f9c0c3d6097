package types

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errorsmod "cosmossdk.io/errors"
)

// Chain queries issued by the relayer. They name the failing query in errors.
const (
	QueryChannel                = "Channel"
	QueryChannelClientState     = "ChannelClientState"
	QueryPacketCommitments      = "PacketCommitments"
	QueryPacketAcknowledgements = "PacketAcknowledgements"
)

// WrapQueryError classifies an error returned by the given query on a chain into
// the relayer query error taxonomy. gRPC NotFound becomes ErrChannelNotFound,
// cancellation by the caller is passed through and every other failure, timeouts
// included, is reported as ErrEndpointUnreachable. The chain and the query are
// named in the message so that a NotFound raised by the counterparty or by the
// client state lookup is not mistaken for the queried channel.
func WrapQueryError(chainID, method string, err error) error {
	if err == nil {
		return nil
	}

	if errorsmod.IsOf(err, ErrChannelNotFound, ErrEndpointUnreachable, ErrMalformedResponse, ErrInvalidChannelState, ErrCounterpartyMismatch) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return errorsmod.Wrapf(err, "%s query to chain %s abandoned", method, chainID)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.NotFound:
			return errorsmod.Wrapf(ErrChannelNotFound, "chain %s: %s query: %s", chainID, method, st.Message())
		case codes.Canceled:
			return errorsmod.Wrapf(context.Canceled, "%s query to chain %s abandoned: %s", method, chainID, st.Message())
		}
	}

	return errorsmod.Wrapf(ErrEndpointUnreachable, "chain %s: %s query: %s", chainID, method, err)
}

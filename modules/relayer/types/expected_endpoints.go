package types

import (
	"context"

	"google.golang.org/grpc"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// The query interfaces below are subsets of the 04-channel gRPC QueryClient so
// that a generated client satisfies them directly.

// ChannelQuerier reads channel ends and the client state backing them.
type ChannelQuerier interface {
	Channel(ctx context.Context, in *channeltypes.QueryChannelRequest, opts ...grpc.CallOption) (*channeltypes.QueryChannelResponse, error)
	ChannelClientState(ctx context.Context, in *channeltypes.QueryChannelClientStateRequest, opts ...grpc.CallOption) (*channeltypes.QueryChannelClientStateResponse, error)
}

// CommitmentQuerier reads pending packet commitments.
type CommitmentQuerier interface {
	PacketCommitments(ctx context.Context, in *channeltypes.QueryPacketCommitmentsRequest, opts ...grpc.CallOption) (*channeltypes.QueryPacketCommitmentsResponse, error)
}

// AcknowledgementQuerier reads written packet acknowledgements.
type AcknowledgementQuerier interface {
	PacketAcknowledgements(ctx context.Context, in *channeltypes.QueryPacketAcknowledgementsRequest, opts ...grpc.CallOption) (*channeltypes.QueryPacketAcknowledgementsResponse, error)
}

// Endpoint is a read-only query handle to a single chain.
type Endpoint interface {
	ChainID() string

	ChannelQuerier
	CommitmentQuerier
	AcknowledgementQuerier
}

// EndpointRegistry hands out endpoints by chain identifier.
type EndpointRegistry interface {
	Endpoint(chainID string) (Endpoint, error)
}

// QueryLimits is implemented by endpoints configured with their own query sizes.
// A zero value leaves the resolver's default in place.
type QueryLimits interface {
	CommitmentPageLimit() uint64
	AckBatchSize() int
}

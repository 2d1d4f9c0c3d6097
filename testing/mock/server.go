package mock

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

var _ channeltypes.QueryServer = (*QueryServer)(nil)

// QueryServer serves the channel queries of an in-memory Endpoint over gRPC.
// Queries the relayer does not use are left unimplemented.
type QueryServer struct {
	channeltypes.UnimplementedQueryServer

	chain *Endpoint

	// Delay is applied to every PacketCommitments call.
	Delay time.Duration
}

// NewQueryServer returns a query server backed by chain.
func NewQueryServer(chain *Endpoint) *QueryServer {
	return &QueryServer{chain: chain}
}

// Serve registers qs on a new gRPC server listening on lis. The server is
// stopped through the returned function.
func Serve(lis net.Listener, qs *QueryServer) (stop func()) {
	server := grpc.NewServer()
	channeltypes.RegisterQueryServer(server, qs)

	go func() {
		_ = server.Serve(lis)
	}()

	return server.Stop
}

func (qs *QueryServer) Channel(ctx context.Context, req *channeltypes.QueryChannelRequest) (*channeltypes.QueryChannelResponse, error) {
	return qs.chain.Channel(ctx, req)
}

func (qs *QueryServer) ChannelClientState(ctx context.Context, req *channeltypes.QueryChannelClientStateRequest) (*channeltypes.QueryChannelClientStateResponse, error) {
	return qs.chain.ChannelClientState(ctx, req)
}

func (qs *QueryServer) PacketCommitments(ctx context.Context, req *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
	if qs.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(qs.Delay):
		}
	}

	return qs.chain.PacketCommitments(ctx, req)
}

func (qs *QueryServer) PacketAcknowledgements(ctx context.Context, req *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
	return qs.chain.PacketAcknowledgements(ctx, req)
}

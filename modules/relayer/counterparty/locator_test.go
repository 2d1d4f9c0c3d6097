package counterparty_test

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/modules/relayer/counterparty"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
	"github.com/cosmos/ibc-go/relayer/testing/mock"
)

// clientStateOverride serves a fixed client state for every channel of the embedded endpoint.
type clientStateOverride struct {
	*mock.Endpoint

	clientState *codectypes.Any
}

func (o clientStateOverride) ChannelClientState(_ context.Context, _ *channeltypes.QueryChannelClientStateRequest, _ ...grpc.CallOption) (*channeltypes.QueryChannelClientStateResponse, error) {
	return &channeltypes.QueryChannelClientStateResponse{
		IdentifiedClientState: &clienttypes.IdentifiedClientState{
			ClientId:    mock.ClientID,
			ClientState: o.clientState,
		},
	}, nil
}

func (s *CounterpartyTestSuite) TestLocateChannel() {
	var (
		querier   types.ChannelQuerier
		channelID string
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success: closed channel",
			func() {
				channel := mock.NewOpenChannel(mock.PortID, channelIDB)
				channel.State = channeltypes.CLOSED
				s.chainA.SetChannel(mock.PortID, channelIDA, channel, chainIDB)
			},
			nil,
		},
		{
			"channel not found",
			func() {
				channelID = "channel-100"
			},
			types.ErrChannelNotFound,
		},
		{
			"endpoint unreachable",
			func() {
				s.chainA.SetError(mock.MethodChannel, status.Error(codes.Unavailable, "connection refused"))
			},
			types.ErrEndpointUnreachable,
		},
		{
			"channel in INIT state",
			func() {
				channel := mock.NewOpenChannel(mock.PortID, "")
				channel.State = channeltypes.INIT
				s.chainA.SetChannel(mock.PortID, channelIDA, channel, chainIDB)
			},
			types.ErrInvalidChannelState,
		},
		{
			"channel without connection hops",
			func() {
				channel := mock.NewOpenChannel(mock.PortID, channelIDB)
				channel.ConnectionHops = nil
				s.chainA.SetChannel(mock.PortID, channelIDA, channel, chainIDB)
			},
			types.ErrMalformedResponse,
		},
		{
			"client state query fails",
			func() {
				s.chainA.SetError(mock.MethodChannelClientState, errors.New("eof"))
			},
			types.ErrEndpointUnreachable,
		},
		{
			"unsupported client state type",
			func() {
				querier = clientStateOverride{
					Endpoint:    s.chainA,
					clientState: &codectypes.Any{TypeUrl: "/ibc.lightclients.solomachine.v3.ClientState"},
				}
			},
			types.ErrMalformedResponse,
		},
		{
			"undecodable client state",
			func() {
				clientState, err := mock.TendermintClientState(chainIDB)
				s.Require().NoError(err)
				clientState.Value = []byte{0xff, 0xff, 0xff}

				querier = clientStateOverride{Endpoint: s.chainA, clientState: clientState}
			},
			types.ErrMalformedResponse,
		},
		{
			"client state without chain id",
			func() {
				clientState, err := mock.TendermintClientState("")
				s.Require().NoError(err)

				querier = clientStateOverride{Endpoint: s.chainA, clientState: clientState}
			},
			types.ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			s.SetupTest() // reset

			querier = s.chainA
			channelID = channelIDA

			tc.malleate()

			channel, err := counterparty.LocateChannel(context.Background(), querier, chainIDA, mock.PortID, channelID)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(chainIDA, channel.ChainID)
				s.Require().Equal(chainIDB, channel.CounterpartyChainID)
				s.Require().Equal(mock.PortID, channel.CounterpartyPortID)
				s.Require().Equal(channelIDB, channel.CounterpartyChannelID)
				s.Require().Equal(mock.ConnectID, channel.ConnectionID)
				s.Require().Equal(mock.ClientID, channel.ClientID)
				s.Require().Equal(channeltypes.UNORDERED, channel.Ordering)
				s.Require().Equal(s.path, channel.Path())
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Equal(types.ChannelDescriptor{}, channel)
			}
		})
	}
}

func (s *CounterpartyTestSuite) TestLocateChannelClientStateNotFound() {
	s.chainA.SetError(mock.MethodChannelClientState, status.Error(codes.NotFound, "light client not found"))

	_, err := counterparty.LocateChannel(context.Background(), s.chainA, chainIDA, mock.PortID, channelIDA)
	s.Require().ErrorIs(err, types.ErrChannelNotFound)
	s.Require().ErrorContains(err, chainIDA)
	s.Require().ErrorContains(err, types.QueryChannelClientState)
}

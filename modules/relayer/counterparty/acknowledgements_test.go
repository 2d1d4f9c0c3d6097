package counterparty_test

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/internal/collections"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/counterparty"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
	"github.com/cosmos/ibc-go/relayer/testing/mock"
)

func (s *CounterpartyTestSuite) TestQueryAcknowledgementPresence() {
	var (
		querier        types.AcknowledgementQuerier
		candidates     types.CommitmentSet
		batchSize      int
		expSequences   []uint64
		expAckRequests [][]uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success: acknowledgements for a subset of candidates",
			func() {
				s.chainB.SetAcknowledgements(mock.PortID, channelIDB, 5, 8)
				candidates = types.NewSequenceSet(3, 5, 8)
				expSequences = []uint64{5, 8}
				expAckRequests = [][]uint64{{3, 5, 8}}
			},
			nil,
		},
		{
			"success: no acknowledgements written",
			func() {
				candidates = types.NewSequenceSet(1, 2, 3)
				expSequences = []uint64{}
				expAckRequests = [][]uint64{{1, 2, 3}}
			},
			nil,
		},
		{
			"success: acknowledgements outside of candidates are not reported",
			func() {
				s.chainB.SetAcknowledgements(mock.PortID, channelIDB, 1, 2, 3, 4)
				candidates = types.NewSequenceSet(2, 4)
				expSequences = []uint64{2, 4}
				expAckRequests = [][]uint64{{2, 4}}
			},
			nil,
		},
		{
			"success: candidates split into ascending batches",
			func() {
				s.chainB.SetAcknowledgements(mock.PortID, channelIDB, 1, 4, 5)
				candidates = types.NewSequenceSet(5, 4, 3, 2, 1)
				batchSize = 2
				expSequences = []uint64{1, 4, 5}
				expAckRequests = [][]uint64{{1, 2}, {3, 4}, {5}}
			},
			nil,
		},
		{
			"success: empty candidates issue no query",
			func() {
				candidates = types.NewSequenceSet()
				expSequences = []uint64{}
				expAckRequests = nil
			},
			nil,
		},
		{
			"success: chain reports a sequence that was not queried",
			func() {
				querier = ackQuerierFn(func(req *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					return &channeltypes.QueryPacketAcknowledgementsResponse{
						Acknowledgements: []*channeltypes.PacketState{
							packetState(req.PortId, req.ChannelId, 2, mock.MockAcknowledgement),
							packetState(req.PortId, req.ChannelId, 42, mock.MockAcknowledgement),
						},
					}, nil
				})
				candidates = types.NewSequenceSet(1, 2)
				expSequences = []uint64{2}
			},
			nil,
		},
		{
			"success: empty acknowledgement is not confirmed",
			func() {
				querier = ackQuerierFn(func(req *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					return &channeltypes.QueryPacketAcknowledgementsResponse{
						Acknowledgements: []*channeltypes.PacketState{
							packetState(req.PortId, req.ChannelId, 1, nil),
							packetState(req.PortId, req.ChannelId, 2, mock.MockAcknowledgement),
						},
					}, nil
				})
				candidates = types.NewSequenceSet(1, 2)
				expSequences = []uint64{2}
			},
			nil,
		},
		{
			"endpoint unreachable",
			func() {
				s.chainB.SetError(mock.MethodPacketAcknowledgements, errors.New("connection reset by peer"))
				candidates = types.NewSequenceSet(1)
			},
			types.ErrEndpointUnreachable,
		},
		{
			"channel not found on destination",
			func() {
				candidates = types.NewSequenceSet(1)
				querier = ackQuerierFn(func(_ *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					return nil, status.Error(codes.NotFound, "port ID (transfer) channel ID (channel-7)")
				})
			},
			types.ErrChannelNotFound,
		},
		{
			"nil response",
			func() {
				candidates = types.NewSequenceSet(1)
				querier = ackQuerierFn(func(_ *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					return nil, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"zero sequence",
			func() {
				candidates = types.NewSequenceSet(1)
				querier = ackQuerierFn(func(req *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					return &channeltypes.QueryPacketAcknowledgementsResponse{
						Acknowledgements: []*channeltypes.PacketState{packetState(req.PortId, req.ChannelId, 0, mock.MockAcknowledgement)},
					}, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"failure in a later batch fails the whole query",
			func() {
				candidates = types.NewSequenceSet(1, 2, 3)
				batchSize = 2
				calls := 0
				querier = ackQuerierFn(func(req *channeltypes.QueryPacketAcknowledgementsRequest) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
					calls++
					if calls > 1 {
						return nil, errors.New("i/o timeout")
					}
					return &channeltypes.QueryPacketAcknowledgementsResponse{
						Acknowledgements: []*channeltypes.PacketState{packetState(req.PortId, req.ChannelId, 1, mock.MockAcknowledgement)},
					}, nil
				})
			},
			types.ErrEndpointUnreachable,
		},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			s.SetupTest() // reset

			querier = s.chainB
			candidates = nil
			batchSize = 0
			expSequences = nil
			expAckRequests = nil

			tc.malleate()

			acks, err := counterparty.QueryAcknowledgementPresence(context.Background(), querier, chainIDB, mock.PortID, channelIDB, candidates, batchSize)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(expSequences, collections.Sorted(acks))
				if endpoint, ok := querier.(*mock.Endpoint); ok {
					s.Require().Equal(expAckRequests, endpoint.AckRequests())
				}
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Nil(acks)
			}
		})
	}
}

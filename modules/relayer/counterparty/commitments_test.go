package counterparty_test

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cosmos/cosmos-sdk/types/query"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/internal/collections"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/counterparty"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
	"github.com/cosmos/ibc-go/relayer/testing/mock"
)

func (s *CounterpartyTestSuite) TestFetchCommitments() {
	var (
		querier        types.CommitmentQuerier
		pageLimit      uint64
		expSequences   []uint64
		expQueryCalls  int
		commitmentCall = func() int { return s.chainA.CallCount(mock.MethodPacketCommitments) }
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success: no commitments",
			func() {
				expSequences = []uint64{}
				expQueryCalls = 1
			},
			nil,
		},
		{
			"success: single page",
			func() {
				s.chainA.SetCommitments(mock.PortID, channelIDA, 8, 3, 5)
				expSequences = []uint64{3, 5, 8}
				expQueryCalls = 1
			},
			nil,
		},
		{
			"success: multiple pages",
			func() {
				s.chainA.SetCommitments(mock.PortID, channelIDA, 1, 2, 3, 4, 5)
				pageLimit = 2
				expSequences = []uint64{1, 2, 3, 4, 5}
				expQueryCalls = 3
			},
			nil,
		},
		{
			"success: page limit equals number of commitments",
			func() {
				s.chainA.SetCommitments(mock.PortID, channelIDA, 1, 2)
				pageLimit = 2
				expSequences = []uint64{1, 2}
				expQueryCalls = 1
			},
			nil,
		},
		{
			"channel not found",
			func() {
				querier = commitmentQuerierFn(func(_ *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return nil, status.Error(codes.NotFound, "channel not found")
				})
			},
			types.ErrChannelNotFound,
		},
		{
			"endpoint unreachable",
			func() {
				s.chainA.SetError(mock.MethodPacketCommitments, status.Error(codes.Unavailable, "node is down"))
			},
			types.ErrEndpointUnreachable,
		},
		{
			"nil response",
			func() {
				querier = commitmentQuerierFn(func(_ *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return nil, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"zero sequence",
			func() {
				querier = commitmentQuerierFn(func(req *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return &channeltypes.QueryPacketCommitmentsResponse{
						Commitments: []*channeltypes.PacketState{packetState(req.PortId, req.ChannelId, 0, mock.MockCommitment)},
					}, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"nil packet state",
			func() {
				querier = commitmentQuerierFn(func(_ *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return &channeltypes.QueryPacketCommitmentsResponse{Commitments: []*channeltypes.PacketState{nil}}, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"commitment for another channel",
			func() {
				querier = commitmentQuerierFn(func(req *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return &channeltypes.QueryPacketCommitmentsResponse{
						Commitments: []*channeltypes.PacketState{packetState(req.PortId, "channel-99", 1, mock.MockCommitment)},
					}, nil
				})
			},
			types.ErrMalformedResponse,
		},
		{
			"pagination key does not advance",
			func() {
				querier = commitmentQuerierFn(func(req *channeltypes.QueryPacketCommitmentsRequest) (*channeltypes.QueryPacketCommitmentsResponse, error) {
					return &channeltypes.QueryPacketCommitmentsResponse{
						Commitments: []*channeltypes.PacketState{packetState(req.PortId, req.ChannelId, 1, mock.MockCommitment)},
						Pagination:  &query.PageResponse{NextKey: []byte("stuck")},
					}, nil
				})
			},
			types.ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("Case %s", tc.msg), func() {
			s.SetupTest() // reset

			querier = s.chainA
			pageLimit = 0
			expSequences = nil
			expQueryCalls = 0

			tc.malleate()

			commitments, err := counterparty.FetchCommitments(context.Background(), querier, chainIDA, mock.PortID, channelIDA, pageLimit)

			if tc.expErr == nil {
				s.Require().NoError(err)
				s.Require().Equal(expSequences, collections.Sorted(commitments))
				s.Require().Equal(expQueryCalls, commitmentCall())
			} else {
				s.Require().ErrorIs(err, tc.expErr)
				s.Require().Nil(commitments)
			}
		})
	}
}

func (s *CounterpartyTestSuite) TestFetchCommitmentsCanceled() {
	s.chainA.SetCommitments(mock.PortID, channelIDA, 1, 2, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	commitments, err := counterparty.FetchCommitments(ctx, s.chainA, chainIDA, mock.PortID, channelIDA, 0)
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().Nil(commitments)
	s.Require().Zero(s.chainA.CallCount(mock.MethodPacketCommitments))
}

package mock

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/cosmos/gogoproto/proto"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibctm "github.com/cosmos/ibc-go/v10/modules/light-clients/07-tendermint"

	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// Query method names used as keys for call counts and injected errors.
const (
	MethodChannel                = types.QueryChannel
	MethodChannelClientState     = types.QueryChannelClientState
	MethodPacketCommitments      = types.QueryPacketCommitments
	MethodPacketAcknowledgements = types.QueryPacketAcknowledgements
)

const (
	PortID    = "transfer"
	ClientID  = "07-tendermint-0"
	ConnectID = "connection-0"
)

var (
	MockCommitment      = []byte("mock packet commitment")
	MockAcknowledgement = []byte("mock acknowledgement")
)

var (
	_ types.Endpoint    = (*Endpoint)(nil)
	_ types.QueryLimits = (*Endpoint)(nil)
)

type channelEnd struct {
	channel             channeltypes.Channel
	counterpartyChainID string
}

// Endpoint is an in-memory chain that serves the channel queries used by the
// relayer. It records how often each query method was called.
type Endpoint struct {
	mu sync.Mutex

	chainID     string
	channels    map[string]channelEnd
	commitments map[string][]uint64
	acks        map[string][]uint64
	errors      map[string]error
	calls       map[string]int
	ackRequests [][]uint64

	pageLimit    uint64
	ackBatchSize int
}

// NewEndpoint returns an empty in-memory endpoint for the given chain.
func NewEndpoint(chainID string) *Endpoint {
	return &Endpoint{
		chainID:     chainID,
		channels:    make(map[string]channelEnd),
		commitments: make(map[string][]uint64),
		acks:        make(map[string][]uint64),
		errors:      make(map[string]error),
		calls:       make(map[string]int),
	}
}

// NewOpenChannel returns an OPEN unordered channel end connected to the given counterparty.
func NewOpenChannel(counterpartyPortID, counterpartyChannelID string) channeltypes.Channel {
	return channeltypes.NewChannel(
		channeltypes.OPEN, channeltypes.UNORDERED,
		channeltypes.NewCounterparty(counterpartyPortID, counterpartyChannelID),
		[]string{ConnectID}, "ics20-1",
	)
}

// ChainID implements types.Endpoint.
func (e *Endpoint) ChainID() string {
	return e.chainID
}

// SetChannel stores a channel end whose client tracks counterpartyChainID.
func (e *Endpoint) SetChannel(portID, channelID string, channel channeltypes.Channel, counterpartyChainID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.channels[key(portID, channelID)] = channelEnd{channel: channel, counterpartyChainID: counterpartyChainID}
}

// SetCommitments replaces the packet commitments stored for the port and channel.
func (e *Endpoint) SetCommitments(portID, channelID string, sequences ...uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.commitments[key(portID, channelID)] = sorted(sequences)
}

// SetAcknowledgements replaces the packet acknowledgements stored for the port and channel.
func (e *Endpoint) SetAcknowledgements(portID, channelID string, sequences ...uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.acks[key(portID, channelID)] = sorted(sequences)
}

// SetQueryLimits configures the page limit and batch size reported through types.QueryLimits.
func (e *Endpoint) SetQueryLimits(pageLimit uint64, ackBatchSize int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pageLimit = pageLimit
	e.ackBatchSize = ackBatchSize
}

// CommitmentPageLimit implements types.QueryLimits.
func (e *Endpoint) CommitmentPageLimit() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pageLimit
}

// AckBatchSize implements types.QueryLimits.
func (e *Endpoint) AckBatchSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ackBatchSize
}

// SetError makes every call to the given query method fail with err.
func (e *Endpoint) SetError(method string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors[method] = err
}

// CallCount returns the number of calls made to the given query method.
func (e *Endpoint) CallCount(method string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.calls[method]
}

// AckRequests returns the sequence batches received by PacketAcknowledgements.
func (e *Endpoint) AckRequests() [][]uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.ackRequests)
}

// Channel implements types.ChannelQuerier.
func (e *Endpoint) Channel(_ context.Context, req *channeltypes.QueryChannelRequest, _ ...grpc.CallOption) (*channeltypes.QueryChannelResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.call(MethodChannel); err != nil {
		return nil, err
	}

	end, found := e.channels[key(req.PortId, req.ChannelId)]
	if !found {
		return nil, notFound(req.PortId, req.ChannelId)
	}

	channel := end.channel
	return &channeltypes.QueryChannelResponse{Channel: &channel}, nil
}

// ChannelClientState implements types.ChannelQuerier.
func (e *Endpoint) ChannelClientState(_ context.Context, req *channeltypes.QueryChannelClientStateRequest, _ ...grpc.CallOption) (*channeltypes.QueryChannelClientStateResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.call(MethodChannelClientState); err != nil {
		return nil, err
	}

	end, found := e.channels[key(req.PortId, req.ChannelId)]
	if !found {
		return nil, notFound(req.PortId, req.ChannelId)
	}

	clientState, err := TendermintClientState(end.counterpartyChainID)
	if err != nil {
		return nil, err
	}

	return &channeltypes.QueryChannelClientStateResponse{
		IdentifiedClientState: &clienttypes.IdentifiedClientState{
			ClientId:    ClientID,
			ClientState: clientState,
		},
	}, nil
}

// PacketCommitments implements types.CommitmentQuerier. Pages are served in
// ascending sequence order and the pagination key is the offset of the next page.
func (e *Endpoint) PacketCommitments(_ context.Context, req *channeltypes.QueryPacketCommitmentsRequest, _ ...grpc.CallOption) (*channeltypes.QueryPacketCommitmentsResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.call(MethodPacketCommitments); err != nil {
		return nil, err
	}

	if _, found := e.channels[key(req.PortId, req.ChannelId)]; !found {
		return nil, notFound(req.PortId, req.ChannelId)
	}

	sequences := e.commitments[key(req.PortId, req.ChannelId)]

	offset, limit := 0, len(sequences)
	if req.Pagination != nil {
		if len(req.Pagination.Key) > 0 {
			parsed, err := strconv.Atoi(string(req.Pagination.Key))
			if err != nil {
				return nil, fmt.Errorf("invalid pagination key %q: %w", req.Pagination.Key, err)
			}
			offset = parsed
		}
		if req.Pagination.Limit > 0 {
			limit = int(req.Pagination.Limit)
		}
	}

	end := min(offset+limit, len(sequences))
	offset = min(offset, end)

	commitments := make([]*channeltypes.PacketState, 0, end-offset)
	for _, seq := range sequences[offset:end] {
		state := channeltypes.NewPacketState(req.PortId, req.ChannelId, seq, MockCommitment)
		commitments = append(commitments, &state)
	}

	pageRes := &query.PageResponse{Total: uint64(len(sequences))}
	if end < len(sequences) {
		pageRes.NextKey = []byte(strconv.Itoa(end))
	}

	return &channeltypes.QueryPacketCommitmentsResponse{
		Commitments: commitments,
		Pagination:  pageRes,
	}, nil
}

// PacketAcknowledgements implements types.AcknowledgementQuerier. Only the
// requested sequences that have an acknowledgement are returned.
func (e *Endpoint) PacketAcknowledgements(_ context.Context, req *channeltypes.QueryPacketAcknowledgementsRequest, _ ...grpc.CallOption) (*channeltypes.QueryPacketAcknowledgementsResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.call(MethodPacketAcknowledgements); err != nil {
		return nil, err
	}

	e.ackRequests = append(e.ackRequests, slices.Clone(req.PacketCommitmentSequences))

	if _, found := e.channels[key(req.PortId, req.ChannelId)]; !found {
		return nil, notFound(req.PortId, req.ChannelId)
	}

	stored := e.acks[key(req.PortId, req.ChannelId)]

	var acks []*channeltypes.PacketState
	for _, seq := range req.PacketCommitmentSequences {
		if _, found := slices.BinarySearch(stored, seq); !found {
			continue
		}

		state := channeltypes.NewPacketState(req.PortId, req.ChannelId, seq, MockAcknowledgement)
		acks = append(acks, &state)
	}

	return &channeltypes.QueryPacketAcknowledgementsResponse{
		Acknowledgements: acks,
	}, nil
}

// TendermintClientState returns a packed 07-tendermint client state tracking chainID.
func TendermintClientState(chainID string) (*codectypes.Any, error) {
	clientState := &ibctm.ClientState{ChainId: chainID}

	bz, err := proto.Marshal(clientState)
	if err != nil {
		return nil, err
	}

	return &codectypes.Any{
		TypeUrl: "/" + proto.MessageName(clientState),
		Value:   bz,
	}, nil
}

// call must be invoked with the lock held.
func (e *Endpoint) call(method string) error {
	e.calls[method]++
	return e.errors[method]
}

// notFound mirrors the error returned by the 04-channel query server for an unknown channel.
func notFound(portID, channelID string) error {
	return status.Error(
		codes.NotFound,
		errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID).Error(),
	)
}

func key(portID, channelID string) string {
	return fmt.Sprintf("%s/%s", portID, channelID)
}

func sorted(sequences []uint64) []uint64 {
	sequences = slices.Clone(sequences)
	slices.Sort(sequences)
	return slices.Compact(sequences)
}

package counterparty

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
	"github.com/cosmos/ibc-go/relayer/internal/telemetry"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// Resolver computes the unreceived acknowledgements of a channel. It only holds
// configuration and may be shared by concurrent resolutions.
type Resolver struct {
	logger   log.Logger
	registry types.EndpointRegistry

	commitmentPageLimit uint64
	ackBatchSize        int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCommitmentPageLimit sets the page size used when fetching packet commitments
// from an endpoint that does not configure its own.
func WithCommitmentPageLimit(limit uint64) Option {
	return func(r *Resolver) {
		r.commitmentPageLimit = limit
	}
}

// WithAckBatchSize sets the maximum number of sequences per acknowledgement existence
// query sent to an endpoint that does not configure its own.
func WithAckBatchSize(size int) Option {
	return func(r *Resolver) {
		r.ackBatchSize = size
	}
}

// NewResolver returns a Resolver that obtains chain endpoints from the given registry.
// The registry may be nil when only UnreceivedAcknowledgements is used.
func NewResolver(logger log.Logger, registry types.EndpointRegistry, opts ...Option) *Resolver {
	r := &Resolver{
		logger:              logger.With("module", types.ModuleName),
		registry:            registry,
		commitmentPageLimit: types.DefaultCommitmentPageLimit,
		ackBatchSize:        types.DefaultAckBatchSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve locates the channel identified by portID and channelID on chainID,
// obtains the counterparty endpoint from the registry and returns the sequences
// of acknowledgements still to be relayed back to chainID.
func (r *Resolver) Resolve(ctx context.Context, chainID, portID, channelID string) ([]uint64, error) {
	if r.registry == nil {
		return nil, errorsmod.Wrap(ibcerrors.ErrLogic, "resolver has no endpoint registry")
	}

	src, err := r.registry.Endpoint(chainID)
	if err != nil {
		return nil, err
	}

	channel, err := LocateChannel(ctx, src, src.ChainID(), portID, channelID)
	if err != nil {
		return nil, err
	}

	r.logger.Debug(
		"fetched channel from source chain",
		"chain_id", channel.ChainID, "channel", channel.Path().String(),
		"counterparty_chain_id", channel.CounterpartyChainID, "connection_id", channel.ConnectionID, "client_id", channel.ClientID,
	)

	dst, err := r.registry.Endpoint(channel.CounterpartyChainID)
	if err != nil {
		return nil, err
	}

	return r.UnreceivedAcknowledgements(ctx, src, dst, channel.Path())
}

// UnreceivedAcknowledgements returns, in ascending order, the sequences of packets
// sent from src on the given path whose acknowledgements have been written on dst
// but not yet processed by src. When the path does not carry the counterparty port
// and channel they are located on src first.
//
// Every failure aborts the resolution and no partial result is returned.
func (r *Resolver) UnreceivedAcknowledgements(ctx context.Context, src, dst types.Endpoint, path types.PacketPath) (sequences []uint64, err error) {
	defer func() {
		telemetry.ReportUnreceivedAcks(src.ChainID(), dst.ChainID(), path, len(sequences), err)
	}()

	if !path.HasCounterparty() {
		channel, err := LocateChannel(ctx, src, src.ChainID(), path.PortID, path.ChannelID)
		if err != nil {
			return nil, err
		}

		if channel.CounterpartyChainID != dst.ChainID() {
			return nil, errorsmod.Wrapf(
				types.ErrCounterpartyMismatch,
				"channel %s/%s on %s connects to %s, not %s", path.PortID, path.ChannelID, src.ChainID(), channel.CounterpartyChainID, dst.ChainID(),
			)
		}

		path = channel.Path()
	}

	pageLimit, _ := r.queryLimits(src)
	commitments, err := FetchCommitments(ctx, src, src.ChainID(), path.PortID, path.ChannelID, pageLimit)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("fetched packet commitments", "chain_id", src.ChainID(), "channel", path.String(), "count", commitments.Cardinality())

	if commitments.Cardinality() == 0 {
		return []uint64{}, nil
	}

	_, batchSize := r.queryLimits(dst)
	acks, err := QueryAcknowledgementPresence(ctx, dst, dst.ChainID(), path.CounterpartyPortID, path.CounterpartyChannelID, commitments, batchSize)
	if err != nil {
		return nil, err
	}

	sequences = types.UnreceivedAcks(commitments, acks)

	r.logger.Info(
		"resolved unreceived acknowledgements",
		"chain_id", src.ChainID(), "counterparty_chain_id", dst.ChainID(), "channel", path.String(),
		"commitments", commitments.Cardinality(), "unreceived", len(sequences),
	)

	return sequences, nil
}

// queryLimits returns the commitment page limit and acknowledgement batch size
// to use against endpoint, preferring the endpoint's own configuration.
func (r *Resolver) queryLimits(endpoint types.Endpoint) (pageLimit uint64, batchSize int) {
	pageLimit, batchSize = r.commitmentPageLimit, r.ackBatchSize

	limits, ok := endpoint.(types.QueryLimits)
	if !ok {
		return pageLimit, batchSize
	}

	if limit := limits.CommitmentPageLimit(); limit > 0 {
		pageLimit = limit
	}
	if size := limits.AckBatchSize(); size > 0 {
		batchSize = size
	}

	return pageLimit, batchSize
}

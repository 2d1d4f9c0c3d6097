package chain

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/ibc-go/relayer/internal/telemetry"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/config"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

var (
	_ types.Endpoint    = (*Endpoint)(nil)
	_ types.QueryLimits = (*Endpoint)(nil)
)

// Endpoint is a read-only gRPC query handle to a single chain. Every query is
// bounded by the configured per call timeout. Endpoints are safe for concurrent use.
type Endpoint struct {
	channeltypes.QueryClient

	chainID      string
	pageLimit    uint64
	ackBatchSize int
	conn         *grpc.ClientConn
}

// NewEndpoint creates a client connection to the chain's gRPC server. The
// connection is established lazily on the first query.
func NewEndpoint(cfg config.ChainConfig, logger log.Logger, opts ...grpc.DialOption) (*Endpoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(QueryInterceptor(cfg.ID, timeout, logger)),
	}, opts...)

	conn, err := grpc.NewClient(cfg.GRPCAddr, dialOpts...)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrEndpointUnreachable, "chain %s: failed to create grpc client for %s: %s", cfg.ID, cfg.GRPCAddr, err)
	}

	return &Endpoint{
		QueryClient:  channeltypes.NewQueryClient(conn),
		chainID:      cfg.ID,
		pageLimit:    cfg.QueryPageLimit,
		ackBatchSize: cfg.AckBatchSize,
		conn:         conn,
	}, nil
}

// ChainID implements types.Endpoint.
func (e *Endpoint) ChainID() string {
	return e.chainID
}

// CommitmentPageLimit implements types.QueryLimits.
func (e *Endpoint) CommitmentPageLimit() uint64 {
	return e.pageLimit
}

// AckBatchSize implements types.QueryLimits.
func (e *Endpoint) AckBatchSize() int {
	return e.ackBatchSize
}

// Close tears down the underlying client connection.
func (e *Endpoint) Close() error {
	return e.conn.Close()
}

// QueryInterceptor returns a unary client interceptor that bounds every query
// with timeout, logs it and reports its latency.
func QueryInterceptor(chainID string, timeout time.Duration, logger log.Logger) grpc.UnaryClientInterceptor {
	logger = logger.With("chain_id", chainID)

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		name := path.Base(method)
		telemetry.ReportQuery(chainID, name, start, err)

		if err != nil {
			logger.Debug("query failed", "method", name, "duration", time.Since(start), "error", err)
			return err
		}

		logger.Debug("query succeeded", "method", name, "duration", time.Since(start))
		return nil
	}
}

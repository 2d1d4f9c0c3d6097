package registry

import (
	"errors"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/chain"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/config"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

var _ types.EndpointRegistry = (*Registry)(nil)

// Registry hands out one gRPC endpoint per configured chain. Endpoints are
// created on first use and shared by all subsequent callers.
type Registry struct {
	mu sync.Mutex

	cfg       config.Config
	logger    log.Logger
	endpoints map[string]*chain.Endpoint
}

// New returns a registry for the chains listed in cfg.
func New(cfg config.Config, logger log.Logger) *Registry {
	return &Registry{
		cfg:       cfg,
		logger:    logger,
		endpoints: make(map[string]*chain.Endpoint),
	}
}

// Endpoint implements types.EndpointRegistry.
func (r *Registry) Endpoint(chainID string) (types.Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if endpoint, found := r.endpoints[chainID]; found {
		return endpoint, nil
	}

	chainCfg, found := r.cfg.Chain(chainID)
	if !found {
		return nil, errorsmod.Wrapf(ibcerrors.ErrChainNotConfigured, "chain %s", chainID)
	}

	endpoint, err := chain.NewEndpoint(chainCfg, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("created chain endpoint", "chain_id", chainID, "grpc_addr", chainCfg.GRPCAddr)
	r.endpoints[chainID] = endpoint

	return endpoint, nil
}

// Close closes every endpoint created so far.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for chainID, endpoint := range r.endpoints {
		if err := endpoint.Close(); err != nil {
			errs = append(errs, errorsmod.Wrapf(err, "chain %s", chainID))
		}
		delete(r.endpoints, chainID)
	}

	return errors.Join(errs...)
}

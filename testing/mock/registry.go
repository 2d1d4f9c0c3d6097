package mock

import (
	errorsmod "cosmossdk.io/errors"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

var _ types.EndpointRegistry = Registry{}

// Registry is a fixed set of in-memory endpoints keyed by chain id.
type Registry map[string]*Endpoint

// NewRegistry returns a registry containing the given endpoints.
func NewRegistry(endpoints ...*Endpoint) Registry {
	r := make(Registry, len(endpoints))
	for _, e := range endpoints {
		r[e.ChainID()] = e
	}
	return r
}

// Endpoint implements types.EndpointRegistry.
func (r Registry) Endpoint(chainID string) (types.Endpoint, error) {
	e, found := r[chainID]
	if !found {
		return nil, errorsmod.Wrapf(ibcerrors.ErrChainNotConfigured, "chain %s", chainID)
	}
	return e, nil
}

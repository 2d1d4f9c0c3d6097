package errors

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "relayer"

var (
	// ErrInvalidIdentifier is used when a chain, port or channel identifier
	// supplied by the user is malformed.
	ErrInvalidIdentifier = errorsmod.Register(codespace, 2, "invalid identifier")

	// ErrInvalidConfig defines an error for a configuration file that cannot
	// be parsed or fails validation.
	ErrInvalidConfig = errorsmod.Register(codespace, 3, "invalid configuration")

	// ErrChainNotConfigured is used when a chain id has no entry in the
	// relayer configuration.
	ErrChainNotConfigured = errorsmod.Register(codespace, 4, "chain not configured")

	// ErrLogic defines an internal logic error, e.g. an invariant or assertion
	// that is violated. It is a programmer error, not a user-facing error.
	ErrLogic = errorsmod.Register(codespace, 5, "internal logic error")
)

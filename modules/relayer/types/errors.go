package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Relayer query sentinel errors
var (
	ErrChannelNotFound      = errorsmod.Register(ModuleName, 2, "channel not found")
	ErrEndpointUnreachable  = errorsmod.Register(ModuleName, 3, "chain endpoint unreachable")
	ErrMalformedResponse    = errorsmod.Register(ModuleName, 4, "malformed query response")
	ErrInvalidChannelState  = errorsmod.Register(ModuleName, 5, "invalid channel state")
	ErrCounterpartyMismatch = errorsmod.Register(ModuleName, 6, "counterparty chain mismatch")
)

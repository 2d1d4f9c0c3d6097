package validate

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
)

// ChannelEnd validates the chain, port and channel identifiers naming one end of a channel.
func ChannelEnd(chainID, portID, channelID string) error {
	if strings.TrimSpace(chainID) == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidIdentifier, "chain identifier cannot be blank")
	}

	if err := host.PortIdentifierValidator(portID); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidIdentifier, "port: %s", err)
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidIdentifier, "channel: %s", err)
	}

	return nil
}

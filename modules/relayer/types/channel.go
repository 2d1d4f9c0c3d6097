package types

import (
	"fmt"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// ChannelDescriptor is the resolved view of a channel end together with its
// counterparty. It is derived from chain state on every call and never cached.
type ChannelDescriptor struct {
	ChainID      string
	PortID       string
	ChannelID    string
	State        channeltypes.State
	Ordering     channeltypes.Order
	ConnectionID string
	ClientID     string

	CounterpartyChainID   string
	CounterpartyPortID    string
	CounterpartyChannelID string
}

// Path returns the packet path from this channel end to its counterparty.
func (cd ChannelDescriptor) Path() PacketPath {
	return NewPacketPath(cd.PortID, cd.ChannelID, cd.CounterpartyPortID, cd.CounterpartyChannelID)
}

// PacketPath identifies the source end of a channel and, when known, the
// destination end on the counterparty chain.
type PacketPath struct {
	PortID                string
	ChannelID             string
	CounterpartyPortID    string
	CounterpartyChannelID string
}

// NewPacketPath creates a new PacketPath instance.
func NewPacketPath(portID, channelID, counterpartyPortID, counterpartyChannelID string) PacketPath {
	return PacketPath{
		PortID:                portID,
		ChannelID:             channelID,
		CounterpartyPortID:    counterpartyPortID,
		CounterpartyChannelID: counterpartyChannelID,
	}
}

// HasCounterparty reports whether the destination port and channel are set.
func (p PacketPath) HasCounterparty() bool {
	return p.CounterpartyPortID != "" && p.CounterpartyChannelID != ""
}

func (p PacketPath) String() string {
	return fmt.Sprintf("%s/%s -> %s/%s", p.PortID, p.ChannelID, p.CounterpartyPortID, p.CounterpartyChannelID)
}

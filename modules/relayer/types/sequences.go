package types

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cosmos/ibc-go/relayer/internal/collections"
)

// CommitmentSet holds the sequences of packets a chain has sent on a channel
// and not yet cleared.
type CommitmentSet = mapset.Set[uint64]

// AcknowledgementPresenceSet holds the sequences for which a chain has written
// a packet acknowledgement.
type AcknowledgementPresenceSet = mapset.Set[uint64]

// NewSequenceSet returns a set of packet sequences. The set is not safe for
// concurrent use; sets are owned by a single resolution.
func NewSequenceSet(sequences ...uint64) mapset.Set[uint64] {
	return mapset.NewThreadUnsafeSet(sequences...)
}

// UnreceivedAcks returns the sequences that are both committed on the source
// and acknowledged on the destination, in ascending order. The result is always
// a subset of commitments.
func UnreceivedAcks(commitments CommitmentSet, acks AcknowledgementPresenceSet) []uint64 {
	unreceived := NewSequenceSet()
	if commitments == nil || acks == nil {
		return collections.Sorted(unreceived)
	}

	for _, seq := range commitments.ToSlice() {
		if acks.Contains(seq) {
			unreceived.Add(seq)
		}
	}

	return collections.Sorted(unreceived)
}

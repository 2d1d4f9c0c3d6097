package types

const (
	// ModuleName defines the name of the relayer query module
	ModuleName = "relayer-query"

	// DefaultCommitmentPageLimit is the page size used when paging through packet commitments.
	DefaultCommitmentPageLimit uint64 = 100

	// DefaultAckBatchSize is the maximum number of sequences sent in a single acknowledgement existence query.
	DefaultAckBatchSize = 500
)

package metrics

// Prometheus metric labels.
const (
	LabelChainID             = "chain_id"
	LabelCounterpartyChainID = "counterparty_chain_id"
	LabelPort                = "port_id"
	LabelChannel             = "channel_id"
	LabelMethod              = "method"
	LabelOutcome             = "outcome"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

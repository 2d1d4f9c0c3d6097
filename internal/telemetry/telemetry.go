package telemetry

import (
	"time"

	"github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/config"
	relayermetrics "github.com/cosmos/ibc-go/relayer/modules/relayer/metrics"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

// New configures the process wide metrics sinks. Metrics are only recorded once
// New has been called with telemetry enabled. The returned function flushes the
// sinks and must be called before the process exits.
func New(cfg config.TelemetryConfig) (shutdown func(), err error) {
	m, err := telemetry.New(telemetry.Config{
		ServiceName:             cfg.ServiceName,
		Enabled:                 cfg.Enabled,
		PrometheusRetentionTime: cfg.PrometheusRetentionTime,
		MetricsSink:             cfg.MetricsSink,
		StatsdAddr:              cfg.StatsdAddr,
	})
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "failed to set up telemetry: %s", err)
	}

	if m == nil {
		return func() {}, nil
	}

	return metrics.Shutdown, nil
}

// ReportUnreceivedAcks records the outcome of a single unreceived acknowledgement resolution.
func ReportUnreceivedAcks(srcChainID, dstChainID string, path types.PacketPath, count int, err error) {
	labels := []metrics.Label{
		telemetry.NewLabel(relayermetrics.LabelChainID, srcChainID),
		telemetry.NewLabel(relayermetrics.LabelCounterpartyChainID, dstChainID),
		telemetry.NewLabel(relayermetrics.LabelPort, path.PortID),
		telemetry.NewLabel(relayermetrics.LabelChannel, path.ChannelID),
	}

	if err != nil {
		telemetry.IncrCounterWithLabels(
			[]string{"relayer", "unreceived_acks", "resolve"},
			1,
			append(labels, telemetry.NewLabel(relayermetrics.LabelOutcome, relayermetrics.OutcomeFailure)),
		)
		return
	}

	telemetry.SetGaugeWithLabels(
		[]string{"relayer", "unreceived_acks", "pending"},
		float32(count),
		labels,
	)

	telemetry.IncrCounterWithLabels(
		[]string{"relayer", "unreceived_acks", "resolve"},
		1,
		append(labels, telemetry.NewLabel(relayermetrics.LabelOutcome, relayermetrics.OutcomeSuccess)),
	)
}

// ReportQuery records the latency and outcome of a single gRPC query against a chain.
func ReportQuery(chainID, method string, start time.Time, err error) {
	outcome := relayermetrics.OutcomeSuccess
	if err != nil {
		outcome = relayermetrics.OutcomeFailure
	}

	labels := []metrics.Label{
		telemetry.NewLabel(relayermetrics.LabelChainID, chainID),
		telemetry.NewLabel(relayermetrics.LabelMethod, method),
		telemetry.NewLabel(relayermetrics.LabelOutcome, outcome),
	}

	telemetry.IncrCounterWithLabels([]string{"relayer", "query"}, 1, labels)
	telemetry.MeasureSince(start, "relayer", "query", method)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/ibc-go/relayer/internal/telemetry"
	"github.com/cosmos/ibc-go/relayer/internal/validate"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/config"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/counterparty"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/registry"
)

const (
	flagChain   = "chain"
	flagPort    = "port"
	flagChannel = "channel"
	flagChan    = "chan"
)

// GetQueryCmd returns the query commands.
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        "query",
		Short:                      "Query the state of configured chains",
		SuggestionsMinimumDistance: 2,
	}

	packetCmd := &cobra.Command{
		Use:                        "packet",
		Short:                      "Query packet relaying state",
		SuggestionsMinimumDistance: 2,
	}

	packetCmd.AddCommand(GetCmdUnreceivedAcks())
	queryCmd.AddCommand(packetCmd)

	return queryCmd
}

// GetCmdUnreceivedAcks returns the command listing the packets sent on a
// channel whose acknowledgement was written on the counterparty but not yet
// relayed back.
func GetCmdUnreceivedAcks() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unreceived-acks",
		Short:   "Query the sequences of acknowledgements not yet received on a channel end",
		Long:    "Query the sequences of packets sent on the given channel end whose acknowledgement was written on the counterparty chain but has not been relayed back to the sending chain.",
		Args:    cobra.NoArgs,
		Example: "relayer query packet unreceived-acks --chain ibc-0 --port transfer --channel channel-0",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chainID, _ := cmd.Flags().GetString(flagChain)
			portID, _ := cmd.Flags().GetString(flagPort)
			channelID, err := channelFlag(cmd)
			if err != nil {
				return err
			}

			if err := validate.ChannelEnd(chainID, portID, channelID); err != nil {
				return err
			}

			configPath, _ := cmd.Flags().GetString(flagConfig)
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			shutdown, err := telemetry.New(cfg.Telemetry)
			if err != nil {
				return err
			}
			defer shutdown()

			reg := registry.New(cfg, logger)
			defer func() {
				if err := reg.Close(); err != nil {
					logger.Error("failed to close chain endpoints", "error", err)
				}
			}()

			resolver := counterparty.NewResolver(
				logger, reg,
				counterparty.WithCommitmentPageLimit(cfg.Global.QueryPageLimit),
				counterparty.WithAckBatchSize(cfg.Global.AckBatchSize),
			)

			sequences, err := resolver.Resolve(cmd.Context(), chainID, portID, channelID)
			if err != nil {
				return err
			}

			jsonOutput, _ := cmd.Flags().GetBool(flagJSON)
			return printSequences(cmd.OutOrStdout(), jsonOutput, sequences)
		},
	}

	cmd.Flags().String(flagChain, "", "identifier of the chain to query")
	cmd.Flags().String(flagPort, "", "identifier of the port to query")
	cmd.Flags().String(flagChannel, "", fmt.Sprintf("identifier of the channel to query (alias --%s)", flagChan))
	cmd.Flags().String(flagChan, "", fmt.Sprintf("alias of --%s", flagChannel))

	_ = cmd.MarkFlagRequired(flagChain)
	_ = cmd.MarkFlagRequired(flagPort)
	cmd.MarkFlagsOneRequired(flagChannel, flagChan)
	cmd.MarkFlagsMutuallyExclusive(flagChannel, flagChan)

	return cmd
}

// channelFlag returns the channel identifier given through --channel or its alias.
func channelFlag(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed(flagChan) {
		return cmd.Flags().GetString(flagChan)
	}
	return cmd.Flags().GetString(flagChannel)
}

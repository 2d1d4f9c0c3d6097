package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cosmossdk.io/log"

	"github.com/cosmos/ibc-go/relayer/modules/relayer/config"
)

const (
	flagConfig = "config"
	flagJSON   = "json"
)

// NewRootCmd creates the relayer root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "relayer",
		Short:         "Inspect IBC packet relaying state between configured chains",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, config.DefaultPath(), "path to the relayer configuration file (toml or yaml)")
	rootCmd.PersistentFlags().Bool(flagJSON, false, "print the result as JSON")

	rootCmd.AddCommand(GetQueryCmd())

	return rootCmd
}

// Execute runs the root command. Any error is rendered to the command's error
// output before being returned.
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		jsonOutput, _ := cmd.Flags().GetBool(flagJSON)
		printError(cmd.ErrOrStderr(), jsonOutput, err)
	}

	return err
}

// newLogger builds a logger writing to w with the configured level and format.
func newLogger(cfg config.GlobalConfig, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(level), log.ColorOption(false)}
	if cfg.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	}

	return log.NewLogger(w, opts...), nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-nft-ledger/internal/config"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configFile string
		envPath    string
	)
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate the NFT ledger directly against its database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.ChdirRepoRoot()
			cfg, err := config.LoadCLIConfig(configFile, envPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			err = logger.Initialize(logger.Config{
				Service:         "ledgerctl",
				Debug:           cfg.Debug,
				SentryDSN:       cfg.SentryDSN,
				BreadcrumbLevel: zapcore.InfoLevel,
			})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}

			return a.open(cmd.Context(), cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
			logger.Flush(2 * time.Second)
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")
	cmd.PersistentFlags().StringVar(&a.caller, "caller", "", "Account performing a mutation (defaults to the collection admin)")

	cmd.AddCommand(
		infoCmd(a),
		mintCmd(a),
		approveCmd(a),
		transferCmd(a),
		ownerOfCmd(a),
		balanceOfCmd(a),
		tokenURICmd(a),
		tokensOfCmd(a),
		eventsCmd(a),
	)

	return cmd
}

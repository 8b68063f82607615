package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose     bool
	workspace   string
	configPath  string
	catalogPath string

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mandi",
	Short: "Digital Mandi - a farmer-to-buyer produce marketplace",
	Long: `Digital Mandi connects buyers directly with farmers.

Browse produce listings, compare asking prices with MSP and market rates,
place bids with optional transport, pay, and message the farmer on WhatsApp.

Run without arguments to open the interactive marketplace.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive board owns the terminal; keep stderr quiet.
		if cmd == cmd.Root() {
			return nil
		}

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBoard,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest with .mandi, else current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.mandi/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: built-in listings, or MANDI_CATALOG)")

	rootCmd.AddCommand(listingsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(bidCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(poolsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

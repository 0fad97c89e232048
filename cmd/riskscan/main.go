// riskscan computes financial ratios and the Altman Z-Score for company
// statements and classifies bankruptcy risk.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/riskscanner/internal/config"
	"github.com/seenimoa/riskscanner/internal/infra"
	"github.com/seenimoa/riskscanner/internal/logging"
	"github.com/seenimoa/riskscanner/internal/scanner"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	cache  *infra.Cache[models.Assessment]
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "riskscan",
		Short: "Financial ratio and Altman Z-Score risk scanner",
		Long: `riskscan reads a company's balance-sheet and income-statement figures,
computes liquidity, solvency, profitability and efficiency ratios plus the
Altman Z-Score, and classifies the bankruptcy risk as distress, grey or safe.

Statements are read from JSON, YAML, TOML, HJSON or HTML table files, or given
on the command line with --set label=value.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(versionCmd())
	root.AddCommand(a.analyzeCmd())
	root.AddCommand(a.sampleCmd())
	root.AddCommand(a.batchCmd())
	root.AddCommand(a.statusCmd())
	return root
}

// setup loads configuration and wires logging and the assessment cache.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		a.cfg.Logging.Level = level
	}
	a.logger = logging.Init(logging.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
	})
	a.cache = infra.NewCache[models.Assessment](a.cfg.Analysis.CacheDuration())

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("config", configFile).
		Msg("configuration loaded")
	return nil
}

// scanner builds a scanner from configuration. noEstimate turns estimation
// off regardless of analysis.estimate_missing.
func (a *app) scanner(noEstimate bool) *scanner.Scanner {
	return scanner.New(
		scanner.WithLogger(a.logger),
		scanner.WithCache(a.cache),
		scanner.WithEstimates(scanner.Estimates{
			InventoryShare:   a.cfg.Analysis.InventoryShare,
			CostOfSalesShare: a.cfg.Analysis.CostOfSalesShare,
		}),
		scanner.WithEstimation(a.cfg.Analysis.EstimateMissing && !noEstimate),
	)
}

// --- Version Command ---

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "riskscan %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

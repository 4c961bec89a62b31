package commands

import (
	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/provider"
	"github.com/finscope/finscope/internal/provider/yahoo"
	"github.com/finscope/finscope/internal/screening"
	"github.com/finscope/finscope/pkg/config"
	"github.com/finscope/finscope/pkg/logger"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finscope",
	Short: "FinScope - equity valuation and screening",
	Long: `FinScope fetches market and fundamental data for listed equities,
derives valuation and financial-health metrics, and screens a fixed
universe against configurable thresholds.

Examples:
  finscope screen --mode value
  finscope value AAPL
  finscope health MSFT
  finscope quote NVDA
  finscope search "coca cola"
  finscope serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// appContext bundles the shared wiring every command needs.
type appContext struct {
	cfg    *config.Config
	log    *logger.Logger
	cache  *provider.Cache
	engine *screening.Engine
}

// setup loads config and wires the provider stack.
func setup() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	client := yahoo.New(cfg.Provider, log)
	cache := provider.NewCache(client, cfg.Provider.CacheTTL)
	engine := screening.NewEngine(cache, log, cfg.Screening.Workers, cfg.Screening.SymbolTimeout)

	return &appContext{cfg: cfg, log: log, cache: cache, engine: engine}, nil
}

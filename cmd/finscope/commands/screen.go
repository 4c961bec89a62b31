package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/screening"
)

var (
	screenMode    string
	screenLimit   int
	screenCSV     string
	screenMinCap  float64
	screenMaxCap  float64
	screenWorkers int
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run a screening pass over the built-in universe",
	Long: `Fetches fundamentals for every symbol in the built-in universe,
scores each against the selected rubric and prints the ranked candidates.

Modes:
  value         low P/E, P/B, PEG and leverage, decent liquidity
  growth        revenue/earnings growth, ROE and gross margin
  value-growth  relaxed value thresholds combined with growth minimums`,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVarP(&screenMode, "mode", "m", "value", "screening mode (value|growth|value-growth)")
	screenCmd.Flags().IntVarP(&screenLimit, "limit", "l", 0, "max candidates to return (0 = mode default)")
	screenCmd.Flags().StringVar(&screenCSV, "csv", "", "write results as CSV to this file instead of printing a table")
	screenCmd.Flags().Float64Var(&screenMinCap, "min-cap", 0, "minimum market cap in USD (0 = mode default)")
	screenCmd.Flags().Float64Var(&screenMaxCap, "max-cap", 0, "maximum market cap in USD (0 = mode default)")
	screenCmd.Flags().IntVar(&screenWorkers, "workers", 0, "concurrent fetch workers (0 = config default)")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	mode, err := screening.ParseMode(screenMode)
	if err != nil {
		return err
	}

	params := screening.DefaultParams(mode)
	if screenLimit > 0 {
		params.MaxResults = screenLimit
	}
	if screenMinCap > 0 {
		params.MinMarketCap = screenMinCap
	}
	if screenMaxCap > 0 {
		params.MaxMarketCap = screenMaxCap
	}
	if screenWorkers > 0 {
		params.Workers = screenWorkers
	}

	universe := screening.DefaultUniverse()

	progress := func(done, total int, symbol string) {
		fmt.Fprintf(os.Stderr, "\r%d/%d %-8s", done, total, symbol)
	}

	candidates, err := app.engine.Screen(context.Background(), mode, universe, params, progress)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if screenCSV != "" {
		f, err := os.Create(screenCSV)
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer f.Close()
		if err := screening.WriteCSV(f, candidates); err != nil {
			return err
		}
		fmt.Printf("Wrote %d candidates to %s\n", len(candidates), screenCSV)
		return nil
	}

	printCandidates(candidates)
	return nil
}

func printCandidates(candidates []screening.Candidate) {
	if len(candidates) == 0 {
		fmt.Println("No candidates passed the screen.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSYMBOL\tNAME\tSCORE\tCAP\tMARKET")
	for i, c := range candidates {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f%%\t%s\t%s\n",
			i+1, c.Symbol, truncate(c.Name, 28), c.Percent, c.CapCategory, c.Market)
	}
	w.Flush()
}

// truncate shortens s to at most n display runes. Byte slicing would split
// multi-byte names.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

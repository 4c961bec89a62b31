package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/fundamentals"
	"github.com/finscope/finscope/internal/provider"
)

var quotePeriod string

var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Print the current quote for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

var historyCmd = &cobra.Command{
	Use:   "history <symbol>",
	Short: "Print daily price history for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&quotePeriod, "period", "p", "1y", "lookback period (1d|5d|1mo|3mo|6mo|1y|2y|5y|10y|max)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	q, err := app.cache.Quote(context.Background(), symbol)
	if err != nil {
		return fmt.Errorf("quote for %s: %w", symbol, err)
	}

	fmt.Printf("%s", q.Symbol)
	if q.Name != "" {
		fmt.Printf("  %s", q.Name)
	}
	if q.Exchange != "" {
		fmt.Printf("  [%s]", q.Exchange)
	}
	fmt.Println()

	if q.Price.Valid {
		fmt.Printf("  price           %.2f %s\n", q.Price.Value, q.Currency)
	}
	if q.PreviousClose.Valid {
		fmt.Printf("  previous close  %.2f\n", q.PreviousClose.Value)
		if q.Price.Valid && q.PreviousClose.Value != 0 {
			change := q.Price.Value - q.PreviousClose.Value
			fmt.Printf("  change          %+.2f (%+.2f%%)\n", change, 100*change/q.PreviousClose.Value)
		}
	}
	if q.DayLow.Valid && q.DayHigh.Valid {
		fmt.Printf("  day range       %.2f - %.2f\n", q.DayLow.Value, q.DayHigh.Value)
	}
	if q.Volume.Valid {
		fmt.Printf("  volume          %.0f\n", q.Volume.Value)
	}

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	period := provider.Period(quotePeriod)
	if err := period.Validate(); err != nil {
		return err
	}

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	candles, err := app.cache.History(context.Background(), symbol, period)
	if err != nil {
		return fmt.Errorf("history for %s: %w", symbol, err)
	}

	fmt.Println("date        open      high      low       close     volume")
	for _, c := range candles {
		fmt.Printf("%s  %-8s  %-8s  %-8s  %-8s  %s\n",
			c.Date.Format("2006-01-02"),
			fieldStr(c.Open), fieldStr(c.High), fieldStr(c.Low), fieldStr(c.Close),
			fieldStr(c.Volume))
	}

	return nil
}

func fieldStr(f fundamentals.Field) string {
	if !f.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", f.Value)
}

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/valuation"
)

var valueCmd = &cobra.Command{
	Use:   "value <symbol>",
	Short: "Run all valuation models for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runValue,
}

func init() {
	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	results, summary, err := app.engine.Valuations(context.Background(), symbol)
	if err != nil {
		return fmt.Errorf("valuation for %s: %w", symbol, err)
	}

	f, err := app.engine.Fundamentals(context.Background(), symbol)
	if err != nil {
		return err
	}

	fmt.Printf("%s", symbol)
	if f.Name != "" {
		fmt.Printf("  (%s)", f.Name)
	}
	if f.Price.Valid {
		fmt.Printf("  price %.2f", f.Price.Value)
	}
	fmt.Println()
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tFAIR VALUE\tMoS\tNOTE")
	for _, m := range valuation.Models() {
		r := results[m.Name]
		fair := "-"
		mos := "-"
		note := ""
		if r.OK() {
			fair = fmt.Sprintf("%.2f", r.FairValue.Value)
			if v, ok := summary.PerModelMoS[m.Name]; ok && v.Valid {
				mos = fmt.Sprintf("%+.1f%%", 100*v.Value)
			} else if contains(summary.Excluded, m.Name) {
				note = "excluded as outlier"
			}
		} else if reason, ok := r.Breakdown["error"].(string); ok {
			note = reason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Label, fair, mos, note)
	}
	w.Flush()

	fmt.Println()
	if summary.Used > 0 {
		fmt.Printf("Aggregate over %d models: mean %.2f, median %.2f", summary.Used, summary.Mean.Value, summary.Median.Value)
		if summary.MarginOfSafety.Valid {
			fmt.Printf(", margin of safety %+.1f%%", 100*summary.MarginOfSafety.Value)
		}
		fmt.Println()
	} else {
		fmt.Println("No model produced a usable fair value.")
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/health"
)

var healthShowChecks bool

var healthCmd = &cobra.Command{
	Use:   "health <symbol>",
	Short: "Run all financial-health scorers for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthShowChecks, "checks", false, "show individual criteria per scorer")
	rootCmd.AddCommand(healthCmd)
}

// Display order and labels for the scorers.
var scorerOrder = []struct {
	name  string
	label string
}{
	{health.NameValueCriteria, "Value Criteria"},
	{health.NamePiotroski, "Piotroski F-Score"},
	{health.NameAltmanZ, "Altman Z-Score"},
	{health.NameBeneishM, "Beneish M-Score"},
}

func runHealth(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	scores, err := app.engine.Health(context.Background(), symbol)
	if err != nil {
		return fmt.Errorf("health for %s: %w", symbol, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORER\tSCORE\tZONE\tNOTE")
	for _, s := range scorerOrder {
		score, ok := scores[s.name]
		if !ok {
			continue
		}
		value := "-"
		note := score.Err
		if score.OK() {
			if score.Max > 0 {
				value = fmt.Sprintf("%.2f / %.0f", score.Value.Value, score.Max)
			} else {
				value = fmt.Sprintf("%.2f", score.Value.Value)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.label, value, score.Zone, note)
	}
	w.Flush()

	if healthShowChecks {
		for _, s := range scorerOrder {
			score, ok := scores[s.name]
			if !ok || len(score.Checks) == 0 {
				continue
			}
			fmt.Printf("\n%s:\n", s.label)
			for _, c := range score.Checks {
				mark := "✗"
				if c.Passed {
					mark = "✓"
				}
				line := fmt.Sprintf("  %s %s", mark, c.Name)
				if c.Observed.Valid {
					line += fmt.Sprintf(" (%.3f)", c.Observed.Value)
				}
				if c.Note != "" {
					line += " - " + c.Note
				}
				fmt.Println(line)
			}
		}
	}

	return nil
}

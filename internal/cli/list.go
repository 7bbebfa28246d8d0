package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/visionboard/internal/enrich"
	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	listOutput     string
	listNoInsights bool
	listStats      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with their insights",
	Long: `List all goals. Each goal is annotated with its sentiment, an estimated
chance of success and keywords unless --no-insights is given.

If the insight requests fail the goals are still listed, without insights.

Examples:
  visionboard list
  visionboard list -o json
  visionboard list --no-insights
  visionboard list --stats`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatTable, "output format: table, json or yaml")
	listCmd.Flags().BoolVar(&listNoInsights, "no-insights", false, "skip AI insights")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "show request statistics")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var goals []models.EnrichedGoal
	if listNoInsights {
		plain, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		goals = models.Plain(plain)
	} else {
		if err := board.Refresh(ctx); err != nil {
			return err
		}
		view := board.Snapshot()
		goals = view.Goals
		if view.Batch.State == enrich.StateFailed {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: insights unavailable: %v\n", view.Batch.Err)
		}
	}

	printer := goalPrinter{
		format:  listOutput,
		color:   listOutput == formatTable && term.IsTerminal(int(os.Stdout.Fd())),
		verbose: verbose,
		theme:   defaultTheme,
	}
	if err := printer.print(out, goals); err != nil {
		return err
	}

	if listStats {
		fmt.Fprintln(out)
		printStats(out, collector.Snapshot())
	}
	return nil
}

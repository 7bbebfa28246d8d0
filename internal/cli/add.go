package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addDescription string
	addSuggest     bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Long: `Add a goal to the board.

With --suggest and no description, a short plan is generated from the
title and used as the description.

Examples:
  visionboard add "Run a marathon"
  visionboard add "Learn Rust" -d "Finish the book by June"
  visionboard add "Learn Rust" --suggest`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "goal description")
	addCmd.Flags().BoolVar(&addSuggest, "suggest", false, "generate a description when none is given")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	title := strings.Join(args, " ")

	description := addDescription
	if addSuggest && strings.TrimSpace(description) == "" {
		plan, err := board.SuggestDescription(ctx, title)
		if err != nil {
			return err
		}
		description = plan
		fmt.Fprintf(out, "Suggested description:\n%s\n\n", plan)
	}

	if err := board.AddGoal(ctx, title, description); err != nil {
		return err
	}

	fmt.Fprintf(out, "Added: %s (%d goals)\n", strings.TrimSpace(title), len(board.Goals()))
	return nil
}

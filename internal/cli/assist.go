package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <goal>",
	Short: "Generate a short plan for a goal",
	Long: `Generate a short plan for reaching a goal.

Examples:
  visionboard plan "Run a marathon"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := board.SuggestDescription(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plan)
		return nil
	},
}

var rephraseCmd = &cobra.Command{
	Use:   "rephrase <goal>",
	Short: "Rewrite a goal as a clear statement",
	Long: `Rewrite a goal as a clear, positive statement.

Examples:
  visionboard rephrase "maybe get fit"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := board.Rephrase(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

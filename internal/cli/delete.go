package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Long: `Delete a goal from the board.
Requires confirmation unless --force is used.

Examples:
  visionboard delete 3
  visionboard delete 3 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Confirm deletion
	if !deleteForce {
		goals, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		label := id
		for _, g := range goals {
			if g.ID == id {
				label = fmt.Sprintf("%s (%s)", g.Title, g.ID)
				break
			}
		}

		fmt.Fprintf(out, "About to delete: %s\n", label)
		ok, err := confirm(cmd, "\nContinue? [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := board.DeleteGoal(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted: %s\n", id)
	return nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

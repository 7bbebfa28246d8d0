package cli

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/spf13/cobra"
)

var updateStatus string

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the status of a goal",
	Long: `Change the status of a goal.

Examples:
  visionboard update 3 --status Completed
  visionboard update 3 --status pending`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a goal as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := board.CompleteGoal(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", args[0])
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "new status (Pending, Completed or any backend status)")
	_ = updateCmd.MarkFlagRequired("status")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	status := normalizeStatus(updateStatus)
	if status == "" {
		return fmt.Errorf("status must not be empty")
	}

	if err := board.SetStatus(cmd.Context(), args[0], status); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s -> %s\n", args[0], status)
	return nil
}

// normalizeStatus maps known statuses case-insensitively and passes others
// through trimmed.
func normalizeStatus(s string) models.Status {
	s = strings.TrimSpace(s)
	for _, known := range []models.Status{models.StatusPending, models.StatusCompleted} {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return models.Status(s)
}

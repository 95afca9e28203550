package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/checklist"
	"github.com/jonathan/placement-readiness/internal/observability"
)

var testChecklistCmd = &cobra.Command{
	Use:   "test-checklist",
	Short: "Track the manual release checklist",
}

var testChecklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the checklist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withChecklist(cmd, func(s *checklist.Store) (checklist.State, error) {
			return s.State(cmd.Context()), nil
		})
	},
}

var testChecklistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip one checklist item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withChecklist(cmd, func(s *checklist.Store) (checklist.State, error) {
			return s.Toggle(cmd.Context(), args[0])
		})
	},
}

var testChecklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Uncheck every item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withChecklist(cmd, func(s *checklist.Store) (checklist.State, error) {
			return s.Reset(cmd.Context())
		})
	},
}

func init() {
	testChecklistCmd.AddCommand(testChecklistListCmd, testChecklistToggleCmd, testChecklistResetCmd)
	rootCmd.AddCommand(testChecklistCmd)
}

// withChecklist runs fn against the checklist store and prints the resulting state.
func withChecklist(cmd *cobra.Command, fn func(*checklist.Store) (checklist.State, error)) error {
	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	state, err := fn(st.checklist)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTestChecklist(state)
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/observability"
	"github.com/jonathan/placement-readiness/internal/prep"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and delete saved analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved analysis",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var (
	historyJSON    bool
	historyVerbose bool
	historyYes     bool
)

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Print JSON instead of formatted output")
	historyShowCmd.Flags().BoolVarP(&historyVerbose, "verbose", "v", false, "Show plan tasks and full lists")
	historyClearCmd.Flags().BoolVar(&historyYes, "yes", false, "Confirm deleting the whole history")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	res := st.history.List(cmd.Context())
	if historyJSON {
		return printJSON(cmd, res)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(res.Entries, res.Advisory)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	e := st.history.Get(cmd.Context(), args[0])
	if e == nil {
		return fmt.Errorf("analysis %s not found", args[0])
	}
	if historyJSON {
		return printJSON(cmd, e)
	}
	observability.NewPrinter(cmd.OutOrStdout()).
		Verbose(historyVerbose || appConfig.Verbose).
		PrintAnalysis(*e, prep.CompanyIntel(e.Company, e.JDText), nil)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.history.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if !historyYes {
		return errors.New("refusing to clear history without --yes")
	}
	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.history.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/observability"
	"github.com/jonathan/placement-readiness/internal/types"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence <id>",
	Short: "Mark skills of a saved analysis as known or needing practice",
	Long: `Update the skill confidence of a saved analysis and recompute its final score.
Each known skill adds 2 points to the base score, each practice skill subtracts 2.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfidence,
}

var (
	confidenceKnow     string
	confidencePractice string
)

func init() {
	confidenceCmd.Flags().StringVar(&confidenceKnow, "know", "", "Comma-separated skills you know")
	confidenceCmd.Flags().StringVar(&confidencePractice, "practice", "", "Comma-separated skills to practice")

	rootCmd.AddCommand(confidenceCmd)
}

// splitSkills parses a comma-separated skill list, dropping blanks.
func splitSkills(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// confidencePatch merges both lists. A skill may not appear in both.
func confidencePatch(know, practice []string) (history.Patch, error) {
	m := make(map[string]types.Confidence, len(know)+len(practice))
	for _, s := range know {
		m[s] = types.ConfidenceKnow
	}
	for _, s := range practice {
		if m[s] == types.ConfidenceKnow {
			return history.Patch{}, fmt.Errorf("skill %q listed as both known and practice", s)
		}
		m[s] = types.ConfidencePractice
	}
	if len(m) == 0 {
		return history.Patch{}, errors.New("at least one of --know or --practice is required")
	}
	return history.Patch{SkillConfidenceMap: m}, nil
}

func runConfidence(cmd *cobra.Command, args []string) error {
	patch, err := confidencePatch(splitSkills(confidenceKnow), splitSkills(confidencePractice))
	if err != nil {
		return err
	}

	st, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := st.history.Update(cmd.Context(), args[0], patch)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("analysis %s not found", args[0])
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSkills(*e)
	fmt.Fprintf(cmd.OutOrStdout(), "Final score: %d (base %d)\n", e.FinalScore, e.BaseScore)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/entry"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an exported entry or history file against the entry schema",
	Long: `Validate a JSON file holding one analysis entry, an array of entries, or a
history export ({"entries": [...]}) against the analysis entry schema.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// records returns the entries held by doc, whichever export layout it uses.
func records(doc interface{}) []interface{} {
	switch v := doc.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		if list, ok := v["entries"].([]interface{}); ok {
			return list
		}
	}
	return []interface{}{doc}
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	recs := records(doc)
	invalid := 0
	for i, rec := range recs {
		res := entry.Validate(rec)
		if res.IsValid {
			fmt.Fprintf(out, "entry %d: valid\n", i)
			continue
		}
		invalid++
		fmt.Fprintf(out, "entry %d: invalid\n", i)
		for _, msg := range res.Errors {
			fmt.Fprintf(out, "  - %s\n", msg)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d entries failed validation", invalid, len(recs))
	}
	fmt.Fprintf(out, "All %d entries are valid\n", len(recs))
	return nil
}

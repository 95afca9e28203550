package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/fetch"
	"github.com/jonathan/placement-readiness/internal/ingestion"
	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/observability"
	"github.com/jonathan/placement-readiness/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description and save it to history",
	Long: `Extract skills from a job description, compute the readiness score, generate the
interview rounds, checklist, 7-day plan and questions, and save the result to history.

The job description comes from exactly one of --jd (file), --jd-text or --url.`,
	RunE: runAnalyze,
}

var (
	analyzeCompany    string
	analyzeRole       string
	analyzeJDFile     string
	analyzeJDText     string
	analyzeURL        string
	analyzeUseBrowser bool
	analyzeOut        string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Role title")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to a text file with the job description")
	analyzeCmd.Flags().StringVar(&analyzeJDText, "jd-text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Render thin job pages in headless Chrome")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the saved entry as JSON to this file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Show plan tasks and full lists")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	sources := 0
	for _, name := range []string{"jd", "jd-text", "url"} {
		if cmd.Flags().Changed(name) {
			sources++
		}
	}
	if sources == 0 {
		return errors.New("one of --jd, --jd-text or --url is required")
	}
	if sources > 1 {
		return errors.New("--jd, --jd-text and --url are mutually exclusive; provide only one")
	}

	ctx := cmd.Context()
	log := logger.Ctx(ctx)

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var doc ingestion.Document
	switch {
	case cmd.Flags().Changed("jd"):
		doc, err = ingestion.FromFile(analyzeJDFile)
	case cmd.Flags().Changed("url"):
		opts := ingestion.URLOptions{
			Getter: fetch.NewCached(fetch.New(fetch.WithLogger(*log)), st.backend, fetch.DefaultCacheTTL, *log),
		}
		if analyzeUseBrowser || appConfig.UseBrowser {
			opts.Renderer = fetch.NewRenderer(*log)
		}
		doc, err = ingestion.FromURL(ctx, analyzeURL, opts)
	default:
		doc = ingestion.FromText(analyzeJDText)
	}
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	res, err := pipeline.Analyze(ctx, st.history, pipeline.Input{
		Company: analyzeCompany,
		Role:    analyzeRole,
		JDText:  doc.Text,
	}, pipeline.Options{
		OnProgress: func(ev pipeline.ProgressEvent) {
			log.Debug().Str("step", ev.Step).Msg(ev.Message)
		},
	})
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout()).Verbose(analyzeVerbose || appConfig.Verbose)
	printer.PrintAnalysis(res.Entry, res.CompanyIntel, res.Warnings)

	if analyzeOut != "" {
		if err := writeJSONFile(analyzeOut, res.Entry); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported entry to %s\n", analyzeOut)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved analysis %s\n", res.Entry.ID)
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Package pipeline orchestrates a single job-description analysis from raw text to a saved entry.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/placement-readiness/internal/entry"
	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/prep"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/skills"
	"github.com/jonathan/placement-readiness/internal/types"
)

// ShortJDThreshold is the character count below which a job description triggers an advisory warning.
const ShortJDThreshold = 200

// ErrEmptyJobDescription is returned when the job description is blank.
var ErrEmptyJobDescription = errors.New("job description is required")

const (
	StepExtract  = "extract_skills"
	StepPrepare  = "prepare_content"
	StepScore    = "score"
	StepPersist  = "persist"
	CategoryCore = "analysis"
)

// ProgressEvent represents a progress update during an analysis.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	EntryID  string `json:"entry_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)

// Saver persists a drafted analysis.
type Saver interface {
	Save(ctx context.Context, d entry.Draft) (types.AnalysisEntry, error)
}

// Input is the job description and its optional context.
type Input struct {
	Company string
	Role    string
	JDText  string
}

// Options tunes a single Analyze call.
type Options struct {
	OnProgress ProgressCallback
}

// Result is a saved entry together with the derived, unsaved views of it.
type Result struct {
	Entry         types.AnalysisEntry `json:"entry"`
	ScoreCategory types.ScoreCategory `json:"score_category"`
	CompanyIntel  *types.CompanyIntel `json:"company_intel,omitempty"`
	Warnings      []string            `json:"warnings,omitempty"`
}

// preparation holds the outputs of the parallel content generators.
type preparation struct {
	checklist []types.ChecklistRound
	plan      []types.PlanDay
	questions []string
	rounds    []types.Round
	intel     *types.CompanyIntel
}

func emitProgress(opts *Options, step, message, entryID string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: CategoryCore,
			Message:  message,
			EntryID:  entryID,
		})
	}
}

// Warnings returns advisory notes about the input. They never block an analysis.
func Warnings(in Input) []string {
	var out []string
	if n := utf8.RuneCountInString(strings.TrimSpace(in.JDText)); n < ShortJDThreshold {
		out = append(out, fmt.Sprintf(
			"job description is short (%d characters); paste the full text for a more accurate analysis", n))
	}
	return out
}

// Analyze extracts skills, generates preparation content, scores and saves the analysis.
func Analyze(ctx context.Context, store Saver, in Input, opts Options) (*Result, error) {
	if strings.TrimSpace(in.JDText) == "" {
		return nil, ErrEmptyJobDescription
	}
	log := logger.Ctx(ctx)

	extracted := skills.Extract(in.JDText)
	emitProgress(&opts, StepExtract,
		fmt.Sprintf("Detected skills in %d categories", skills.DetectedCategoryCount(extracted)), "")
	log.Debug().Int("categories", skills.DetectedCategoryCount(extracted)).Msg("skills extracted")

	p, err := prepare(ctx, in, extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare analysis content: %w", err)
	}
	emitProgress(&opts, StepPrepare,
		fmt.Sprintf("Generated %d rounds, %d questions", len(p.rounds), len(p.questions)), "")

	base := scoring.ComputeBaseScore(scoring.BaseScoreInput{
		Company: in.Company,
		Role:    in.Role,
		JDText:  in.JDText,
		Skills:  extracted,
	})
	emitProgress(&opts, StepScore, fmt.Sprintf("Base readiness score %d", base), "")

	saved, err := store.Save(ctx, entry.Draft{
		Company:         in.Company,
		Role:            in.Role,
		JDText:          in.JDText,
		ExtractedSkills: entry.SkillsDraft(extracted),
		RoundMapping:    p.rounds,
		Checklist:       p.checklist,
		Plan7Days:       p.plan,
		Questions:       p.questions,
		BaseScore:       &base,
	})
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepPersist, "Saved analysis to history", saved.ID)
	log.Info().Str("entry_id", saved.ID).Int("base_score", saved.BaseScore).Msg("analysis complete")

	return &Result{
		Entry:         saved,
		ScoreCategory: scoring.CategorizeScore(saved.FinalScore),
		CompanyIntel:  p.intel,
		Warnings:      Warnings(in),
	}, nil
}

// prepare runs the independent content generators concurrently.
func prepare(ctx context.Context, in Input, extracted types.ExtractedSkills) (*preparation, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	p := &preparation{}

	run := func(fn func(*preparation)) {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var local preparation
			fn(&local)
			mu.Lock()
			merge(p, &local)
			mu.Unlock()
			return nil
		})
	}

	run(func(out *preparation) { out.checklist = prep.Checklist(extracted) })
	run(func(out *preparation) { out.plan = prep.Plan(extracted) })
	run(func(out *preparation) { out.questions = prep.Questions(extracted) })
	run(func(out *preparation) {
		out.intel = prep.CompanyIntel(in.Company, in.JDText)
		out.rounds = prep.Rounds(prep.CompanySize(in.Company), extracted)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

func merge(dst, src *preparation) {
	if src.checklist != nil {
		dst.checklist = src.checklist
	}
	if src.plan != nil {
		dst.plan = src.plan
	}
	if src.questions != nil {
		dst.questions = src.questions
	}
	if src.rounds != nil {
		dst.rounds = src.rounds
	}
	if src.intel != nil {
		dst.intel = src.intel
	}
}

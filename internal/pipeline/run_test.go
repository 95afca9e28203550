package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/placement-readiness/internal/entry"
	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/storage"
	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reactSQLJD = "We use React and SQL." + strings.Repeat(" x", 415)

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, entry.Draft) (types.AnalysisEntry, error) {
	return types.AnalysisEntry{}, f.err
}

func TestAnalyze_SavesEntry(t *testing.T) {
	ctx := context.Background()
	store := history.New(storage.NewMemory(0))

	res, err := Analyze(ctx, store, Input{Company: "Google", Role: "SDE", JDText: reactSQLJD}, Options{})
	require.NoError(t, err)
	require.NotNil(t, res)

	e := res.Entry
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 75, e.BaseScore)
	assert.Equal(t, 71, e.FinalScore)
	assert.Equal(t, []string{"React"}, e.ExtractedSkills[types.CategoryWeb])
	assert.Equal(t, []string{"SQL"}, e.ExtractedSkills[types.CategoryData])
	assert.Equal(t, types.ConfidencePractice, e.SkillConfidenceMap["React"])
	assert.Len(t, e.Checklist, 4)
	assert.Len(t, e.Plan7Days, 7)
	assert.Len(t, e.RoundMapping, 5)
	assert.NotEmpty(t, e.Questions)
	assert.LessOrEqual(t, len(e.Questions), 10)

	assert.Equal(t, "Good", res.ScoreCategory.Label)
	require.NotNil(t, res.CompanyIntel)
	assert.Equal(t, types.CompanySizeEnterprise, res.CompanyIntel.Size)
	assert.Empty(t, res.Warnings)

	stored := store.Get(ctx, e.ID)
	require.NotNil(t, stored)
	assert.Equal(t, e.BaseScore, stored.BaseScore)
}

func TestAnalyze_ShortJDWarnsButSaves(t *testing.T) {
	store := history.New(storage.NewMemory(0))

	res, err := Analyze(context.Background(), store, Input{JDText: "Python developer"}, Options{})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "16 characters")
	assert.Nil(t, res.CompanyIntel)
	assert.Len(t, store.List(context.Background()).Entries, 1)
}

func TestAnalyze_NoKeywordsUsesFallback(t *testing.T) {
	store := history.New(storage.NewMemory(0))

	res, err := Analyze(context.Background(), store, Input{JDText: "we are hiring"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, types.FallbackSkills(), res.Entry.ExtractedSkills[types.CategoryOther])
	assert.Equal(t, 40, res.Entry.BaseScore)
}

func TestAnalyze_EmptyJD(t *testing.T) {
	store := history.New(storage.NewMemory(0))

	_, err := Analyze(context.Background(), store, Input{Company: "Acme", JDText: "  \n "}, Options{})
	assert.ErrorIs(t, err, ErrEmptyJobDescription)
	assert.Empty(t, store.List(context.Background()).Entries)
}

func TestAnalyze_StorageFailure(t *testing.T) {
	cause := &history.StorageError{Op: "save", Message: "failed to save analysis: storage may be full"}

	_, err := Analyze(context.Background(), failingSaver{err: cause}, Input{JDText: reactSQLJD}, Options{})
	require.Error(t, err)

	var se *history.StorageError
	assert.True(t, errors.As(err, &se))
}

func TestAnalyze_Progress(t *testing.T) {
	var steps []string
	opts := Options{OnProgress: func(ev ProgressEvent) {
		steps = append(steps, ev.Step)
		assert.Equal(t, CategoryCore, ev.Category)
	}}

	_, err := Analyze(context.Background(), history.New(storage.NewMemory(0)), Input{JDText: reactSQLJD}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{StepExtract, StepPrepare, StepScore, StepPersist}, steps)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, history.New(storage.NewMemory(0)), Input{JDText: reactSQLJD}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWarnings(t *testing.T) {
	assert.Len(t, Warnings(Input{JDText: strings.Repeat("a", ShortJDThreshold-1)}), 1)
	assert.Empty(t, Warnings(Input{JDText: strings.Repeat("a", ShortJDThreshold)}))
}

package entry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/types"
)

const (
	// MaxQuestions caps the stored question list.
	MaxQuestions = 10

	defaultRoundTitle = "Interview Round"
	defaultDuration   = "30-45 minutes"
	idSuffixLength    = 9
)

// NewID returns a millisecond timestamp joined to a random suffix.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLength]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// Standardize normalizes a draft into a canonical AnalysisEntry.
// now supplies defaults for the id and timestamps when the draft has none.
// Standardizing an entry converted back with FromEntry yields the same scores and skills.
func Standardize(d Draft, now time.Time) types.AnalysisEntry {
	skills := normalizeSkills(d.ExtractedSkills)
	confidence := buildConfidence(skills, d.SkillConfidenceMap)
	company := strings.TrimSpace(d.Company)
	role := strings.TrimSpace(d.Role)

	var base int
	switch {
	case d.BaseScore != nil:
		base = *d.BaseScore
	case d.ReadinessScore != nil:
		base = *d.ReadinessScore
	default:
		base = scoring.ComputeBaseScore(scoring.BaseScoreInput{
			Company: company,
			Role:    role,
			JDText:  d.JDText,
			Skills:  skills,
		})
	}
	base = scoring.Clamp(base)

	e := types.AnalysisEntry{
		ID:                 strings.TrimSpace(d.ID),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		Company:            company,
		Role:               role,
		JDText:             d.JDText,
		ExtractedSkills:    skills,
		RoundMapping:       normalizeRounds(d.RoundMapping),
		Checklist:          normalizeChecklist(d.Checklist),
		Plan7Days:          normalizePlan(d.Plan7Days),
		Questions:          normalizeQuestions(d.Questions),
		BaseScore:          base,
		SkillConfidenceMap: confidence,
		FinalScore:         scoring.ComputeFinalScore(base, confidence),
	}
	if e.ID == "" {
		e.ID = NewID(now)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	return e
}

// normalizeSkills folds raw category keys into the seven canonical ones.
// Unknown keys land in other. Canonical keys are merged before their aliases.
func normalizeSkills(raw map[string][]string) types.ExtractedSkills {
	out := types.NewExtractedSkills()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := keyRank(keys[i]), keyRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	seen := make(map[types.SkillCategory]map[string]bool)
	for _, k := range keys {
		c, ok := types.ParseCategory(k)
		if !ok {
			c = types.CategoryOther
		}
		if seen[c] == nil {
			seen[c] = make(map[string]bool)
		}
		for _, skill := range raw[k] {
			skill = strings.TrimSpace(skill)
			if skill == "" || seen[c][skill] {
				continue
			}
			seen[c][skill] = true
			out[c] = append(out[c], skill)
		}
	}

	if out.IsEmpty() {
		out[types.CategoryOther] = types.FallbackSkills()
	}
	return out
}

// keyRank orders canonical keys by category, then aliases, then unknown keys.
func keyRank(key string) int {
	for i, c := range types.Categories {
		if string(c) == key {
			return i
		}
	}
	if _, ok := types.ParseCategory(key); ok {
		return len(types.Categories)
	}
	return len(types.Categories) + 1
}

// buildConfidence gives every extracted skill an entry and keeps any extra keys.
// Values other than "know" become "practice".
func buildConfidence(skills types.ExtractedSkills, existing map[string]string) types.SkillConfidenceMap {
	out := make(types.SkillConfidenceMap, len(existing))
	for k, v := range existing {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = normalizeConfidence(v)
	}
	for _, skill := range skills.All() {
		if _, ok := out[skill]; !ok {
			out[skill] = types.ConfidencePractice
		}
	}
	return out
}

func normalizeConfidence(v string) types.Confidence {
	if types.Confidence(v) == types.ConfidenceKnow {
		return types.ConfidenceKnow
	}
	return types.ConfidencePractice
}

func normalizeRounds(in []types.Round) []types.Round {
	out := make([]types.Round, 0, len(in))
	for _, r := range in {
		if r.RoundTitle == "" {
			r.RoundTitle = defaultRoundTitle
		}
		if r.Duration == "" {
			r.Duration = defaultDuration
		}
		r.FocusAreas = nonNil(r.FocusAreas)
		out = append(out, r)
	}
	return out
}

func normalizeChecklist(in []types.ChecklistRound) []types.ChecklistRound {
	out := make([]types.ChecklistRound, 0, len(in))
	for _, r := range in {
		if r.RoundTitle == "" {
			r.RoundTitle = fmt.Sprintf("Round %d", r.Round)
		}
		r.Items = nonNil(r.Items)
		out = append(out, r)
	}
	return out
}

func normalizePlan(in []types.PlanDay) []types.PlanDay {
	out := make([]types.PlanDay, 0, len(in))
	for _, d := range in {
		if d.Focus == "" {
			d.Focus = fmt.Sprintf("Day %d", d.Day)
		}
		d.Tasks = nonNil(d.Tasks)
		out = append(out, d)
	}
	return out
}

func normalizeQuestions(in []string) []string {
	out := make([]string, 0, min(len(in), MaxQuestions))
	seen := make(map[string]bool)
	for _, q := range in {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == MaxQuestions {
			break
		}
	}
	return out
}

func nonNil(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

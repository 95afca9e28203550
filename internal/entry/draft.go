// Package entry builds, validates and repairs AnalysisEntry records.
//
// Persisted history may hold records written by older versions of the
// application. Everything read back from storage passes through Draft, a
// loosely typed intermediate that Standardize turns into the canonical shape.
package entry

import (
	"time"

	"github.com/jonathan/placement-readiness/internal/types"
)

// Draft carries whatever fields are known about an entry before standardization.
// Zero values mean "absent" and are defaulted by Standardize.
type Draft struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Company   string
	Role      string
	JDText    string

	// ExtractedSkills is keyed by raw category name; legacy keys are aliased.
	ExtractedSkills map[string][]string

	RoundMapping []types.Round
	Checklist    []types.ChecklistRound
	Plan7Days    []types.PlanDay
	Questions    []string

	BaseScore      *int
	ReadinessScore *int // legacy name of BaseScore

	SkillConfidenceMap map[string]string
}

// FromEntry converts a standardized entry back into a draft.
func FromEntry(e types.AnalysisEntry) Draft {
	skills := make(map[string][]string, len(e.ExtractedSkills))
	for c, list := range e.ExtractedSkills {
		skills[string(c)] = append([]string(nil), list...)
	}
	confidence := make(map[string]string, len(e.SkillConfidenceMap))
	for k, v := range e.SkillConfidenceMap {
		confidence[k] = string(v)
	}
	base := e.BaseScore

	return Draft{
		ID:                 e.ID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		Company:            e.Company,
		Role:               e.Role,
		JDText:             e.JDText,
		ExtractedSkills:    skills,
		RoundMapping:       append([]types.Round(nil), e.RoundMapping...),
		Checklist:          append([]types.ChecklistRound(nil), e.Checklist...),
		Plan7Days:          append([]types.PlanDay(nil), e.Plan7Days...),
		Questions:          append([]string(nil), e.Questions...),
		BaseScore:          &base,
		SkillConfidenceMap: confidence,
	}
}

// SkillsDraft converts typed extraction results into the draft key shape.
func SkillsDraft(s types.ExtractedSkills) map[string][]string {
	out := make(map[string][]string, len(s))
	for c, list := range s {
		out[string(c)] = append([]string(nil), list...)
	}
	return out
}

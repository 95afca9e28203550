package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/placement-readiness/internal/schemas"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/types"
	rootschemas "github.com/jonathan/placement-readiness/schemas"
)

// Validate checks the shape of a persisted record. It does not check
// semantic invariants such as confidence-map completeness.
func Validate(record interface{}) types.ValidationResult {
	err := schemas.ValidateDocument(rootschemas.AnalysisEntry, record)
	if err == nil {
		return types.ValidationResult{IsValid: true, Errors: []string{}}
	}
	if ve, ok := err.(*schemas.ValidationError); ok {
		return types.ValidationResult{IsValid: false, Errors: ve.Messages()}
	}
	return types.ValidationResult{IsValid: false, Errors: []string{err.Error()}}
}

// Repair rebuilds a record through Standardize using whatever fields survive.
// It returns nil when the record is not a JSON object.
func Repair(record interface{}, now time.Time) *types.AnalysisEntry {
	obj, ok := record.(map[string]interface{})
	if !ok || obj == nil {
		return nil
	}
	e := Standardize(DraftFromRecord(obj), now)
	return &e
}

// Decode parses a record that passed validation into the typed entry.
// Records whose fields validate but do not fit the typed layout return an error.
func Decode(raw json.RawMessage) (types.AnalysisEntry, error) {
	var e types.AnalysisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return types.AnalysisEntry{}, fmt.Errorf("failed to decode analysis entry: %w", err)
	}
	if err := checkCanonical(e); err != nil {
		return types.AnalysisEntry{}, fmt.Errorf("failed to decode analysis entry: %w", err)
	}
	return e, nil
}

// checkCanonical reports the first way e differs from Standardize output.
func checkCanonical(e types.AnalysisEntry) error {
	if e.ExtractedSkills == nil || e.SkillConfidenceMap == nil {
		return fmt.Errorf("missing skills or confidence map")
	}
	if len(e.ExtractedSkills) != len(types.Categories) {
		return fmt.Errorf("unexpected skill categories")
	}
	for _, c := range types.Categories {
		if e.ExtractedSkills[c] == nil {
			return fmt.Errorf("category %s missing", c)
		}
	}
	for _, skill := range e.ExtractedSkills.All() {
		if _, ok := e.SkillConfidenceMap[skill]; !ok {
			return fmt.Errorf("no confidence entry for %q", skill)
		}
	}
	for skill, c := range e.SkillConfidenceMap {
		if c != types.ConfidenceKnow && c != types.ConfidencePractice {
			return fmt.Errorf("invalid confidence %q for %q", c, skill)
		}
	}
	if e.BaseScore != scoring.Clamp(e.BaseScore) {
		return fmt.Errorf("base score %d out of range", e.BaseScore)
	}
	if e.FinalScore != scoring.ComputeFinalScore(e.BaseScore, e.SkillConfidenceMap) {
		return fmt.Errorf("final score %d does not match confidence map", e.FinalScore)
	}
	if e.Questions == nil || e.RoundMapping == nil || e.Checklist == nil || e.Plan7Days == nil {
		return fmt.Errorf("derived content missing")
	}
	return nil
}

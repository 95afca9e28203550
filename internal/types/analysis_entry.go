package types

import "time"

// Confidence is a user's self-reported familiarity with a skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// SkillConfidenceMap maps a skill name to the user's confidence in it.
type SkillConfidenceMap map[string]Confidence

// Clone returns a copy of the map.
func (m SkillConfidenceMap) Clone() SkillConfidenceMap {
	out := make(SkillConfidenceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AnalysisEntry is one persisted analysis result.
// JSON field names follow the persisted history layout.
type AnalysisEntry struct {
	ID                 string             `json:"id"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	Company            string             `json:"company"`
	Role               string             `json:"role"`
	JDText             string             `json:"jdText"`
	ExtractedSkills    ExtractedSkills    `json:"extractedSkills"`
	RoundMapping       []Round            `json:"roundMapping"`
	Checklist          []ChecklistRound   `json:"checklist"`
	Plan7Days          []PlanDay          `json:"plan7Days"`
	Questions          []string           `json:"questions"`
	BaseScore          int                `json:"baseScore"`
	SkillConfidenceMap SkillConfidenceMap `json:"skillConfidenceMap"`
	FinalScore         int                `json:"finalScore"`
}

// Round is one stage of the expected interview process.
type Round struct {
	Round        int      `json:"round"`
	RoundTitle   string   `json:"roundTitle"`
	Description  string   `json:"description"`
	FocusAreas   []string `json:"focusAreas"`
	WhyItMatters string   `json:"whyItMatters"`
	Duration     string   `json:"duration"`
}

// ChecklistRound groups preparation items for one round.
type ChecklistRound struct {
	Round       int      `json:"round"`
	RoundTitle  string   `json:"roundTitle"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

// PlanDay is one day of the seven-day preparation plan.
type PlanDay struct {
	Day   int      `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// ScoreCategory is the display band of a readiness score.
type ScoreCategory struct {
	Label string `json:"label"`
	Tier  string `json:"tier"` // green, blue, yellow or red
}

// ValidationResult reports structural problems found in a persisted record.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

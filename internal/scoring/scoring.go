// Package scoring computes readiness scores from extraction results and confidence toggles.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/placement-readiness/internal/types"
)

const (
	baseStart        = 35
	perCategory      = 5
	maxCategoryBonus = 30
	companyBonus     = 10
	roleBonus        = 10
	longJDBonus      = 10
	longJDThreshold  = 800

	knowAdjustment     = 2
	practiceAdjustment = -2

	MinScore = 0
	MaxScore = 100
)

// BaseScoreInput is everything the base score depends on.
type BaseScoreInput struct {
	Company string
	Role    string
	JDText  string
	Skills  types.ExtractedSkills
}

// ComputeBaseScore returns the frozen readiness score of a new analysis.
// The result is always within [35, 100].
func ComputeBaseScore(in BaseScoreInput) int {
	score := baseStart
	score += min(perCategory*in.Skills.DetectedCategoryCount(), maxCategoryBonus)
	if strings.TrimSpace(in.Company) != "" {
		score += companyBonus
	}
	if strings.TrimSpace(in.Role) != "" {
		score += roleBonus
	}
	if utf8.RuneCountInString(in.JDText) > longJDThreshold {
		score += longJDBonus
	}
	return min(score, MaxScore)
}

// ComputeFinalScore adjusts a base score by the confidence map.
// Each "know" adds 2; any other value subtracts 2.
func ComputeFinalScore(baseScore int, confidence types.SkillConfidenceMap) int {
	adjustment := 0
	for _, c := range confidence {
		if c == types.ConfidenceKnow {
			adjustment += knowAdjustment
		} else {
			adjustment += practiceAdjustment
		}
	}
	return Clamp(baseScore + adjustment)
}

// Clamp bounds a score to [0, 100].
func Clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}

// CategorizeScore returns the display band for a score.
func CategorizeScore(score int) types.ScoreCategory {
	switch {
	case score >= 80:
		return types.ScoreCategory{Label: "Excellent", Tier: "green"}
	case score >= 60:
		return types.ScoreCategory{Label: "Good", Tier: "blue"}
	case score >= 40:
		return types.ScoreCategory{Label: "Fair", Tier: "yellow"}
	default:
		return types.ScoreCategory{Label: "Needs Work", Tier: "red"}
	}
}

package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/placement-readiness/internal/skills"
	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/stretchr/testify/assert"
)

func skillsIn(cats ...types.SkillCategory) types.ExtractedSkills {
	s := types.NewExtractedSkills()
	for _, c := range cats {
		s[c] = []string{"x-" + string(c)}
	}
	return s
}

func TestComputeBaseScore(t *testing.T) {
	longText := strings.Repeat("a", 801)

	tests := []struct {
		name string
		in   BaseScoreInput
		want int
	}{
		{"nothing", BaseScoreInput{Skills: types.NewExtractedSkills()}, 35},
		{"fallback only", BaseScoreInput{Skills: types.FallbackExtractedSkills()}, 40},
		{"company", BaseScoreInput{Company: "Acme", Skills: types.NewExtractedSkills()}, 45},
		{"blank company ignored", BaseScoreInput{Company: "   ", Skills: types.NewExtractedSkills()}, 35},
		{"role", BaseScoreInput{Role: "SDE", Skills: types.NewExtractedSkills()}, 45},
		{"long jd", BaseScoreInput{JDText: longText, Skills: types.NewExtractedSkills()}, 45},
		{"exactly 800 chars", BaseScoreInput{JDText: strings.Repeat("a", 800), Skills: types.NewExtractedSkills()}, 35},
		{"six categories", BaseScoreInput{Skills: skillsIn(types.Categories[:6]...)}, 65},
		{"seven categories capped", BaseScoreInput{Skills: skillsIn(types.Categories...)}, 65},
		{
			"every signal",
			BaseScoreInput{Company: "Acme", Role: "SDE", JDText: longText, Skills: skillsIn(types.Categories...)},
			95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeBaseScore(tt.in))
		})
	}
}

func TestComputeBaseScore_CountsRunesNotBytes(t *testing.T) {
	// 801 two-byte runes exceed the threshold, 400 do not even though they are 800 bytes
	assert.Equal(t, 45, ComputeBaseScore(BaseScoreInput{JDText: strings.Repeat("é", 801), Skills: types.NewExtractedSkills()}))
	assert.Equal(t, 35, ComputeBaseScore(BaseScoreInput{JDText: strings.Repeat("é", 400), Skills: types.NewExtractedSkills()}))
}

func TestComputeBaseScore_Monotonic(t *testing.T) {
	for cats := 0; cats <= len(types.Categories); cats++ {
		for mask := 0; mask < 8; mask++ {
			in := BaseScoreInput{Skills: skillsIn(types.Categories[:cats]...)}
			if mask&1 != 0 {
				in.Company = "Acme"
			}
			if mask&2 != 0 {
				in.Role = "SDE"
			}
			if mask&4 != 0 {
				in.JDText = strings.Repeat("a", 900)
			}
			score := ComputeBaseScore(in)
			assert.GreaterOrEqual(t, score, 35)
			assert.LessOrEqual(t, score, 100)

			more := in
			more.Company, more.Role, more.JDText = "Acme", "SDE", strings.Repeat("a", 900)
			assert.GreaterOrEqual(t, ComputeBaseScore(more), score)

			if cats < len(types.Categories) {
				wider := in
				wider.Skills = skillsIn(types.Categories[:cats+1]...)
				assert.GreaterOrEqual(t, ComputeBaseScore(wider), score)
			}
		}
	}
}

func TestComputeBaseScore_Scenarios(t *testing.T) {
	t.Run("empty input scores 40", func(t *testing.T) {
		got := ComputeBaseScore(BaseScoreInput{Skills: skills.Extract("")})
		assert.Equal(t, 40, got)
	})

	t.Run("react and sql with metadata scores 75", func(t *testing.T) {
		jd := "We use React and SQL." + strings.Repeat(" x", 415)
		assert.Greater(t, len(jd), 800)
		got := ComputeBaseScore(BaseScoreInput{
			Company: "Google",
			Role:    "SDE",
			JDText:  jd,
			Skills:  skills.Extract(jd),
		})
		assert.Equal(t, 75, got)
	})
}

func TestComputeFinalScore(t *testing.T) {
	tests := []struct {
		name string
		base int
		m    types.SkillConfidenceMap
		want int
	}{
		{"empty map", 60, nil, 60},
		{"one know", 60, types.SkillConfidenceMap{"Go": "know"}, 62},
		{"one practice", 60, types.SkillConfidenceMap{"Go": "practice"}, 58},
		{"unknown value counts as practice", 60, types.SkillConfidenceMap{"Go": "expert"}, 58},
		{"mixed", 50, types.SkillConfidenceMap{"Go": "know", "SQL": "know", "AWS": "practice"}, 52},
		{"floor", 2, types.SkillConfidenceMap{"a": "practice", "b": "practice"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFinalScore(tt.base, tt.m))
		})
	}
}

func TestComputeFinalScore_ClampsLargeMaps(t *testing.T) {
	know := make(types.SkillConfidenceMap)
	practice := make(types.SkillConfidenceMap)
	for i := 0; i < 500; i++ {
		know[fmt.Sprintf("skill-%d", i)] = types.ConfidenceKnow
		practice[fmt.Sprintf("skill-%d", i)] = types.ConfidencePractice
	}

	assert.Equal(t, 100, ComputeFinalScore(35, know))
	assert.Equal(t, 0, ComputeFinalScore(100, practice))
	assert.Equal(t, 100, ComputeFinalScore(250, nil))
	assert.Equal(t, 0, ComputeFinalScore(-10, nil))
}

func TestCategorizeScore(t *testing.T) {
	tests := []struct {
		score int
		label string
		tier  string
	}{
		{100, "Excellent", "green"},
		{80, "Excellent", "green"},
		{79, "Good", "blue"},
		{60, "Good", "blue"},
		{59, "Fair", "yellow"},
		{40, "Fair", "yellow"},
		{39, "Needs Work", "red"},
		{0, "Needs Work", "red"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			got := CategorizeScore(tt.score)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.tier, got.Tier)
		})
	}
}

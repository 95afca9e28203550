// Package skills detects skill keywords in job description text.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/placement-readiness/internal/types"
)

type matcher struct {
	category types.SkillCategory
	display  string
	lower    string
	boundary *regexp.Regexp // set for single-character keywords only
}

func (m matcher) matches(lowerText string) bool {
	if m.boundary != nil {
		return m.boundary.MatchString(lowerText)
	}
	return strings.Contains(lowerText, m.lower)
}

var matchers = compileMatchers()

func compileMatchers() []matcher {
	var out []matcher
	for _, c := range types.Categories {
		for _, kw := range keywordTable[c] {
			m := matcher{category: c, display: kw, lower: strings.ToLower(kw)}
			if len([]rune(kw)) == 1 {
				m.boundary = regexp.MustCompile(`\b` + regexp.QuoteMeta(m.lower) + `\b`)
			}
			out = append(out, m)
		}
	}
	return out
}

// Extract buckets the skills mentioned in jdText by category.
// Every category key is present in the result. When the text is blank or
// matches no keyword, the fallback structure is returned.
func Extract(jdText string) types.ExtractedSkills {
	if strings.TrimSpace(jdText) == "" {
		return types.FallbackExtractedSkills()
	}

	text := strings.ToLower(jdText)
	result := types.NewExtractedSkills()
	seen := make(map[types.SkillCategory]map[string]bool)

	for _, m := range matchers {
		if !m.matches(text) {
			continue
		}
		if seen[m.category] == nil {
			seen[m.category] = make(map[string]bool)
		}
		if seen[m.category][m.display] {
			continue
		}
		seen[m.category][m.display] = true
		result[m.category] = append(result[m.category], m.display)
	}

	if result.IsEmpty() {
		return types.FallbackExtractedSkills()
	}
	return result
}

// DetectedCategoryCount counts categories holding at least one skill.
func DetectedCategoryCount(s types.ExtractedSkills) int {
	return s.DetectedCategoryCount()
}

// AllSkills flattens the extraction into a deduplicated list.
func AllSkills(s types.ExtractedSkills) []string {
	return s.All()
}

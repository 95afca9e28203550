// Package types provides type definitions for structured data used throughout the placement-readiness system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillCategory identifies one of the fixed skill groupings a job description is bucketed into.
type SkillCategory string

const (
	CategoryCoreCS    SkillCategory = "coreCS"
	CategoryLanguages SkillCategory = "languages"
	CategoryWeb       SkillCategory = "web"
	CategoryData      SkillCategory = "data"
	CategoryCloud     SkillCategory = "cloud"
	CategoryTesting   SkillCategory = "testing"
	CategoryOther     SkillCategory = "other"
)

// Categories lists every category in canonical display order.
var Categories = []SkillCategory{
	CategoryCoreCS,
	CategoryLanguages,
	CategoryWeb,
	CategoryData,
	CategoryCloud,
	CategoryTesting,
	CategoryOther,
}

var categoryLabels = map[SkillCategory]string{
	CategoryCoreCS:    "Core CS",
	CategoryLanguages: "Languages",
	CategoryWeb:       "Web",
	CategoryData:      "Data",
	CategoryCloud:     "Cloud/DevOps",
	CategoryTesting:   "Testing",
	CategoryOther:     "Other",
}

// legacy key names accepted from older persisted entries
var categoryAliases = map[string]SkillCategory{
	"cloudDevOps": CategoryCloud,
	"general":     CategoryOther,
}

// Label returns the human-readable name of the category.
func (c SkillCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory resolves a canonical or legacy key to its category.
func ParseCategory(key string) (SkillCategory, bool) {
	if _, ok := categoryLabels[SkillCategory(key)]; ok {
		return SkillCategory(key), true
	}
	c, ok := categoryAliases[key]
	return c, ok
}

// FallbackSkills returns the filler skills used when nothing was detected.
func FallbackSkills() []string {
	return []string{"Communication", "Problem solving", "Basic coding", "Projects"}
}

// ExtractedSkills maps each category to its matched skills, in keyword-table order.
type ExtractedSkills map[SkillCategory][]string

// NewExtractedSkills returns a value with every category present and empty.
func NewExtractedSkills() ExtractedSkills {
	s := make(ExtractedSkills, len(Categories))
	for _, c := range Categories {
		s[c] = []string{}
	}
	return s
}

// FallbackExtractedSkills returns the canonical "no skills detected" structure.
func FallbackExtractedSkills() ExtractedSkills {
	s := NewExtractedSkills()
	s[CategoryOther] = FallbackSkills()
	return s
}

// DetectedCategoryCount counts categories with at least one skill.
func (s ExtractedSkills) DetectedCategoryCount() int {
	n := 0
	for _, c := range Categories {
		if len(s[c]) > 0 {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no category holds a skill.
func (s ExtractedSkills) IsEmpty() bool {
	return s.DetectedCategoryCount() == 0
}

// All returns every skill once, in canonical category order.
func (s ExtractedSkills) All() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range Categories {
		for _, skill := range s[c] {
			if seen[skill] {
				continue
			}
			seen[skill] = true
			out = append(out, skill)
		}
	}
	return out
}

// Has reports whether the category holds at least one skill.
func (s ExtractedSkills) Has(c SkillCategory) bool {
	return len(s[c]) > 0
}

// Clone returns a deep copy with every category present.
func (s ExtractedSkills) Clone() ExtractedSkills {
	out := NewExtractedSkills()
	for _, c := range Categories {
		out[c] = append(out[c], s[c]...)
	}
	return out
}

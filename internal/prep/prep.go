// Package prep generates static preparation content from detected skills.
//
// Everything here is a lookup keyed off the extraction result and the raw
// company name; nothing is scored or persisted by this package.
package prep

import (
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/jonathan/placement-readiness/internal/types"
)

// profile answers the skill questions the generators ask.
type profile struct {
	skills types.ExtractedSkills
	lower  []string
}

func newProfile(s types.ExtractedSkills) profile {
	all := s.All()
	if len(all) == 0 {
		all = types.FallbackSkills()
	}
	return profile{
		skills: s,
		lower: slice.Map(all, func(_ int, src string) string {
			return strings.ToLower(src)
		}),
	}
}

// has reports whether any detected skill contains keyword, ignoring case.
func (p profile) has(keywords ...string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, s := range p.lower {
			if strings.Contains(s, kw) {
				return true
			}
		}
	}
	return false
}

func (p profile) hasCategory(c types.SkillCategory) bool {
	return p.skills.Has(c)
}

// list collects generated lines, skipping the conditional ones that do not apply.
type list []string

func (l *list) add(items ...string) {
	*l = append(*l, items...)
}

func (l *list) addIf(cond bool, item string) {
	if cond {
		*l = append(*l, item)
	}
}

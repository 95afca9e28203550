package prep

import (
	"fmt"

	"github.com/jonathan/placement-readiness/internal/types"
)

type roundKind struct {
	title        string
	whyItMatters string
}

var (
	onlineTest = roundKind{"Online Assessment",
		"Filters candidates based on fundamental aptitude and coding skills before investing interviewer time."}
	technicalDSA = roundKind{"Technical Interview - DSA",
		"Validates your problem-solving approach, coding efficiency, and ability to optimize solutions under pressure."}
	technicalCore = roundKind{"Technical Interview - Core CS",
		"Tests depth of computer science knowledge crucial for building robust, scalable systems."}
	systemDesign = roundKind{"System Design Discussion",
		"Evaluates your ability to architect scalable solutions and think through trade-offs."}
	projectDeepDive = roundKind{"Project Deep Dive",
		"Assesses your practical experience, technical decisions, and ability to articulate complex work."}
	practicalCoding = roundKind{"Live Coding / Pair Programming",
		"Demonstrates real-time coding ability, collaboration, and how you handle feedback."}
	cultureFit = roundKind{"Culture & Values Fit",
		"Ensures alignment with company values and team dynamics for long-term success."}
	managerial = roundKind{"Managerial Round",
		"Evaluates leadership potential, conflict resolution, and cross-functional collaboration."}
	hrDiscussion = roundKind{"HR Discussion",
		"Final alignment on expectations, compensation, and organizational fit."}
)

// rounds numbers entries in the order they are appended.
type rounds []types.Round

func (r *rounds) add(kind roundKind, description, focus, duration string) {
	*r = append(*r, types.Round{
		Round:        len(*r) + 1,
		RoundTitle:   kind.title,
		Description:  description,
		FocusAreas:   []string{focus},
		WhyItMatters: kind.whyItMatters,
		Duration:     duration,
	})
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// Rounds returns the likely interview rounds for a company size.
func Rounds(size types.CompanySize, skills types.ExtractedSkills) []types.Round {
	p := newProfile(skills)
	hasDSA := p.has("DSA", "Data Structures", "Algorithms")
	hasWeb := p.has("React", "Node", "Angular", "Vue")

	var r rounds
	switch size {
	case types.CompanySizeEnterprise:
		r.add(onlineTest, "Aptitude + Basic Coding",
			pick(hasDSA,
				"DSA problems (arrays, strings) + Logical reasoning + Quantitative aptitude",
				"Logical reasoning + Quantitative aptitude + Basic programming concepts"),
			"60-90 minutes")
		r.add(technicalDSA, "Data Structures & Algorithms",
			pick(hasDSA,
				"Medium-hard DSA problems: trees, graphs, DP, with code optimization",
				"Problem-solving with basic data structures, code quality focus"),
			"45-60 minutes")
		if p.has("DBMS", "OS", "Networks") {
			r.add(technicalCore, "Computer Science Fundamentals",
				"Deep dive into DBMS, OS, Networks concepts with real-world applications", "45 minutes")
		}
		if p.has("System Design", "Architecture", "Senior", "Lead") {
			r.add(systemDesign, "Scalable System Architecture",
				"Design scalable systems: discuss trade-offs, scalability, fault tolerance", "45-60 minutes")
		}
		r.add(projectDeepDive, "Past Experience Discussion",
			"Deep dive into your projects: architecture, challenges, your contributions, learnings", "30-45 minutes")
		r.add(managerial, "Leadership & Collaboration",
			"Behavioral questions, conflict resolution, leadership examples, cross-team collaboration", "30-45 minutes")
		r.add(hrDiscussion, "Final Discussion",
			"Compensation, role expectations, company culture, joining formalities", "15-30 minutes")

	case types.CompanySizeMidsize:
		r.add(onlineTest, "Screening Assessment",
			pick(hasDSA,
				"DSA + Aptitude: moderate difficulty, focus on correctness",
				"Aptitude + Basic coding concepts"),
			"60 minutes")
		r.add(technicalDSA, "Problem Solving",
			pick(hasDSA,
				"DSA problems: emphasis on clean code and explanation",
				"Logical problem-solving with pseudocode"),
			"45 minutes")
		if hasWeb || p.has("DBMS") {
			r.add(technicalCore, "Domain Knowledge",
				"Deep dive into relevant technologies and frameworks", "45 minutes")
		}
		r.add(projectDeepDive, "Experience Review",
			"Your past work and how it relates to this role", "30 minutes")
		r.add(cultureFit, "Team Fit",
			"Collaboration style, working in agile teams, handling feedback", "30 minutes")
		r.add(hrDiscussion, "Final Discussion",
			"Role expectations, compensation, growth opportunities", "20-30 minutes")

	default:
		r.add(practicalCoding, "Hands-on Problem Solving",
			pick(hasDSA,
				"Solve 2-3 practical problems: focus on working solution first, then optimize",
				"Build a small feature or solve practical coding challenges"),
			"60 minutes")
		if hasWeb || p.has("Python", "Java") {
			r.add(technicalCore, "Stack Deep Dive",
				fmt.Sprintf("Deep discussion on %s: best practices, common pitfalls, recent developments",
					pick(hasWeb, "web technologies", "your primary language")),
				"45 minutes")
		}
		r.add(systemDesign, "Architecture Discussion",
			"High-level design of a feature or product: database choice, API design, trade-offs", "30-45 minutes")
		r.add(projectDeepDive, "Portfolio Review",
			"Showcase your best work: live demo if possible, discuss technical decisions", "30 minutes")
		r.add(cultureFit, "Team & Values Alignment",
			"Why this startup? Ownership mindset, adaptability, passion for the problem space", "30-45 minutes")
		r.add(managerial, "Founder/CTO Discussion",
			"Vision alignment, your growth trajectory, equity discussion (if applicable)", "30 minutes")
	}
	return []types.Round(r)
}

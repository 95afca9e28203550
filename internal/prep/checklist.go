package prep

import "github.com/jonathan/placement-readiness/internal/types"

// Checklist returns the four-round preparation checklist.
func Checklist(skills types.ExtractedSkills) []types.ChecklistRound {
	p := newProfile(skills)

	var basics list
	basics.add(
		"Practice quantitative aptitude problems (time/speed, percentages, ratios)",
		"Solve logical reasoning puzzles (pattern recognition, series completion)",
		"Review verbal ability (grammar, comprehension, sentence correction)",
	)
	basics.addIf(p.has("DSA"), "Brush up on basic data structures concepts")
	basics.addIf(p.has("OOP"), "Review OOP principles: encapsulation, inheritance, polymorphism")
	basics.add(
		"Practice 10-15 aptitude tests under timed conditions",
		"Review company-specific previous year questions if available",
	)

	var dsa list
	dsa.addIf(p.has("DSA"), "Master arrays, strings, linked lists, stacks, queues")
	dsa.addIf(p.has("DSA"), "Practice trees, graphs, and advanced data structures")
	dsa.addIf(p.has("DSA"), "Solve 50+ problems on sorting, searching, and two-pointer techniques")
	dsa.addIf(p.hasCategory(types.CategoryCoreCS), "Review DBMS: normalization, indexing, transactions, ACID properties")
	dsa.addIf(p.hasCategory(types.CategoryCoreCS), "Study OS concepts: processes, threads, memory management, scheduling")
	dsa.addIf(p.hasCategory(types.CategoryCoreCS), "Understand Networks: OSI model, TCP/IP, HTTP, DNS")
	dsa.addIf(p.has("OOP"), "Practice OOP design problems and SOLID principles")
	dsa.add(
		"Time yourself: solve easy problems in 15 min, medium in 30 min",
		"Practice writing clean, optimized code with proper edge case handling",
	)

	var tech list
	tech.addIf(p.has("React"), "Master React hooks, context API, and state management patterns")
	tech.addIf(p.has("Node.js"), "Understand event loop, streams, and Express middleware")
	tech.addIf(p.hasCategory(types.CategoryData), "Practice SQL joins, subqueries, and query optimization")
	tech.addIf(p.hasCategory(types.CategoryWeb), "Review REST API design principles and HTTP methods")
	tech.addIf(p.has("GraphQL"), "Understand GraphQL schema, resolvers, and vs REST tradeoffs")
	tech.addIf(p.hasCategory(types.CategoryCloud), "Study Docker containers, basic Kubernetes concepts")
	tech.add(
		"Prepare to explain your projects: architecture, challenges, and your contributions",
		"Practice system design basics for your experience level",
		"Review version control with Git: branching, merging, rebasing",
	)
	tech.addIf(p.hasCategory(types.CategoryTesting), "Understand testing pyramid: unit, integration, e2e tests")

	hr := []string{
		"Prepare STAR format answers for common behavioral questions",
		"Practice \"Tell me about yourself\" - keep it under 2 minutes",
		"Research company values, products, and recent news",
		"Prepare questions to ask the interviewer about team and culture",
		"Review your resume thoroughly - every point should be explainable",
		"Practice salary negotiation basics and know your expectations",
		"Prepare answers for: strengths, weaknesses, why this company, why this role",
		"Plan your attire and test your tech setup for virtual interviews",
		"Prepare a portfolio or GitHub showcase if applicable",
	}

	return []types.ChecklistRound{
		{Round: 1, RoundTitle: "Aptitude / Basics", Description: "Foundation assessment round", Items: basics},
		{Round: 2, RoundTitle: "DSA + Core CS", Description: "Technical coding and computer science fundamentals", Items: dsa},
		{Round: 3, RoundTitle: "Tech Interview (Projects + Stack)", Description: "Deep dive into your tech stack and projects", Items: tech},
		{Round: 4, RoundTitle: "Managerial / HR", Description: "Behavioral and culture fit assessment", Items: hr},
	}
}

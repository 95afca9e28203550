package prep

import "github.com/jonathan/placement-readiness/internal/types"

// Plan returns the seven-day preparation plan.
func Plan(skills types.ExtractedSkills) []types.PlanDay {
	p := newProfile(skills)
	coreCS := p.hasCategory(types.CategoryCoreCS)

	var day1 list
	day1.add("Review data structures: arrays, linked lists, stacks, queues")
	day1.addIf(coreCS, "Study DBMS basics: SQL commands, normalization")
	day1.addIf(coreCS, "Review OS concepts: processes, threads, scheduling")
	day1.add("Practice 5 easy coding problems", "Read company-specific aptitude patterns")

	var day2 list
	day2.addIf(coreCS, "Study DBMS advanced: indexing, transactions, ACID")
	day2.addIf(coreCS, "Review Networks: OSI layers, TCP/IP, HTTP protocols")
	day2.addIf(p.has("OOP"), "Practice OOP design and SOLID principles")
	day2.add("Solve 5 medium coding problems on arrays and strings", "Take a timed aptitude test")

	var day3 list
	day3.add(
		"Master trees: BST, AVL, tree traversals",
		"Practice graph algorithms: BFS, DFS, shortest path",
		"Solve 5 medium-hard problems on trees and graphs",
	)
	day3.addIf(p.has("React"), "Review React component lifecycle and hooks")
	day3.addIf(p.has("Node.js"), "Practice Node.js async programming patterns")

	var day4 list
	day4.add(
		"Practice dynamic programming: memoization, tabulation",
		"Solve problems on greedy algorithms and backtracking",
	)
	day4.addIf(p.hasCategory(types.CategoryData), "Practice complex SQL queries and optimization")
	day4.addIf(p.hasCategory(types.CategoryWeb), "Review API design and authentication methods")
	day4.add("Build a small project or component using your stack")

	var day5 list
	day5.add(
		"Review and refine your resume - ensure ATS-friendly format",
		"Prepare project explanations: problem, solution, your role, results",
		"Create a portfolio/GitHub README with clear documentation",
	)
	day5.addIf(p.hasCategory(types.CategoryCloud), "Review Docker basics and CI/CD pipelines")
	day5.addIf(p.hasCategory(types.CategoryTesting), "Practice writing test cases for your projects")
	day5.add("Mock present your best project to a friend or record yourself")

	day6 := []string{
		"Practice 10+ technical questions from your skill areas",
		"Conduct a mock coding interview with timer",
		"Review system design basics: scalability, load balancing",
		"Prepare behavioral answers using STAR method",
		"Research the company: products, tech stack, culture, recent news",
	}

	day7 := []string{
		"Review all mistakes from previous practice sessions",
		"Focus on weak areas identified during the week",
		"Quick revision of key formulas and concepts",
		"Practice 2-3 problems from each major topic",
		"Prepare interview logistics: attire, documents, tech setup",
		"Get good rest - mental clarity is crucial",
	}

	return []types.PlanDay{
		{Day: 1, Focus: "Basics + Core CS Fundamentals", Tasks: day1},
		{Day: 2, Focus: "Core CS Deep Dive", Tasks: day2},
		{Day: 3, Focus: "DSA + Coding Practice", Tasks: day3},
		{Day: 4, Focus: "Advanced DSA + Stack Practice", Tasks: day4},
		{Day: 5, Focus: "Project + Resume Alignment", Tasks: day5},
		{Day: 6, Focus: "Mock Interview Questions", Tasks: day6},
		{Day: 7, Focus: "Revision + Weak Areas", Tasks: day7},
	}
}

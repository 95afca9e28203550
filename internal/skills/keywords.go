package skills

import "github.com/jonathan/placement-readiness/internal/types"

// keywordTable holds the display-cased keywords for each category, in match order.
// The other category has no keywords; it only carries the fallback skills.
var keywordTable = map[types.SkillCategory][]string{
	types.CategoryCoreCS: {
		"DSA", "OOP", "DBMS", "OS", "Networks", "Data Structures", "Algorithms",
		"Object Oriented", "Database", "Operating System", "Computer Networks",
	},
	types.CategoryLanguages: {
		"Java", "Python", "JavaScript", "TypeScript", "C", "C++", "C#", "Go", "Golang",
		"Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala",
	},
	types.CategoryWeb: {
		"React", "Next.js", "Node.js", "Express", "REST", "GraphQL", "Angular", "Vue",
		"Svelte", "HTML", "CSS", "Bootstrap", "Tailwind", "Webpack", "Vite",
	},
	types.CategoryData: {
		"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch", "Cassandra",
		"DynamoDB", "Firebase", "Prisma", "Sequelize",
	},
	types.CategoryCloud: {
		"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "CI/CD", "Jenkins",
		"GitHub Actions", "Terraform", "Ansible", "Linux", "Ubuntu", "CentOS", "Nginx",
	},
	types.CategoryTesting: {
		"Selenium", "Cypress", "Playwright", "JUnit", "PyTest", "Jest", "Mocha", "Chai",
		"Testing Library", "Postman", "JMeter",
	},
	types.CategoryOther: {},
}

// Keywords returns a copy of the keyword list for a category.
func Keywords(c types.SkillCategory) []string {
	return append([]string(nil), keywordTable[c]...)
}

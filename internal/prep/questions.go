package prep

import "github.com/jonathan/placement-readiness/internal/types"

// MaxQuestions caps the generated question list.
const MaxQuestions = 10

var generalQuestions = []string{
	"Tell me about a challenging project you worked on. What was your role?",
	"How do you keep up with new technologies in your field?",
	"Describe a time when you had to debug a difficult issue. How did you approach it?",
	"What is your approach to learning a new technology or framework?",
}

// Questions returns up to MaxQuestions unique interview questions for the detected skills.
func Questions(skills types.ExtractedSkills) []string {
	p := newProfile(skills)
	var q list

	if p.has("DSA", "Data Structures") {
		q.add(
			"How would you optimize search in a sorted array? Compare linear vs binary search.",
			"Explain the time and space complexity of quicksort and mergesort. When would you use each?",
			"How do you detect a cycle in a linked list? Explain Floyd's algorithm.",
			"What is the difference between BFS and DFS? When would you use one over the other?",
			"Explain dynamic programming with an example. What are overlapping subproblems?",
		)
	}
	if p.has("OOP", "Object Oriented") {
		q.add(
			"Explain the four pillars of OOP with real-world examples.",
			"What is the difference between abstraction and encapsulation?",
			"Explain polymorphism: compile-time vs runtime with code examples.",
			"What are SOLID principles? Explain each with examples.",
		)
	}
	if p.hasCategory(types.CategoryData) || p.has("DBMS", "SQL") {
		q.add(
			"Explain indexing in databases. When does it help and when can it hurt performance?",
			"What are the different types of SQL joins? Provide examples.",
			"Explain database normalization. What are the normal forms?",
			"What is the difference between SQL and NoSQL databases? When would you use each?",
			"Explain ACID properties in database transactions.",
		)
	}
	if p.has("React") {
		q.add(
			"Explain React hooks. What is the difference between useEffect and useLayoutEffect?",
			"How does React's virtual DOM work? Why is it beneficial?",
			"What are the different ways to manage state in React applications?",
			"Explain React Context API. When would you use it over Redux?",
			"What is the difference between controlled and uncontrolled components?",
		)
	}
	if p.has("Node.js") {
		q.add(
			"Explain the event loop in Node.js. How does it handle async operations?",
			"What is the difference between process.nextTick() and setImmediate()?",
			"How do you handle errors in Node.js async/await code?",
			"Explain streams in Node.js. What are the different types?",
		)
	}
	if p.has("REST", "GraphQL") {
		q.add("What are RESTful API design principles? Explain HTTP methods.")
		q.addIf(p.has("GraphQL"), "Compare GraphQL vs REST. What are the tradeoffs?")
		q.add(
			"How do you handle authentication in web applications?",
			"Explain CORS and how to handle it in web applications.",
		)
	}
	if p.hasCategory(types.CategoryCloud) {
		q.add(
			"What is the difference between Docker containers and virtual machines?",
			"Explain CI/CD pipeline. What tools have you used?",
		)
		q.addIf(p.has("AWS"), "What AWS services have you used? Explain EC2, S3, and Lambda.")
		q.addIf(p.has("Kubernetes"), "Explain Kubernetes architecture: pods, services, deployments.")
	}
	if p.hasCategory(types.CategoryTesting) {
		q.add(
			"What is the testing pyramid? Explain unit, integration, and e2e tests.",
			"What is the difference between TDD and BDD?",
		)
		q.addIf(p.has("Jest"), "How do you mock dependencies in Jest?")
	}
	if p.has("OS", "Operating System") {
		q.add(
			"Explain process vs thread. What resources do they share?",
			"What is virtual memory? How does paging work?",
			"Explain deadlock: conditions and prevention strategies.",
		)
	}
	if p.has("Networks", "Computer Networks") {
		q.add(
			"Explain the OSI model. What happens at each layer?",
			"What is the difference between TCP and UDP?",
			"How does DNS work? Explain the resolution process.",
		)
	}

	if len(q) < MaxQuestions {
		q.add(generalQuestions...)
	}

	return firstUnique(q, MaxQuestions)
}

func firstUnique(items []string, n int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, n)
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

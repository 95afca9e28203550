package prep

import (
	"regexp"
	"strings"

	"github.com/jonathan/placement-readiness/internal/types"
)

// DefaultIndustry is reported when no industry keyword matches.
const DefaultIndustry = "Technology Services"

var enterpriseCompanies = []string{
	"amazon", "microsoft", "google", "apple", "meta", "facebook",
	"infosys", "tcs", "tata consultancy", "wipro", "accenture",
	"ibm", "oracle", "cisco", "intel", "qualcomm", "nvidia",
	"adobe", "salesforce", "vmware", "dell", "hp", "hewlett packard",
	"capgemini", "cognizant", "hcl", "tech mahindra", "larsen & toubro",
	"lti", "mindtree", "persistent", "zoho", "freshworks",
	"samsung", "lg", "sony", "panasonic", "toyota", "honda",
	"jpmorgan", "goldman sachs", "morgan stanley", "wells fargo",
	"bank of america", "citibank", "hsbc", "deutsche bank",
	"deloitte", "ey", "ernst & young", "kpmg", "pwc", "pricewaterhouse",
}

type industry struct {
	name     string
	keywords []string
}

// Checked in order; the first industry with a matching keyword wins.
var industries = []industry{
	{"Finance", []string{"bank", "finance", "fintech", "payment", "insurance", "trading", "investment"}},
	{"Healthcare", []string{"health", "medical", "pharma", "biotech", "hospital", "clinical"}},
	{"E-commerce", []string{"ecommerce", "retail", "shopping", "marketplace", "delivery"}},
	{"Technology", []string{"software", "saas", "cloud", "ai", "ml", "data", "cybersecurity"}},
	{"Education", []string{"education", "learning", "edtech", "training", "academy"}},
	{"Entertainment", []string{"media", "entertainment", "gaming", "streaming", "content"}},
}

type matcher func(text string) bool

// newMatcher matches short tokens on word boundaries so "ey" does not hit "key".
func newMatcher(token string) matcher {
	if len(token) <= 3 {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
		return re.MatchString
	}
	return func(text string) bool { return strings.Contains(text, token) }
}

var (
	enterpriseMatchers []matcher
	industryMatchers   [][]matcher
)

func init() {
	for _, name := range enterpriseCompanies {
		enterpriseMatchers = append(enterpriseMatchers, newMatcher(name))
	}
	industryMatchers = make([][]matcher, len(industries))
	for i, ind := range industries {
		for _, kw := range ind.keywords {
			industryMatchers[i] = append(industryMatchers[i], newMatcher(kw))
		}
	}
}

// CompanySize classifies a company by name. Unknown and blank names are startups.
func CompanySize(company string) types.CompanySize {
	normalized := strings.ToLower(strings.TrimSpace(company))
	if normalized == "" {
		return types.CompanySizeStartup
	}
	for _, match := range enterpriseMatchers {
		if match(normalized) {
			return types.CompanySizeEnterprise
		}
	}
	return types.CompanySizeStartup
}

// InferIndustry guesses the industry from the company name and JD text.
func InferIndustry(company, jdText string) string {
	text := strings.ToLower(company + " " + jdText)
	for i, ind := range industries {
		for _, match := range industryMatchers[i] {
			if match(text) {
				return ind.name
			}
		}
	}
	return DefaultIndustry
}

type sizeInfo struct {
	label       string
	rangeText   string
	description string
}

func describeSize(size types.CompanySize) sizeInfo {
	switch size {
	case types.CompanySizeEnterprise:
		return sizeInfo{"Enterprise", "2000+ employees", "Large established organization"}
	case types.CompanySizeMidsize:
		return sizeInfo{"Mid-size", "200–2000 employees", "Growing organization"}
	default:
		return sizeInfo{"Startup", "<200 employees", "Early stage company"}
	}
}

// HiringFocus returns the typical screening emphasis for a company size.
func HiringFocus(size types.CompanySize) types.HiringFocus {
	switch size {
	case types.CompanySizeEnterprise:
		return types.HiringFocus{
			Title:       "Structured Fundamentals",
			Description: "Emphasis on strong CS fundamentals, structured problem-solving, and scalable system design.",
			KeyAreas: []string{
				"Data Structures & Algorithms (rigorous)",
				"Core CS fundamentals (OS, DBMS, Networks)",
				"System Design at scale",
				"Coding best practices & code review",
				"Behavioral & leadership principles",
			},
		}
	case types.CompanySizeMidsize:
		return types.HiringFocus{
			Title:       "Balanced Skill Set",
			Description: "Mix of fundamental knowledge and practical implementation skills.",
			KeyAreas: []string{
				"DSA with practical applications",
				"Full-stack or specialized depth",
				"Problem-solving in business context",
				"Collaboration & communication",
				"Adaptability to changing requirements",
			},
		}
	default:
		return types.HiringFocus{
			Title:       "Practical Problem Solving",
			Description: "Focus on hands-on skills, quick learning, and end-to-end ownership.",
			KeyAreas: []string{
				"Practical coding & shipping features",
				"Stack depth in relevant technologies",
				"Problem-solving with limited resources",
				"Ownership & initiative",
				"Cultural fit & adaptability",
			},
		}
	}
}

// CompanyIntel builds the static company profile. It returns nil for a blank name.
func CompanyIntel(company, jdText string) *types.CompanyIntel {
	if strings.TrimSpace(company) == "" {
		return nil
	}
	size := CompanySize(company)
	info := describeSize(size)
	return &types.CompanyIntel{
		Name:            company,
		Size:            size,
		SizeLabel:       info.label,
		SizeRange:       info.rangeText,
		SizeDescription: info.description,
		Industry:        InferIndustry(company, jdText),
		HiringFocus:     HiringFocus(size),
	}
}

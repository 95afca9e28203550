package types

// CompanySize is the heuristic size class of a company.
type CompanySize string

const (
	CompanySizeStartup    CompanySize = "startup"
	CompanySizeMidsize    CompanySize = "midsize"
	CompanySizeEnterprise CompanySize = "enterprise"
)

// CompanyIntel is a static profile guessed from the company name and JD text.
type CompanyIntel struct {
	Name            string      `json:"name"`
	Size            CompanySize `json:"size"`
	SizeLabel       string      `json:"sizeLabel"`
	SizeRange       string      `json:"sizeRange"`
	SizeDescription string      `json:"sizeDescription"`
	Industry        string      `json:"industry"`
	HiringFocus     HiringFocus `json:"hiringFocus"`
}

// HiringFocus describes what a company of a given size tends to screen for.
type HiringFocus struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	KeyAreas    []string `json:"keyAreas"`
}

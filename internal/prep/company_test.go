package prep

import (
	"testing"

	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanySize(t *testing.T) {
	tests := []struct {
		company string
		want    types.CompanySize
	}{
		{"Google India", types.CompanySizeEnterprise},
		{"  TATA CONSULTANCY Services ", types.CompanySizeEnterprise},
		{"HP Inc", types.CompanySizeEnterprise},
		{"Acme Corp", types.CompanySizeStartup},
		{"Keystone", types.CompanySizeStartup},
		{"Shipyard", types.CompanySizeStartup},
		{"", types.CompanySizeStartup},
		{"   ", types.CompanySizeStartup},
	}
	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanySize(tt.company))
		})
	}
}

func TestInferIndustry(t *testing.T) {
	tests := []struct {
		name    string
		company string
		jd      string
		want    string
	}{
		{"finance keyword", "Acme", "We build payment systems", "Finance"},
		{"first industry wins", "Acme", "A fintech startup with a healthcare arm", "Finance"},
		{"short keyword on boundary", "Acme", "Our AI platform", "Technology"},
		{"short keyword inside word", "Acme", "We love maintaining trains", DefaultIndustry},
		{"nothing", "", "", DefaultIndustry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferIndustry(tt.company, tt.jd))
		})
	}
}

func TestCompanyIntel(t *testing.T) {
	assert.Nil(t, CompanyIntel("  ", "anything"))

	intel := CompanyIntel("Infosys", "")
	require.NotNil(t, intel)
	assert.Equal(t, "Infosys", intel.Name)
	assert.Equal(t, types.CompanySizeEnterprise, intel.Size)
	assert.Equal(t, "Enterprise", intel.SizeLabel)
	assert.Equal(t, "2000+ employees", intel.SizeRange)
	assert.Equal(t, DefaultIndustry, intel.Industry)
	assert.Equal(t, "Structured Fundamentals", intel.HiringFocus.Title)
	assert.Len(t, intel.HiringFocus.KeyAreas, 5)
}

func TestHiringFocus_Midsize(t *testing.T) {
	assert.Equal(t, "Balanced Skill Set", HiringFocus(types.CompanySizeMidsize).Title)
	assert.Equal(t, "Practical Problem Solving", HiringFocus("unknown").Title)
}

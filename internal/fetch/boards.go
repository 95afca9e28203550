package fetch

import (
	"net/url"
	"strings"
)

// Board is a recognized job board or applicant tracking system.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardGeneric    Board = "generic"
)

var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"myworkdayjobs.com", BoardWorkday},
	{"workday.com", BoardWorkday},
	{"ashbyhq.com", BoardAshby},
}

// DetectBoard identifies the job board hosting rawURL.
func DetectBoard(rawURL string) Board {
	u, err := url.Parse(rawURL)
	if err != nil {
		return BoardGeneric
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	return BoardGeneric
}

// genericContent is tried after any board-specific selectors.
var genericContent = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
	".content",
}

// ContentSelectors returns the selectors that locate the posting body, most specific first.
func (b Board) ContentSelectors() []string {
	var specific []string
	switch b {
	case BoardGreenhouse:
		specific = []string{".job__description.body", ".job__description", "#content"}
	case BoardLever:
		specific = []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"}
	case BoardWorkday:
		specific = []string{"[data-automation-id='jobDescription']"}
	case BoardAshby:
		specific = []string{"[class*='descriptionText']"}
	}
	return append(specific, genericContent...)
}

// baseNoise is removed from every page before text extraction.
var baseNoise = []string{
	"nav", "footer", "header", "script", "style", "noscript", "svg",
	"form", ".application-form", "#application-form",
	".eeo-statement", ".voluntary-disclosure", ".self-identification",
	".cookie-banner", ".cookie-consent", ".social-share",
}

// NoiseSelectors returns elements stripped before extraction.
func (b Board) NoiseSelectors() []string {
	switch b {
	case BoardGreenhouse:
		return append(baseNoise[:len(baseNoise):len(baseNoise)], ".application--wrapper", "#usa_self_id_section")
	case BoardLever:
		return append(baseNoise[:len(baseNoise):len(baseNoise)], ".posting-apply", ".lever-application-form")
	case BoardWorkday:
		return append(baseNoise[:len(baseNoise):len(baseNoise)], "[data-automation-id='applyButton']")
	default:
		return baseNoise
	}
}

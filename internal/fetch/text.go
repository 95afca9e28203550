package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MainText strips noise from html and returns the text of the first matching content
// selector for board, or of the whole body when none match. Lines are trimmed and blank
// lines dropped.
func MainText(html string, board Board) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(board.NoiseSelectors(), ", ")).Remove()

	content := doc.Find("body")
	for _, sel := range board.ContentSelectors() {
		if match := doc.Find(sel).First(); match.Length() > 0 && strings.TrimSpace(match.Text()) != "" {
			content = match
			break
		}
	}

	// Block elements otherwise run together once tags are stripped.
	content.Find("br").ReplaceWithHtml("\n")
	content.Find("p, li, h1, h2, h3, h4, h5, h6, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return squashLines(content.Text()), nil
}

// Title returns the document title, or "" when absent.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func squashLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

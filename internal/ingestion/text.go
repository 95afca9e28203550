// Package ingestion turns pasted text, files and job posting URLs into clean job description text.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFileBytes bounds job description files read from disk.
const MaxFileBytes = 1 << 20

var (
	spaceRun   = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	blankRun   = regexp.MustCompile(`\n{3,}`)
	bulletMark = regexp.MustCompile(`^(\s*)[•·▪◦●‣\x{2043}]\s*`)
)

// CleanText normalizes line endings, whitespace and bullet glyphs. Paragraph breaks are
// kept; runs of blank lines collapse to one.
func CleanText(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	out := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	if strings.TrimSpace(line) == "" {
		return ""
	}
	line = bulletMark.ReplaceAllString(line, "$1- ")

	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	return strings.ReplaceAll(indent, "\t", "  ") + spaceRun.ReplaceAllString(body, " ")
}

// FromText wraps pasted text as a Document.
func FromText(text string) Document {
	return newDocument(CleanText(text), SourceText, "")
}

// FromFile reads and cleans a job description from path.
func FromFile(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, fmt.Errorf("file not found: %w", err)
		}
		return Document{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileBytes {
		return Document{}, fmt.Errorf("%s is %d bytes; job descriptions are limited to %d", path, info.Size(), MaxFileBytes)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(content) {
		return Document{}, fmt.Errorf("%s is not UTF-8 text", path)
	}
	return newDocument(CleanText(string(content)), SourceFile, path), nil
}

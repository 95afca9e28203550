package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"

	"github.com/jonathan/placement-readiness/internal/fetch"
)

// Source says where a Document came from.
type Source string

const (
	SourceText Source = "text"
	SourceFile Source = "file"
	SourceURL  Source = "url"
)

// Document is a cleaned job description with provenance.
type Document struct {
	Text       string      `json:"text"`
	Source     Source      `json:"source"`
	Location   string      `json:"location,omitempty"`
	Title      string      `json:"title,omitempty"`
	Board      fetch.Board `json:"board,omitempty"`
	Rendered   bool        `json:"rendered,omitempty"`
	Hash       string      `json:"hash"`
	Chars      int         `json:"chars"`
	IngestedAt time.Time   `json:"ingested_at"`
}

func newDocument(text string, src Source, location string) Document {
	sum := sha256.Sum256([]byte(text))
	return Document{
		Text:       text,
		Source:     src,
		Location:   location,
		Hash:       hex.EncodeToString(sum[:]),
		Chars:      utf8.RuneCountInString(text),
		IngestedAt: time.Now().UTC(),
	}
}

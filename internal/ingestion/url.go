package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/placement-readiness/internal/fetch"
	"github.com/jonathan/placement-readiness/internal/logger"
)

var (
	// ErrFetchFailed wraps transport and HTTP status failures.
	ErrFetchFailed = errors.New("failed to fetch job posting")
	// ErrNoContent is returned when a page yields no text, even after rendering.
	ErrNoContent = errors.New("job posting has no readable text")
)

// Renderer loads a page in a browser and returns its HTML.
type Renderer interface {
	Render(ctx context.Context, rawURL string) (string, error)
}

// URLOptions controls FromURL. A nil Getter uses a default fetch.Fetcher.
// A nil Renderer disables the browser fallback.
type URLOptions struct {
	Getter   fetch.Getter
	Renderer Renderer
}

// FromURL fetches a posting, extracts its main text with board-aware selectors and,
// when the result is too thin and a Renderer is configured, retries in a browser.
// Browser failures fall back to the HTTP text.
func FromURL(ctx context.Context, rawURL string, opts URLOptions) (Document, error) {
	log := logger.Ctx(ctx)
	if opts.Getter == nil {
		opts.Getter = fetch.New(fetch.WithLogger(*log))
	}

	board := fetch.DetectBoard(rawURL)
	page, err := opts.Getter.Get(ctx, rawURL)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	text, err := fetch.MainText(page.HTML, board)
	if err != nil {
		return Document{}, fmt.Errorf("failed to extract job posting text: %w", err)
	}
	title := fetch.Title(page.HTML)
	rendered := false

	if opts.Renderer != nil && fetch.NeedsBrowser(text) {
		log.Info().Str("url", rawURL).Int("chars", len(text)).Msg("posting text is thin, rendering in browser")
		html, renderErr := opts.Renderer.Render(ctx, rawURL)
		if renderErr != nil {
			log.Warn().Err(renderErr).Str("url", rawURL).Msg("browser rendering failed, using HTTP text")
		} else if browserText, extractErr := fetch.MainText(html, board); extractErr == nil && len(browserText) > len(text) {
			text = browserText
			rendered = true
			if t := fetch.Title(html); t != "" {
				title = t
			}
		}
	}

	doc := newDocument(CleanText(text), SourceURL, rawURL)
	if doc.Text == "" {
		return Document{}, ErrNoContent
	}
	doc.Title = title
	doc.Board = board
	doc.Rendered = rendered

	log.Debug().
		Str("url", rawURL).
		Str("board", string(board)).
		Bool("rendered", rendered).
		Int("chars", doc.Chars).
		Msg("ingested job posting")
	return doc, nil
}

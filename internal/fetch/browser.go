package fetch

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// MinContentLength is the extracted text length below which a page is assumed to be
// rendered client-side.
const MinContentLength = 500

// NeedsBrowser reports whether text extracted over plain HTTP is too thin to use.
func NeedsBrowser(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < MinContentLength
}

// Renderer loads pages in headless Chrome. Chrome or Chromium must be installed.
type Renderer struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to populate it.
	Settle time.Duration
	Log    zerolog.Logger
}

// NewRenderer returns a Renderer with a 30 second budget.
func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{Timeout: DefaultTimeout, Settle: 2 * time.Second, Log: log}
}

// Render navigates to rawURL and returns the rendered document HTML.
func (r *Renderer) Render(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.Timeout)
	defer cancelTimeout()

	r.Log.Debug().Str("url", rawURL).Msg("rendering page in headless browser")

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	r.Log.Debug().Str("url", rawURL).Int("bytes", len(html)).Msg("rendered page")
	return html, nil
}

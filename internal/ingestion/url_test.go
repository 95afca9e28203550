package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/placement-readiness/internal/fetch"
	"github.com/jonathan/placement-readiness/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (r *stubRenderer) Render(context.Context, string) (string, error) {
	r.calls++
	return r.html, r.err
}

func serveHTML(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFromURL_Success(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<!DOCTYPE html><html><head><title>SDE - Acme</title></head><body>
		<nav>Nav</nav><main><h1>Software Engineer</h1><p>Experience with   React and SQL.</p></main>
		<footer>Footer</footer></body></html>`)

	doc, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer\nExperience with React and SQL.", doc.Text)
	assert.Equal(t, SourceURL, doc.Source)
	assert.Equal(t, server.URL, doc.Location)
	assert.Equal(t, "SDE - Acme", doc.Title)
	assert.Equal(t, fetch.BoardGeneric, doc.Board)
	assert.False(t, doc.Rendered)
}

func TestFromURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-url", "example.com", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := FromURL(context.Background(), raw, URLOptions{})
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestFromURL_HTTPStatus(t *testing.T) {
	server := serveHTML(t, http.StatusGone, "<p>gone</p>")

	_, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.ErrorIs(t, err, ErrFetchFailed)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusGone, fetchErr.StatusCode)
}

func TestFromURL_BrowserFallback(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><div id="root"></div><p>Loading</p></body></html>`)
	rendered := "<html><body><main><p>" + strings.Repeat("Kubernetes and Go. ", 40) + "</p></main></body></html>"
	r := &stubRenderer{html: rendered}

	doc, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: r})
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)
	assert.True(t, doc.Rendered)
	assert.Contains(t, doc.Text, "Kubernetes and Go.")
}

func TestFromURL_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := serveHTML(t, http.StatusOK, `<html><body><main><p>Short posting about Java</p></main></body></html>`)
	r := &stubRenderer{err: errors.New("chrome not installed")}

	doc, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: r})
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)
	assert.False(t, doc.Rendered)
	assert.Equal(t, "Short posting about Java", doc.Text)
}

func TestFromURL_SkipsBrowserForLongText(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<main><p>"+strings.Repeat("Python and Docker. ", 40)+"</p></main>")
	r := &stubRenderer{}

	_, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: r})
	require.NoError(t, err)
	assert.Zero(t, r.calls)
}

func TestFromURL_NoContent(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><script>app()</script></body></html>")

	_, err := FromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestFromURL_UsesCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("<main><p>Cached posting</p></main>"))
	}))
	defer server.Close()

	getter := fetch.NewCached(fetch.New(), storage.NewMemory(0), 0, zerolog.Nop())
	for i := 0; i < 3; i++ {
		doc, err := FromURL(context.Background(), server.URL, URLOptions{Getter: getter})
		require.NoError(t, err)
		assert.Equal(t, "Cached posting", doc.Text)
	}
	assert.Equal(t, 1, hits)
}

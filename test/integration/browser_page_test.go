//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"askbox/internal/di"
	"askbox/internal/domain/entity"
	"askbox/internal/infrastructure/browser/rod"
	"askbox/internal/infrastructure/markup"
	"askbox/internal/infrastructure/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	browser *rod.BrowserAdapter
	display *rod.Display
	button  *rod.Button
}

func openPage(t *testing.T, backend http.Handler) *page {
	t.Helper()

	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	c, err := di.NewContainer(di.Config{
		Endpoint: api.URL + "/ask",
		LogLevel: "debug",
		LogFile:  filepath.Join(t.TempDir(), "askbox.log"),
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	srv, err := web.NewServer(web.Config{}, c.Logger)
	require.NoError(t, err)
	url, err := srv.Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	cfg := rod.DefaultConfig()
	cfg.Headless = true
	browser, err := rod.NewBrowserAdapter(context.Background(), cfg, c.Logger)
	require.NoError(t, err)
	t.Cleanup(browser.Close)

	p := &page{browser: browser, display: browser.Response(), button: browser.Button()}
	handler := c.NewHandler(browser.Prompt(), p.display, p.button)
	require.NoError(t, browser.Bind(web.DispatchBinding, func() {
		handler.Dispatch(context.Background())
	}))
	require.NoError(t, browser.Open(context.Background(), url))
	return p
}

func (p *page) ask(t *testing.T, question string) {
	t.Helper()
	require.NoError(t, p.browser.Fill(context.Background(), "#prompt", question))
	require.NoError(t, p.browser.Click(context.Background(), "button"))
}

func jsonBackend(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestPage_AnswerWithSource(t *testing.T) {
	p := openPage(t, jsonBackend(`{"answer":"42","source":"http://example.com"}`))

	p.ask(t, "what is it?")

	require.Eventually(t, func() bool {
		doc, err := markup.Inspect(p.display.Markup())
		return err == nil && len(doc.Preformatted) == 1
	}, 10*time.Second, 50*time.Millisecond)

	doc, err := markup.Inspect(p.display.Markup())
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, doc.Preformatted)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, "http://example.com", doc.Links[0].Href)
	assert.Equal(t, "http://example.com", doc.Links[0].Text)
	assert.Equal(t, "_blank", doc.Links[0].Target)
	assert.Eventually(t, func() bool { return !p.button.Disabled() }, 5*time.Second, 50*time.Millisecond)
}

func TestPage_EmptyQuestion(t *testing.T) {
	p := openPage(t, jsonBackend(`{"answer":"unused"}`))

	p.ask(t, "   ")

	assert.Eventually(t, func() bool {
		return p.display.Text() == entity.PromptMessage
	}, 10*time.Second, 50*time.Millisecond)
	assert.False(t, p.button.Disabled())
}

func TestPage_PlaceholderThenFailure(t *testing.T) {
	release := make(chan struct{})
	p := openPage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte("not json"))
	}))

	p.ask(t, "ping")

	require.Eventually(t, func() bool {
		return p.display.Text() == entity.ThinkingMessage
	}, 10*time.Second, 50*time.Millisecond)
	assert.True(t, p.button.Disabled())

	close(release)

	assert.Eventually(t, func() bool {
		return p.display.Text() == entity.UnreachableMessage && !p.button.Disabled()
	}, 10*time.Second, 50*time.Millisecond)
}

func TestBrowserAdapter_Snapshot(t *testing.T) {
	p := openPage(t, jsonBackend(`{"answer":"hello"}`))

	shot, err := p.browser.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "jpeg", shot.Format)
	assert.NotEmpty(t, shot.Data)
	assert.LessOrEqual(t, shot.Width, 1024)
}

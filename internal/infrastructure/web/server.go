// Package web serves the ask page. The page either runs the WebAssembly
// handler or calls into a binding installed by a controlling browser.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"askbox/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// DispatchBinding is the window function the page's button calls.
const DispatchBinding = "askboxDispatch"

const (
	wasmFile     = "ask.wasm"
	wasmExecFile = "wasm_exec.js"
)

type Config struct {
	// AssetsDir holds ask.wasm and wasm_exec.js. Empty disables the wasm page.
	AssetsDir string
	// AccessLog receives httplog request lines. Nil discards them.
	AccessLog io.Writer
}

type Server struct {
	cfg    Config
	logger output.LoggerPort
	router chi.Router
	page   []byte
	http   *http.Server
}

func NewServer(cfg Config, log output.LoggerPort) (*Server, error) {
	wasm := false
	if cfg.AssetsDir != "" {
		if err := checkAssets(cfg.AssetsDir); err != nil {
			return nil, err
		}
		wasm = true
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, struct{ Wasm bool }{Wasm: wasm}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: log,
		page:   buf.Bytes(),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	accessLog := s.cfg.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	reqLogger := httplog.NewLogger("askbox-page", httplog.Options{JSON: true}).Output(accessLog)

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(reqLogger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.cfg.AssetsDir != "" {
		r.Get("/"+wasmFile, s.serveAsset(wasmFile))
		r.Get("/"+wasmExecFile, s.serveAsset(wasmExecFile))
	}
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.page)
}

func (s *Server) serveAsset(name string) http.HandlerFunc {
	path := filepath.Join(s.cfg.AssetsDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

// Listen starts serving on addr in the background and returns the page URL.
func (s *Server) Listen(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", addr, err)
	}

	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Page server stopped", "error", err)
		}
	}()

	url := "http://" + ln.Addr().String() + "/"
	s.logger.Info("Page server listening", "url", url, "wasm", s.cfg.AssetsDir != "")
	return url, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func checkAssets(dir string) error {
	for _, name := range []string{wasmFile, wasmExecFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("asset %s: %w", name, err)
		}
	}
	return nil
}

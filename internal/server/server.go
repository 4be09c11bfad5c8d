// Package server provides the local web UI for checking and ingesting proposals.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/ingest"
	"github.com/jonathan/novelty-score/internal/interpret"
	"github.com/jonathan/novelty-score/internal/novelty"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	client     *client.Client
	controller *novelty.Controller
	ingest     *ingest.Workflow
	pages      map[string]*template.Template
}

// Config holds server configuration
type Config struct {
	Port int
	// Timeout is the client's per-request timeout; zero means client.DefaultTimeout.
	Timeout time.Duration
	Client  *client.Client
	Ingest  *ingest.Options
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("scoring service client is required")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		client:     cfg.Client,
		controller: novelty.NewController(cfg.Client),
		ingest:     ingest.New(cfg.Client, cfg.Ingest),
		pages:      pages,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleNoveltyPage)
	mux.HandleFunc("GET /novelty-check", s.handleNoveltyPage)
	mux.HandleFunc("POST /novelty-check", s.handleNoveltyCheck)
	mux.HandleFunc("GET /ingest", s.handleIngestPage)
	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("GET /health", s.handleHealth)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: timeout + 30*time.Second, // a check can take as long as the client allows
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Late responses from in-flight checks are discarded.
	s.Close()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Close tears down the novelty check session.
func (s *Server) Close() {
	s.controller.Close()
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"hex":       func(c interpret.Color) string { return c.Hex() },
		"bytes":     func(n int64) string { return humanize.Bytes(uint64(max(n, 0))) },
		"errorText": novelty.Message,
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"novelty", "ingest"} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes a page into a buffer before writing the status.
func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Error rendering %s page: %v", page, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing %s page: %v", page, err)
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

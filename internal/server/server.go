// Package server exposes the estimator over HTTP. Every request runs an
// independent estimate against the shared, read-only catalog.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/alexiusacademia/goestimate/internal/catalog"
	"github.com/alexiusacademia/goestimate/internal/config"
	"github.com/alexiusacademia/goestimate/internal/estimate"
	"github.com/alexiusacademia/goestimate/internal/project"
	"github.com/alexiusacademia/goestimate/internal/report"
	"github.com/alexiusacademia/goestimate/internal/version"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves estimates over HTTP.
type Server struct {
	catalog   catalog.Catalog
	cfg       *config.Config
	router    *mux.Router
	AccessLog io.Writer // request log; os.Stdout when nil
}

// New creates a server over cat.
func New(cat catalog.Catalog, cfg *config.Config) *Server {
	s := &Server{catalog: cat, cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/catalog", s.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{category}", s.listCatalog).Methods(http.MethodGet)
	r.Handle("/estimates", handlers.ContentTypeHandler(http.HandlerFunc(s.createEstimate),
		"application/json", "application/yaml", "application/x-yaml", "text/yaml")).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	s.router = r

	return s
}

// Handler returns the routed handler wrapped with panic recovery and
// access logging.
func (s *Server) Handler() http.Handler {
	out := s.AccessLog
	if out == nil {
		out = os.Stdout
	}
	recovered := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
	return handlers.LoggingHandler(out, recovered)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("estimate API listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down estimate API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories)
}

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	rows, err := s.catalog.List(r.Context(), category)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// createEstimate accepts a project as JSON or YAML and returns the estimate
// as JSON, or as a PDF report when ?format=pdf.
func (s *Server) createEstimate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := project.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := estimate.Run(r.Context(), s.catalog, p, estimate.Options{
		Currency:     s.cfg.Report.Currency,
		HorizonYears: s.cfg.Analysis.LifecycleHorizonYears,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		w.Header().Set("Location", "/estimates/"+res.ID)
		writeJSON(w, http.StatusCreated, res)
	case "pdf":
		var buf bytes.Buffer
		if err := report.RenderPDF(&buf, res, report.PDFOptions{Charts: s.cfg.Report.Charts}); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Errorf("rendering PDF for estimate %s: %w", res.ID, err))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.ID+".pdf"))
		w.WriteHeader(http.StatusCreated)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Warn("writing PDF response", "estimate", res.ID, "error", err)
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", r.URL.Query().Get("format")))
	}
}

func statusFor(err error) int {
	var unresolved *catalog.UnresolvedError
	switch {
	case errors.Is(err, estimate.ErrInvalidProject):
		return http.StatusBadRequest
	case errors.As(err, &unresolved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrUnknownCategory):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON sends v with the given status. The body is encoded before the
// header is written so an encoding failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Del("Location")
		writeError(w, http.StatusInternalServerError, fmt.Errorf("encoding response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

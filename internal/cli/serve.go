package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/treeamps/treeamps/pkg/basisio"
	"github.com/treeamps/treeamps/pkg/errors"
	"github.com/treeamps/treeamps/pkg/pipeline"
	"github.com/treeamps/treeamps/pkg/tensor"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		Long: `Serve the generation pipeline over HTTP.

Endpoints:

  GET  /healthz            liveness probe
  GET  /api/v1/catalog     factor catalog for ?legs= and ?transversality=
  POST /api/v1/generate    enumerate a basis from a JSON options body

The generate endpoint accepts the same options as the gen command and
returns the basis as JSON along with its content hash and cache status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s := &server{cli: c, runner: runner}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// server holds HTTP handler state.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
}

// routes builds the chi router with middleware and endpoints.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/generate", s.handleGenerate)
	})

	return r
}

// requestID assigns a UUID to each request and attaches a scoped logger
// to the context.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := withLogger(r.Context(), s.cli.Logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs each request with its method, path, and duration.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		loggerFromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// handleHealth is the liveness probe.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// catalogResponse is the JSON payload of the catalog endpoint.
type catalogResponse struct {
	Legs           int                  `json:"legs"`
	Transversality string               `json:"transversality"`
	Counts         tensor.CatalogCounts `json:"counts"`
	PP             []string             `json:"pp"`
	PE             []string             `json:"pe"`
	EE             []string             `json:"ee"`
}

// handleCatalog returns the factor catalog for the query parameters.
func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	legs := 3
	if v := r.URL.Query().Get("legs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidLegs, "invalid legs: %q", v))
			return
		}
		legs = n
	}
	if err := errors.ValidateLegs(legs); err != nil {
		writeError(w, err)
		return
	}
	tv, err := tensor.ParseTransversality(r.URL.Query().Get("transversality"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "transversality"))
		return
	}

	cat := tensor.BuildCatalog(tensor.Config{Legs: legs, Transversality: tv, PolPattern: tensor.OnePerLeg})
	writeJSON(w, http.StatusOK, catalogResponse{
		Legs:           legs,
		Transversality: tv.String(),
		Counts:         cat.Counts(),
		PP:             factorStrings(cat.PP),
		PE:             factorStrings(cat.PE),
		EE:             factorStrings(cat.EE),
	})
}

// factorStrings renders factors in their pretty form for JSON payloads.
func factorStrings(factors []tensor.ScalarFactor) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.String()
	}
	return out
}

// generateResponse is the JSON payload of the generate endpoint.
type generateResponse struct {
	Basis     *basisio.Basis `json:"basis"`
	BasisHash string         `json:"basis_hash"`
	Count     int            `json:"count"`
	Cached    bool           `json:"cached"`
}

// handleGenerate enumerates a basis from the posted options.
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = loggerFromContext(r.Context())
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Basis:     basisio.New(opts.TensorConfig(), opts.Degree, opts.EE, result.Structures),
		BasisHash: result.BasisHash,
		Count:     result.Stats.StructureCount,
		Cached:    result.CacheInfo.BasisHit,
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the JSON payload for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status and writes it as JSON.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLegs, errors.ErrCodeInvalidDegree,
		errors.ErrCodeInvalidEE, errors.ErrCodeInvalidFormat, errors.ErrCodeInconsistentBasis:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

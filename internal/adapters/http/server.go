// Package http exposes the expression engine over a REST surface.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/pips/api"
	"github.com/aretw0/pips/internal/logging"
	"github.com/aretw0/pips/pkg/dist"
	"github.com/aretw0/pips/pkg/domain"
	"github.com/aretw0/pips/pkg/ports"
)

// Evaluator turns a dice expression into its distribution.
type Evaluator interface {
	Parse(expression string) (*dist.Distribution, error)
}

// Server wires the evaluator and chart renderer behind HTTP handlers.
type Server struct {
	evaluator Evaluator
	renderer  ports.ChartRenderer
	library   ports.Library
	logger    *slog.Logger
	version   string

	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithLibrary exposes a read-only expression library under /library.
// Without it the library routes answer 404.
func WithLibrary(library ports.Library) Option {
	return func(s *Server) {
		s.library = library
	}
}

// NewHandler creates the HTTP handler. Metrics are registered on the
// given registry so tests can use isolated registries.
func NewHandler(evaluator Evaluator, renderer ports.ChartRenderer, registry *prometheus.Registry, opts ...Option) http.Handler {
	s := &Server{
		evaluator: evaluator,
		renderer:  renderer,
		logger:    logging.NewNop(),
		version:   "dev",
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pips_http_requests_total",
			Help: "Total HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pips_eval_duration_seconds",
			Help:    "Time spent evaluating expressions.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	registry.MustRegister(s.requests, s.duration)

	r := chi.NewRouter()
	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Post("/eval", s.Eval)
	r.Post("/roll", s.Roll)
	r.Get("/chart", s.Chart)
	r.Get("/library", s.Library)
	r.Get("/library/{id}", s.LibraryEntry)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.OpenAPISpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return r
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Pips API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// EvalRequest is the body of POST /eval.
type EvalRequest struct {
	Expression string   `json:"expression"`
	Normalize  *float64 `json:"normalize,omitempty"`
}

// EvalResponse carries the evaluated distribution and its moments.
type EvalResponse struct {
	Expression    string             `json:"expression"`
	Distribution  *dist.Distribution `json:"distribution"`
	ExpectedValue float64            `json:"expectedValue"`
	StdDev        float64            `json:"stdDev"`
	TotalWeight   float64            `json:"totalWeight"`
}

// RollRequest is the body of POST /roll.
type RollRequest struct {
	Expression string `json:"expression"`
	Count      int    `json:"count,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// RollResponse carries sampled outcomes.
type RollResponse struct {
	Expression string    `json:"expression"`
	Results    []float64 `json:"results"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "/health", http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "/info", http.StatusOK, map[string]string{
		"name":    "pips",
		"version": s.version,
	})
}

// Eval handles POST /eval.
func (s *Server) Eval(w http.ResponseWriter, r *http.Request) {
	var body EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, "/eval", http.StatusBadRequest, "invalid request body")
		return
	}

	timer := prometheus.NewTimer(s.duration)
	d, err := s.evaluator.Parse(body.Expression)
	timer.ObserveDuration()
	if err != nil {
		s.logger.Warn("eval failed", "expression", body.Expression, "err", err)
		s.writeError(w, "/eval", http.StatusBadRequest, err.Error())
		return
	}

	if body.Normalize != nil {
		if *body.Normalize <= 0 {
			s.writeError(w, "/eval", http.StatusBadRequest, "normalize must be positive")
			return
		}
		d, err = d.Normalized(*body.Normalize)
		if err != nil {
			s.writeError(w, "/eval", http.StatusBadRequest, err.Error())
			return
		}
	}

	ev, err := d.ExpectedValue()
	if err != nil {
		s.writeError(w, "/eval", http.StatusInternalServerError, err.Error())
		return
	}
	sd, err := d.StdDev()
	if err != nil {
		s.writeError(w, "/eval", http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, "/eval", http.StatusOK, EvalResponse{
		Expression:    body.Expression,
		Distribution:  d,
		ExpectedValue: ev,
		StdDev:        sd,
		TotalWeight:   d.TotalWeight(),
	})
}

// Roll handles POST /roll.
func (s *Server) Roll(w http.ResponseWriter, r *http.Request) {
	var body RollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, "/roll", http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Count == 0 {
		body.Count = 1
	}
	if body.Count < 1 || body.Count > 10000 {
		s.writeError(w, "/roll", http.StatusBadRequest, "count must be between 1 and 10000")
		return
	}

	d, err := s.evaluator.Parse(body.Expression)
	if err != nil {
		s.writeError(w, "/roll", http.StatusBadRequest, err.Error())
		return
	}

	var src dist.Source
	if body.Seed != nil {
		src = dist.NewSeededSource(*body.Seed)
	} else {
		src = dist.NewRandomSource()
	}

	results := make([]float64, 0, body.Count)
	for i := 0; i < body.Count; i++ {
		v, err := d.Roll(src)
		if err != nil {
			s.writeError(w, "/roll", http.StatusInternalServerError, err.Error())
			return
		}
		results = append(results, v)
	}

	s.writeJSON(w, "/roll", http.StatusOK, RollResponse{
		Expression: body.Expression,
		Results:    results,
	})
}

// Chart handles GET /chart.
func (s *Server) Chart(w http.ResponseWriter, r *http.Request) {
	expression := r.URL.Query().Get("expression")
	if expression == "" {
		s.writeError(w, "/chart", http.StatusBadRequest, "expression query parameter is required")
		return
	}
	title := r.URL.Query().Get("title")
	if title == "" {
		title = expression
	}

	d, err := s.evaluator.Parse(expression)
	if err != nil {
		s.writeError(w, "/chart", http.StatusBadRequest, err.Error())
		return
	}

	chart, err := s.renderer.RenderChart(d, title)
	if err != nil {
		s.writeError(w, "/chart", http.StatusInternalServerError, err.Error())
		return
	}

	s.requests.WithLabelValues("/chart", strconv.Itoa(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, chart)
}

// Library handles GET /library.
func (s *Server) Library(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.writeError(w, "/library", http.StatusNotFound, "no expression library configured")
		return
	}

	entries, err := s.library.List(r.Context())
	if err != nil {
		s.writeError(w, "/library", http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, "/library", http.StatusOK, entries)
}

// LibraryEntry handles GET /library/{id}.
func (s *Server) LibraryEntry(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.writeError(w, "/library/{id}", http.StatusNotFound, "no expression library configured")
		return
	}

	entry, err := s.library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			s.writeError(w, "/library/{id}", http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, "/library/{id}", http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, "/library/{id}", http.StatusOK, entry)
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, code int, payload any) {
	s.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "route", route, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, route string, code int, message string) {
	s.writeJSON(w, route, code, map[string]string{"error": message})
}

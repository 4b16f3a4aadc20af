package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultMaxSteps bounds requests that do not set a budget, so no request can loop forever.
	DefaultMaxSteps = 1000

	// DefaultMaxStepsLimit is the largest budget a request may ask for.
	// Trace size grows with the square of the steps for machines that keep extending the tape.
	DefaultMaxStepsLimit = 10000

	// DefaultMaxBodyBytes caps request bodies.
	DefaultMaxBodyBytes = 1 << 20
)

// ErrStepBudgetTooLarge is returned for requests whose max_steps exceeds the server limit.
var ErrStepBudgetTooLarge = errors.New("max_steps exceeds the server limit")

// Server serves simulations over HTTP. Every request parses its own machine,
// so handlers share nothing but the metrics and the result cache.
type Server struct {
	Metrics *observability.Metrics
	Logger  *slog.Logger
	Cache   ports.ResultCache

	maxStepsLimit int
	maxBodyBytes  int64
	gatherer      prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithRegistry records run metrics into reg and serves them on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		m, err := observability.NewMetrics(reg)
		if err != nil {
			s.Logger.Error("failed to register metrics", "error", err)
			return
		}
		s.Metrics = m
		s.gatherer = reg
	}
}

// WithMaxStepsLimit sets the largest budget a request may ask for. Requests above it get 422.
func WithMaxStepsLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxStepsLimit = n
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies. Larger bodies get 413.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithCache serves repeated simulate requests from cache.
func WithCache(cache ports.ResultCache) Option {
	return func(s *Server) {
		s.Cache = cache
	}
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Spec           string  `json:"spec"`
	Input          *string `json:"input,omitempty"`
	MaxSteps       int     `json:"max_steps,omitempty"`
	Conf           string  `json:"conf,omitempty"`
	AllowStay      bool    `json:"allow_stay,omitempty"`
	ImplicitReject *bool   `json:"implicit_reject,omitempty"`
}

// SimulateResponse is the body returned by POST /simulate.
type SimulateResponse struct {
	Outcome        domain.Outcome `json:"outcome"`
	Steps          int            `json:"steps"`
	Truncated      bool           `json:"truncated"`
	Configurations []string       `json:"configurations"`
}

// GraphRequest is the body of POST /graph.
type GraphRequest struct {
	Spec   string `json:"spec"`
	Format string `json:"format,omitempty"`
}

// NewHandler creates a new HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{
		Logger:        slog.New(slog.DiscardHandler),
		maxStepsLimit: DefaultMaxStepsLimit,
		maxBodyBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/simulate", s.Simulate)
	r.Post("/graph", s.Graph)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": turing.Version,
	})
}

// Simulate handles POST /simulate.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}

	if body.MaxSteps == 0 {
		body.MaxSteps = DefaultMaxSteps
	}
	if body.MaxSteps > s.maxStepsLimit {
		err := fmt.Errorf("%w: %d > %d", ErrStepBudgetTooLarge, body.MaxSteps, s.maxStepsLimit)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	key := cacheKey(body)
	if s.Cache != nil {
		cached, err := s.Cache.Get(r.Context(), key)
		switch {
		case err == nil:
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		case !errors.Is(err, ports.ErrCacheMiss):
			s.Logger.Warn("Simulate: cache lookup failed", "error", err)
		}
	}

	resp, err := s.simulate(r.Context(), body)
	if err != nil {
		s.Logger.Info("Simulate: rejected machine", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	data = append(data, '\n')
	if s.Cache != nil {
		if err := s.Cache.Set(r.Context(), key, data); err != nil {
			s.Logger.Warn("Simulate: cache store failed", "error", err)
		}
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// cacheKey identifies a request by everything that can change its trace.
func cacheKey(body SimulateRequest) string {
	implicitReject := body.ImplicitReject == nil || *body.ImplicitReject
	variant, _ := domain.ParseVariant(body.Conf)
	data, _ := json.Marshal(struct {
		Spec           string  `json:"spec"`
		Input          *string `json:"input"`
		MaxSteps       int     `json:"max_steps"`
		Conf           string  `json:"conf"`
		AllowStay      bool    `json:"allow_stay"`
		ImplicitReject bool    `json:"implicit_reject"`
	}{body.Spec, body.Input, body.MaxSteps, variant.String(), body.AllowStay, implicitReject})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *Server) simulate(ctx context.Context, body SimulateRequest) (*SimulateResponse, error) {
	variant, err := domain.ParseVariant(body.Conf)
	if err != nil {
		return nil, err
	}
	opts := []turing.Option{
		turing.WithMaxSteps(body.MaxSteps),
		turing.WithAllowStay(body.AllowStay),
		turing.WithVariant(variant),
		turing.WithLogger(s.Logger),
	}
	if body.ImplicitReject != nil {
		opts = append(opts, turing.WithImplicitReject(*body.ImplicitReject))
	}
	if s.Metrics != nil {
		opts = append(opts, turing.WithLifecycleHooks(s.Metrics.Hooks()))
	}

	eng, err := turing.Parse(strings.NewReader(body.Spec), opts...)
	if err != nil {
		return nil, err
	}

	input := eng.Input()
	if body.Input != nil {
		input = *body.Input
	}
	res, err := eng.Simulate(ctx, input)
	if err != nil {
		return nil, err
	}

	return &SimulateResponse{
		Outcome:        res.Outcome,
		Steps:          res.Steps(),
		Truncated:      res.Trace.Truncation != nil,
		Configurations: res.Lines(),
	}, nil
}

// Graph handles POST /graph.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var body GraphRequest
	if !s.decode(w, r, &body) {
		return
	}

	eng, err := turing.Parse(strings.NewReader(body.Spec), turing.WithAllowStay(true))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	var out string
	switch strings.ToLower(body.Format) {
	case "", "dot":
		out = eng.DOT()
	case "mermaid":
		out = eng.Mermaid(nil)
	default:
		err := errors.New("unknown graph format: " + body.Format)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// decode reads a JSON body of at most maxBodyBytes. It writes the error response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
	} else {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
	}
	s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

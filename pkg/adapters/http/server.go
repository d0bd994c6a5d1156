// Package http exposes the likelihood engine over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hepworks/nllfit"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/policy"
	"github.com/hepworks/nllfit/pkg/ports"
)

// Server wires one model and one dataset behind HTTP handlers. Fits and
// scans mutate the model's shared parameters, so requests that evaluate the
// likelihood are serialized and parameters are restored to the baseline
// snapshot before each one.
type Server struct {
	model     ports.Model
	data      domain.Dataset
	minimizer ports.Minimizer
	store     ports.ResultStore
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	baseline  domain.ParamSnapshot

	mu chan struct{}
}

// Config collects the collaborators a Server needs. Store may be nil, in
// which case fit results are returned but not persisted.
type Config struct {
	Model     ports.Model
	Data      domain.Dataset
	Minimizer ports.Minimizer
	Store     ports.ResultStore
	Logger    *slog.Logger
	Hooks     domain.LifecycleHooks
}

// NewHandler builds the HTTP handler for the likelihood API.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Model == nil {
		return nil, errors.New("http: model is required")
	}
	if cfg.Minimizer == nil {
		return nil, errors.New("http: minimizer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		model:     cfg.Model,
		data:      cfg.Data,
		minimizer: cfg.Minimizer,
		store:     cfg.Store,
		logger:    logger,
		hooks:     cfg.Hooks,
		baseline:  cfg.Model.Snapshot(),
		mu:        make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/api/generate", s.generate)
	r.Post("/api/fit", s.fit)
	r.Post("/api/scan", s.scan)
	r.Get("/api/results", s.listResults)
	r.Get("/api/results/{id}", s.getResult)
	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// acquire serializes likelihood evaluations and resets the model parameters
// to the baseline so each request starts from the same state.
func (s *Server) acquire() func() {
	s.mu <- struct{}{}
	for _, p := range s.model.Parameters() {
		if v, ok := s.baseline[p.Name()]; ok {
			p.SetValue(v)
		}
	}
	return func() { <-s.mu }
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateRequest struct {
	Events int `json:"events"`
}

type generateResponse struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// generate draws events from the model and replaces the server's dataset.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("generate: invalid request body", "err", err)
		return
	}
	if body.Events <= 0 {
		http.Error(w, "events must be positive", http.StatusBadRequest)
		return
	}

	release := s.acquire()
	defer release()

	data, err := s.model.Generate(body.Events)
	if err != nil {
		http.Error(w, fmt.Sprintf("Generate error: %v", err), http.StatusInternalServerError)
		s.logger.Error("generate failed", "err", err)
		return
	}
	s.data = data
	writeJSON(w, http.StatusOK, generateResponse{Name: data.Name(), Values: data.Values()})
}

type policyRequest struct {
	Name        string   `json:"name"`
	PrintErrors *int     `json:"print_errors,omitempty"`
	Sentinel    *float64 `json:"sentinel,omitempty"`
}

func (s *Server) buildPolicy(req *policyRequest) (policy.Policy, error) {
	if req == nil {
		return policy.Wall(0), nil
	}
	limit := 0
	if req.PrintErrors != nil {
		limit = *req.PrintErrors
	}
	switch req.Name {
	case "", "wall":
		return policy.Wall(limit), nil
	case "passthrough":
		sentinel := 0.0
		if req.Sentinel != nil {
			sentinel = *req.Sentinel
		}
		return policy.Passthrough(limit, sentinel), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", req.Name)
	}
}

type fitRequest struct {
	Policy *policyRequest `json:"policy,omitempty"`
}

type fitResponse struct {
	ID     string            `json:"id,omitempty"`
	Result *domain.FitResult `json:"result"`
}

func (s *Server) fit(w http.ResponseWriter, r *http.Request) {
	var body fitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("fit: invalid request body", "err", err)
		return
	}
	pol, err := s.buildPolicy(body.Policy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	release := s.acquire()
	defer release()

	fitter, err := nllfit.New(s.model, s.data,
		nllfit.WithPolicy(pol),
		nllfit.WithMinimizer(s.minimizer),
		nllfit.WithLogger(s.logger),
		nllfit.WithLifecycleHooks(s.hooks),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := fitter.Fit(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Fit error: %v", err), http.StatusInternalServerError)
		s.logger.Error("fit failed", "err", err)
		return
	}

	resp := fitResponse{Result: res}
	if s.store != nil {
		resp.ID = fmt.Sprintf("fit-%d", time.Now().UnixNano())
		if err := s.store.Save(r.Context(), resp.ID, res); err != nil {
			http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
			s.logger.Error("result save failed", "err", err, "id", resp.ID)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type scanRequest struct {
	Parameter  string         `json:"parameter"`
	Lo         float64        `json:"lo"`
	Hi         float64        `json:"hi"`
	Points     int            `json:"points"`
	Shift      bool           `json:"shift"`
	ErrorValue *float64       `json:"error_value,omitempty"`
	Policy     *policyRequest `json:"policy,omitempty"`
}

type scanResponse struct {
	Parameter string       `json:"parameter"`
	Curve     domain.Curve `json:"curve"`
}

func (s *Server) scan(w http.ResponseWriter, r *http.Request) {
	var body scanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("scan: invalid request body", "err", err)
		return
	}
	pol, err := s.buildPolicy(body.Policy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	release := s.acquire()
	defer release()

	fitter, err := nllfit.New(s.model, s.data,
		nllfit.WithPolicy(pol),
		nllfit.WithMinimizer(s.minimizer),
		nllfit.WithLogger(s.logger),
		nllfit.WithLifecycleHooks(s.hooks),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var opts []nllfit.ScanOption
	if body.Shift {
		opts = append(opts, nllfit.ShiftToZero())
	}
	if body.ErrorValue != nil {
		opts = append(opts, nllfit.EvalErrorValue(*body.ErrorValue))
	}
	curve, err := fitter.Scan(body.Parameter, body.Lo, body.Hi, body.Points, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyRange) || errors.Is(err, domain.ErrUnknownParameter) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Scan error: %v", err), status)
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Parameter: body.Parameter, Curve: curve})
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no result store configured", http.StatusNotImplemented)
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("result list failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no result store configured", http.StatusNotImplemented)
		return
	}
	id := chi.URLParam(r, "id")
	res, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			http.Error(w, "result not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("result load failed", "err", err, "id", id)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

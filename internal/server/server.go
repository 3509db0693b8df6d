package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/copyleftdev/QUADRA/internal/config"
	"github.com/copyleftdev/QUADRA/internal/logging"
	"github.com/copyleftdev/QUADRA/internal/quadrature"
	"github.com/copyleftdev/QUADRA/internal/quadrature/gauss"
)

// Logger defines the logging interface used by the server
// This allows us to be flexible with our logging implementation
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// IntegrateRequest describes a definite integral to compute. The integrand
// is named; only functions from the built-in registry can be evaluated. The
// "polynomial" integrand additionally needs coefficients, lowest degree
// first.
type IntegrateRequest struct {
	Integrand        string    `json:"integrand"`
	Lower            float64   `json:"lower"`
	Upper            float64   `json:"upper"`
	Coefficients     []float64 `json:"coefficients,omitempty"`
	Method           string    `json:"method,omitempty"`
	MaxEvaluations   int       `json:"max_evaluations,omitempty"`
	Points           int       `json:"points,omitempty"`
	RelativeAccuracy float64   `json:"relative_accuracy,omitempty"`
	AbsoluteAccuracy float64   `json:"absolute_accuracy,omitempty"`
}

// IntegrateResponse carries the estimate and the work it took.
type IntegrateResponse struct {
	Value       float64 `json:"value"`
	Method      string  `json:"method"`
	Iterations  int     `json:"iterations"`
	Evaluations int     `json:"evaluations"`
}

// RuleResponse carries the nodes and weights of a Gaussian quadrature rule.
type RuleResponse struct {
	Family  string    `json:"family"`
	Order   int       `json:"order"`
	Nodes   []float64 `json:"nodes"`
	Weights []float64 `json:"weights"`
}

// Server implements the HTTP and JSON-RPC surface of the quadrature
// service. Rule factories are shared across requests so computed rules are
// cached process-wide.
type Server struct {
	cfg     *config.Config
	logger  Logger
	factory *gauss.IntegratorFactory
	metrics *metrics
}

// NewServer creates a new server instance with the given config and logger
// The logger parameter accepts any type that implements the Logger interface
func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		factory: gauss.NewIntegratorFactory(),
		metrics: newMetrics(),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/integrate", s.handleIntegrate)
		r.Get("/rule/{family}/{order}", s.handleRule)
		r.Get("/integrands", s.handleIntegrands)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// newIntegrator builds the integrator named by the request, falling back to
// the configured defaults for anything the request leaves unset.
func (s *Server) newIntegrator(req *IntegrateRequest) (quadrature.Integrator, string, error) {
	method := req.Method
	if method == "" {
		method = s.cfg.Quadrature.DefaultMethod
	}

	relAcc := req.RelativeAccuracy
	if relAcc == 0 {
		relAcc = quadrature.DefaultRelativeAccuracy
	}
	absAcc := req.AbsoluteAccuracy
	if absAcc == 0 {
		absAcc = quadrature.DefaultAbsoluteAccuracy
	}

	switch method {
	case "romberg":
		in, err := quadrature.NewRombergIntegratorWithAccuracy(relAcc, absAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.RombergMaxIterationsCount)
		return in, method, err
	case "midpoint":
		in, err := quadrature.NewMidPointIntegratorWithAccuracy(relAcc, absAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.MidPointMaxIterationsCount)
		return in, method, err
	case "trapezoid":
		in, err := quadrature.NewTrapezoidIntegratorWithAccuracy(relAcc, absAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.TrapezoidMaxIterationsCount)
		return in, method, err
	case "simpson":
		in, err := quadrature.NewSimpsonIntegratorWithAccuracy(relAcc, absAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.SimpsonMaxIterationsCount)
		return in, method, err
	case "legendre-gauss":
		points := req.Points
		if points <= 0 {
			points = s.cfg.Quadrature.DefaultPoints
		}
		in, err := quadrature.NewIterativeLegendreGaussIntegratorWithAccuracy(points,
			relAcc, absAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.DefaultMaximalIterationCount)
		return in, method, err
	default:
		return nil, method, fmt.Errorf("unknown integration method %q", method)
	}
}

// resolveIntegrand picks the function to integrate. The "polynomial" name is
// special: the function is built from the request's coefficients instead of
// coming from the registry.
func resolveIntegrand(req *IntegrateRequest) (quadrature.UnivariateFunction, error) {
	if req.Integrand == "polynomial" {
		if len(req.Coefficients) == 0 {
			return nil, fmt.Errorf("polynomial integrand requires coefficients")
		}
		return PolynomialIntegrand(req.Coefficients), nil
	}
	f, ok := LookupIntegrand(req.Integrand)
	if !ok {
		return nil, fmt.Errorf("unknown integrand %q", req.Integrand)
	}
	return f, nil
}

// integrate runs one request through the numeric core.
func (s *Server) integrate(req *IntegrateRequest) (*IntegrateResponse, error) {
	f, err := resolveIntegrand(req)
	if err != nil {
		return nil, err
	}

	integrator, method, err := s.newIntegrator(req)
	if err != nil {
		return nil, err
	}

	maxEval := req.MaxEvaluations
	if maxEval <= 0 {
		maxEval = s.cfg.Quadrature.DefaultMaxEvaluations
	}

	start := time.Now()
	value, err := integrator.Integrate(maxEval, f, req.Lower, req.Upper)
	s.metrics.observe(method, time.Since(start), integrator.Evaluations(), err)
	if err != nil {
		return nil, err
	}

	return &IntegrateResponse{
		Value:       value,
		Method:      method,
		Iterations:  integrator.Iterations(),
		Evaluations: integrator.Evaluations(),
	}, nil
}

// rule fetches a cached Gaussian quadrature rule by family and order.
func (s *Server) rule(family string, order int) (*RuleResponse, error) {
	if order < 1 || order > s.cfg.Quadrature.MaxRuleOrder {
		return nil, fmt.Errorf("order %d is outside [1, %d]", order, s.cfg.Quadrature.MaxRuleOrder)
	}

	var (
		r   gauss.Rule
		err error
	)
	switch family {
	case "legendre":
		r, err = s.factory.LegendreRule(order)
	case "hermite":
		r, err = s.factory.HermiteRule(order)
	case "laguerre":
		r, err = s.factory.LaguerreRule(order)
	default:
		return nil, fmt.Errorf("unknown rule family %q", family)
	}
	if err != nil {
		return nil, err
	}

	return &RuleResponse{
		Family:  family,
		Order:   order,
		Nodes:   r.Nodes,
		Weights: r.Weights,
	}, nil
}

// handleIntegrate handles the HTTP POST /api/v1/integrate endpoint
func (s *Server) handleIntegrate(w http.ResponseWriter, r *http.Request) {
	var req IntegrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.integrate(&req)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		s.logger.Error("Integration failed", map[string]interface{}{
			"integrand": req.Integrand,
			"method":    req.Method,
			"error":     err.Error(),
		})
		w.WriteHeader(statusForError(err))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// handleRule handles the HTTP GET /api/v1/rule/{family}/{order} endpoint
func (s *Server) handleRule(w http.ResponseWriter, r *http.Request) {
	family := chi.URLParam(r, "family")
	order, err := strconv.Atoi(chi.URLParam(r, "order"))
	if err != nil {
		http.Error(w, "Invalid rule order", http.StatusBadRequest)
		return
	}

	result, err := s.rule(family, order)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// handleIntegrands lists the names the integrate endpoints accept.
func (s *Server) handleIntegrands(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"integrands": IntegrandNames(),
	})
}

// handleJSONRPC handles JSON-RPC 2.0 requests
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string        `json:"jsonrpc"`
		ID      interface{}   `json:"id"`
		Method  string        `json:"method"`
		Params  []interface{} `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, -32700, "Parse error", nil)
		return
	}

	// Validate JSON-RPC 2.0 request
	if request.JSONRPC != "2.0" {
		s.respondWithError(w, -32600, "Invalid Request", nil)
		return
	}

	// Route to appropriate handler
	var result interface{}
	var err error

	switch request.Method {
	case "quadrature.integrate":
		result, err = s.rpcIntegrate(request.Params)
	case "quadrature.rule":
		result, err = s.rpcRule(request.Params)
	default:
		s.respondWithError(w, -32601, "Method not found", request.ID)
		return
	}

	if err != nil {
		s.respondWithError(w, -32000, err.Error(), request.ID)
		return
	}

	// Send successful response
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// rpcIntegrate handles the quadrature.integrate JSON-RPC method.
// Expected parameters: {"integrand": "sin", "lower": 0, "upper": 3.14159, "method": "romberg"}
func (s *Server) rpcIntegrate(params []interface{}) (interface{}, error) {
	paramMap, err := singleObjectParam(params)
	if err != nil {
		return nil, err
	}

	// round-trip through JSON to reuse the request struct decoding
	raw, err := json.Marshal(paramMap)
	if err != nil {
		return nil, err
	}
	var req IntegrateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v", err)
	}
	if req.Integrand == "" {
		return nil, fmt.Errorf("integrand is required")
	}

	return s.integrate(&req)
}

// rpcRule handles the quadrature.rule JSON-RPC method.
// Expected parameters: {"family": "legendre", "order": 5}
func (s *Server) rpcRule(params []interface{}) (interface{}, error) {
	paramMap, err := singleObjectParam(params)
	if err != nil {
		return nil, err
	}

	family, ok := paramMap["family"].(string)
	if !ok || family == "" {
		return nil, fmt.Errorf("family is required")
	}
	order, ok := paramMap["order"].(float64)
	if !ok {
		return nil, fmt.Errorf("order is required")
	}

	return s.rule(family, int(order))
}

// singleObjectParam extracts the single positional object parameter used by
// all RPC methods.
func singleObjectParam(params []interface{}) (map[string]interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("missing required parameters")
	}
	paramMap, ok := params[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid parameter format, expected object")
	}
	return paramMap, nil
}

// respondWithError sends a JSON-RPC 2.0 error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})

	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// statusForError maps numeric-core failures onto HTTP statuses. Budget
// exhaustion is the caller asking for more work than allowed, everything
// else from the core is a bad request.
func statusForError(err error) int {
	var qerr *quadrature.Error
	if errors.As(err, &qerr) {
		if qerr.Kind == quadrature.KindTooManyEvaluations || qerr.Kind == quadrature.KindTooManyIterations {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadRequest
	}
	var gerr *gauss.Error
	if errors.As(err, &gerr) {
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}

// MetricsRegistry exposes the server's metrics for the /metrics endpoint.
func (s *Server) MetricsRegistry() *prometheus.Registry {
	return s.metrics.registry
}

// Close cleans up resources
func (s *Server) Close() error {
	return nil
}

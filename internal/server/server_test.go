package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/QUADRA/internal/config"
	"github.com/copyleftdev/QUADRA/internal/logging"
)

// testConfig creates a test configuration with default values
func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{
		Environment: "test",
	}

	// Set up HTTP config
	cfg.HTTP.Port = 8080
	cfg.HTTP.ReadTimeout = 30 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 120 * time.Second
	cfg.HTTP.ShutdownTimeout = 30 * time.Second

	// Set up logging
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	cfg.Logging.Output = "stdout"

	// Set up quadrature defaults
	cfg.Quadrature.DefaultMethod = "romberg"
	cfg.Quadrature.DefaultMaxEvaluations = 100000
	cfg.Quadrature.DefaultPoints = 5
	cfg.Quadrature.MaxRuleOrder = 1000

	return cfg
}

// testLogger creates a test logger
func testLogger(t *testing.T) *logging.Logger {
	logger, err := logging.NewLogger(&logging.Config{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

// testRouter creates a router with all server routes registered
func testRouter(t *testing.T) chi.Router {
	srv := NewServer(testConfig(t), testLogger(t))
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return r
}

func TestNewServer(t *testing.T) {
	srv := NewServer(testConfig(t), testLogger(t))
	assert.NotNil(t, srv, "Server should be created")
	assert.NotNil(t, srv.MetricsRegistry(), "Server should expose a metrics registry")
	assert.NoError(t, srv.Close(), "Close should not return an error")
}

func TestHandleIntegrate(t *testing.T) {
	tests := []struct {
		name       string
		body       IntegrateRequest
		expectCode int
		expectVal  float64
		tolerance  float64
	}{
		{
			name: "sine over half period",
			body: IntegrateRequest{
				Integrand: "sin",
				Lower:     0,
				Upper:     math.Pi,
			},
			expectCode: http.StatusOK,
			expectVal:  2,
			tolerance:  1e-8,
		},
		{
			name: "square with simpson",
			body: IntegrateRequest{
				Integrand: "square",
				Lower:     0,
				Upper:     1,
				Method:    "simpson",
			},
			expectCode: http.StatusOK,
			expectVal:  1.0 / 3.0,
			tolerance:  1e-6,
		},
		{
			name: "runge with legendre-gauss",
			body: IntegrateRequest{
				Integrand: "runge",
				Lower:     -1,
				Upper:     1,
				Method:    "legendre-gauss",
				Points:    7,
			},
			expectCode: http.StatusOK,
			expectVal:  2.0 / 5.0 * math.Atan(5),
			tolerance:  1e-6,
		},
		{
			// 1 + 2x + 3x² integrates to x + x² + x³
			name: "polynomial from coefficients",
			body: IntegrateRequest{
				Integrand:    "polynomial",
				Coefficients: []float64{1, 2, 3},
				Lower:        0,
				Upper:        1,
				Method:       "simpson",
			},
			expectCode: http.StatusOK,
			expectVal:  3,
			tolerance:  1e-10,
		},
		{
			name: "polynomial without coefficients",
			body: IntegrateRequest{
				Integrand: "polynomial",
				Lower:     0,
				Upper:     1,
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "unknown integrand",
			body: IntegrateRequest{
				Integrand: "no-such-function",
				Lower:     0,
				Upper:     1,
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "unknown method",
			body: IntegrateRequest{
				Integrand: "sin",
				Lower:     0,
				Upper:     1,
				Method:    "monte-carlo",
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "reversed interval",
			body: IntegrateRequest{
				Integrand: "sin",
				Lower:     1,
				Upper:     0,
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "exhausted evaluation budget",
			body: IntegrateRequest{
				Integrand:      "sin",
				Lower:          0,
				Upper:          math.Pi,
				MaxEvaluations: 3,
			},
			expectCode: http.StatusUnprocessableEntity,
		},
	}

	r := testRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/v1/integrate", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectCode, rr.Code, "status code should match")
			if tt.expectCode != http.StatusOK {
				return
			}

			var resp IntegrateResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.InDelta(t, tt.expectVal, resp.Value, tt.tolerance, "integral value")
			assert.Greater(t, resp.Evaluations, 0, "evaluation count should be reported")
		})
	}
}

func TestHandleRule(t *testing.T) {
	r := testRouter(t)

	t.Run("legendre order 3", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/rule/legendre/3", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp RuleResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "legendre", resp.Family)
		require.Len(t, resp.Nodes, 3)
		assert.InDelta(t, -math.Sqrt(0.6), resp.Nodes[0], 1e-12)
		assert.Equal(t, 0.0, resp.Nodes[1])
		assert.InDelta(t, math.Sqrt(0.6), resp.Nodes[2], 1e-12)
		assert.InDelta(t, 8.0/9.0, resp.Weights[1], 1e-12)
	})

	t.Run("invalid family", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/rule/chebyshev/3", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid order", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/rule/legendre/0",
			"/api/v1/rule/legendre/1001",
			"/api/v1/rule/legendre/abc",
		} {
			req := httptest.NewRequest("GET", path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "path %s", path)
		}
	})
}

func TestHandleIntegrands(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/integrands", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Integrands []string `json:"integrands"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Integrands, "sin")
	assert.Contains(t, resp.Integrands, "runge")
}

func TestHandleJSONRPC(t *testing.T) {
	r := testRouter(t)

	rpc := func(t *testing.T, body string) map[string]interface{} {
		req := httptest.NewRequest("POST", "/rpc", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		return resp
	}

	t.Run("integrate", func(t *testing.T) {
		resp := rpc(t, `{"jsonrpc":"2.0","id":1,"method":"quadrature.integrate",
			"params":[{"integrand":"cos","lower":0,"upper":1.5707963267948966}]}`)

		require.Nil(t, resp["error"], "response should not carry an error")
		result, ok := resp["result"].(map[string]interface{})
		require.True(t, ok, "result should be an object")
		assert.InDelta(t, 1.0, result["value"], 1e-8)
	})

	t.Run("rule", func(t *testing.T) {
		resp := rpc(t, `{"jsonrpc":"2.0","id":2,"method":"quadrature.rule",
			"params":[{"family":"hermite","order":1}]}`)

		require.Nil(t, resp["error"])
		result, ok := resp["result"].(map[string]interface{})
		require.True(t, ok)
		weights, ok := result["weights"].([]interface{})
		require.True(t, ok)
		require.Len(t, weights, 1)
		assert.InDelta(t, math.Sqrt(math.Pi), weights[0], 1e-12)
	})

	t.Run("method not found", func(t *testing.T) {
		resp := rpc(t, `{"jsonrpc":"2.0","id":3,"method":"quadrature.nope","params":[]}`)

		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok, "response should carry an error object")
		assert.Equal(t, float64(-32601), errObj["code"])
	})

	t.Run("invalid version", func(t *testing.T) {
		resp := rpc(t, `{"jsonrpc":"1.0","id":4,"method":"quadrature.rule","params":[]}`)

		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(-32600), errObj["code"])
	})

	t.Run("missing parameters", func(t *testing.T) {
		resp := rpc(t, `{"jsonrpc":"2.0","id":5,"method":"quadrature.integrate","params":[]}`)

		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(-32000), errObj["code"])
	})
}

func TestRespondWithError(t *testing.T) {
	srv := NewServer(testConfig(t), testLogger(t))

	rr := httptest.NewRecorder()
	srv.respondWithError(rr, -32700, "Parse error", "abc")

	assert.Equal(t, http.StatusOK, rr.Code, "JSON-RPC errors ride on 200 responses")

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response should contain error object")
	assert.Equal(t, float64(-32700), errObj["code"])
	assert.Equal(t, "Parse error", errObj["message"])
	assert.Equal(t, "abc", response["id"])
}

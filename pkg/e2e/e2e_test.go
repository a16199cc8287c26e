package e2e_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/germanamz/e2echat/pkg/e2e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnv is a lookup that resolves nothing, so tests never depend on the
// process environment.
func noEnv(string) string { return "" }

func newServerClient(t *testing.T, handler http.HandlerFunc) *e2e.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := e2e.New(e2e.Config{
		EndpointURL: srv.URL,
		APIKey:      "test-key",
		Lookup:      noEnv,
	})
	require.NoError(t, err)

	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		cfg   e2e.Config
		field string
	}{
		{"no endpoint", e2e.Config{APIKey: "k", Lookup: noEnv}, "endpoint_url"},
		{"no api key", e2e.Config{EndpointURL: "https://x", Lookup: noEnv}, "api_key"},
		{"nothing", e2e.Config{Lookup: noEnv}, "endpoint_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e2e.New(tt.cfg)
			require.Error(t, err)

			var cfgErr *e2e.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNew_EnvFallback(t *testing.T) {
	env := map[string]string{
		e2e.EnvEndpointURL: "https://infer.e2enetworks.net/v1",
		e2e.EnvAPIKey:      "env-key",
	}

	c, err := e2e.New(e2e.Config{Lookup: func(k string) string { return env[k] }})
	require.NoError(t, err)

	assert.Equal(t, "https://infer.e2enetworks.net/v1", c.EndpointURL())
	assert.Equal(t, e2e.DefaultModel, c.Model())
}

func TestNew_ExplicitBeatsEnv(t *testing.T) {
	c, err := e2e.New(e2e.Config{
		EndpointURL: "https://explicit",
		APIKey:      "explicit-key",
		Lookup:      func(string) string { return "from-env" },
	})
	require.NoError(t, err)

	assert.Equal(t, "https://explicit", c.EndpointURL())
}

func TestCall_Success(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		req := readBody(t, r)
		assert.Equal(t, "Hi", req["prompt"])
		assert.Equal(t, "e2e-llm", req["model"])

		writeJSON(t, w, map[string]any{"response": "Hello there!"})
	})

	got := c.Call(context.Background(), "Hi")
	assert.Equal(t, "Hello there!", got)
}

func TestCall_NonOKStatus(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, "rate limited")
	})

	got := c.Call(context.Background(), "Hi")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "429")
	assert.Contains(t, got, "rate limited")
}

func TestCall_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(t, w, map[string]any{"response": "too late"})
	}))
	t.Cleanup(srv.Close)

	c, err := e2e.New(e2e.Config{
		EndpointURL: srv.URL,
		APIKey:      "k",
		Timeout:     50 * time.Millisecond,
		Lookup:      noEnv,
	})
	require.NoError(t, err)

	got := c.Call(context.Background(), "Hi")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "timed out")
}

func TestCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	c, err := e2e.New(e2e.Config{EndpointURL: url, APIKey: "k", Lookup: noEnv})
	require.NoError(t, err)

	got := c.Call(context.Background(), "Hi")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "request failed")
}

func TestCall_InvalidJSON(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "not json at all")
	})

	got := c.Call(context.Background(), "Hi")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "failed to parse JSON response")
}

func TestGenerate_TypedErrors(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := c.Generate(context.Background(), "Hi")
	require.Error(t, err)

	var statusErr *e2e.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestCall_SendsOverridesAndStop(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		assert.Equal(t, 0.2, req["temperature"])
		assert.Equal(t, []any{"END"}, req["stop"])
		assert.Equal(t, 1.25, req["repetition_penalty"])

		writeJSON(t, w, map[string]any{"text": "ok"})
	})

	got := c.Call(context.Background(), "Hi",
		e2e.WithTemperature(0.2),
		e2e.WithStop("END"),
		e2e.WithParam("repetition_penalty", 1.25),
	)
	assert.Equal(t, "ok", got)
}

func TestGenerateBatch_OrderAndFailureIsolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		prompt, _ := req["prompt"].(string)
		if prompt == "slow" {
			time.Sleep(300 * time.Millisecond)
		}

		writeJSON(t, w, map[string]any{"response": "answer to " + prompt})
	}))
	t.Cleanup(srv.Close)

	c, err := e2e.New(e2e.Config{
		EndpointURL: srv.URL,
		APIKey:      "k",
		Timeout:     100 * time.Millisecond,
		Lookup:      noEnv,
	})
	require.NoError(t, err)

	got := c.GenerateBatch(context.Background(), []string{"one", "slow", "three"})

	require.Len(t, got, 3)
	assert.Equal(t, "answer to one", got[0])
	assert.Contains(t, got[1], "Error:")
	assert.Contains(t, got[1], "timed out")
	assert.Equal(t, "answer to three", got[2])
}

func TestCall_UnrecognizedShapeDegradesToJSON(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"foo": "bar"})
	})

	got := c.Call(context.Background(), "Hi")
	assert.Equal(t, `{"foo":"bar"}`, got)
}

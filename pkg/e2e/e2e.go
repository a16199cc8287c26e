// Package e2e is a client for E2E Networks hosted LLM inference endpoints.
// A Client resolves its credentials once at construction, merges per-call
// overrides into an open request payload, performs a single synchronous POST
// per prompt, and normalizes the heterogeneous response shapes deployed
// endpoints return into a plain text completion. No retries are performed and
// no conversation state is kept — history belongs to the caller.
package e2e

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
	"strings"
	"time"
)

// Environment variables consulted when credentials are not set explicitly.
const (
	EnvEndpointURL = "E2E_ENDPOINT_URL"
	EnvAPIKey      = "E2E_API_KEY" //nolint:gosec // env var name, not a secret
)

// Defaults applied to zero Config fields.
const (
	DefaultModel       = "e2e-llm"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultTopP        = 0.9
	DefaultTimeout     = 30 * time.Second
)

// LookupFunc resolves a named environment credential. The client never reads
// the process environment directly; construction goes through a LookupFunc so
// tests can inject their own resolver.
type LookupFunc func(key string) string

// Config holds client construction settings. Zero fields fall back to the
// package defaults; EndpointURL and APIKey additionally fall back to the
// E2E_ENDPOINT_URL and E2E_API_KEY environment variables.
type Config struct {
	EndpointURL string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
	Timeout     time.Duration
	Stop        []string          // Default stop sequences; omitted from the payload when empty.
	Headers     map[string]string // Extra headers applied to every request.
	HTTPClient  *http.Client      // Falls back to a plain http.Client; the timeout is enforced per request.
	Lookup      LookupFunc        // Falls back to os.Getenv.
	Logger      *slog.Logger      // Falls back to a no-op logger.
}

// Client talks to a single E2E Networks LLM deployment. It is safe for
// concurrent calls but not for concurrent reconfiguration; change settings
// only between requests.
type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

// New resolves credentials (explicit value first, then environment) and
// returns a configured Client. It fails with a *ConfigError when the endpoint
// URL or API key cannot be resolved. This is the only validation performed;
// sampling parameters are never range-checked.
func New(cfg Config) (*Client, error) {
	lookup := cfg.Lookup
	if lookup == nil {
		lookup = os.Getenv
	}

	if cfg.EndpointURL == "" {
		cfg.EndpointURL = lookup(EnvEndpointURL)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = lookup(EnvAPIKey)
	}

	if cfg.EndpointURL == "" {
		return nil, &ConfigError{
			Field:  "endpoint_url",
			Reason: "must be provided via parameter or " + EnvEndpointURL + " environment variable",
		}
	}
	if cfg.APIKey == "" {
		return nil, &ConfigError{
			Field:  "api_key",
			Reason: "must be provided via parameter or " + EnvAPIKey + " environment variable",
		}
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultTopP
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{cfg: cfg, client: client, log: log}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// EndpointURL returns the resolved endpoint URL.
func (c *Client) EndpointURL() string { return c.cfg.EndpointURL }

// BuildPayload merges the client defaults with per-call options into the
// request body: {prompt, temperature, max_tokens, top_p, model, stop?, ...extra}.
// Known sampling overrides replace the defaults in place; unknown parameters
// append after them. The stop field is included only when non-empty.
func (c *Client) BuildPayload(prompt string, opts ...CallOption) *Payload {
	co := newCallOptions(opts)

	p := NewPayload()
	p.Set("prompt", prompt)
	p.Set("temperature", c.cfg.Temperature)
	p.Set("max_tokens", c.cfg.MaxTokens)
	p.Set("top_p", c.cfg.TopP)
	p.Set("model", c.cfg.Model)

	stop := c.cfg.Stop
	if co.hasStop {
		stop = co.stop
	}
	if len(stop) > 0 {
		p.Set("stop", stop)
	}

	for _, k := range co.params.Keys() {
		v, _ := co.params.Get(k)
		switch k {
		case "temperature", "max_tokens", "top_p":
			p.Set(k, v)
		default:
			// Pass-through parameters never clobber fields the client owns.
			if !p.Has(k) {
				p.Set(k, v)
			}
		}
	}

	return p
}

// Generate sends one prompt and returns the completion text. Failures come
// back as typed errors (*TimeoutError, *StatusError, *TransportError,
// *ParseError); use Call for the string-degrading surface.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...CallOption) (string, error) {
	payload := c.BuildPayload(prompt, opts...)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	c.log.InfoContext(ctx, "calling E2E LLM endpoint", "url", c.cfg.EndpointURL, "model", c.cfg.Model)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: c.cfg.Timeout}
		}
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: c.cfg.Timeout}
		}
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &ParseError{Err: err}
	}

	text, recognized := ExtractText(result)
	if !recognized {
		c.log.WarnContext(ctx, "unrecognized response format", "body", string(respBody))
	}

	return text, nil
}

// Call sends one prompt and always returns displayable text. Every call-time
// failure — timeout, non-2xx status, transport error, bad JSON, anything
// else — is absorbed into a string prefixed with "Error:" so UI callers need
// no error handling of their own. Errors and completions are distinguished
// only by content.
func (c *Client) Call(ctx context.Context, prompt string, opts ...CallOption) string {
	text, err := c.Generate(ctx, prompt, opts...)
	if err != nil {
		c.log.Error("E2E LLM call failed", "error", err)
		return "Error: " + err.Error()
	}
	return text
}

// GenerateBatch sends each prompt in input order, one request at a time, and
// returns one result per prompt. A failed prompt yields its error string in
// place; later prompts still run.
func (c *Client) GenerateBatch(ctx context.Context, prompts []string, opts ...CallOption) []string {
	results := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		results = append(results, c.Call(ctx, prompt, opts...))
	}
	return results
}

// Package providers queries each tracked AI service's usage endpoint and
// normalizes the heterogeneous responses into models.ServiceUsage records.
// Fetches never return errors; every failure mode is encoded in the record.
package providers

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ai-quota-dash-go/internal/credentials"
	"github.com/ai-quota-dash-go/internal/models"
)

// Endpoints holds the usage endpoint URL per provider, overridable in tests.
type Endpoints struct {
	ClaudeUsage    string
	CodexUsage     string
	CodexModels    string
	ZaiQuota       string
	OpenRouterData string
	OpencodeZen    string
}

// DefaultEndpoints returns the live provider endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ClaudeUsage:    "https://api.anthropic.com/api/oauth/usage",
		CodexUsage:     "https://chatgpt.com/backend-api/wham/usage",
		CodexModels:    "https://api.openai.com/v1/models",
		ZaiQuota:       "https://api.z.ai/api/monitor/usage/quota/limit",
		OpenRouterData: "https://openrouter.ai/api/v1/credits",
		OpencodeZen:    "https://opencode.ai/zen/v1/balance",
	}
}

// Client fetches and normalizes usage for all providers. It issues exactly
// one GET per provider per call (plus the codex API-key validation call) and
// holds no state between invocations.
type Client struct {
	http      *http.Client
	resolver  *credentials.Resolver
	endpoints Endpoints
	log       *zap.SugaredLogger
}

// NewClient creates a usage client. The HTTP transport uses connection
// pooling sized for the five-way fan-out and a bounded per-request timeout.
func NewClient(resolver *credentials.Resolver, timeout time.Duration, log *zap.SugaredLogger) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		http:      httpClient,
		resolver:  resolver,
		endpoints: DefaultEndpoints(),
		log:       log,
	}
}

// SetEndpoints overrides the provider endpoints (tests).
func (c *Client) SetEndpoints(e Endpoints) {
	c.endpoints = e
}

// httpGet issues one GET and returns the status code and raw body. Network
// failures (DNS, refused, timeout) are reported as status 0 with the error
// text as body, matching how HTTP failures surface downstream.
func (c *Client) httpGet(ctx context.Context, url string, headers map[string]string) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, []byte(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, []byte(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, []byte(err.Error())
	}
	return resp.StatusCode, body
}

// truncateHint renders a response body as a remediation hint, capped at 200
// characters. fallback is used when the body is empty.
func truncateHint(body []byte, fallback string) string {
	s := string(body)
	if s == "" {
		return fallback
	}
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

// Fetch returns the normalized usage record for one provider.
func (c *Client) Fetch(ctx context.Context, svc models.Service) models.ServiceUsage {
	switch svc {
	case models.ServiceClaude:
		return c.Claude(ctx)
	case models.ServiceCodex:
		return c.Codex(ctx)
	case models.ServiceZai:
		return c.Zai(ctx)
	case models.ServiceOpenRouter:
		return c.OpenRouter(ctx)
	case models.ServiceOpencodeZen:
		return c.OpencodeZen(ctx)
	}
	return models.ServiceUsage{
		Service: svc,
		Status:  models.StatusError,
		Error:   "Unknown service",
	}
}

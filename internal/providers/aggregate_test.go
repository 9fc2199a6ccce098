package providers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/settings"
)

func allCredentials() settings.Map {
	return settings.Map{
		"CLAUDE_ACCESS_TOKEN": "tok-claude",
		"OPENAI_API_KEY":      "sk-test",
		"ZAI_API_KEY":         "zai-key",
		"OPENROUTER_API_KEY":  "or-key",
		"OPENCODE_API_KEY":    "zen-key",
	}
}

func TestFetchAllCanonicalOrder(t *testing.T) {
	// Claude answers slowly so a faster sibling would overtake it if order
	// depended on completion.
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/claude":
			time.Sleep(50 * time.Millisecond)
			jsonHandler(http.StatusOK, `{"five_hour": {"utilization": 10}}`)(w, r)
		case "/models":
			jsonHandler(http.StatusOK, `{"object": "list"}`)(w, r)
		case "/zai":
			jsonHandler(http.StatusOK, `{"success": true, "data": {"limits": []}}`)(w, r)
		case "/openrouter":
			jsonHandler(http.StatusOK, `{"data": {"total_credits": 10, "total_usage": 1}}`)(w, r)
		case "/opencode":
			jsonHandler(http.StatusOK, `{"balance": 3, "currency": "USD"}`)(w, r)
		default:
			jsonHandler(http.StatusUnauthorized, `{}`)(w, r)
		}
	})

	c := newTestClient(t, allCredentials(), srv.URL)
	results := c.FetchAll(context.Background())

	require.Len(t, results, 5)
	for i, svc := range models.Services {
		require.Equal(t, svc, results[i].Service)
		require.Equal(t, models.StatusOK, results[i].Status)
	}
}

func TestFetchAllWithoutAnyCredentials(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{}`))

	c := newTestClient(t, settings.Map{}, srv.URL)
	results := c.FetchAll(context.Background())

	require.Len(t, results, 5)
	for i, svc := range models.Services {
		require.Equal(t, svc, results[i].Service)
		require.Equal(t, models.StatusNoCredentials, results[i].Status)
	}
	require.Zero(t, srv.hits.Load())
}

// One provider failing must not disturb its siblings.
func TestFetchAllIsolatesFailures(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/claude":
			jsonHandler(http.StatusInternalServerError, "boom")(w, r)
		case "/models":
			jsonHandler(http.StatusOK, `{"object": "list"}`)(w, r)
		case "/zai":
			jsonHandler(http.StatusOK, `{"success": true, "data": {"limits": []}}`)(w, r)
		case "/openrouter":
			jsonHandler(http.StatusOK, `{"data": {"total_credits": 10, "total_usage": 1}}`)(w, r)
		case "/opencode":
			jsonHandler(http.StatusOK, `{"balance": 3}`)(w, r)
		default:
			jsonHandler(http.StatusUnauthorized, `{}`)(w, r)
		}
	})

	c := newTestClient(t, allCredentials(), srv.URL)
	results := c.FetchAll(context.Background())

	require.Equal(t, models.StatusError, results[0].Status)
	require.Equal(t, "HTTP 500", results[0].Error)
	for _, result := range results[1:] {
		require.Equal(t, models.StatusOK, result.Status)
	}
}

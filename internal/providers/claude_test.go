package providers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ai-quota-dash-go/internal/credentials"
	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/settings"
)

func claudeSettings() settings.Map {
	return settings.Map{"CLAUDE_ACCESS_TOKEN": "tok-claude"}
}

func TestClaudeOK(t *testing.T) {
	resetsAt := time.Now().Add(2*time.Hour + time.Minute).UTC().Truncate(time.Second)
	var gotAuth, gotBeta string
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBeta = r.Header.Get("anthropic-beta")
		body := fmt.Sprintf(`{
			"five_hour": {"utilization": 42.5, "resets_at": %q},
			"seven_day": {"utilization": 12, "resets_at": %q}
		}`, resetsAt.Format(time.RFC3339), resetsAt.Format(time.RFC3339))
		jsonHandler(http.StatusOK, body)(w, r)
	})

	c := newTestClient(t, claudeSettings(), srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, "Bearer tok-claude", gotAuth)
	require.Equal(t, anthropicBetaHeader, gotBeta)

	require.Equal(t, models.ServiceClaude, result.Service)
	require.Equal(t, models.StatusOK, result.Status)
	require.Equal(t, credentials.SourceSettings, result.Source)

	require.NotNil(t, result.FiveHour)
	require.Equal(t, "42.5%", result.FiveHour.Used)
	require.Equal(t, "57.5%", result.FiveHour.Remaining)
	require.Equal(t, "2h 0m", result.FiveHour.ResetsIn)
	require.Equal(t, resetsAt.UnixMilli(), result.FiveHour.ResetsAtMs)
	require.InDelta(t, 42.5, result.FiveHour.UsedPercent, 0.001)

	require.NotNil(t, result.SevenDay)
	require.Equal(t, "12.0%", result.SevenDay.Used)
	require.Equal(t, "88.0%", result.SevenDay.Remaining)
}

func TestClaudeMissingWindowFields(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{"five_hour": {}}`))

	c := newTestClient(t, claudeSettings(), srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, models.StatusOK, result.Status)
	require.NotNil(t, result.FiveHour)
	require.Equal(t, "0.0%", result.FiveHour.Used)
	require.Equal(t, "N/A", result.FiveHour.ResetsIn)
	require.Zero(t, result.FiveHour.ResetsAtMs)
	require.Nil(t, result.SevenDay)
}

func TestClaudeTokenExpired(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusUnauthorized, `{"error": "unauthorized"}`))

	c := newTestClient(t, claudeSettings(), srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, models.StatusError, result.Status)
	require.Equal(t, "Token expired", result.Error)
	require.Equal(t, credentials.SourceSettings, result.Source)
	require.Contains(t, result.Hint, "re-authenticate")
}

func TestClaudeServerError(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusInternalServerError, "server error"))

	c := newTestClient(t, claudeSettings(), srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, models.StatusError, result.Status)
	require.Equal(t, "HTTP 500", result.Error)
	require.Equal(t, "server error", result.Hint)
}

func TestClaudeHintTruncated(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	srv := newCountingServer(t, jsonHandler(http.StatusBadGateway, string(long)))

	c := newTestClient(t, claudeSettings(), srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, "HTTP 502", result.Error)
	require.Len(t, result.Hint, 200)
}

func TestClaudeNoCredentialsSkipsNetwork(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{}`))

	c := newTestClient(t, settings.Map{}, srv.URL)
	result := c.Claude(context.Background())

	require.Equal(t, models.StatusNoCredentials, result.Status)
	require.Equal(t, "No credentials found", result.Error)
	require.Empty(t, result.Source)
	require.Zero(t, srv.hits.Load(), "no network call should be made without credentials")
}

func TestClaudeNetworkFailure(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{}`))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, claudeSettings(), url)
	result := c.Claude(context.Background())

	require.Equal(t, models.StatusError, result.Status)
	require.Equal(t, "HTTP 0", result.Error)
	require.NotEmpty(t, result.Hint)
}

package providers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/settings"
)

func TestOpencodeZenOK(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK,
		`{"balance": 12.345, "currency": "EUR"}`))

	c := newTestClient(t, settings.Map{"OPENCODE_API_KEY": "zen-key"}, srv.URL)
	result := c.OpencodeZen(context.Background())

	require.Equal(t, models.StatusOK, result.Status)
	require.NotNil(t, result.FiveHour)
	require.Equal(t, "--", result.FiveHour.Used)
	require.Equal(t, "EUR 12.35", result.FiveHour.Remaining)
	require.Equal(t, "--", result.FiveHour.ResetsIn)
	require.Zero(t, result.FiveHour.UsedPercent)
}

func TestOpencodeZenDefaultCurrency(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{"balance": 5}`))

	c := newTestClient(t, settings.Map{"OPENCODE_API_KEY": "zen-key"}, srv.URL)
	result := c.OpencodeZen(context.Background())

	require.Equal(t, models.StatusOK, result.Status)
	require.Equal(t, "USD 5.00", result.FiveHour.Remaining)
}

func TestOpencodeZenNotFound(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusNotFound, `{"error": "not found"}`))

	c := newTestClient(t, settings.Map{"OPENCODE_API_KEY": "zen-key"}, srv.URL)
	result := c.OpencodeZen(context.Background())

	require.Equal(t, models.StatusError, result.Status)
	require.Equal(t, "Balance endpoint not available", result.Error)
}

func TestOpencodeZenServerError(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusInternalServerError, "server error"))

	c := newTestClient(t, settings.Map{"OPENCODE_API_KEY": "zen-key"}, srv.URL)
	result := c.OpencodeZen(context.Background())

	require.Equal(t, models.StatusError, result.Status)
	require.Equal(t, "HTTP 500", result.Error)
	require.Equal(t, "server error", result.Hint)
}

func TestOpencodeZenNoCredentials(t *testing.T) {
	srv := newCountingServer(t, jsonHandler(http.StatusOK, `{}`))

	c := newTestClient(t, settings.Map{}, srv.URL)
	result := c.OpencodeZen(context.Background())

	require.Equal(t, models.StatusNoCredentials, result.Status)
	require.Zero(t, srv.hits.Load())
}

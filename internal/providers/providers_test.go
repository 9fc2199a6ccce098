package providers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ai-quota-dash-go/internal/credentials"
	"github.com/ai-quota-dash-go/internal/settings"
)

// newTestClient builds a Client whose credentials come only from the given
// settings map (the temp home has no config files) and whose endpoints all
// point at the given base URL.
func newTestClient(t *testing.T, src settings.Map, baseURL string) *Client {
	t.Helper()
	resolver := credentials.NewResolver(t.TempDir(), src)
	c := NewClient(resolver, 5*time.Second, zap.NewNop().Sugar())
	c.SetEndpoints(Endpoints{
		ClaudeUsage:    baseURL + "/claude",
		CodexUsage:     baseURL + "/codex",
		CodexModels:    baseURL + "/models",
		ZaiQuota:       baseURL + "/zai",
		OpenRouterData: baseURL + "/openrouter",
		OpencodeZen:    baseURL + "/opencode",
	})
	return c
}

// countingServer serves fixed responses per path and counts every request.
type countingServer struct {
	*httptest.Server
	hits atomic.Int64
}

func newCountingServer(t *testing.T, handler http.HandlerFunc) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

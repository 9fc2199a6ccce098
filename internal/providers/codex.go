package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ai-quota-dash-go/internal/models"
)

type codexRateWindow struct {
	UsedPercent       *float64 `json:"used_percent"`
	ResetAfterSeconds *int64   `json:"reset_after_seconds"`
}

type codexUsageResponse struct {
	PlanType  string `json:"plan_type"`
	RateLimit *struct {
		PrimaryWindow   *codexRateWindow `json:"primary_window"`
		SecondaryWindow *codexRateWindow `json:"secondary_window"`
	} `json:"rate_limit"`
}

func (c *Client) codexWindowToUsage(w *codexRateWindow, now time.Time) *models.UsageWindow {
	usedPct := 0.0
	if w.UsedPercent != nil {
		usedPct = *w.UsedPercent
	} else {
		c.log.Debugw("codex window missing used_percent, defaulting to 0")
	}
	var resetSecs int64
	if w.ResetAfterSeconds != nil {
		resetSecs = *w.ResetAfterSeconds
	}
	return &models.UsageWindow{
		Used:        formatPercent(usedPct),
		Remaining:   formatPercent(100 - usedPct),
		ResetsIn:    FormatDuration(resetSecs),
		ResetsAtMs:  now.UnixMilli() + resetSecs*1000,
		UsedPercent: usedPct,
	}
}

// Codex fetches the code-assistant rate-limit windows. The subscription
// endpoint needs the full OAuth pair (access token + account id); with only
// an API key a lightweight models-listing call validates the key instead,
// yielding an ok result without usage windows.
func (c *Client) Codex(ctx context.Context) models.ServiceUsage {
	creds := c.resolver.Codex()
	if creds == nil || (creds.AccessToken == "" && creds.APIKey == "") {
		return models.ServiceUsage{
			Service: models.ServiceCodex,
			Status:  models.StatusNoCredentials,
			Error:   "No credentials found",
			Hint:    "Run 'codex login' or set OPENAI_API_KEY",
		}
	}

	oauthStatus := -1
	var oauthBody []byte
	if creds.AccessToken != "" && creds.AccountID != "" {
		status, body := c.httpGet(ctx, c.endpoints.CodexUsage, map[string]string{
			"Authorization":      "Bearer " + creds.AccessToken,
			"chatgpt-account-id": creds.AccountID,
			"User-Agent":         "codex-cli",
		})

		if status == http.StatusOK {
			var resp codexUsageResponse
			if err := json.Unmarshal(body, &resp); err == nil {
				now := time.Now()
				result := models.ServiceUsage{
					Service: models.ServiceCodex,
					Status:  models.StatusOK,
					Plan:    resp.PlanType,
					Source:  creds.Source,
				}
				if resp.RateLimit != nil {
					if resp.RateLimit.PrimaryWindow != nil {
						result.FiveHour = c.codexWindowToUsage(resp.RateLimit.PrimaryWindow, now)
					}
					if resp.RateLimit.SecondaryWindow != nil {
						result.SevenDay = c.codexWindowToUsage(resp.RateLimit.SecondaryWindow, now)
					}
				}
				return result
			}
		}
		oauthStatus, oauthBody = status, body
	}

	if creds.APIKey != "" {
		status, _ := c.httpGet(ctx, c.endpoints.CodexModels, map[string]string{
			"Authorization": "Bearer " + creds.APIKey,
		})
		if status == http.StatusOK {
			return models.ServiceUsage{
				Service: models.ServiceCodex,
				Status:  models.StatusOK,
				Source:  creds.Source,
				Hint:    "API key valid - subscription quota requires OAuth login",
			}
		}
	}

	// An attempted subscription call that came back non-200 (and was not
	// rescued by API-key validation) surfaces its raw status; otherwise the
	// failure is an authentication problem.
	if oauthStatus >= 0 && oauthStatus != http.StatusUnauthorized {
		return models.ServiceUsage{
			Service: models.ServiceCodex,
			Status:  models.StatusError,
			Error:   fmt.Sprintf("HTTP %d", oauthStatus),
			Hint:    truncateHint(oauthBody, "Run 'codex login' to re-authenticate"),
			Source:  creds.Source,
		}
	}

	return models.ServiceUsage{
		Service: models.ServiceCodex,
		Status:  models.StatusError,
		Error:   "Authentication failed",
		Hint:    "Run 'codex login' to re-authenticate",
		Source:  creds.Source,
	}
}

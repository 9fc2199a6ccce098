package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ai-quota-dash-go/internal/models"
)

const anthropicBetaHeader = "oauth-2025-04-20"

type claudeWindow struct {
	Utilization *float64 `json:"utilization"`
	ResetsAt    string   `json:"resets_at"`
}

type claudeUsageResponse struct {
	FiveHour *claudeWindow `json:"five_hour"`
	SevenDay *claudeWindow `json:"seven_day"`
}

func (c *Client) claudeWindowToUsage(w *claudeWindow, now time.Time) *models.UsageWindow {
	util := 0.0
	if w.Utilization != nil {
		util = *w.Utilization
	} else {
		c.log.Debugw("claude window missing utilization, defaulting to 0")
	}
	return &models.UsageWindow{
		Used:        fmt.Sprintf("%.1f%%", util),
		Remaining:   fmt.Sprintf("%.1f%%", 100-util),
		ResetsIn:    formatResetAt(w.ResetsAt, now),
		ResetsAtMs:  parseResetMs(w.ResetsAt),
		UsedPercent: util,
	}
}

// Claude fetches the chat-assistant OAuth usage windows.
func (c *Client) Claude(ctx context.Context) models.ServiceUsage {
	creds := c.resolver.Claude()
	if creds == nil {
		return models.ServiceUsage{
			Service: models.ServiceClaude,
			Status:  models.StatusNoCredentials,
			Error:   "No credentials found",
			Hint:    "Run 'claude' and authenticate first",
		}
	}

	status, body := c.httpGet(ctx, c.endpoints.ClaudeUsage, map[string]string{
		"Authorization":  "Bearer " + creds.AccessToken,
		"anthropic-beta": anthropicBetaHeader,
	})

	if status == http.StatusOK {
		var resp claudeUsageResponse
		if err := json.Unmarshal(body, &resp); err == nil {
			now := time.Now()
			result := models.ServiceUsage{
				Service: models.ServiceClaude,
				Status:  models.StatusOK,
				Source:  creds.Source,
			}
			if resp.FiveHour != nil {
				result.FiveHour = c.claudeWindowToUsage(resp.FiveHour, now)
			}
			if resp.SevenDay != nil {
				result.SevenDay = c.claudeWindowToUsage(resp.SevenDay, now)
			}
			return result
		}
	}

	if status == http.StatusUnauthorized {
		return models.ServiceUsage{
			Service: models.ServiceClaude,
			Status:  models.StatusError,
			Error:   "Token expired",
			Hint:    "Run 'claude' to re-authenticate",
			Source:  creds.Source,
		}
	}

	return models.ServiceUsage{
		Service: models.ServiceClaude,
		Status:  models.StatusError,
		Error:   fmt.Sprintf("HTTP %d", status),
		Hint:    truncateHint(body, ""),
		Source:  creds.Source,
	}
}

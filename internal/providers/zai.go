package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ai-quota-dash-go/internal/models"
)

type zaiLimit struct {
	Type          string   `json:"type"`
	Percentage    *float64 `json:"percentage"`
	NextResetTime *int64   `json:"nextResetTime"`
}

type zaiQuotaResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Limits []zaiLimit `json:"limits"`
	} `json:"data"`
}

// Zai fetches the z.ai token-quota window. The key is sent raw, without a
// Bearer prefix. Only the TOKENS_LIMIT entry of the limits array is mapped.
func (c *Client) Zai(ctx context.Context) models.ServiceUsage {
	creds := c.resolver.Zai()
	if creds == nil {
		return models.ServiceUsage{
			Service: models.ServiceZai,
			Status:  models.StatusNoCredentials,
			Error:   "No credentials found",
			Hint:    "Set ZAI_API_KEY environment variable or create ~/.zai/config.json",
		}
	}

	status, body := c.httpGet(ctx, c.endpoints.ZaiQuota, map[string]string{
		"Authorization": creds.APIKey,
	})

	if status == http.StatusOK {
		var resp zaiQuotaResponse
		if err := json.Unmarshal(body, &resp); err == nil && resp.Success && resp.Data != nil {
			result := models.ServiceUsage{
				Service: models.ServiceZai,
				Status:  models.StatusOK,
				Source:  creds.Source,
			}
			now := time.Now()
			for _, limit := range resp.Data.Limits {
				if limit.Type != "TOKENS_LIMIT" {
					continue
				}
				pct := 0.0
				if limit.Percentage != nil {
					pct = *limit.Percentage
				} else {
					c.log.Debugw("zai limit missing percentage, defaulting to 0")
				}
				var resetMs int64
				if limit.NextResetTime != nil {
					resetMs = *limit.NextResetTime
				}
				result.FiveHour = &models.UsageWindow{
					Used:        formatPercent(pct),
					Remaining:   formatPercent(100 - pct),
					ResetsIn:    FormatDuration((resetMs - now.UnixMilli()) / 1000),
					ResetsAtMs:  resetMs,
					UsedPercent: pct,
				}
			}
			return result
		}
	}

	return models.ServiceUsage{
		Service: models.ServiceZai,
		Status:  models.StatusError,
		Error:   fmt.Sprintf("HTTP %d", status),
		Hint:    truncateHint(body, "Check https://z.ai/manage-apikey/billing"),
		Source:  creds.Source,
	}
}

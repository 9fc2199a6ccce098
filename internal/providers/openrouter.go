package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ai-quota-dash-go/internal/models"
)

type openRouterCreditsResponse struct {
	Data *struct {
		TotalCredits *float64 `json:"total_credits"`
		TotalUsage   *float64 `json:"total_usage"`
	} `json:"data"`
}

// OpenRouter fetches the lifetime credit balance. Credits never reset, so
// the record carries the placeholder reset sentinel and a dollar-denominated
// window in the fiveHour slot.
func (c *Client) OpenRouter(ctx context.Context) models.ServiceUsage {
	creds := c.resolver.OpenRouter()
	if creds == nil {
		return models.ServiceUsage{
			Service: models.ServiceOpenRouter,
			Status:  models.StatusNoCredentials,
			Error:   "No credentials found",
			Hint:    "Set OPENROUTER_API_KEY environment variable",
		}
	}

	status, body := c.httpGet(ctx, c.endpoints.OpenRouterData, map[string]string{
		"Authorization": "Bearer " + creds.APIKey,
	})

	if status == http.StatusOK {
		var resp openRouterCreditsResponse
		if err := json.Unmarshal(body, &resp); err == nil && resp.Data != nil {
			totalCredits := 0.0
			if resp.Data.TotalCredits != nil {
				totalCredits = *resp.Data.TotalCredits
			}
			totalUsage := 0.0
			if resp.Data.TotalUsage != nil {
				totalUsage = *resp.Data.TotalUsage
			}
			usedPercent := 0.0
			if totalCredits > 0 {
				usedPercent = totalUsage / totalCredits * 100
			}

			return models.ServiceUsage{
				Service: models.ServiceOpenRouter,
				Status:  models.StatusOK,
				Source:  creds.Source,
				FiveHour: &models.UsageWindow{
					Used:        fmt.Sprintf("$%.2f", totalUsage),
					Remaining:   fmt.Sprintf("$%.2f", totalCredits-totalUsage),
					ResetsIn:    noReset,
					ResetsAtMs:  0,
					UsedPercent: usedPercent,
				},
			}
		}
	}

	return models.ServiceUsage{
		Service: models.ServiceOpenRouter,
		Status:  models.StatusError,
		Error:   fmt.Sprintf("HTTP %d", status),
		Hint:    truncateHint(body, "Check https://openrouter.ai/keys"),
		Source:  creds.Source,
	}
}

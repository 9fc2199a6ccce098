package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ai-quota-dash-go/internal/models"
)

type opencodeZenBalanceResponse struct {
	Balance  *float64 `json:"balance"`
	Currency string   `json:"currency"`
}

// OpencodeZen fetches the opencode.ai account balance. There is no usage or
// reset concept, only a remaining amount.
func (c *Client) OpencodeZen(ctx context.Context) models.ServiceUsage {
	creds := c.resolver.OpencodeZen()
	if creds == nil {
		return models.ServiceUsage{
			Service: models.ServiceOpencodeZen,
			Status:  models.StatusNoCredentials,
			Error:   "No credentials found",
			Hint:    "Set OPENCODE_API_KEY environment variable",
		}
	}

	status, body := c.httpGet(ctx, c.endpoints.OpencodeZen, map[string]string{
		"Authorization": "Bearer " + creds.APIKey,
	})

	if status == http.StatusOK {
		var resp opencodeZenBalanceResponse
		if err := json.Unmarshal(body, &resp); err == nil {
			balance := 0.0
			if resp.Balance != nil {
				balance = *resp.Balance
			} else {
				c.log.Debugw("opencode-zen response missing balance, defaulting to 0")
			}
			currency := resp.Currency
			if currency == "" {
				currency = "USD"
			}

			return models.ServiceUsage{
				Service: models.ServiceOpencodeZen,
				Status:  models.StatusOK,
				Source:  creds.Source,
				FiveHour: &models.UsageWindow{
					Used:        noReset,
					Remaining:   fmt.Sprintf("%s %.2f", currency, balance),
					ResetsIn:    noReset,
					ResetsAtMs:  0,
					UsedPercent: 0,
				},
			}
		}
	}

	if status == http.StatusNotFound {
		return models.ServiceUsage{
			Service: models.ServiceOpencodeZen,
			Status:  models.StatusError,
			Error:   "Balance endpoint not available",
			Hint:    "API may not support balance queries yet",
			Source:  creds.Source,
		}
	}

	return models.ServiceUsage{
		Service: models.ServiceOpencodeZen,
		Status:  models.StatusError,
		Error:   fmt.Sprintf("HTTP %d", status),
		Hint:    truncateHint(body, "Check https://opencode.ai/zen"),
		Source:  creds.Source,
	}
}

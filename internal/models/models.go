package models

// Service identifies one tracked AI provider account.
type Service string

const (
	ServiceClaude      Service = "claude"
	ServiceCodex       Service = "codex"
	ServiceZai         Service = "zai"
	ServiceOpenRouter  Service = "openrouter"
	ServiceOpencodeZen Service = "opencode-zen"
)

// Services lists all tracked providers in their canonical response order.
var Services = []Service{
	ServiceClaude,
	ServiceCodex,
	ServiceZai,
	ServiceOpenRouter,
	ServiceOpencodeZen,
}

// Valid reports whether s is one of the known providers.
func (s Service) Valid() bool {
	for _, known := range Services {
		if s == known {
			return true
		}
	}
	return false
}

// Usage fetch outcome.
const (
	StatusOK            = "ok"
	StatusError         = "error"
	StatusNoCredentials = "no_credentials"
)

// UsageWindow is a normalized quota snapshot for one accounting period
// (rolling 5-hour, rolling 7-day, or a lifetime credit balance).
type UsageWindow struct {
	Used        string  `json:"used"`
	Remaining   string  `json:"remaining"`
	ResetsIn    string  `json:"resetsIn"`
	ResetsAtMs  int64   `json:"resetsAtMs"`
	UsedPercent float64 `json:"usedPercent"`
}

// ServiceUsage is the normalized per-provider result served to the dashboard.
// Every failure mode is encoded in Status/Error; fetches never surface errors
// any other way.
type ServiceUsage struct {
	Service  Service      `json:"service"`
	Status   string       `json:"status"`
	Error    string       `json:"error,omitempty"`
	Hint     string       `json:"hint,omitempty"`
	FiveHour *UsageWindow `json:"fiveHour,omitempty"`
	SevenDay *UsageWindow `json:"sevenDay,omitempty"`
	Plan     string       `json:"plan,omitempty"`
	Source   string       `json:"source,omitempty"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Password string `json:"password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

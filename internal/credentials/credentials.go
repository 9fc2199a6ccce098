// Package credentials locates API secrets for each tracked provider. Every
// provider follows the same precedence: settings/env first, then a fixed
// list of well-known config files under the home directory. File errors and
// malformed JSON never fail a lookup; the offending path simply does not
// contribute.
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ai-quota-dash-go/internal/settings"
)

// SourceSettings is the source label for credentials found in the
// settings/env chain rather than a file.
const SourceSettings = "settings/env"

// Credential holds the secret material resolved for one provider. At least
// one of AccessToken or APIKey is populated whenever a Credential is
// returned; Source records where the winning piece came from.
type Credential struct {
	AccessToken string
	APIKey      string
	AccountID   string
	Source      string
}

// Resolver resolves provider credentials against a home directory and a
// settings source. Both are injected so lookups are pure functions of their
// inputs.
type Resolver struct {
	home     string
	settings settings.Source
}

func NewResolver(home string, src settings.Source) *Resolver {
	return &Resolver{home: home, settings: src}
}

func (r *Resolver) lookup(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := r.settings.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// readJSONFile decodes path into v. Any failure (missing file, permissions,
// bad JSON) is reported as false.
func readJSONFile(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

type claudeCredFile struct {
	ClaudeAiOauth struct {
		AccessToken string `json:"accessToken"`
	} `json:"claudeAiOauth"`
	// Legacy flat layout.
	AccessToken string `json:"accessToken"`
}

// Claude resolves the chat-assistant OAuth token.
func (r *Resolver) Claude() *Credential {
	if token, ok := r.lookup("CLAUDE_ACCESS_TOKEN", "claudeAccessToken"); ok {
		return &Credential{AccessToken: token, Source: SourceSettings}
	}

	paths := []string{
		filepath.Join(r.home, ".claude", ".credentials.json"),
		filepath.Join(r.home, ".claude", "credentials.json"),
		filepath.Join(r.home, ".config", "claude", "credentials.json"),
	}
	for _, path := range paths {
		var file claudeCredFile
		if !readJSONFile(path, &file) {
			continue
		}
		token := file.ClaudeAiOauth.AccessToken
		if token == "" {
			token = file.AccessToken
		}
		if token != "" {
			return &Credential{AccessToken: token, Source: path}
		}
	}
	return nil
}

type codexAuthFile struct {
	OpenAIAPIKey string `json:"OPENAI_API_KEY"`
	Tokens       struct {
		AccessToken string `json:"access_token"`
		AccountID   string `json:"account_id"`
	} `json:"tokens"`
}

// Codex resolves the code-assistant credentials. Unlike the other providers
// a single path may yield only part of the set (API key, OAuth token,
// account id), so scanning continues across paths and accumulates pieces
// until an access token or API key is held. The OAuth pair is preferred
// downstream even when its pieces came from different files.
func (r *Resolver) Codex() *Credential {
	result := Credential{}
	if key, ok := r.lookup("OPENAI_API_KEY", "openAiApiKey"); ok {
		result.APIKey = key
		result.Source = SourceSettings
	}

	paths := []string{
		filepath.Join(r.home, ".codex", "auth.json"),
		filepath.Join(r.home, ".config", "codex", "auth.json"),
	}
	for _, path := range paths {
		var auth codexAuthFile
		if !readJSONFile(path, &auth) {
			continue
		}
		if result.APIKey == "" && auth.OpenAIAPIKey != "" {
			result.APIKey = auth.OpenAIAPIKey
		}
		if auth.Tokens.AccessToken != "" {
			result.AccessToken = auth.Tokens.AccessToken
		}
		if auth.Tokens.AccountID != "" {
			result.AccountID = auth.Tokens.AccountID
		}
		if result.AccessToken != "" || result.APIKey != "" {
			result.Source = path
			return &result
		}
	}

	if result.AccessToken == "" && result.APIKey == "" && result.AccountID == "" {
		return nil
	}
	return &result
}

type keyConfigFile struct {
	EnvKey      string `json:"OPENROUTER_API_KEY"`
	OpencodeKey string `json:"OPENCODE_API_KEY"`
	APIKey      string `json:"apiKey"`
	APIKeySnake string `json:"api_key"`
}

func (f *keyConfigFile) key() string {
	for _, k := range []string{f.EnvKey, f.OpencodeKey, f.APIKey, f.APIKeySnake} {
		if k != "" {
			return k
		}
	}
	return ""
}

func (r *Resolver) keyFromFiles(paths []string) *Credential {
	for _, path := range paths {
		var file keyConfigFile
		if !readJSONFile(path, &file) {
			continue
		}
		if key := file.key(); key != "" {
			return &Credential{APIKey: key, Source: path}
		}
	}
	return nil
}

// Zai resolves the z.ai key; four historical env var names are accepted as
// aliases.
func (r *Resolver) Zai() *Credential {
	if key, ok := r.lookup("ZAI_API_KEY", "zaiApiKey", "ZAI_KEY", "ZHIPU_API_KEY", "ZHIPUAI_API_KEY"); ok {
		return &Credential{APIKey: key, Source: SourceSettings}
	}
	return r.keyFromFiles([]string{
		filepath.Join(r.home, ".zai", "config.json"),
		filepath.Join(r.home, ".config", "zai", "config.json"),
	})
}

// OpenRouter resolves the OpenRouter key.
func (r *Resolver) OpenRouter() *Credential {
	if key, ok := r.lookup("OPENROUTER_API_KEY", "openRouterApiKey"); ok {
		return &Credential{APIKey: key, Source: SourceSettings}
	}
	return r.keyFromFiles([]string{
		filepath.Join(r.home, ".config", "openrouter", "config.json"),
		filepath.Join(r.home, ".openrouter", "config.json"),
	})
}

// OpencodeZen resolves the opencode.ai key.
func (r *Resolver) OpencodeZen() *Credential {
	if key, ok := r.lookup("OPENCODE_API_KEY", "opencodeApiKey"); ok {
		return &Credential{APIKey: key, Source: SourceSettings}
	}
	return r.keyFromFiles([]string{
		filepath.Join(r.home, ".config", "opencode", "config.json"),
		filepath.Join(r.home, ".opencode", "config.json"),
	})
}

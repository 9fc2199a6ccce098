// Package settings provides the lookup chain credentials are resolved
// against: process environment, an optional dotenv file, and an optional
// settings JSON object supplied by an embedding integration. The chain is
// passed into the resolver explicitly so resolution stays a pure function
// of its inputs.
package settings

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Source looks up a single named value.
type Source interface {
	Lookup(name string) (string, bool)
}

// Env reads from the process environment. Empty values count as absent.
type Env struct{}

func (Env) Lookup(name string) (string, bool) {
	v := os.Getenv(name)
	return v, v != ""
}

// Map is a fixed in-memory source, used for integration-supplied settings
// objects and in tests.
type Map map[string]string

func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

// Chain tries each source in order; the first hit wins.
type Chain []Source

func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// FromDotenv loads a dotenv file into a Map. A missing or unreadable file
// yields an empty source rather than an error.
func FromDotenv(path string) Map {
	if path == "" {
		return Map{}
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return Map{}
	}
	return Map(env)
}

// FromJSONFile loads a flat JSON settings object into a Map. String values
// are taken as-is; numbers and booleans are stringified; nested values are
// ignored. A missing or malformed file yields an empty source.
func FromJSONFile(path string) Map {
	if path == "" {
		return Map{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Map{}
	}
	m := make(Map, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			m[k] = val
		case float64:
			m[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			m[k] = strconv.FormatBool(val)
		}
	}
	return m
}

// Default builds the standard lookup chain: process env first, then the
// dotenv file, then the settings JSON object.
func Default(dotenvPath, jsonPath string) Chain {
	return Chain{Env{}, FromDotenv(dotenvPath), FromJSONFile(jsonPath)}
}

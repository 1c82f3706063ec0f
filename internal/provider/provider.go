// Package provider is a uniform interface over multiple LLM backends
// (OpenAI-compatible, Anthropic, Google), including streaming.
package provider

import (
	"context"
	"fmt"
	"strconv"
)

// Kind is the closed set of supported backends. A legacy string "claude"
// maps to Anthropic.
type Kind string

const (
	OpenAI    Kind = "openai"
	Anthropic Kind = "anthropic"
	Google    Kind = "google"
)

// ParseKind normalizes a configured provider string, mapping the legacy
// "claude" alias onto Anthropic.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "openai":
		return OpenAI, nil
	case "anthropic", "claude":
		return Anthropic, nil
	case "google", "gemini":
		return Google, nil
	default:
		return "", fmt.Errorf("provider: unknown provider %q", s)
	}
}

// Defaults are the immutable per-provider defaults.
type Defaults struct {
	PrimaryModel  string
	FastModel     string
	ContextWindow int
	APIKeyEnvVar  string
}

var defaults = map[Kind]Defaults{
	OpenAI:    {PrimaryModel: "gpt-4o", FastModel: "gpt-4o-mini", ContextWindow: 128_000, APIKeyEnvVar: "OPENAI_API_KEY"},
	Anthropic: {PrimaryModel: "claude-opus-4-1-20250805", FastModel: "claude-haiku-4-5-20251001", ContextWindow: 200_000, APIKeyEnvVar: "ANTHROPIC_API_KEY"},
	Google:    {PrimaryModel: "gemini-2.5-pro", FastModel: "gemini-2.5-flash", ContextWindow: 1_000_000, APIKeyEnvVar: "GOOGLE_API_KEY"},
}

// DefaultsFor returns the immutable defaults for a provider kind.
func DefaultsFor(k Kind) Defaults { return defaults[k] }

// Config is the user-facing provider configuration.
type Config struct {
	APIKey           string
	Model            string
	FastModel        string
	TokenLimit       int
	AdditionalParams map[string]string
}

// EffectiveModel returns the configured model, or the provider's default.
func (c Config) EffectiveModel(k Kind) string {
	if c.Model != "" {
		return c.Model
	}
	return defaults[k].PrimaryModel
}

// EffectiveTokenLimit returns the configured token limit, or the
// provider's context window.
func (c Config) EffectiveTokenLimit(k Kind) int {
	if c.TokenLimit > 0 {
		return c.TokenLimit
	}
	return defaults[k].ContextWindow
}

// CoercedParams converts numeric- and boolean-looking additional_params
// strings into typed JSON-ish values (float64, bool, or the original
// string), for providers that want them as native request fields.
func (c Config) CoercedParams() map[string]any {
	out := make(map[string]any, len(c.AdditionalParams))
	for k, v := range c.AdditionalParams {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			out[k] = f
			continue
		}
		if b, err := strconv.ParseBool(v); err == nil {
			out[k] = b
			continue
		}
		out[k] = v
	}
	return out
}

// Error wraps a transport/HTTP failure from a provider call. No silent
// retry happens at this layer; higher layers (the task executor) decide.
type Error struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.Status, e.Body)
}
func (e *Error) Unwrap() error { return e.Err }

// Provider is the uniform interface agent core code drives.
type Provider interface {
	Name() string
	Model() string
	GenerateMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateStream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error)
}

// New constructs a Provider for the given kind and config.
func New(k Kind, cfg Config) (Provider, error) {
	switch k {
	case OpenAI:
		return newOpenAI(cfg), nil
	case Anthropic:
		return newAnthropic(cfg), nil
	case Google:
		return newGoogle(cfg), nil
	default:
		return nil, fmt.Errorf("provider: unsupported kind %q", k)
	}
}

// wantsJSON reports whether a user prompt is asking for a JSON response,
// used to decide whether Google's response_mime_type should default to
// "application/json".
func wantsJSON(userPrompt string) bool {
	for _, needle := range []string{"JSON", "json"} {
		if contains(userPrompt, needle) {
			return true
		}
	}
	return false
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

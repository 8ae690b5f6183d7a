// Package settings turns the admin-editable key/value settings into a typed, validated structure
// and caches it for the request path.
package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// setting keys as stored in the settings table
const (
	KeyAPIToken           = "api_token"
	KeyOpenAIKey          = "openai_key"
	KeyPrimaryModel       = "gpt_model"
	KeyFallbackModel      = "fallback_model"
	KeyFallbackResponse   = "fallback_response"
	KeyMaxRetries         = "max_retries"
	KeyRateLimitPerMinute = "rate_limit_per_minute"
	KeyLogRetentionDays   = "log_retention_days"
	KeySystemPrompt       = "system_prompt"
)

// default values used when a key is missing or holds an invalid value
const (
	DefaultModel              = "gpt-3.5-turbo"
	DefaultFallbackResponse   = "Maaf, saya tidak dapat memproses permintaan Anda saat ini. Silakan coba lagi nanti."
	DefaultSystemPrompt       = "You are a helpful assistant that provides accurate, concise, and informative answers."
	DefaultMaxRetries         = 3
	DefaultRateLimitPerMinute = 10
	DefaultLogRetentionDays   = 90

	maxRetriesLimit = 10
)

// FallbackNone disables the fallback model attempt
const FallbackNone = "none"

// Settings is the typed view of the settings table
type Settings struct {
	APIToken           string
	OpenAIKey          string
	PrimaryModel       string
	FallbackModel      string
	FallbackResponse   string
	SystemPrompt       string
	MaxRetries         int
	RateLimitPerMinute int
	LogRetentionDays   int
}

// Defaults returns the values seeded into an empty settings table.
// api_token is not included, it is set by the caller.
func Defaults() map[string]string {
	return map[string]string{
		KeyOpenAIKey:          "",
		KeyPrimaryModel:       DefaultModel,
		KeyFallbackModel:      DefaultModel,
		KeyFallbackResponse:   DefaultFallbackResponse,
		KeySystemPrompt:       DefaultSystemPrompt,
		KeyMaxRetries:         strconv.Itoa(DefaultMaxRetries),
		KeyRateLimitPerMinute: strconv.Itoa(DefaultRateLimitPerMinute),
		KeyLogRetentionDays:   strconv.Itoa(DefaultLogRetentionDays),
	}
}

// Parse builds Settings from raw key/value pairs. Missing keys get defaults.
// Invalid values are replaced by defaults too, and reported in the returned problems list
// so the caller can log them without failing the request.
func Parse(raw map[string]string) (s Settings, problems []string) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(raw[key]); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def, minVal, maxVal int) int {
		v, ok := raw[key]
		if !ok || strings.TrimSpace(v) == "" {
			return def
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < minVal || (maxVal > 0 && n > maxVal) {
			problems = append(problems, fmt.Sprintf("invalid %s %q, using %d", key, v, def))
			return def
		}
		return n
	}

	s = Settings{
		APIToken:           strings.TrimSpace(raw[KeyAPIToken]),
		OpenAIKey:          strings.TrimSpace(raw[KeyOpenAIKey]),
		PrimaryModel:       get(KeyPrimaryModel, DefaultModel),
		FallbackModel:      get(KeyFallbackModel, DefaultModel),
		FallbackResponse:   get(KeyFallbackResponse, DefaultFallbackResponse),
		SystemPrompt:       get(KeySystemPrompt, DefaultSystemPrompt),
		MaxRetries:         num(KeyMaxRetries, DefaultMaxRetries, 1, maxRetriesLimit),
		RateLimitPerMinute: num(KeyRateLimitPerMinute, DefaultRateLimitPerMinute, 0, 0),
		LogRetentionDays:   num(KeyLogRetentionDays, DefaultLogRetentionDays, 1, 0),
	}
	return s, problems
}

// Validate checks a single value before it is written. Unknown keys, an empty api token
// and values Parse would replace with defaults are rejected.
func Validate(key, value string) error {
	switch key {
	case KeyAPIToken:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s can't be empty", key)
		}
		return nil
	case KeyOpenAIKey, KeyPrimaryModel, KeyFallbackModel, KeyFallbackResponse, KeySystemPrompt:
		return nil
	case KeyMaxRetries, KeyRateLimitPerMinute, KeyLogRetentionDays:
		if _, problems := Parse(map[string]string{key: value}); len(problems) > 0 || strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid value %q for %s", value, key)
		}
		return nil
	}
	return fmt.Errorf("unknown setting %q", key)
}

// FallbackEnabled reports whether a fallback attempt should be made after the primary model gave up.
// Disabled for "none", empty, or the same model as primary after aliasing.
func (s Settings) FallbackEnabled() bool {
	fb := strings.TrimSpace(s.FallbackModel)
	if fb == "" || strings.EqualFold(fb, FallbackNone) {
		return false
	}
	return ResolveModel(fb) != ResolveModel(s.PrimaryModel)
}

// HasUsableKey reports whether the OpenAI key looks like a real key
func (s Settings) HasUsableKey() bool {
	return !IsPlaceholderKey(s.OpenAIKey)
}

// IsPlaceholderKey detects keys left at installer placeholder values
func IsPlaceholderKey(key string) bool {
	switch strings.TrimSpace(key) {
	case "", "sk-your-openai-key", "placeholder_key":
		return true
	}
	return false
}

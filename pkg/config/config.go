package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// approximate matching modes
const (
	ApproxModeKeywords  = "keywords"
	ApproxModeSubstring = "substring"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen      string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		APIToken    string        `yaml:"api_token" json:"api_token" jsonschema:"description=API token seeded into settings on first start"`
		WebhookAuth bool          `yaml:"webhook_auth" json:"webhook_auth" jsonschema:"default=false,description=Require bearer token on webhook POST"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:luna.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM completion configuration"`

	Resolver ResolverConfig `yaml:"resolver" json:"resolver" jsonschema:"description=Knowledge base matching configuration"`

	Settings struct {
		CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=30s,description=How long typed runtime settings are cached"`
	} `yaml:"settings" json:"settings" jsonschema:"description=Runtime settings cache"`

	Maintenance struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Interval between maintenance runs"`
	} `yaml:"maintenance" json:"maintenance" jsonschema:"description=Periodic maintenance configuration"`
}

// LLMConfig holds LLM configuration for answer completion
type LLMConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	Temperature   float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens     int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout of a single completion attempt"`
	BackoffBase   time.Duration `yaml:"backoff_base" json:"backoff_base" jsonschema:"default=1s,description=Base delay between failed primary attempts"`
	BackoffMax    time.Duration `yaml:"backoff_max" json:"backoff_max" jsonschema:"default=8s,description=Maximum delay between failed primary attempts"`
	PrimaryScore  float64       `yaml:"primary_score" json:"primary_score" jsonschema:"default=8.5,description=Score recorded for primary model answers"`
	FallbackScore float64       `yaml:"fallback_score" json:"fallback_score" jsonschema:"default=7.0,description=Score recorded for fallback model answers"`
	RateLimit     float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=5,description=Outbound completion requests per second"`
	Burst         int           `yaml:"burst" json:"burst" jsonschema:"default=10,description=Outbound completion burst size"`
}

// ResolverConfig holds knowledge base matching settings
type ResolverConfig struct {
	ApproxMode     string  `yaml:"approx_mode" json:"approx_mode" jsonschema:"default=keywords,enum=keywords,enum=substring,description=Approximate match scoring mode"`
	MinScore       float64 `yaml:"min_score" json:"min_score" jsonschema:"default=0.5,description=Approximate match must score above this value"`
	MinKeywordSize int     `yaml:"min_keyword_size" json:"min_keyword_size" jsonschema:"default=4,description=Shortest token used as a keyword"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:luna.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// llm
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.BackoffBase == 0 {
		c.LLM.BackoffBase = time.Second
	}
	if c.LLM.BackoffMax == 0 {
		c.LLM.BackoffMax = 8 * time.Second
	}
	if c.LLM.PrimaryScore == 0 {
		c.LLM.PrimaryScore = 8.5
	}
	if c.LLM.FallbackScore == 0 {
		c.LLM.FallbackScore = 7.0
	}
	if c.LLM.RateLimit == 0 {
		c.LLM.RateLimit = 5
	}
	if c.LLM.Burst == 0 {
		c.LLM.Burst = 10
	}

	// resolver
	if c.Resolver.ApproxMode == "" {
		c.Resolver.ApproxMode = ApproxModeKeywords
	}
	if c.Resolver.MinScore == 0 {
		c.Resolver.MinScore = 0.5
	}
	if c.Resolver.MinKeywordSize == 0 {
		c.Resolver.MinKeywordSize = 4
	}

	if c.Settings.CacheTTL == 0 {
		c.Settings.CacheTTL = 30 * time.Second
	}
	if c.Maintenance.Interval == 0 {
		c.Maintenance.Interval = time.Hour
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be at least 1")
	}
	if cfg.LLM.Timeout < time.Second {
		return fmt.Errorf("llm.timeout must be at least 1 second")
	}
	if cfg.LLM.BackoffMax < cfg.LLM.BackoffBase {
		return fmt.Errorf("llm.backoff_max must not be less than llm.backoff_base")
	}
	if cfg.LLM.FallbackScore > cfg.LLM.PrimaryScore {
		return fmt.Errorf("llm.fallback_score must not exceed llm.primary_score")
	}
	if cfg.LLM.RateLimit < 0 || cfg.LLM.Burst < 1 {
		return fmt.Errorf("llm.rate_limit must be non-negative and llm.burst at least 1")
	}

	switch cfg.Resolver.ApproxMode {
	case ApproxModeKeywords, ApproxModeSubstring:
	default:
		return fmt.Errorf("resolver.approx_mode must be %q or %q", ApproxModeKeywords, ApproxModeSubstring)
	}
	if cfg.Resolver.MinScore < 0 {
		return fmt.Errorf("resolver.min_score must be non-negative")
	}
	if cfg.Resolver.MinKeywordSize < 1 {
		return fmt.Errorf("resolver.min_keyword_size must be at least 1")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetResolverConfig returns knowledge base matching configuration
func (c *Config) GetResolverConfig() ResolverConfig {
	return c.Resolver
}

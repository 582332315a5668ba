package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/scam-triage/")
	v.AddConfigPath("$HOME/.scam-triage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SCAM_TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit config
// file path. Unlike New, a missing or unreadable file is an error.
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("SCAM_TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Heuristic vocabularies
	v.SetDefault("heuristics.formal_keywords", []string{
		"bvn", "verify", "cbn", "urgent", "account suspended", "bank login",
		"otp", "one time", "you have won", "congratulations", "click here",
		"tinyurl", "bit.ly", "borrow", "loan approved", "no bvn", "no doc",
		"transfer now", "password", "reset", "blocked", "suspended",
	})
	v.SetDefault("heuristics.pidgin_phrases", []string{
		"bros", "abeg", "send me", "help me", "i need money", "naira", "pay small",
	})
	v.SetDefault("heuristics.suspicious_tlds", []string{
		".xyz", ".top", ".club", ".online", ".info", ".ru", ".tk",
	})
	v.SetDefault("heuristics.shortener_hosts", []string{
		"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly", "rebrand.ly", "shorturl.at",
	})
	v.SetDefault("heuristics.suspicious_substrings", []string{
		"verify", "login", "secure", "confirm", "update", "account", "service",
	})
	v.SetDefault("heuristics.trusted_domains", []string{})

	// Scoring weights and thresholds
	v.SetDefault("scoring.formal_weight", 0.18)
	v.SetDefault("scoring.pidgin_weight", 0.08)
	v.SetDefault("scoring.keyword_weight", 0.6)
	v.SetDefault("scoring.url_weight", 0.25)
	v.SetDefault("scoring.ml_boost", 0.2)
	v.SetDefault("scoring.shortener_weight", 0.5)
	v.SetDefault("scoring.tld_weight", 0.3)
	v.SetDefault("scoring.dash_weight", 0.1)
	v.SetDefault("scoring.substring_weight", 0.2)
	v.SetDefault("scoring.link_suspicious_threshold", 0.3)
	v.SetDefault("scoring.link_reason_threshold", 0.25)
	v.SetDefault("scoring.scam_threshold", 0.7)
	v.SetDefault("scoring.suspicious_threshold", 0.35)

	// URL expansion defaults
	v.SetDefault("expander.timeout", "8s")
	v.SetDefault("expander.max_urls", 5)
	v.SetDefault("expander.message_deadline", "20s")

	// ML scorer defaults
	v.SetDefault("ml.provider", "none")
	v.SetDefault("ml.max_input_chars", 512)
	v.SetDefault("ml.risk_labels", []string{"NEGATIVE", "LABEL_1", "SUSPICIOUS", "FAKE", "SCAM"})

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 200)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 200)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 200)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)

	// WHOIS defaults
	v.SetDefault("whois.enabled", false)
	v.SetDefault("whois.timeout", "5s")

	// Report store defaults
	v.SetDefault("reports.type", "file")
	v.SetDefault("reports.file_path", "/data/reports.json")
	v.SetDefault("reports.max_entries", 2000)
	v.SetDefault("reports.sqlite_path", "/data/scam_reports.db")
	v.SetDefault("reports.mysql_dsn", "user:password@tcp(localhost:3306)/scam_triage")

	// Last-analysis cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_frequency", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)

	// Server defaults
	v.SetDefault("server.frontend", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}

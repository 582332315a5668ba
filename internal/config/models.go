package config

import "time"

// HeuristicsConfig holds the vocabularies consumed by the pipeline
type HeuristicsConfig struct {
	FormalKeywords       []string
	PidginPhrases        []string
	SuspiciousTLDs       []string
	ShortenerHosts       []string
	SuspiciousSubstrings []string
	TrustedDomains       []string
}

// ScoringConfig holds the fixed scoring weights and verdict thresholds
type ScoringConfig struct {
	FormalWeight            float64
	PidginWeight            float64
	KeywordWeight           float64
	URLWeight               float64
	MLBoost                 float64
	ShortenerWeight         float64
	TLDWeight               float64
	DashWeight              float64
	SubstringWeight         float64
	LinkSuspiciousThreshold float64
	LinkReasonThreshold     float64
	ScamThreshold           float64
	SuspiciousThreshold     float64
}

// ExpanderConfig holds the URL expansion settings
type ExpanderConfig struct {
	Timeout         time.Duration
	MaxURLs         int
	MessageDeadline time.Duration
}

// MLConfig holds the ML scorer capability settings
type MLConfig struct {
	Provider      string
	MaxInputChars int
	RiskLabels    []string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// WhoisConfig holds the registration-lookup capability settings
type WhoisConfig struct {
	Enabled bool
	Timeout time.Duration
}

// ReportsConfig holds the report store settings
type ReportsConfig struct {
	Type       string
	FilePath   string
	MaxEntries int
	SQLitePath string
	MySQLDSN   string
}

// CacheConfig holds the last-analysis cache settings
type CacheConfig struct {
	Type          string
	TTL           time.Duration
	CleanupFreq   time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ServerConfig holds the front-end settings
type ServerConfig struct {
	Frontend      string
	ListenAddress string
}

// GetHeuristics returns the heuristic vocabularies
func (c *Config) GetHeuristics() HeuristicsConfig {
	return HeuristicsConfig{
		FormalKeywords:       c.GetStringSlice("heuristics.formal_keywords"),
		PidginPhrases:        c.GetStringSlice("heuristics.pidgin_phrases"),
		SuspiciousTLDs:       c.GetStringSlice("heuristics.suspicious_tlds"),
		ShortenerHosts:       c.GetStringSlice("heuristics.shortener_hosts"),
		SuspiciousSubstrings: c.GetStringSlice("heuristics.suspicious_substrings"),
		TrustedDomains:       c.GetStringSlice("heuristics.trusted_domains"),
	}
}

// GetScoring returns the scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		FormalWeight:            c.GetFloat64("scoring.formal_weight"),
		PidginWeight:            c.GetFloat64("scoring.pidgin_weight"),
		KeywordWeight:           c.GetFloat64("scoring.keyword_weight"),
		URLWeight:               c.GetFloat64("scoring.url_weight"),
		MLBoost:                 c.GetFloat64("scoring.ml_boost"),
		ShortenerWeight:         c.GetFloat64("scoring.shortener_weight"),
		TLDWeight:               c.GetFloat64("scoring.tld_weight"),
		DashWeight:              c.GetFloat64("scoring.dash_weight"),
		SubstringWeight:         c.GetFloat64("scoring.substring_weight"),
		LinkSuspiciousThreshold: c.GetFloat64("scoring.link_suspicious_threshold"),
		LinkReasonThreshold:     c.GetFloat64("scoring.link_reason_threshold"),
		ScamThreshold:           c.GetFloat64("scoring.scam_threshold"),
		SuspiciousThreshold:     c.GetFloat64("scoring.suspicious_threshold"),
	}
}

// GetExpander returns the URL expansion configuration
func (c *Config) GetExpander() (ExpanderConfig, error) {
	timeout, err := c.GetDuration("expander.timeout")
	if err != nil {
		return ExpanderConfig{}, err
	}
	deadline, err := c.GetDuration("expander.message_deadline")
	if err != nil {
		return ExpanderConfig{}, err
	}
	return ExpanderConfig{
		Timeout:         timeout,
		MaxURLs:         c.GetInt("expander.max_urls"),
		MessageDeadline: deadline,
	}, nil
}

// GetML returns the ML capability configuration
func (c *Config) GetML() MLConfig {
	return MLConfig{
		Provider:      c.GetString("ml.provider"),
		MaxInputChars: c.GetInt("ml.max_input_chars"),
		RiskLabels:    c.GetStringSlice("ml.risk_labels"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetWhois returns the WHOIS capability configuration
func (c *Config) GetWhois() (WhoisConfig, error) {
	timeout, err := c.GetDuration("whois.timeout")
	if err != nil {
		return WhoisConfig{}, err
	}
	return WhoisConfig{
		Enabled: c.GetBool("whois.enabled"),
		Timeout: timeout,
	}, nil
}

// GetReports returns the report store configuration
func (c *Config) GetReports() ReportsConfig {
	return ReportsConfig{
		Type:       c.GetString("reports.type"),
		FilePath:   c.GetString("reports.file_path"),
		MaxEntries: c.GetInt("reports.max_entries"),
		SQLitePath: c.GetString("reports.sqlite_path"),
		MySQLDSN:   c.GetString("reports.mysql_dsn"),
	}
}

// GetCache returns the last-analysis cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, err
	}
	cleanupFreq, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{
		Type:          c.GetString("cache.type"),
		TTL:           ttl,
		CleanupFreq:   cleanupFreq,
		RedisAddr:     c.GetString("cache.redis_addr"),
		RedisPassword: c.GetString("cache.redis_password"),
		RedisDB:       c.GetInt("cache.redis_db"),
	}, nil
}

// GetServer returns the front-end configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		Frontend:      c.GetString("server.frontend"),
		ListenAddress: c.GetString("server.listen_address"),
	}
}

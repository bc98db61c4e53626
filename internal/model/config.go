package model

import "time"

// Config is the complete claimlens configuration. Read-only after startup;
// the pipeline holds no other process-wide state.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	LLM     LLMConfig     `yaml:"llm"`
	Scoring ScoringConfig `yaml:"scoring"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
}

// HTTPConfig controls outbound article fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MaxArticleCh int           `yaml:"max_article_chars"` // Article text cap before claim extraction
}

// SearchConfig controls the evidence providers
type SearchConfig struct {
	ProviderTimeout time.Duration `yaml:"provider_timeout"` // Per-provider bound; a slow provider degrades, never blocks
	MaxResults      int           `yaml:"max_results"`      // Cap on the merged evidence set
	PerQueryResults int           `yaml:"per_query_results"`
	RatePerSecond   float64       `yaml:"rate_per_second"` // Per-domain outbound rate
	RateBurst       int           `yaml:"rate_burst"`

	// FactCheckSites is the allow-list used both for the restricted query and
	// for tagging results that happen to land on a fact-checking domain.
	FactCheckSites []string `yaml:"factcheck_sites"`

	// Google Custom Search (the optional paid secondary provider).
	// Disabled unless both values are set.
	GoogleAPIKey string `yaml:"google_api_key"`
	GoogleCSEID  string `yaml:"google_cse_id"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider    string `yaml:"provider"` // openai, anthropic, ollama
	Model       string `yaml:"model"`
	VisionModel string `yaml:"vision_model"` // Multimodal model for image inputs
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Timeout     int    `yaml:"timeout"` // seconds
	MaxTokens   int    `yaml:"max_tokens"`
}

// ScoringConfig centralizes every scoring weight, threshold and allow-list.
// This is the single tuning surface for verdict distribution.
type ScoringConfig struct {
	WeightSourceAgreement     float64 `yaml:"weight_source_agreement"`
	WeightReputableSources    float64 `yaml:"weight_reputable_sources"`
	WeightContextCompleteness float64 `yaml:"weight_context_completeness"`
	WeightFactCheckExists     float64 `yaml:"weight_factcheck_exists"`

	HighConfidence float64 `yaml:"high_confidence"` // Strictly above → true-leaning verdict
	LowConfidence  float64 `yaml:"low_confidence"`  // Strictly below → false-leaning verdict

	// MaxMissingContext forces NEEDS MORE CONTEXT once reached, regardless of
	// the confidence band.
	MaxMissingContext int `yaml:"max_missing_context"`

	// NeutralAgreement is used when no direct evidence exists at all; absence
	// of search results is not treated as disagreement.
	NeutralAgreement float64 `yaml:"neutral_agreement"`

	// FactCheckBaseline is used when no prior fact-check was found; absence of
	// one is weak evidence, not proof of falsehood.
	FactCheckBaseline float64 `yaml:"factcheck_baseline"`

	ReputableDomains []string `yaml:"reputable_domains"`
}

// CacheConfig controls the article-fetch cache. The verification pipeline
// itself is cache-free; only input acquisition is cached.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	Env      string `yaml:"env"` // prod or dev, selects log encoding
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes: 2_000_000,
			MaxArticleCh: 5000,
		},
		Search: SearchConfig{
			ProviderTimeout: 10 * time.Second,
			MaxResults:      10,
			PerQueryResults: 5,
			RatePerSecond:   2,
			RateBurst:       5,
			FactCheckSites: []string{
				"snopes.com",
				"factcheck.org",
				"politifact.com",
				"reuters.com",
				"apnews.com",
				"fullfact.org",
			},
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			VisionModel: "gpt-4o-mini",
			Timeout:     30,
			MaxTokens:   1000,
		},
		Scoring: ScoringConfig{
			WeightSourceAgreement:     0.35,
			WeightReputableSources:    0.30,
			WeightContextCompleteness: 0.20,
			WeightFactCheckExists:     0.15,
			HighConfidence:            0.75,
			LowConfidence:             0.35,
			MaxMissingContext:         4,
			NeutralAgreement:          0.50,
			FactCheckBaseline:         0.40,
			ReputableDomains: []string{
				"reuters.com", "apnews.com", "bbc.com", "nytimes.com",
				"washingtonpost.com", "theguardian.com", "npr.org",
				"factcheck.org", "snopes.com", "politifact.com",
				"fullfact.org", "who.int", "cdc.gov", "gov.uk",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Server: ServerConfig{
			Addr:     ":8080",
			Env:      "dev",
			LogLevel: "info",
		},
	}
}

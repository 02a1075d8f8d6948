// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	HTTP       HTTPConfig              `mapstructure:"http"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Store      StoreConfig             `mapstructure:"store"`
	Cache      CacheConfig             `mapstructure:"cache"`
	Database   DatabaseConfig          `mapstructure:"database"`
	Workers    map[string]WorkerConfig `mapstructure:"workers"`
	APIs       APIsConfig              `mapstructure:"apis"`
	Resolution ResolutionConfig        `mapstructure:"resolution"`
	Registry   RegistryConfig          `mapstructure:"registry"`
	Logging    LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig holds settings for the public API and the health/metrics endpoints.
type HTTPConfig struct {
	Address         string   `mapstructure:"address"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	RateLimit       int      `mapstructure:"rate_limit"`        // requests per window per IP, 0 disables
	RateLimitWindow int      `mapstructure:"rate_limit_window"` // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`  // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// StoreConfig selects the topic/community store implementation.
type StoreConfig struct {
	Backend     string `mapstructure:"backend"`      // memory | postgres
	SearchIndex string `mapstructure:"search_index"` // none | elasticsearch
	TopicIndex  string `mapstructure:"topic_index"`  // elasticsearch index holding topics
	SearchLimit int    `mapstructure:"search_limit"`
}

// CacheConfig configures the read-through cache in front of the store.
type CacheConfig struct {
	Backend string `mapstructure:"backend"` // none | redis | lru
	TTL     int    `mapstructure:"ttl"`     // milliseconds
	Size    int    `mapstructure:"size"`    // lru entries
	Prefix  string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetAddresses returns the configured addresses, falling back to URL.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// GenAIConfig selects and tunes the suggestion generator backend.
type GenAIConfig struct {
	Provider    string        `mapstructure:"provider"` // gemini | openai | http
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     int           `mapstructure:"timeout"` // milliseconds, 0 = no deadline
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Breaker     BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the circuit breaker around the generator.
type BreakerConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	FailureThreshold int  `mapstructure:"failure_threshold"`
	OpenTimeout      int  `mapstructure:"open_timeout"` // milliseconds
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI GenAIConfig `mapstructure:"genai"`
}

// ResolutionConfig tunes the community resolution flow.
type ResolutionConfig struct {
	MinRating        float64 `mapstructure:"min_rating"`
	PlaceholderImage string  `mapstructure:"placeholder_image"`
}

// RegistryConfig points at an activity registry overriding the embedded one.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Planning      PlanningConfig          `mapstructure:"planning"`
	Parties       PartiesConfig           `mapstructure:"parties"`
	Events        EventsConfig            `mapstructure:"events"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	RegistryPath  string                  `mapstructure:"registry_path"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HTTPAddress string `mapstructure:"http_address"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
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

// ElasticsearchConfig configures the venue catalog cluster. The catalog is
// optional: with no addresses it stays disabled.
type ElasticsearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	VenueIndex  string   `mapstructure:"venue_index"`
	CatalogSize int      `mapstructure:"catalog_size"`
}

// Enabled reports whether a catalog cluster is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0
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

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	Yelp YelpConfig `mapstructure:"yelp"`
}

type YelpConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Timeout  int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
	Limit    int    `mapstructure:"limit"`
}

// DateRange is an inclusive calendar range in YYYY-MM-DD form.
type DateRange struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// PlanningConfig carries the tunables of the ready-plan engine.
type PlanningConfig struct {
	SchoolBoost            float64     `mapstructure:"school_boost"`
	ClampBoostedSimilarity bool        `mapstructure:"clamp_boosted_similarity"`
	LookbackDays           int         `mapstructure:"lookback_days"`
	MaxVenueOptions        int         `mapstructure:"max_venue_options"`
	Timezone               string      `mapstructure:"timezone"`
	BlackoutMonths         []int       `mapstructure:"blackout_months"`
	Blackouts              []DateRange `mapstructure:"blackouts"`
	EmbeddingCacheTTL      int         `mapstructure:"embedding_cache_ttl"` // seconds
}

type PartiesConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // seconds
}

type EventsConfig struct {
	SNS struct {
		Enabled      bool   `mapstructure:"enabled"`
		Region       string `mapstructure:"region"`
		PlanTopicARN string `mapstructure:"plan_topic_arn"`
	} `mapstructure:"sns"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// Seconds converts a seconds setting to a time.Duration.
func Seconds(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// internal/workers/venues/search-venues/config.go
package searchvenues

import (
	"time"

	"thenetwork-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	CacheTTL     time.Duration
	DefaultLimit int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		CacheTTL:     config.Seconds(cfg.APIs.Yelp.CacheTTL),
		DefaultLimit: cfg.APIs.Yelp.Limit,
	}
}

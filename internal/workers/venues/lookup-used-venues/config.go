// internal/workers/venues/lookup-used-venues/config.go
package lookupusedvenues

import (
	"time"

	"thenetwork-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	LookbackDays int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		LookbackDays: cfg.Planning.LookbackDays,
	}
}

// internal/workers/compatibility/calculate-compatibility/config.go
package calculatecompatibility

import (
	"time"

	"thenetwork-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
	}
}

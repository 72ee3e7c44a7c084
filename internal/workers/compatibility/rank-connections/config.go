// internal/workers/compatibility/rank-connections/config.go
package rankconnections

import (
	"time"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/planning/compat"
)

type Config struct {
	Timeout     time.Duration
	RankOptions compat.RankOptions
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		RankOptions: compat.RankOptions{
			SchoolBoost:  cfg.Planning.SchoolBoost,
			ClampBoosted: cfg.Planning.ClampBoostedSimilarity,
		},
	}
}

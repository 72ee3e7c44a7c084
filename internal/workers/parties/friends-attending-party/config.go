// internal/workers/parties/friends-attending-party/config.go
package friendsattendingparty

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

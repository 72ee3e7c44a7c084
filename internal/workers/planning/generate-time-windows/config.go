// internal/workers/planning/generate-time-windows/config.go
package generatetimewindows

import (
	"fmt"
	"time"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/planning/windows"
)

type Config struct {
	Timeout  time.Duration
	Location *time.Location
	Calendar windows.Calendar
}

func LoadConfig(cfg *config.Config) (*Config, error) {
	loc, err := time.LoadLocation(cfg.Planning.Timezone)
	if err != nil {
		return nil, fmt.Errorf("planning timezone: %w", err)
	}
	cal, err := windows.CalendarFromConfig(cfg.Planning, loc)
	if err != nil {
		return nil, fmt.Errorf("planning calendar: %w", err)
	}
	return &Config{
		Timeout:  config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Location: loc,
		Calendar: cal,
	}, nil
}

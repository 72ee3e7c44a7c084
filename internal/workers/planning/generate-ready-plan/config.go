// internal/workers/planning/generate-ready-plan/config.go
package generatereadyplan

import (
	"fmt"
	"time"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/planning/windows"
)

type Config struct {
	Timeout         time.Duration
	Location        *time.Location
	Calendar        windows.Calendar
	LookbackDays    int
	MaxVenueOptions int
	SearchLimit     int
	CatalogSize     int
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
		Timeout:         config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Location:        loc,
		Calendar:        cal,
		LookbackDays:    cfg.Planning.LookbackDays,
		MaxVenueOptions: cfg.Planning.MaxVenueOptions,
		SearchLimit:     cfg.APIs.Yelp.Limit,
		CatalogSize:     cfg.Database.Elasticsearch.CatalogSize,
	}, nil
}

// internal/workers/planning/generate-time-windows/models.go
package generatetimewindows

import (
	"time"

	"thenetwork-workers/internal/models"
)

type Input struct {
	Availability []models.AvailabilityBlock `json:"availability"`
	Now          *time.Time                 `json:"now,omitempty"`
	Timezone     string                     `json:"timezone,omitempty"`
}

type Output struct {
	Windows []models.TimeWindow `json:"windows"`
	Mode    models.WindowMode   `json:"mode"`
}

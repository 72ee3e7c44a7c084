// internal/workers/planning/generate-ready-plan/models.go
package generatereadyplan

import (
	"time"

	"thenetwork-workers/internal/models"
)

// Input asks for a plan between UserID and InviteeID. City defaults to the
// user's profile location.
type Input struct {
	UserID       string                     `json:"userId"`
	InviteeID    string                     `json:"inviteeId"`
	City         string                     `json:"city,omitempty"`
	ActivityType models.ActivityType        `json:"activityType"`
	Availability []models.AvailabilityBlock `json:"availability,omitempty"`
	Now          *time.Time                 `json:"now,omitempty"`
	Timezone     string                     `json:"timezone,omitempty"`
}

type Output = models.ReadyPlan

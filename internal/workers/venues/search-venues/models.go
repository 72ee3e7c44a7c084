// internal/workers/venues/search-venues/models.go
package searchvenues

import "thenetwork-workers/internal/models"

type Input struct {
	ActivityType models.ActivityType `json:"activityType"`
	Location     string              `json:"location"`
	Limit        int                 `json:"limit,omitempty"`
}

type Output struct {
	Venues     []models.Venue `json:"venues"`
	SearchTerm string         `json:"searchTerm"`
	Cached     bool           `json:"cached"`
}

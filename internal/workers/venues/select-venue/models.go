// internal/workers/venues/select-venue/models.go
package selectvenue

import "thenetwork-workers/internal/models"

type Input struct {
	Venues         []models.Venue `json:"venues"`
	UsedVenueNames []string       `json:"usedVenueNames"`
}

type Output struct {
	Venue      *models.Venue `json:"venue"`
	FromUnused bool          `json:"fromUnused"`
}

// internal/workers/venues/lookup-used-venues/models.go
package lookupusedvenues

type Input struct {
	UserID       string `json:"userId"`
	City         string `json:"city"`
	LookbackDays int    `json:"lookbackDays,omitempty"`
}

type Output struct {
	UsedVenueNames []string `json:"usedVenueNames"`
}

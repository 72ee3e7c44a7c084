// internal/models/venue.go
package models

// Venue is a meetup place as returned by venue search. Venues are deduplicated
// by their normalized name.
type Venue struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Rating     float64 `json:"rating"`
	Distance   *string `json:"distance,omitempty"`
	ExternalID string  `json:"externalId,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	URL        string  `json:"url,omitempty"`
}

// ActivityType tags a plan with the kind of meetup it proposes.
type ActivityType string

const (
	ActivityCoffee   ActivityType = "coffee"
	ActivityFood     ActivityType = "food"
	ActivityDrinks   ActivityType = "drinks"
	ActivityStudy    ActivityType = "study"
	ActivityWorkout  ActivityType = "workout"
	ActivityOutdoors ActivityType = "outdoors"
	ActivityMusic    ActivityType = "music"
	ActivityArt      ActivityType = "art"
	ActivityGames    ActivityType = "games"
	ActivityDessert  ActivityType = "dessert"
)

// ActivityTypes lists every known activity type in display order.
var ActivityTypes = []ActivityType{
	ActivityCoffee, ActivityFood, ActivityDrinks, ActivityStudy, ActivityWorkout,
	ActivityOutdoors, ActivityMusic, ActivityArt, ActivityGames, ActivityDessert,
}

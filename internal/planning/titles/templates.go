package titles

import "thenetwork-workers/internal/models"

// Placeholders: {interest} primary shared interest, {interest2} secondary,
// {venue}, {invitee} first name, {school}, {activity} activity label.
var activityTemplates = map[models.ActivityType][]string{
	models.ActivityCoffee: {
		"Coffee catch-up",
		"Coffee and conversation",
		"Grab a coffee",
		"Coffee chat about {interest}",
	},
	models.ActivityFood: {
		"Lunch together",
		"Grab a bite",
		"Dinner and good company",
		"Food and {interest} talk",
	},
	models.ActivityDrinks: {
		"Drinks after class",
		"Evening drinks",
		"Cheers to new friends",
		"Drinks and {interest}",
	},
	models.ActivityStudy: {
		"Study session",
		"Library grind",
		"Cram together",
		"Study break over {interest}",
	},
	models.ActivityWorkout: {
		"Workout buddies",
		"Gym session",
		"Sweat it out",
		"Train together",
	},
	models.ActivityOutdoors: {
		"Get some fresh air",
		"Walk in the park",
		"Outdoor hangout",
		"Sunshine and {interest}",
	},
	models.ActivityMusic: {
		"Live music night",
		"Catch a show",
		"Music night out",
		"Music and {interest}",
	},
	models.ActivityArt: {
		"Gallery stroll",
		"Art afternoon",
		"Explore some art",
		"Art and {interest}",
	},
	models.ActivityGames: {
		"Game night",
		"Arcade run",
		"Friendly competition",
		"Games and {interest}",
	},
	models.ActivityDessert: {
		"Dessert run",
		"Something sweet",
		"Treat yourselves",
		"Dessert and {interest} talk",
	},
}

var activityLabels = map[models.ActivityType]string{
	models.ActivityCoffee:   "Coffee",
	models.ActivityFood:     "Food",
	models.ActivityDrinks:   "Drinks",
	models.ActivityStudy:    "Study session",
	models.ActivityWorkout:  "Workout",
	models.ActivityOutdoors: "Outdoor time",
	models.ActivityMusic:    "Live music",
	models.ActivityArt:      "Art",
	models.ActivityGames:    "Games",
	models.ActivityDessert:  "Dessert",
}

const (
	inviteeTemplate   = "{activity} with {invitee}"
	venueTemplate     = "{activity} at {venue}"
	schoolTemplate    = "{school} meetup"
	secondaryTemplate = "{interest} and {interest2}"
)

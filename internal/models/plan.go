// internal/models/plan.go
package models

import "time"

// TimeWindow is a candidate meeting slot. Proposed is the midpoint of Start
// and End; Score is the social desirability used for ordering.
type TimeWindow struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Proposed time.Time `json:"proposed"`
	Score    float64   `json:"score"`
}

// AvailabilityBlock is a caller-supplied free interval.
type AvailabilityBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WindowMode string

const (
	WindowModeAvailability WindowMode = "availability"
	WindowModeHeuristic    WindowMode = "heuristic"
)

// ReadyPlan is a generated meetup proposal. It is returned to the caller,
// which owns persistence.
type ReadyPlan struct {
	PlanID          string       `json:"planId"`
	UserID          string       `json:"userId"`
	InviteeID       string       `json:"inviteeId"`
	City            string       `json:"city"`
	ActivityType    ActivityType `json:"activityType"`
	Title           string       `json:"title"`
	Venue           *Venue       `json:"venue,omitempty"`
	VenueOptions    []Venue      `json:"venueOptions"`
	Windows         []TimeWindow `json:"windows"`
	WindowMode      WindowMode   `json:"windowMode"`
	ProposedTime    *time.Time   `json:"proposedTime,omitempty"`
	Similarity      float64      `json:"similarity"`
	SharedInterests []string     `json:"sharedInterests"`
	GeneratedAt     time.Time    `json:"generatedAt"`
}

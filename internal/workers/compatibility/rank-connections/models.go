// internal/workers/compatibility/rank-connections/models.go
package rankconnections

import "thenetwork-workers/internal/planning/compat"

type Input struct {
	UserID       string       `json:"userId"`
	CandidateIDs []string     `json:"candidateIds"`
	UserProfile  *UserProfile `json:"userProfile,omitempty"`
}

type UserProfile struct {
	Interests []string `json:"interests"`
	School    string   `json:"school,omitempty"`
}

type Output struct {
	Connections []compat.Connection `json:"connections"`
}

// internal/models/party.go
package models

// Friend is a connection of the requesting user who RSVP'd to a party.
type Friend struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	School   string `json:"school,omitempty"`
}

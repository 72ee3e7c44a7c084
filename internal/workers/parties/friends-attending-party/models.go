// internal/workers/parties/friends-attending-party/models.go
package friendsattendingparty

import "thenetwork-workers/internal/models"

type Input struct {
	UserID    string `json:"userId"`
	PartySlug string `json:"partySlug"`
}

// Output has an empty PartyID when the slug matches no party.
type Output struct {
	PartyID string          `json:"partyId"`
	Friends []models.Friend `json:"friends"`
}

// internal/models/query_types.go
package models

// QueryType names a store query in logs and error details.
type QueryType string

const (
	QueryTypeProfilesBatch    QueryType = "profiles_batch"
	QueryTypeEmbeddingV1      QueryType = "embedding_v1"
	QueryTypeEmbeddingV2      QueryType = "embedding_v2"
	QueryTypePlanHistory      QueryType = "plan_history"
	QueryTypePartyBySlug      QueryType = "party_by_slug"
	QueryTypeFriendsAttending QueryType = "friends_attending"
)

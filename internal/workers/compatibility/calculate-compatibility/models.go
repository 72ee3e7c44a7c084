// internal/workers/compatibility/calculate-compatibility/models.go
package calculatecompatibility

// Input leaves the interest lists nil when the caller did not supply them;
// they are then read from the profiles.
type Input struct {
	UserID             string   `json:"userId"`
	CandidateID        string   `json:"candidateId"`
	UserInterests      []string `json:"userInterests,omitempty"`
	CandidateInterests []string `json:"candidateInterests,omitempty"`
}

type Output struct {
	Similarity      float64  `json:"similarity"`
	Method          string   `json:"method"`
	SharedInterests []string `json:"sharedInterests"`
}

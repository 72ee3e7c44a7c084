// Package compat scores how compatible two users are and ranks a user's
// connections by that score.
package compat

import (
	"math"
	"strings"
)

// Vector is a user's interest embedding. Dimensionality is not fixed; vectors
// of different lengths are incomparable.
type Vector []float64

// Embeddings holds both schema versions of one user's vector. A nil or empty
// field means the version is missing.
type Embeddings struct {
	V2 Vector `json:"v2,omitempty"`
	V1 Vector `json:"v1,omitempty"`
}

type Method string

const (
	MethodEmbeddingV2 Method = "embedding_v2"
	MethodEmbeddingV1 Method = "embedding_v1"
	MethodInterests   Method = "interests"
	MethodNone        Method = "none"
)

// Result is the outcome of scoring one pair of users.
type Result struct {
	Similarity      float64  `json:"similarity"`
	Method          Method   `json:"method"`
	SharedInterests []string `json:"sharedInterests"`
}

// CosineSimilarity returns dot(a,b)/(|a||b|), or 0 when the lengths differ,
// either vector is empty or either norm is zero.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim))
}

func normalizeInterest(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SharedInterests returns the interests present in both sets, compared
// case-insensitively after trimming, in the order they first appear in a.
func SharedInterests(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		if n := normalizeInterest(s); n != "" {
			inB[n] = struct{}{}
		}
	}

	shared := []string{}
	seen := make(map[string]struct{})
	for _, s := range a {
		n := normalizeInterest(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		if _, ok := inB[n]; ok {
			seen[n] = struct{}{}
			shared = append(shared, n)
		}
	}
	return shared
}

// InterestOverlap is |shared| / |union| over the normalized sets.
func InterestOverlap(a, b []string) float64 {
	shared := SharedInterests(a, b)
	if len(shared) == 0 {
		return 0
	}

	union := make(map[string]struct{}, len(a)+len(b))
	for _, set := range [][]string{a, b} {
		for _, s := range set {
			if n := normalizeInterest(s); n != "" {
				union[n] = struct{}{}
			}
		}
	}
	return float64(len(shared)) / float64(len(union))
}

// Score applies the escalation policy: v2 embeddings when both users have
// them, then v1, then interest overlap, then zero.
func Score(a, b Embeddings, interestsA, interestsB []string) Result {
	shared := SharedInterests(interestsA, interestsB)

	switch {
	case len(a.V2) > 0 && len(b.V2) > 0:
		return Result{Similarity: CosineSimilarity(a.V2, b.V2), Method: MethodEmbeddingV2, SharedInterests: shared}
	case len(a.V1) > 0 && len(b.V1) > 0:
		return Result{Similarity: CosineSimilarity(a.V1, b.V1), Method: MethodEmbeddingV1, SharedInterests: shared}
	case len(shared) > 0:
		return Result{Similarity: InterestOverlap(interestsA, interestsB), Method: MethodInterests, SharedInterests: shared}
	default:
		return Result{Similarity: 0, Method: MethodNone, SharedInterests: shared}
	}
}

package compat

import (
	"context"
	"math"
	"sort"

	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"golang.org/x/sync/errgroup"
)

const DefaultSchoolBoost = 0.1

// RankOptions tunes the same-school adjustment.
type RankOptions struct {
	SchoolBoost float64
	// ClampBoosted clamps the adjusted similarity to [0, 1]. Off by default,
	// so a boosted score may exceed 1.
	ClampBoosted bool
}

func DefaultRankOptions() RankOptions {
	return RankOptions{SchoolBoost: DefaultSchoolBoost}
}

// Subject is a user together with the embeddings used to score them.
type Subject struct {
	Profile    models.Profile
	Embeddings Embeddings
}

// Connection is a scored candidate. It is never persisted.
type Connection struct {
	UserID             string   `json:"userId"`
	CandidateID        string   `json:"candidateId"`
	FullName           string   `json:"fullName,omitempty"`
	School             string   `json:"school,omitempty"`
	Similarity         float64  `json:"similarity"`
	AdjustedSimilarity float64  `json:"adjustedSimilarity"`
	SameSchool         bool     `json:"sameSchool"`
	SharedInterests    []string `json:"sharedInterests"`
	Method             Method   `json:"method"`
}

// RankConnections scores every candidate against user and returns them sorted
// by adjusted similarity, highest first. Ties keep input order.
func RankConnections(user Subject, candidates []Subject, opts RankOptions) []Connection {
	out := make([]Connection, 0, len(candidates))
	for _, c := range candidates {
		res := Score(user.Embeddings, c.Embeddings, user.Profile.Interests, c.Profile.Interests)

		sameSchool := user.Profile.School != "" && c.Profile.School == user.Profile.School
		adjusted := res.Similarity
		if sameSchool {
			adjusted += opts.SchoolBoost
		}
		if opts.ClampBoosted {
			adjusted = math.Max(0, math.Min(1, adjusted))
		}

		out = append(out, Connection{
			UserID:             user.Profile.ID,
			CandidateID:        c.Profile.ID,
			FullName:           c.Profile.FullName,
			School:             c.Profile.School,
			Similarity:         res.Similarity,
			AdjustedSimilarity: adjusted,
			SameSchool:         sameSchool,
			SharedInterests:    res.SharedInterests,
			Method:             res.Method,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AdjustedSimilarity > out[j].AdjustedSimilarity
	})
	return out
}

// ProfileSource loads profiles in one batched query.
type ProfileSource interface {
	ProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
}

// EmbeddingSource loads both embedding versions of one user.
type EmbeddingSource interface {
	Embeddings(ctx context.Context, userID string) (Embeddings, error)
}

// Ranker resolves candidates through the stores and ranks them.
type Ranker struct {
	profiles   ProfileSource
	embeddings EmbeddingSource
	opts       RankOptions
	logger     logger.Logger
}

func NewRanker(profiles ProfileSource, embeddings EmbeddingSource, opts RankOptions, log logger.Logger) *Ranker {
	return &Ranker{profiles: profiles, embeddings: embeddings, opts: opts, logger: log}
}

// Rank issues one batched profile lookup for candidateIDs, then loads the
// embeddings of the user and of every candidate concurrently. Lookup failures
// degrade: a failed profile batch yields no connections, a failed embedding
// lookup counts as missing embeddings.
func (r *Ranker) Rank(ctx context.Context, user models.Profile, candidateIDs []string) []Connection {
	if len(candidateIDs) == 0 {
		return []Connection{}
	}

	profiles, err := r.profiles.ProfilesByIDs(ctx, candidateIDs)
	if err != nil {
		r.logger.Warn("candidate profile lookup failed", map[string]interface{}{
			"userId":     user.ID,
			"candidates": len(candidateIDs),
			"error":      err,
		})
		return []Connection{}
	}
	if len(profiles) == 0 {
		return []Connection{}
	}

	subject := Subject{Profile: user}
	candidates := make([]Subject, len(profiles))
	for i, p := range profiles {
		candidates[i].Profile = p
	}

	g, gctx := errgroup.WithContext(ctx)
	// Every goroutine writes its own slot; Wait orders the writes before ranking.
	load := func(userID string, dst *Embeddings) {
		g.Go(func() error {
			emb, err := r.embeddings.Embeddings(gctx, userID)
			if err != nil {
				r.logger.Warn("embedding lookup failed", map[string]interface{}{
					"userId": userID,
					"error":  err,
				})
				return nil
			}
			*dst = emb
			return nil
		})
	}

	load(user.ID, &subject.Embeddings)
	for i := range candidates {
		load(candidates[i].Profile.ID, &candidates[i].Embeddings)
	}
	_ = g.Wait()

	return RankConnections(subject, candidates, r.opts)
}

// Compare scores two users, loading both users' embeddings concurrently.
func (r *Ranker) Compare(ctx context.Context, a, b models.Profile) Result {
	var embA, embB Embeddings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		emb, err := r.embeddings.Embeddings(gctx, a.ID)
		if err != nil {
			r.logger.Warn("embedding lookup failed", map[string]interface{}{"userId": a.ID, "error": err})
			return nil
		}
		embA = emb
		return nil
	})
	g.Go(func() error {
		emb, err := r.embeddings.Embeddings(gctx, b.ID)
		if err != nil {
			r.logger.Warn("embedding lookup failed", map[string]interface{}{"userId": b.ID, "error": err})
			return nil
		}
		embB = emb
		return nil
	})
	_ = g.Wait()

	return Score(embA, embB, a.Interests, b.Interests)
}

package compat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProfiles struct {
	profiles []models.Profile
	err      error
	calls    int
	gotIDs   []string
}

func (f *fakeProfiles) ProfilesByIDs(_ context.Context, ids []string) ([]models.Profile, error) {
	f.calls++
	f.gotIDs = ids
	return f.profiles, f.err
}

type fakeEmbeddings struct {
	mu      sync.Mutex
	byUser  map[string]Embeddings
	failFor map[string]bool
	calls   map[string]int
}

func (f *fakeEmbeddings) Embeddings(_ context.Context, userID string) (Embeddings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[userID]++
	if f.failFor[userID] {
		return Embeddings{}, errors.New("connection reset")
	}
	return f.byUser[userID], nil
}

func TestRankConnections_SchoolBoost(t *testing.T) {
	// Candidates X (0.5) and Y (0.55); the user is at school X.
	user := Subject{
		Profile:    models.Profile{ID: "u", School: "X"},
		Embeddings: Embeddings{V2: Vector{1, 0}},
	}
	candidates := []Subject{
		{Profile: models.Profile{ID: "y", School: "Y"}, Embeddings: Embeddings{V2: vectorWithCosine(0.55)}},
		{Profile: models.Profile{ID: "x", School: "X"}, Embeddings: Embeddings{V2: vectorWithCosine(0.5)}},
	}

	got := RankConnections(user, candidates, DefaultRankOptions())
	require.Len(t, got, 2)

	assert.Equal(t, "x", got[0].CandidateID)
	assert.InDelta(t, 0.6, got[0].AdjustedSimilarity, 1e-9)
	assert.InDelta(t, 0.5, got[0].Similarity, 1e-9)
	assert.True(t, got[0].SameSchool)

	assert.Equal(t, "y", got[1].CandidateID)
	assert.InDelta(t, 0.55, got[1].AdjustedSimilarity, 1e-9)
	assert.False(t, got[1].SameSchool)
}

func TestRankConnections_BoostNotClampedByDefault(t *testing.T) {
	user := Subject{Profile: models.Profile{ID: "u", School: "Cal"}, Embeddings: Embeddings{V1: Vector{1, 1}}}
	cand := []Subject{{Profile: models.Profile{ID: "c", School: "Cal"}, Embeddings: Embeddings{V1: Vector{2, 2}}}}

	got := RankConnections(user, cand, DefaultRankOptions())
	assert.InDelta(t, 1.1, got[0].AdjustedSimilarity, 1e-9)
	assert.Equal(t, MethodEmbeddingV1, got[0].Method)

	clamped := RankConnections(user, cand, RankOptions{SchoolBoost: 0.1, ClampBoosted: true})
	assert.Equal(t, 1.0, clamped[0].AdjustedSimilarity)
}

func TestRankConnections_EmptySchoolNeverMatches(t *testing.T) {
	user := Subject{Profile: models.Profile{ID: "u", Interests: []string{"music"}}}
	cand := []Subject{{Profile: models.Profile{ID: "c", Interests: []string{"music"}}}}

	got := RankConnections(user, cand, DefaultRankOptions())
	assert.False(t, got[0].SameSchool)
	assert.Equal(t, got[0].Similarity, got[0].AdjustedSimilarity)
	assert.Equal(t, MethodInterests, got[0].Method)
}

func TestRankConnections_SortedAndStable(t *testing.T) {
	user := Subject{Profile: models.Profile{ID: "u", Interests: []string{"a", "b"}}}
	cands := []Subject{
		{Profile: models.Profile{ID: "none1", Interests: []string{"z"}}},
		{Profile: models.Profile{ID: "half", Interests: []string{"a"}}},
		{Profile: models.Profile{ID: "none2", Interests: []string{"y"}}},
		{Profile: models.Profile{ID: "full", Interests: []string{"a", "b"}}},
	}

	got := RankConnections(user, cands, DefaultRankOptions())

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.CandidateID
	}
	if diff := cmp.Diff([]string{"full", "half", "none1", "none2"}, ids); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].AdjustedSimilarity, got[i].AdjustedSimilarity)
	}
}

func TestRanker_Rank(t *testing.T) {
	profiles := &fakeProfiles{profiles: []models.Profile{
		{ID: "c1", School: "Stanford", Interests: []string{"music"}, FullName: "Ana Li"},
		{ID: "c2", School: "Cal", Interests: []string{"chess"}},
	}}
	embeddings := &fakeEmbeddings{
		byUser: map[string]Embeddings{
			"u":  {V2: Vector{1, 0}},
			"c1": {V2: Vector{1, 0}},
			"c2": {V1: Vector{1, 0}},
		},
		failFor: map[string]bool{"c2": true},
	}

	r := NewRanker(profiles, embeddings, DefaultRankOptions(), logger.NewTestLogger(t))
	user := models.Profile{ID: "u", School: "Cal", Interests: []string{"chess"}}

	got := r.Rank(context.Background(), user, []string{"c1", "c2"})

	require.Len(t, got, 2)
	assert.Equal(t, 1, profiles.calls)
	assert.Equal(t, []string{"c1", "c2"}, profiles.gotIDs)
	for _, id := range []string{"u", "c1", "c2"} {
		assert.Equal(t, 1, embeddings.calls[id], id)
	}

	// c1: v2 cosine 1. c2: failed embeddings fall back to shared "chess" (1.0) plus school boost.
	assert.Equal(t, "c2", got[0].CandidateID)
	assert.Equal(t, MethodInterests, got[0].Method)
	assert.InDelta(t, 1.1, got[0].AdjustedSimilarity, 1e-9)
	assert.Equal(t, "c1", got[1].CandidateID)
	assert.Equal(t, MethodEmbeddingV2, got[1].Method)
	assert.Equal(t, "Ana Li", got[1].FullName)
}

func TestRanker_Rank_ProfileFailureIsEmpty(t *testing.T) {
	r := NewRanker(&fakeProfiles{err: errors.New("db down")}, &fakeEmbeddings{}, DefaultRankOptions(), logger.NewNoOpLogger())

	got := r.Rank(context.Background(), models.Profile{ID: "u"}, []string{"c1"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRanker_Rank_NoRowsOrNoCandidates(t *testing.T) {
	emb := &fakeEmbeddings{}
	r := NewRanker(&fakeProfiles{}, emb, DefaultRankOptions(), logger.NewNoOpLogger())

	assert.Empty(t, r.Rank(context.Background(), models.Profile{ID: "u"}, []string{"c1"}))
	assert.Empty(t, r.Rank(context.Background(), models.Profile{ID: "u"}, nil))
	assert.Empty(t, emb.calls)
}

func TestRanker_Compare(t *testing.T) {
	emb := &fakeEmbeddings{byUser: map[string]Embeddings{
		"a": {V1: Vector{1, 0}},
		"b": {V2: Vector{1, 0}, V1: Vector{1, 0}},
	}}
	r := NewRanker(&fakeProfiles{}, emb, DefaultRankOptions(), logger.NewNoOpLogger())

	res := r.Compare(context.Background(),
		models.Profile{ID: "a", Interests: []string{"jazz"}},
		models.Profile{ID: "b", Interests: []string{"Jazz"}},
	)
	assert.Equal(t, MethodEmbeddingV1, res.Method)
	assert.InDelta(t, 1, res.Similarity, 1e-9)
	assert.Equal(t, []string{"jazz"}, res.SharedInterests)
}

// vectorWithCosine returns a 2-d vector whose cosine with (1, 0) is c.
func vectorWithCosine(c float64) Vector {
	return Vector{c, sqrt(1 - c*c)}
}

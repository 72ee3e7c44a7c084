package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"thenetwork-workers/internal/common/database"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/compat"

	"github.com/pgvector/pgvector-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	embeddingV2Query = `SELECT embedding FROM user_embeddings_v2 WHERE user_id = $1`
	embeddingV1Query = `SELECT embedding FROM user_embeddings_v1 WHERE user_id = $1`
)

// Embeddings loads users' interest vectors, both schema versions at once.
type Embeddings struct {
	db     *sql.DB
	cache  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewEmbeddings(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *Embeddings {
	return &Embeddings{db: db, cache: cache, ttl: ttl, logger: log}
}

func embeddingKey(userID string) string {
	return "embeddings:" + userID
}

// Embeddings returns the v2 and v1 vectors of userID. The two queries run
// concurrently and independently: a failed version is logged and left empty.
// An error is returned only when both fail. A missing row or an undecodable
// column is an empty vector.
func (e *Embeddings) Embeddings(ctx context.Context, userID string) (compat.Embeddings, error) {
	var out compat.Embeddings
	if database.GetJSON(ctx, e.cache, embeddingKey(userID), &out) {
		return out, nil
	}

	var g errgroup.Group
	var errV2, errV1 error
	g.Go(func() error {
		out.V2, errV2 = e.load(ctx, embeddingV2Query, userID)
		return nil
	})
	g.Go(func() error {
		out.V1, errV1 = e.load(ctx, embeddingV1Query, userID)
		return nil
	})
	_ = g.Wait()

	if errV2 != nil && errV1 != nil {
		return compat.Embeddings{}, errors.NewEmbeddingLookupFailedError(string(models.QueryTypeEmbeddingV2), errV2)
	}
	if errV2 != nil || errV1 != nil {
		e.logFailed(userID, models.QueryTypeEmbeddingV2, errV2)
		e.logFailed(userID, models.QueryTypeEmbeddingV1, errV1)
		// Partial results are not cached.
		return out, nil
	}

	if err := database.SetJSON(ctx, e.cache, embeddingKey(userID), out, e.ttl); err != nil {
		e.logger.Warn("embedding cache write failed", map[string]interface{}{"userId": userID, "error": err})
	}
	return out, nil
}

func (e *Embeddings) logFailed(userID string, version models.QueryType, err error) {
	if err == nil {
		return
	}
	e.logger.Warn("embedding lookup failed, using remaining version", map[string]interface{}{
		"userId":  userID,
		"version": version,
		"error":   err,
	})
}

func (e *Embeddings) load(ctx context.Context, query, userID string) (compat.Vector, error) {
	var raw sql.NullString
	err := e.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeVector(raw.String), nil
}

// DecodeVector parses a pgvector text value ("[1,2,3]") and falls back to a
// JSON number array. Malformed input yields nil.
func DecodeVector(raw string) compat.Vector {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil
	}

	var pv pgvector.Vector
	if err := pv.Scan([]byte(raw)); err == nil {
		floats := pv.Slice()
		out := make(compat.Vector, len(floats))
		for i, f := range floats {
			out[i] = float64(f)
		}
		return out
	}

	var fallback []float64
	if err := json.Unmarshal([]byte(raw), &fallback); err != nil {
		return nil
	}
	if len(fallback) == 0 {
		return nil
	}
	return fallback
}

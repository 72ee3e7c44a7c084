// Package store reads planner data from the hosted Postgres database, caches
// hot lookups in Redis and keeps the Elasticsearch venue catalog.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"thenetwork-workers/internal/common/database"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const profilesByIDsQuery = `
	SELECT id, COALESCE(location, ''), COALESCE(interests::text, ''),
	       COALESCE(school, ''), COALESCE(school_id::text, ''), COALESCE(full_name, '')
	FROM profiles
	WHERE id = ANY($1)`

// Profiles is the read-only profile store.
type Profiles struct {
	db     *sql.DB
	cache  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

// NewProfiles returns a profile store. cache may be nil to disable caching of
// single-profile lookups.
func NewProfiles(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *Profiles {
	return &Profiles{db: db, cache: cache, ttl: ttl, logger: log}
}

func profileKey(id string) string {
	return "profile:" + id
}

// Profile returns the profile with id, or nil when there is none.
func (p *Profiles) Profile(ctx context.Context, id string) (*models.Profile, error) {
	var cached models.Profile
	if database.GetJSON(ctx, p.cache, profileKey(id), &cached) {
		return &cached, nil
	}

	profiles, err := p.ProfilesByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	if err := database.SetJSON(ctx, p.cache, profileKey(id), profiles[0], p.ttl); err != nil {
		p.logger.Warn("profile cache write failed", map[string]interface{}{"userId": id, "error": err})
	}
	return &profiles[0], nil
}

// ProfilesByIDs loads every profile in ids with a single query. Unknown ids
// are skipped; rows come back in ids order.
func (p *Profiles) ProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}

	start := time.Now()
	rows, err := p.db.QueryContext(ctx, profilesByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, errors.NewProfileLookupFailedError(err)
	}
	defer rows.Close()

	byID := make(map[string]models.Profile, len(ids))
	for rows.Next() {
		var prof models.Profile
		var interests string
		if err := rows.Scan(&prof.ID, &prof.Location, &interests, &prof.School, &prof.SchoolID, &prof.FullName); err != nil {
			return nil, errors.NewProfileLookupFailedError(err)
		}
		prof.Interests = ParseInterests(interests)
		byID[prof.ID] = prof
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewProfileLookupFailedError(err)
	}

	out := make([]models.Profile, 0, len(byID))
	for _, id := range ids {
		if prof, ok := byID[id]; ok {
			out = append(out, prof)
			delete(byID, id)
		}
	}

	p.logger.Debug("profiles loaded", map[string]interface{}{
		"queryType":   models.QueryTypeProfilesBatch,
		"requested":   len(ids),
		"found":       len(out),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return out, nil
}

// ParseInterests decodes an interests column stored either as a Postgres
// text[] literal or as a JSON array. Anything else yields no interests.
func ParseInterests(raw string) []string {
	raw = strings.TrimSpace(raw)
	out := []string{}
	switch {
	case strings.HasPrefix(raw, "["):
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return out
		}
		out = append(out, list...)
	case strings.HasPrefix(raw, "{"):
		var arr pq.StringArray
		if err := arr.Scan([]byte(raw)); err != nil {
			return out
		}
		out = append(out, arr...)
	}
	return out
}

func queryError(queryType models.QueryType, err error) error {
	return errors.NewQueryExecutionFailedError(string(queryType), err)
}

package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	partyBySlugQuery = `SELECT id FROM parties WHERE slug = $1`

	friendsAttendingQuery = `
	SELECT p.id, COALESCE(p.full_name, ''), COALESCE(p.school, '')
	FROM connections c
	JOIN party_rsvps r ON r.user_id = c.connected_user_id AND r.party_id = $2
	JOIN profiles p ON p.id = c.connected_user_id
	WHERE c.user_id = $1
	ORDER BY p.full_name, p.id`
)

// PartyResolver maps party slugs to ids through a Redis cache and lists the
// connections attending a party.
type PartyResolver struct {
	db     *sql.DB
	cache  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewPartyResolver(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *PartyResolver {
	return &PartyResolver{db: db, cache: cache, ttl: ttl, logger: log}
}

// PartyCacheKey is the Redis key holding the id of the party with slug.
func PartyCacheKey(slug string) string {
	return "party:slug:" + strings.ToLower(strings.TrimSpace(slug))
}

// Resolve returns the id of the party with slug. ok is false when no party
// has that slug; unknown slugs are not cached.
func (r *PartyResolver) Resolve(ctx context.Context, slug string) (id string, ok bool, err error) {
	key := PartyCacheKey(slug)
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, true, nil
		}
	}

	err = r.db.QueryRowContext(ctx, partyBySlugQuery, strings.TrimSpace(slug)).Scan(&id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, queryError(models.QueryTypePartyBySlug, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, id, r.ttl).Err(); err != nil {
			r.logger.Warn("party cache write failed", map[string]interface{}{"slug": slug, "error": err})
		}
	}
	return id, true, nil
}

// Invalidate drops the cached id of slug.
func (r *PartyResolver) Invalidate(ctx context.Context, slug string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Del(ctx, PartyCacheKey(slug)).Err()
}

// FriendsAttending lists the connections of userID with an RSVP to partyID.
func (r *PartyResolver) FriendsAttending(ctx context.Context, userID, partyID string) ([]models.Friend, error) {
	rows, err := r.db.QueryContext(ctx, friendsAttendingQuery, userID, partyID)
	if err != nil {
		return nil, queryError(models.QueryTypeFriendsAttending, err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.FullName, &f.School); err != nil {
			return nil, queryError(models.QueryTypeFriendsAttending, err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(models.QueryTypeFriendsAttending, err)
	}
	return friends, nil
}

// internal/workers/venues/search-venues/handler.go
package searchvenues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/database"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"
	"thenetwork-workers/internal/common/yelp"
	"thenetwork-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "search-venues"
)

// Searcher is the venue search API.
type Searcher interface {
	Search(ctx context.Context, activityType models.ActivityType, location string, limit int) []models.Venue
}

// CatalogWriter indexes venues found by search.
type CatalogWriter interface {
	Upsert(ctx context.Context, city string, activityType models.ActivityType, venues []models.Venue) error
}

type Handler struct {
	config    *Config
	searcher  Searcher
	redis     redis.Cmdable
	catalog   CatalogWriter
	validator *validation.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

// NewHandler builds the worker. redis and catalog may be nil.
func NewHandler(config *Config, searcher Searcher, rdb redis.Cmdable, catalog CatalogWriter, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		searcher:  searcher,
		redis:     rdb,
		catalog:   catalog,
		validator: validator,
		jobs:      camunda.NewJobReporter(TaskType, log, obs),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := h.jobs.Begin(job)

	if err := h.validator.Validate(TaskType, job.Variables); err != nil {
		h.jobs.Fail(client, job, err, started)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.jobs.Fail(client, job, errors.NewParseError(err), started)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.jobs.Fail(client, job, err, started)
		return
	}

	h.jobs.Complete(client, job, output, started)
}

// CacheKey is the Redis key of one search.
func CacheKey(term, location string, limit int) string {
	return fmt.Sprintf("venues:search:%s:%s:%d", term, strings.ToLower(strings.TrimSpace(location)), limit)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	term := yelp.SearchTerm(input.ActivityType)
	key := CacheKey(term, input.Location, limit)

	var cached []models.Venue
	if database.GetJSON(ctx, h.redis, key, &cached) {
		h.logger.Debug("venue search cache hit", map[string]interface{}{"key": key, "count": len(cached)})
		return &Output{Venues: cached, SearchTerm: term, Cached: true}, nil
	}

	found := h.searcher.Search(ctx, input.ActivityType, input.Location, limit)

	// Empty results may be a degraded search; they are not cached or indexed.
	if len(found) > 0 {
		if err := database.SetJSON(ctx, h.redis, key, found, h.config.CacheTTL); err != nil {
			h.logger.Warn("venue search cache write failed", map[string]interface{}{"key": key, "error": err})
		}
		if h.catalog != nil {
			if err := h.catalog.Upsert(ctx, input.Location, input.ActivityType, found); err != nil {
				h.logger.Warn("venue catalog upsert failed", map[string]interface{}{"error": err})
			}
		}
	}

	h.logger.Info("venues searched", map[string]interface{}{
		"term":        term,
		"location":    input.Location,
		"count":       len(found),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Output{Venues: found, SearchTerm: term, Cached: false}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

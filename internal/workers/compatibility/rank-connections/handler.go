// internal/workers/compatibility/rank-connections/handler.go
package rankconnections

import (
	"context"
	"encoding/json"
	"time"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/metrics"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"
	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/compat"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-connections"
)

type Handler struct {
	config    *Config
	profiles  compat.ProfileSource
	ranker    *compat.Ranker
	validator *validation.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, profiles compat.ProfileSource, embeddings compat.EmbeddingSource, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		profiles:  profiles,
		ranker:    compat.NewRanker(profiles, embeddings, config.RankOptions, log),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	user := models.Profile{ID: input.UserID}
	if input.UserProfile != nil {
		user.Interests = input.UserProfile.Interests
		user.School = input.UserProfile.School
	} else {
		user = h.loadUser(ctx, input.UserID)
	}

	connections := h.ranker.Rank(ctx, user, input.CandidateIDs)
	for _, c := range connections {
		metrics.CompatScores.WithLabelValues(string(c.Method)).Inc()
	}

	h.logger.Info("connections ranked", map[string]interface{}{
		"userId":      input.UserID,
		"candidates":  len(input.CandidateIDs),
		"ranked":      len(connections),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Output{Connections: connections}, nil
}

func (h *Handler) loadUser(ctx context.Context, userID string) models.Profile {
	user := models.Profile{ID: userID}
	profiles, err := h.profiles.ProfilesByIDs(ctx, []string{userID})
	if err != nil {
		h.logger.Warn("user profile lookup failed", map[string]interface{}{"userId": userID, "error": err})
		return user
	}
	if len(profiles) > 0 {
		return profiles[0]
	}
	return user
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

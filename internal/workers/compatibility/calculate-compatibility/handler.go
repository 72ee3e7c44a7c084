// internal/workers/compatibility/calculate-compatibility/handler.go
package calculatecompatibility

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
	TaskType = "calculate-compatibility"
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
		ranker:    compat.NewRanker(profiles, embeddings, compat.DefaultRankOptions(), log),
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

	user := models.Profile{ID: input.UserID, Interests: input.UserInterests}
	candidate := models.Profile{ID: input.CandidateID, Interests: input.CandidateInterests}

	if user.Interests == nil || candidate.Interests == nil {
		h.fillInterests(ctx, &user, &candidate)
	}

	result := h.ranker.Compare(ctx, user, candidate)
	metrics.CompatScores.WithLabelValues(string(result.Method)).Inc()

	h.logger.Info("compatibility calculated", map[string]interface{}{
		"userId":      input.UserID,
		"candidateId": input.CandidateID,
		"method":      result.Method,
		"similarity":  result.Similarity,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Output{
		Similarity:      result.Similarity,
		Method:          string(result.Method),
		SharedInterests: result.SharedInterests,
	}, nil
}

// fillInterests reads missing interest lists from the profile store. A failed
// lookup leaves them empty.
func (h *Handler) fillInterests(ctx context.Context, user, candidate *models.Profile) {
	profiles, err := h.profiles.ProfilesByIDs(ctx, []string{user.ID, candidate.ID})
	if err != nil {
		h.logger.Warn("profile lookup failed, scoring without interests", map[string]interface{}{
			"userId":      user.ID,
			"candidateId": candidate.ID,
			"error":       err,
		})
		return
	}
	for _, p := range profiles {
		switch {
		case p.ID == user.ID && user.Interests == nil:
			user.Interests = p.Interests
		case p.ID == candidate.ID && candidate.Interests == nil:
			candidate.Interests = p.Interests
		}
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/parties/friends-attending-party/handler.go
package friendsattendingparty

import (
	"context"
	"encoding/json"
	"time"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"
	"thenetwork-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "friends-attending-party"
)

// Parties resolves party slugs and their attendees.
type Parties interface {
	Resolve(ctx context.Context, slug string) (id string, ok bool, err error)
	FriendsAttending(ctx context.Context, userID, partyID string) ([]models.Friend, error)
}

type Handler struct {
	config    *Config
	parties   Parties
	validator *validation.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, parties Parties, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		parties:   parties,
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

	partyID, ok, err := h.parties.Resolve(ctx, input.PartySlug)
	if err != nil {
		return nil, err
	}
	if !ok {
		h.logger.Info("unknown party", map[string]interface{}{"partySlug": input.PartySlug})
		return &Output{Friends: []models.Friend{}}, nil
	}

	friends, err := h.parties.FriendsAttending(ctx, input.UserID, partyID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("friends attending loaded", map[string]interface{}{
		"userId":      input.UserID,
		"partyId":     partyID,
		"friends":     len(friends),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Output{PartyID: partyID, Friends: friends}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

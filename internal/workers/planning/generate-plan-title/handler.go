// internal/workers/planning/generate-plan-title/handler.go
package generateplantitle

import (
	"context"
	"encoding/json"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"
	"thenetwork-workers/internal/planning/titles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-plan-title"
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
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
	title := titles.Generate(*input)
	h.logger.Info("plan title generated", map[string]interface{}{
		"activityType": input.ActivityType,
		"title":        title,
	})
	return &Output{Title: title}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/venues/lookup-used-venues/handler.go
package lookupusedvenues

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "lookup-used-venues"
)

// History is the plan history read by this worker.
type History interface {
	UsedVenueNames(ctx context.Context, userID, city string, lookbackDays int) (map[string]struct{}, error)
}

type Handler struct {
	config    *Config
	history   History
	validator *validation.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, history History, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		history:   history,
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

// execute surfaces query failures so Zeebe can retry the job. The ready-plan
// worker reads history directly and degrades instead.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	lookback := input.LookbackDays
	if lookback <= 0 {
		lookback = h.config.LookbackDays
	}

	used, err := h.history.UsedVenueNames(ctx, input.UserID, input.City, lookback)
	if err != nil {
		h.logger.Error("plan history lookup failed", map[string]interface{}{
			"userId": input.UserID,
			"city":   input.City,
			"error":  err,
		})
		return nil, err
	}

	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)

	h.logger.Info("used venues loaded", map[string]interface{}{
		"userId":       input.UserID,
		"city":         input.City,
		"lookbackDays": lookback,
		"count":        len(names),
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	return &Output{UsedVenueNames: names}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

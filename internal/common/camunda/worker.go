// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/metrics"
	"thenetwork-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobReporter completes and fails jobs of one task type and records the
// Prometheus and OTel job metrics for each outcome.
type JobReporter struct {
	taskType string
	logger   logger.Logger
	errors   *errors.ErrorHandler
	obs      *observability.Observability
}

// NewJobReporter returns a reporter for taskType. obs may be nil.
func NewJobReporter(taskType string, log logger.Logger, obs *observability.Observability) *JobReporter {
	return &JobReporter{
		taskType: taskType,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		obs:      obs,
	}
}

// Begin marks a job as active and returns its start time.
func (r *JobReporter) Begin(job entities.Job) time.Time {
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	return time.Now()
}

// Complete sends the output variables and records a success.
func (r *JobReporter) Complete(client worker.JobClient, job entities.Job, output interface{}, started time.Time) {
	ctx := context.Background()
	defer r.finish(ctx, started, "completed")

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
}

// Fail hands err to the ErrorHandler, which retries or throws a BPMN error.
func (r *JobReporter) Fail(client worker.JobClient, job entities.Job, err error, started time.Time) {
	ctx := context.Background()
	defer r.finish(ctx, started, "failed")

	stdErr := errors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	r.errors.HandleJobError(ctx, client, job, stdErr)
}

func (r *JobReporter) finish(ctx context.Context, started time.Time, status string) {
	elapsed := time.Since(started)
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}

// StartWorker opens a job worker for taskType unless it is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// internal/workers/planning/generate-ready-plan/handler.go
package generatereadyplan

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
	"thenetwork-workers/internal/planning/titles"
	"thenetwork-workers/internal/planning/venues"
	"thenetwork-workers/internal/planning/windows"
	searchvenues "thenetwork-workers/internal/workers/venues/search-venues"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "generate-ready-plan"
)

// History reads venues of earlier plans.
type History interface {
	UsedVenueNames(ctx context.Context, userID, city string, lookbackDays int) (map[string]struct{}, error)
}

// VenueSearch runs the cached venue search.
type VenueSearch interface {
	Execute(ctx context.Context, input *searchvenues.Input) (*searchvenues.Output, error)
}

// CatalogReader is the fallback venue source.
type CatalogReader interface {
	Search(ctx context.Context, city string, activityType models.ActivityType, limit int) []models.Venue
}

type EventPublisher interface {
	PublishPlanGenerated(ctx context.Context, plan *models.ReadyPlan) error
}

// Deps are the collaborators of the orchestrator. Catalog and Events may be
// nil.
type Deps struct {
	Profiles   compat.ProfileSource
	Embeddings compat.EmbeddingSource
	History    History
	Venues     VenueSearch
	Catalog    CatalogReader
	Events     EventPublisher
}

type Handler struct {
	config    *Config
	deps      Deps
	ranker    *compat.Ranker
	validator *validation.Validator
	obs       *observability.Observability
	jobs      *camunda.JobReporter
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, deps Deps, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		deps:      deps,
		ranker:    compat.NewRanker(deps.Profiles, deps.Embeddings, compat.DefaultRankOptions(), log),
		validator: validator,
		obs:       obs,
		jobs:      camunda.NewJobReporter(TaskType, log, obs),
		logger:    log,
		now:       time.Now,
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

// execute composes a plan. Only invalid input fails; every dependency failure
// degrades the plan instead.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" || input.InviteeID == "" {
		return nil, errors.NewInvalidInputError("userId and inviteeId are required")
	}
	now, err := windows.ReferenceTime(input.Now, input.Timezone, h.config.Location, h.now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("user.id", input.UserID),
		attribute.String("activity.type", string(input.ActivityType)),
	)
	defer span.End()

	user, invitee := h.loadProfiles(ctx, input.UserID, input.InviteeID)
	city := input.City
	if city == "" {
		city = user.Location
	}

	compatibility := h.ranker.Compare(ctx, user, invitee)
	metrics.CompatScores.WithLabelValues(string(compatibility.Method)).Inc()

	candidates := h.findVenues(ctx, input.ActivityType, city)
	used := h.usedVenues(ctx, input.UserID, city)
	selected, _ := venues.SelectVenue(candidates, used)
	options := venues.Unused(candidates, used, h.config.MaxVenueOptions)

	ws, mode := windows.Generate(input.Availability, now, h.config.Calendar)

	titleCtx := titles.Context{
		ActivityType:    input.ActivityType,
		SharedInterests: compatibility.SharedInterests,
		InviteeName:     invitee.FullName,
		InviteeSchool:   invitee.School,
		City:            city,
	}
	if selected != nil {
		titleCtx.VenueName = selected.Name
	}

	plan := &models.ReadyPlan{
		PlanID:          uuid.NewString(),
		UserID:          input.UserID,
		InviteeID:       input.InviteeID,
		City:            city,
		ActivityType:    input.ActivityType,
		Title:           titles.Generate(titleCtx),
		Venue:           selected,
		VenueOptions:    options,
		Windows:         ws,
		WindowMode:      mode,
		Similarity:      compatibility.Similarity,
		SharedInterests: compatibility.SharedInterests,
		GeneratedAt:     h.now().UTC(),
	}
	if len(ws) > 0 {
		proposed := ws[0].Proposed
		plan.ProposedTime = &proposed
	}

	if h.deps.Events != nil {
		if err := h.deps.Events.PublishPlanGenerated(ctx, plan); err != nil {
			h.logger.Warn("plan event not published", map[string]interface{}{"planId": plan.PlanID, "error": err})
		}
	}

	metrics.PlansGenerated.WithLabelValues(string(mode)).Inc()
	span.SetAttributes(
		attribute.String("plan.id", plan.PlanID),
		attribute.Int("plan.venue_options", len(options)),
		attribute.String("plan.window_mode", string(mode)),
	)

	h.logger.Info("ready plan generated", map[string]interface{}{
		"planId":      plan.PlanID,
		"userId":      input.UserID,
		"inviteeId":   input.InviteeID,
		"city":        city,
		"candidates":  len(candidates),
		"usedVenues":  len(used),
		"windows":     len(ws),
		"windowMode":  mode,
		"method":      compatibility.Method,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return plan, nil
}

func (h *Handler) loadProfiles(ctx context.Context, userID, inviteeID string) (models.Profile, models.Profile) {
	user := models.Profile{ID: userID}
	invitee := models.Profile{ID: inviteeID}

	profiles, err := h.deps.Profiles.ProfilesByIDs(ctx, []string{userID, inviteeID})
	if err != nil {
		h.logger.Warn("profile lookup failed", map[string]interface{}{"userId": userID, "inviteeId": inviteeID, "error": err})
		return user, invitee
	}
	for _, p := range profiles {
		if p.ID == userID {
			user = p
		}
		if p.ID == inviteeID {
			invitee = p
		}
	}
	return user, invitee
}

func (h *Handler) usedVenues(ctx context.Context, userID, city string) map[string]struct{} {
	used, err := h.deps.History.UsedVenueNames(ctx, userID, city, h.config.LookbackDays)
	if err != nil {
		h.logger.Warn("plan history unavailable, treating all venues as unused", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
		return map[string]struct{}{}
	}
	return used
}

func (h *Handler) findVenues(ctx context.Context, activityType models.ActivityType, city string) []models.Venue {
	ctx, span := h.obs.StartSpan(ctx, "find-venues", attribute.String("city", city))
	defer span.End()

	var found []models.Venue
	if city != "" {
		out, err := h.deps.Venues.Execute(ctx, &searchvenues.Input{
			ActivityType: activityType,
			Location:     city,
			Limit:        h.config.SearchLimit,
		})
		if err != nil {
			h.logger.Warn("venue search failed", map[string]interface{}{"error": err})
		} else {
			found = out.Venues
		}
	}

	if len(found) == 0 && h.deps.Catalog != nil && city != "" {
		found = h.deps.Catalog.Search(ctx, city, activityType, h.config.CatalogSize)
		span.SetAttributes(attribute.Bool("venues.from_catalog", true))
	}
	if found == nil {
		found = []models.Venue{}
	}
	return found
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

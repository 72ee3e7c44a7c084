package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/venues"
)

// DefaultLookbackDays bounds how far back plan history is read.
const DefaultLookbackDays = 30

const usedVenuesQuery = `
	SELECT venue_options::text, selected_venue::text
	FROM ready_plans
	WHERE user_id = $1
	  AND city = $2
	  AND created_at >= NOW() - make_interval(days => $3)`

// PlanHistory reads the venues of a user's earlier plans.
type PlanHistory struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPlanHistory(db *sql.DB, log logger.Logger) *PlanHistory {
	return &PlanHistory{db: db, logger: log}
}

// UsedVenueNames returns the normalized names of every venue offered or
// selected in the user's plans for city within lookbackDays. A non-positive
// lookback uses DefaultLookbackDays.
func (h *PlanHistory) UsedVenueNames(ctx context.Context, userID, city string, lookbackDays int) (map[string]struct{}, error) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	start := time.Now()
	rows, err := h.db.QueryContext(ctx, usedVenuesQuery, userID, city, lookbackDays)
	if err != nil {
		return nil, queryError(models.QueryTypePlanHistory, err)
	}
	defer rows.Close()

	used := make(map[string]struct{})
	plans := 0
	for rows.Next() {
		var options, selected sql.NullString
		if err := rows.Scan(&options, &selected); err != nil {
			return nil, queryError(models.QueryTypePlanHistory, err)
		}
		plans++
		for _, name := range venueOptionNames(options.String) {
			addVenue(used, name)
		}
		addVenue(used, venueName(json.RawMessage(selected.String)))
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(models.QueryTypePlanHistory, err)
	}

	h.logger.Debug("plan history loaded", map[string]interface{}{
		"queryType":   models.QueryTypePlanHistory,
		"userId":      userID,
		"city":        city,
		"plans":       plans,
		"venues":      len(used),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return used, nil
}

func addVenue(set map[string]struct{}, name string) {
	if n := venues.NormalizeVenueName(name); n != "" {
		set[n] = struct{}{}
	}
}

func venueOptionNames(raw string) []string {
	var options []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil
	}
	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, venueName(opt))
	}
	return names
}

// venueName reads a venue stored either as an object with a name or as a
// bare string.
func venueName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &v); err == nil {
		return v.Name
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

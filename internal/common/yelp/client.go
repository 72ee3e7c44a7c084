// Package yelp searches the Yelp Fusion API for meetup venues.
package yelp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"thenetwork-workers/internal/common/config"
	httpclient "thenetwork-workers/internal/common/http"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/metrics"
	"thenetwork-workers/internal/models"
)

// MinRating is the lowest rating a search result may have.
const MinRating = 4.0

const metersPerMile = 1609.344

var searchTerms = map[models.ActivityType]string{
	models.ActivityCoffee:   "coffee",
	models.ActivityFood:     "restaurants",
	models.ActivityDrinks:   "bars",
	models.ActivityStudy:    "cafes",
	models.ActivityWorkout:  "gyms",
	models.ActivityOutdoors: "parks",
	models.ActivityMusic:    "music venues",
	models.ActivityArt:      "art galleries",
	models.ActivityGames:    "arcades",
	models.ActivityDessert:  "desserts",
}

// SearchTerm maps an activity type to its Yelp search term. Unknown types
// search for coffee.
func SearchTerm(activityType models.ActivityType) string {
	key := models.ActivityType(strings.ToLower(strings.TrimSpace(string(activityType))))
	if term, ok := searchTerms[key]; ok {
		return term
	}
	return searchTerms[models.ActivityCoffee]
}

type business struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Rating   float64  `json:"rating"`
	Distance *float64 `json:"distance"`
	ImageURL string   `json:"image_url"`
	URL      string   `json:"url"`
	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
}

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

// Client is a read-only Yelp business search client.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  logger.Logger
}

// NewClient builds a client from cfg. Requests time out after cfg.Timeout.
func NewClient(cfg config.YelpConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpclient.NewClient(config.GetDuration(cfg.Timeout), httpclient.WithBearerToken(cfg.APIKey)),
		logger:  log.WithFields(map[string]interface{}{"component": "yelp"}),
	}
}

// Search returns venues rated at least MinRating for activityType near
// location. Any failure is logged and yields an empty list.
func (c *Client) Search(ctx context.Context, activityType models.ActivityType, location string, limit int) []models.Venue {
	term := SearchTerm(activityType)
	venues := []models.Venue{}

	if c.apiKey == "" {
		c.fail("no_api_key", term, location, errors.New("yelp api key is not configured"))
		return venues
	}

	query := url.Values{}
	query.Set("term", term)
	query.Set("location", location)
	query.Set("sort_by", "rating")
	query.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/businesses/search", query, &resp); err != nil {
		c.fail(reason(err), term, location, err)
		return venues
	}

	for _, b := range resp.Businesses {
		if b.Rating < MinRating {
			continue
		}
		venues = append(venues, toVenue(b))
	}

	metrics.VenueSearchResults.Observe(float64(len(venues)))
	c.logger.Debug("venue search completed", map[string]interface{}{
		"term":     term,
		"location": location,
		"returned": len(resp.Businesses),
		"kept":     len(venues),
	})
	return venues
}

func (c *Client) fail(reason, term, location string, err error) {
	metrics.VenueSearchFailures.WithLabelValues(reason).Inc()
	c.logger.Warn("venue search failed", map[string]interface{}{
		"reason":   reason,
		"term":     term,
		"location": location,
		"error":    err.Error(),
	})
}

func reason(err error) string {
	var statusErr *httpclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		return "status_" + strconv.Itoa(statusErr.StatusCode)
	case strings.HasPrefix(err.Error(), "decode response"):
		return "decode"
	default:
		return "transport"
	}
}

func toVenue(b business) models.Venue {
	v := models.Venue{
		Name:       b.Name,
		Address:    strings.Join(b.Location.DisplayAddress, ", "),
		Rating:     b.Rating,
		ExternalID: b.ID,
		ImageURL:   b.ImageURL,
		URL:        b.URL,
	}
	if b.Distance != nil {
		d := fmt.Sprintf("%.1f mi", *b.Distance/metersPerMile)
		v.Distance = &d
	}
	return v
}

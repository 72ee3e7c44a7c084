package yelp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "total": 3,
  "businesses": [
    {"id": "bb-1", "name": "Blue Bottle", "rating": 4.5, "distance": 1609.344,
     "image_url": "https://img/bb.jpg", "url": "https://yelp/bb",
     "location": {"display_address": ["66 Mint St", "San Francisco, CA 94103"]}},
    {"id": "ph-2", "name": "Philz", "rating": 4.0,
     "location": {"display_address": ["3101 24th St"]}},
    {"id": "lo-3", "name": "Low Rated", "rating": 3.5, "distance": 200,
     "location": {"display_address": []}}
  ]
}`

func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()
	return NewClient(config.YelpConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 2000,
	}, logger.NewTestLogger(t))
}

func TestSearchTerm(t *testing.T) {
	tests := map[models.ActivityType]string{
		models.ActivityCoffee:  "coffee",
		models.ActivityFood:    "restaurants",
		models.ActivityMusic:   "music venues",
		models.ActivityDessert: "desserts",
		" Drinks ":             "bars",
		"skydiving":            "coffee",
		"":                     "coffee",
	}
	for in, want := range tests {
		assert.Equal(t, want, SearchTerm(in), string(in))
	}
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "coffee", q.Get("term"))
		assert.Equal(t, "San Francisco, CA", q.Get("location"))
		assert.Equal(t, "rating", q.Get("sort_by"))
		assert.Equal(t, "5", q.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/", "test-key")
	venues := c.Search(context.Background(), models.ActivityCoffee, "San Francisco, CA", 5)

	require.Len(t, venues, 2)

	bb := venues[0]
	assert.Equal(t, "Blue Bottle", bb.Name)
	assert.Equal(t, "66 Mint St, San Francisco, CA 94103", bb.Address)
	assert.Equal(t, 4.5, bb.Rating)
	assert.Equal(t, "bb-1", bb.ExternalID)
	assert.Equal(t, "https://img/bb.jpg", bb.ImageURL)
	require.NotNil(t, bb.Distance)
	assert.Equal(t, "1.0 mi", *bb.Distance)

	philz := venues[1]
	assert.Equal(t, "Philz", philz.Name)
	assert.Nil(t, philz.Distance)
}

func TestClient_Search_Degrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		apiKey  string
	}{
		{
			name:   "missing api key",
			apiKey: "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no request expected without an api key")
			},
		},
		{
			name:   "non-2xx",
			apiKey: "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			},
		},
		{
			name:   "undecodable body",
			apiKey: "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			venues := newTestClient(t, server.URL, tt.apiKey).Search(context.Background(), models.ActivityFood, "Austin", 10)
			assert.NotNil(t, venues)
			assert.Empty(t, venues)
		})
	}
}

func TestClient_Search_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	venues := newTestClient(t, url, "k").Search(context.Background(), models.ActivityArt, "Austin", 3)
	assert.Empty(t, venues)
}

package store

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonerrors "thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *Catalog {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	c := NewCatalog(es, "venues", logger.NewTestLogger(t))
	c.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestDocID(t *testing.T) {
	assert.Equal(t, "austin:yelp-1", DocID(" Austin ", models.Venue{Name: "Cafe", ExternalID: "yelp-1"}))
	assert.Equal(t, "austin:blue bottle", DocID("AUSTIN", models.Venue{Name: "  Blue Bottle "}))
}

func TestCatalog_Upsert(t *testing.T) {
	var lines []map[string]interface{}
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/venues/_bulk", r.URL.Path)

		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
			lines = append(lines, line)
		}
		_, _ = w.Write([]byte(`{"took": 3, "errors": false, "items": []}`))
	})

	err := c.Upsert(context.Background(), "Austin", models.ActivityCoffee, []models.Venue{
		{Name: "Blue Bottle", Rating: 4.5, ExternalID: "bb-1"},
		{Name: "Philz", Rating: 4.0},
	})
	require.NoError(t, err)

	require.Len(t, lines, 4)
	meta := lines[0]["index"].(map[string]interface{})
	assert.Equal(t, "austin:bb-1", meta["_id"])
	assert.Equal(t, "Blue Bottle", lines[1]["name"])
	assert.Equal(t, "austin", lines[1]["city"])
	assert.Equal(t, "coffee", lines[1]["activityType"])
	assert.Equal(t, "austin:philz", lines[2]["index"].(map[string]interface{})["_id"])
}

func TestCatalog_Upsert_Empty(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	})
	assert.NoError(t, c.Upsert(context.Background(), "Austin", models.ActivityCoffee, nil))
}

func TestCatalog_Upsert_ItemErrors(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"took": 1, "errors": true, "items": []}`))
	})

	err := c.Upsert(context.Background(), "Austin", models.ActivityFood, []models.Venue{{Name: "Taco Deli"}})
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeCatalogUnavailable, commonerrors.AsStandardError(err).Code)
}

func TestCatalog_Search(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/venues/_search", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5), body["size"])

		_, _ = w.Write([]byte(`{
		  "hits": {"total": {"value": 2}, "hits": [
		    {"_id": "austin:bb-1", "_source": {"name": "Blue Bottle", "rating": 4.5, "externalId": "bb-1", "city": "austin", "activityType": "coffee", "distance": "1.2 mi"}},
		    {"_id": "austin:philz", "_source": {"name": "Philz", "rating": 4.0, "city": "austin", "activityType": "coffee"}}
		  ]}
		}`))
	})

	got := c.Search(context.Background(), "Austin", models.ActivityCoffee, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "Blue Bottle", got[0].Name)
	assert.Equal(t, "bb-1", got[0].ExternalID)
	require.NotNil(t, got[0].Distance)
	assert.Equal(t, "1.2 mi", *got[0].Distance)
	assert.Equal(t, "Philz", got[1].Name)
}

func TestCatalog_Search_Error(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "index_not_found_exception"}, "status": 404}`))
	})

	got := c.Search(context.Background(), "Austin", models.ActivityCoffee, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchBody(t *testing.T) {
	body := searchBody(" Austin", "Coffee", 3)
	filters := body["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	require.Len(t, filters, 2)
	assert.Equal(t, map[string]interface{}{"term": map[string]interface{}{"city": "austin"}}, filters[0])
	assert.Equal(t, map[string]interface{}{"term": map[string]interface{}{"activityType": "coffee"}}, filters[1])
}

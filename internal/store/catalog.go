package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/venues"

	"github.com/elastic/go-elasticsearch/v8"
)

// CatalogMapping is the index mapping of the venue catalog.
const CatalogMapping = `{
  "mappings": {
    "properties": {
      "name":         {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "address":      {"type": "text"},
      "rating":       {"type": "float"},
      "distance":     {"type": "keyword", "index": false},
      "externalId":   {"type": "keyword"},
      "imageUrl":     {"type": "keyword", "index": false},
      "url":          {"type": "keyword", "index": false},
      "city":         {"type": "keyword"},
      "activityType": {"type": "keyword"},
      "indexedAt":    {"type": "date"}
    }
  }
}`

type catalogDoc struct {
	models.Venue
	City         string    `json:"city"`
	ActivityType string    `json:"activityType"`
	IndexedAt    time.Time `json:"indexedAt"`
}

// Catalog keeps venues found by search so later plans can fall back to them
// when the search API returns nothing.
type Catalog struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
	now    func() time.Time
}

func NewCatalog(es *elasticsearch.Client, index string, log logger.Logger) *Catalog {
	return &Catalog{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog", "index": index}),
		now:    time.Now,
	}
}

func catalogKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DocID identifies a venue within a city: the external id when known, the
// normalized name otherwise.
func DocID(city string, v models.Venue) string {
	id := v.ExternalID
	if id == "" {
		id = venues.NormalizeVenueName(v.Name)
	}
	return catalogKey(city) + ":" + id
}

// Upsert bulk-indexes vs under (city, activityType).
func (c *Catalog) Upsert(ctx context.Context, city string, activityType models.ActivityType, vs []models.Venue) error {
	if len(vs) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	indexedAt := c.now().UTC()
	for _, v := range vs {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": c.index, "_id": DocID(city, v)},
		}
		doc := catalogDoc{
			Venue:        v,
			City:         catalogKey(city),
			ActivityType: catalogKey(string(activityType)),
			IndexedAt:    indexedAt,
		}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	res, err := c.es.Bulk(bytes.NewReader(body.Bytes()),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(c.index),
	)
	if err != nil {
		return errors.NewCatalogUnavailableError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewCatalogUnavailableError(fmt.Errorf("bulk index: %s", res.Status()))
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return errors.NewCatalogUnavailableError(fmt.Errorf("decode bulk response: %w", err))
	}
	if bulk.Errors {
		return errors.NewCatalogUnavailableError(fmt.Errorf("bulk index reported item errors"))
	}

	c.logger.Debug("venues indexed", map[string]interface{}{
		"city":         city,
		"activityType": activityType,
		"count":        len(vs),
	})
	return nil
}

func searchBody(city string, activityType models.ActivityType, limit int) map[string]interface{} {
	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"city": catalogKey(city)}},
					map[string]interface{}{"term": map[string]interface{}{"activityType": catalogKey(string(activityType))}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"rating": map[string]interface{}{"order": "desc"}},
		},
	}
}

// Search returns up to limit catalogued venues for (city, activityType),
// best rated first. Failures are logged and yield an empty list.
func (c *Catalog) Search(ctx context.Context, city string, activityType models.ActivityType, limit int) []models.Venue {
	out := []models.Venue{}

	body, err := json.Marshal(searchBody(city, activityType, limit))
	if err != nil {
		return out
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		c.logger.Warn("catalog search failed", map[string]interface{}{"error": err.Error()})
		return out
	}
	defer res.Body.Close()

	if res.IsError() {
		c.logger.Warn("catalog search failed", map[string]interface{}{"status": res.Status()})
		return out
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source catalogDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		c.logger.Warn("catalog search response undecodable", map[string]interface{}{"error": err.Error()})
		return out
	}

	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source.Venue)
	}
	return out
}

// Package search keeps recording titles in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// Mapping is the index body used by EnsureIndex.
const Mapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "user_id":    {"type": "keyword"},
      "title":      {"type": "text"},
      "created_at": {"type": "date"}
    }
  }
}`

const requestTimeout = 3 * time.Second

type RecordingIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewRecordingIndex(es *elasticsearch.Client, index string) *RecordingIndex {
	return &RecordingIndex{es: es, index: index}
}

// EnsureIndex creates the index with Mapping if missing.
func (x *RecordingIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, x.es, x.index, Mapping)
}

type recordingDoc struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

func (x *RecordingIndex) Index(ctx context.Context, userID string, rec *entity.Recording) error {
	b, err := json.Marshal(recordingDoc{
		ID:        rec.ID,
		UserID:    userID,
		Title:     rec.Title,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: rec.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index recording %s: %s", rec.ID, res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *RecordingIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unindex recording %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a title match filtered to userID's documents.
func (x *RecordingIndex) Search(ctx context.Context, userID, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{
						"title": map[string]any{"query": q, "fuzziness": "AUTO"},
					}},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"user_id": userID}},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search recordings: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "name":        {"properties": {"en": {"type": "text"}, "ru": {"type": "text", "analyzer": "russian"}, "tm": {"type": "text"}}},
      "description": {"properties": {"en": {"type": "text"}, "ru": {"type": "text", "analyzer": "russian"}, "tm": {"type": "text"}}},
      "officialLink": {"type": "keyword"}
    }
  }
}`

// UniversityIndex keeps a full-text copy of the searchable university fields.
type UniversityIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUniversityIndex(es *elasticsearch.Client, index string) *UniversityIndex {
	return &UniversityIndex{es: es, index: index}
}

type universityDoc struct {
	ID           int64                 `json:"id"`
	Name         *entity.LocalizedText `json:"name,omitempty"`
	Description  *entity.LocalizedText `json:"description,omitempty"`
	OfficialLink *string               `json:"officialLink,omitempty"`
}

func toDoc(u entity.University) universityDoc {
	return universityDoc{ID: u.ID, Name: u.Name, Description: u.Description, OfficialLink: u.OfficialLink}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *UniversityIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	res, err = x.es.Indices.Create(x.index,
		x.es.Indices.Create.WithContext(ctx),
		x.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))))
	if err != nil {
		return err
	}
	return checkResponse(res)
}

func (x *UniversityIndex) Index(ctx context.Context, u entity.University) error {
	body, err := json.Marshal(toDoc(u))
	if err != nil {
		return err
	}
	res, err := x.es.Index(x.index, bytes.NewReader(body),
		x.es.Index.WithContext(ctx),
		x.es.Index.WithDocumentID(strconv.FormatInt(u.ID, 10)))
	if err != nil {
		return err
	}
	return checkResponse(res)
}

// Delete removes the document. A missing document is not an error.
func (x *UniversityIndex) Delete(ctx context.Context, id int64) error {
	res, err := x.es.Delete(x.index, strconv.FormatInt(id, 10), x.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	if res.StatusCode == 404 {
		res.Body.Close()
		return nil
	}
	return checkResponse(res)
}

// Search returns matching university ids in relevance order.
func (x *UniversityIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	query := map[string]any{
		"_source": []string{"id"},
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name.*^3", "description.*"},
				"fuzziness": "AUTO",
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
		x.es.Search.WithSize(size),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError(res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source universityDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

// Reindex writes every university through the bulk API.
func (x *UniversityIndex) Reindex(ctx context.Context, all []entity.University) error {
	if len(all) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, u := range all {
		meta := map[string]any{"index": map[string]any{"_index": x.index, "_id": strconv.FormatInt(u.ID, 10)}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(toDoc(u)); err != nil {
			return err
		}
	}
	res, err := x.es.Bulk(&buf, x.es.Bulk.WithContext(ctx), x.es.Bulk.WithIndex(x.index))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	var parsed struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Errors {
		return fmt.Errorf("elasticsearch bulk: some documents failed")
	}
	return nil
}

func checkResponse(res *esapi.Response) error {
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func responseError(res *esapi.Response) error {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("elasticsearch %s: %s", res.Status(), bytes.TrimSpace(b))
}

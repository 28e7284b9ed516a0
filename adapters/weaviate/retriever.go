package weaviate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// Config holds connection settings for the evidence store
type Config struct {
	Host   string
	Scheme string
	// Class is the Weaviate class holding embedded facts; each object
	// carries a fact_text property.
	Class string
}

// Retriever implements EvidenceRetriever over a Weaviate instance
type Retriever struct {
	client *weaviate.Client
	class  string
}

// NewRetriever creates a retriever for the configured Weaviate instance
func NewRetriever(cfg Config) (*Retriever, error) {
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Retriever{client: client, class: cfg.Class}, nil
}

// Search runs a nearText similarity query and returns ranked hits.
// An empty result set is returned as-is; the oracle handles "no
// evidence" explicitly rather than this layer failing.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]ports.EvidenceHit, error) {
	if topK <= 0 {
		topK = 5
	}

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "fact_text"},
		{Name: "_additional { certainty }"},
	}

	result, err := r.client.GraphQL().Get().
		WithClassName(r.class).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, errors.ExternalServiceError("evidence retriever", err)
	}
	if len(result.Errors) > 0 {
		return nil, errors.ExternalServiceError("evidence retriever",
			fmt.Errorf("graphql: %s", result.Errors[0].Message))
	}

	return r.parseHits(result.Data)
}

// hitObject is the expected per-object shape in the GraphQL response
type hitObject struct {
	FactText   string `json:"fact_text"`
	Additional struct {
		Certainty float64 `json:"certainty"`
	} `json:"_additional"`
}

// parseHits extracts hits from the raw GraphQL response data using the
// marshal/unmarshal pattern: {"Get": {"<Class>": [...]}}
func (r *Retriever) parseHits(data map[string]models.JSONObject) ([]ports.EvidenceHit, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal response data: %w", err)
	}

	var parsed struct {
		Get map[string][]hitObject `json:"Get"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	objects := parsed.Get[r.class]
	hits := make([]ports.EvidenceHit, 0, len(objects))
	for _, obj := range objects {
		if obj.FactText == "" {
			continue
		}
		hits = append(hits, ports.EvidenceHit{
			Score: obj.Additional.Certainty,
			Text:  obj.FactText,
		})
	}
	return hits, nil
}

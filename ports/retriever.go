package ports

import "context"

// EvidenceHit is one ranked result from the evidence store
type EvidenceHit struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// EvidenceRetriever performs similarity search over the embedded fact
// corpus. Implementations are external collaborators; an empty result
// set is a normal outcome, not an error.
type EvidenceRetriever interface {
	Search(ctx context.Context, query string, topK int) ([]EvidenceHit, error)
}

package verdict

import (
	"strings"

	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

// Verdict is the automated judge's classification of a claim
type Verdict string

const (
	VerdictTrue              Verdict = "TRUE"
	VerdictFalse             Verdict = "FALSE"
	VerdictNotEnoughEvidence Verdict = "NOT ENOUGH EVIDENCE"
)

// Fallback explanations used when the judge's output is unusable.
const (
	ExplanationUnparseable = "Could not parse model response."
	ExplanationMissing     = "No explanation provided."
)

// Result is the structured outcome of one oracle judgment. Verdict keeps
// the judge's raw decision string so that unrecognized values survive to
// the transition table and map to "unknown" instead of being lost.
type Result struct {
	Verdict     string   `json:"result"`
	Explanation string   `json:"explanation"`
	Evidence    []string `json:"evidence"`
	Raw         string   `json:"raw"`
}

// Normalize canonicalizes a raw verdict string: case and surrounding
// whitespace are ignored, and underscore-separated spellings are
// accepted alongside the wire form with spaces.
func Normalize(raw string) Verdict {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	return Verdict(s)
}

// StatusFor is the transition function applied after automated judgment.
// It is total: every input string, including garbage, maps to exactly
// one status.
//
//	TRUE                -> true
//	FALSE               -> false
//	NOT ENOUGH EVIDENCE -> escalated_manual
//	anything else       -> unknown
func StatusFor(rawVerdict string) models.ClaimStatus {
	switch Normalize(rawVerdict) {
	case VerdictTrue:
		return models.StatusTrue
	case VerdictFalse:
		return models.StatusFalse
	case VerdictNotEnoughEvidence:
		return models.StatusEscalated
	default:
		return models.StatusUnknown
	}
}

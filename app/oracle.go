package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/verdict"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// Oracle is the automated judge: it retrieves evidence for a claim and
// asks the LLM for a verdict. Malformed model output never propagates
// as a parse error; it degrades to NOT ENOUGH EVIDENCE (fail closed).
type Oracle struct {
	retriever ports.EvidenceRetriever
	llm       ports.LLMClient
	topK      int
	logger    *internal.Logger
}

// NewOracle creates a verdict oracle
func NewOracle(retriever ports.EvidenceRetriever, llm ports.LLMClient, topK int) *Oracle {
	if topK <= 0 {
		topK = 5
	}
	return &Oracle{
		retriever: retriever,
		llm:       llm,
		topK:      topK,
		logger:    internal.DefaultLogger,
	}
}

// Judge retrieves evidence and classifies the claim. The returned
// error is non-nil only for transport-level failures (retriever or
// LLM unreachable); judge output that merely fails to parse yields a
// normal Result with the fallback verdict.
func (o *Oracle) Judge(ctx context.Context, claimText string) (*verdict.Result, error) {
	hits, err := o.retriever.Search(ctx, claimText, o.topK)
	if err != nil {
		return nil, errors.ExternalServiceError("evidence retriever", err)
	}

	evidence := make([]string, 0, len(hits))
	for _, h := range hits {
		evidence = append(evidence, h.Text)
	}
	o.logger.Debug("retrieved %d evidence snippets for claim", len(evidence))

	raw, err := o.llm.ChatCompletion(ctx, buildJudgePrompt(claimText, evidence))
	if err != nil {
		return nil, errors.ExternalServiceError("oracle", err)
	}

	result := parseJudgment(raw)
	result.Evidence = evidence
	result.Raw = raw
	return result, nil
}

// buildJudgePrompt assembles the user message: the claim plus a bullet
// list of evidence, or an explicit marker when the store returned nothing.
func buildJudgePrompt(claimText string, evidence []string) string {
	var b strings.Builder
	b.WriteString("Claim:\n")
	b.WriteString(claimText)
	b.WriteString("\n\nEvidence:\n")
	if len(evidence) == 0 {
		b.WriteString("- (no evidence found)\n")
	} else {
		for _, e := range evidence {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return b.String()
}

// judgmentBody is the JSON shape the judge is instructed to return
type judgmentBody struct {
	Result      string `json:"result"`
	Explanation string `json:"explanation"`
}

// parseJudgment turns raw model output into a Result. Strategy:
// strip markdown fences, try a direct parse, then try the outermost
// {...} slice, then give up and fail closed with the fixed fallback.
// Missing fields default rather than erroring.
func parseJudgment(raw string) *verdict.Result {
	content := stripCodeFences(raw)

	var body judgmentBody
	if err := json.Unmarshal([]byte(content), &body); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start < 0 || end <= start {
			return &verdict.Result{
				Verdict:     string(verdict.VerdictNotEnoughEvidence),
				Explanation: verdict.ExplanationUnparseable,
			}
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &body); err != nil {
			return &verdict.Result{
				Verdict:     string(verdict.VerdictNotEnoughEvidence),
				Explanation: verdict.ExplanationUnparseable,
			}
		}
	}

	if strings.TrimSpace(body.Result) == "" {
		body.Result = string(verdict.VerdictNotEnoughEvidence)
	}
	if strings.TrimSpace(body.Explanation) == "" {
		body.Explanation = verdict.ExplanationMissing
	}

	return &verdict.Result{
		Verdict:     body.Result,
		Explanation: body.Explanation,
	}
}

// stripCodeFences removes a ```json ... ``` (or bare ```) wrapper that
// some models put around their output despite JSON-mode instructions.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

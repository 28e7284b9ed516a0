package app

import (
	"context"
	"errors"
	"testing"

	"github.com/vishwajithsandaru/govhack-2025-factshield/adapters/llm"
	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	apperrors "github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

func newTestService(client *llm.MockLLMClient) (*ClaimService, *memStore) {
	store := newMemStore()
	oracle := NewOracle(&stubRetriever{}, client, 5)
	return NewClaimService(store, store, oracle), store
}

func escalatedClaim(t *testing.T, svc *ClaimService) *models.Claim {
	t.Helper()
	client := &llm.MockLLMClient{Response: `{"result":"NOT ENOUGH EVIDENCE","explanation":"Conflicting numbers."}`}
	svc.oracle.llm = client
	claim, err := svc.SubmitClaim(context.Background(), "NZ exported 750,000 tonnes of skim milk powder in 2014.")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if claim.Status != models.StatusEscalated {
		t.Fatalf("claim status = %s, want escalated_manual", claim.Status)
	}
	return claim
}

func TestSubmitClaim_RejectsBlankText(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.SubmitClaim(context.Background(), text)
		if apperrors.GetCode(err) != apperrors.CodeValidationError {
			t.Errorf("SubmitClaim(%q) code = %s, want VALIDATION_ERROR", text, apperrors.GetCode(err))
		}
	}
}

func TestSubmitClaim_TransitionsPerVerdict(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     models.ClaimStatus
	}{
		{"true", `{"result":"TRUE","explanation":"Matches dataset."}`, models.StatusTrue},
		{"false", `{"result":"FALSE","explanation":"Far too high."}`, models.StatusFalse},
		{"not enough evidence", `{"result":"NOT ENOUGH EVIDENCE","explanation":"No match."}`, models.StatusEscalated},
		{"unrecognized verdict", `{"result":"PROBABLY","explanation":"Who knows."}`, models.StatusUnknown},
		{"unparseable output", `I cannot answer that.`, models.StatusEscalated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(&llm.MockLLMClient{Response: tt.response})

			claim, err := svc.SubmitClaim(context.Background(), "Cheese exports exceeded 5 million tonnes in 2015.")
			if err != nil {
				t.Fatalf("SubmitClaim: %v", err)
			}
			if claim.Status != tt.want {
				t.Errorf("status = %s, want %s", claim.Status, tt.want)
			}
			if claim.TruthCount != 0 || claim.FalseCount != 0 {
				t.Errorf("fresh claim has counters %d/%d, want 0/0", claim.TruthCount, claim.FalseCount)
			}

			stored, err := store.Get(context.Background(), claim.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if stored.Status != tt.want {
				t.Errorf("persisted status = %s, want %s", stored.Status, tt.want)
			}
			if stored.Explanation == nil || *stored.Explanation == "" {
				t.Error("judgment should persist an explanation")
			}
		})
	}
}

func TestSubmitClaim_OracleDownLeavesClaimRetryable(t *testing.T) {
	svc, store := newTestService(&llm.MockLLMClient{Error: errors.New("upstream timeout")})

	claim, err := svc.SubmitClaim(context.Background(), "Butter exports reached 500,000 tonnes in 2014.")
	if err == nil {
		t.Fatal("expected error when oracle is down")
	}
	if claim == nil {
		t.Fatal("claim should be returned even when judgment fails")
	}

	stored, getErr := store.Get(context.Background(), claim.ID)
	if getErr != nil {
		t.Fatalf("claim was not persisted: %v", getErr)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("failed judgment left status %s, want pending", stored.Status)
	}

	// Oracle recovers; the same claim id can be re-judged.
	svc.oracle.llm = &llm.MockLLMClient{Response: `{"result":"TRUE","explanation":"Recovered."}`}
	judged, err := svc.JudgeClaim(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("JudgeClaim after recovery: %v", err)
	}
	if judged.Status != models.StatusTrue {
		t.Errorf("re-judged status = %s, want true", judged.Status)
	}
}

func TestJudgeClaim_RejectsAlreadyJudged(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{Response: `{"result":"TRUE","explanation":"Done."}`})

	claim, err := svc.SubmitClaim(context.Background(), "Some claim.")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	_, err = svc.JudgeClaim(context.Background(), claim.ID)
	if apperrors.GetCode(err) != apperrors.CodePolicyViolation {
		t.Errorf("re-judging a judged claim: code = %s, want POLICY_VIOLATION", apperrors.GetCode(err))
	}
}

func TestCastVote_HappyPathAndIdempotentRefusal(t *testing.T) {
	svc, store := newTestService(&llm.MockLLMClient{})
	claim := escalatedClaim(t, svc)
	userA := core.NewID()
	userB := core.NewID()

	// User A votes true.
	receipt, err := svc.CastVote(context.Background(), claim.ID, userA, "true")
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if receipt.TruthCount != 1 || receipt.FalseCount != 0 {
		t.Errorf("tallies after first vote = %d/%d, want 1/0", receipt.TruthCount, receipt.FalseCount)
	}

	// User A votes again: refused, counters untouched, regardless of value.
	for _, again := range []string{"true", "false"} {
		_, err = svc.CastVote(context.Background(), claim.ID, userA, again)
		if apperrors.GetCode(err) != apperrors.CodeConflict {
			t.Errorf("duplicate vote %q: code = %s, want CONFLICT", again, apperrors.GetCode(err))
		}
	}

	// User B votes false on the same claim.
	receipt, err = svc.CastVote(context.Background(), claim.ID, userB, "false")
	if err != nil {
		t.Fatalf("CastVote (user B): %v", err)
	}
	if receipt.TruthCount != 1 || receipt.FalseCount != 1 {
		t.Errorf("tallies after both votes = %d/%d, want 1/1", receipt.TruthCount, receipt.FalseCount)
	}

	// Counters equal ledger cardinality.
	count, err := store.CountForClaim(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("CountForClaim: %v", err)
	}
	if receipt.TruthCount+receipt.FalseCount != count {
		t.Errorf("counters %d != ledger cardinality %d", receipt.TruthCount+receipt.FalseCount, count)
	}
}

func TestCastVote_RejectsBadValue(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})
	claim := escalatedClaim(t, svc)

	for _, bad := range []string{"", "yes", "TRUE!", "1", "maybe"} {
		_, err := svc.CastVote(context.Background(), claim.ID, core.NewID(), bad)
		if apperrors.GetCode(err) != apperrors.CodeValidationError {
			t.Errorf("CastVote(%q) code = %s, want VALIDATION_ERROR", bad, apperrors.GetCode(err))
		}
	}
}

func TestCastVote_RejectsUnknownClaim(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})

	_, err := svc.CastVote(context.Background(), core.NewID(), core.NewID(), "true")
	if apperrors.GetCode(err) != apperrors.CodeNotFound {
		t.Errorf("vote on missing claim: code = %s, want NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestCastVote_RejectsNonEscalatedClaim(t *testing.T) {
	svc, store := newTestService(&llm.MockLLMClient{Response: `{"result":"TRUE","explanation":"Confirmed."}`})

	claim, err := svc.SubmitClaim(context.Background(), "A verified claim.")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	_, err = svc.CastVote(context.Background(), claim.ID, core.NewID(), "true")
	if apperrors.GetCode(err) != apperrors.CodePolicyViolation {
		t.Errorf("vote on terminal claim: code = %s, want POLICY_VIOLATION", apperrors.GetCode(err))
	}

	// No ledger entry, no counter movement.
	count, _ := store.CountForClaim(context.Background(), claim.ID)
	if count != 0 {
		t.Errorf("rejected vote created %d ledger entries", count)
	}
	stored, _ := store.Get(context.Background(), claim.ID)
	if stored.TruthCount != 0 || stored.FalseCount != 0 {
		t.Errorf("rejected vote moved counters to %d/%d", stored.TruthCount, stored.FalseCount)
	}
}

func TestListEscalatedForUser_ExcludesVotedClaims(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})
	first := escalatedClaim(t, svc)
	second := escalatedClaim(t, svc)
	user := core.NewID()

	queue, err := svc.ListEscalatedForUser(context.Background(), user, 0, 0)
	if err != nil {
		t.Fatalf("ListEscalatedForUser: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}

	if _, err := svc.CastVote(context.Background(), first.ID, user, "true"); err != nil {
		t.Fatalf("CastVote: %v", err)
	}

	queue, err = svc.ListEscalatedForUser(context.Background(), user, 0, 0)
	if err != nil {
		t.Fatalf("ListEscalatedForUser: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != second.ID {
		t.Errorf("queue should contain only the unvoted claim, got %d items", len(queue))
	}

	// Another user still sees both.
	other, err := svc.ListEscalatedForUser(context.Background(), core.NewID(), 0, 0)
	if err != nil {
		t.Fatalf("ListEscalatedForUser (other): %v", err)
	}
	if len(other) != 2 {
		t.Errorf("other user's queue length = %d, want 2", len(other))
	}
}

func TestListEscalatedForUser_Pagination(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})
	for i := 0; i < 5; i++ {
		escalatedClaim(t, svc)
	}
	user := core.NewID()

	page1, err := svc.ListEscalatedForUser(context.Background(), user, 2, 0)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := svc.ListEscalatedForUser(context.Background(), user, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("page sizes = %d/%d, want 2/2", len(page1), len(page2))
	}
	if page1[1].ID == page2[0].ID {
		t.Error("pages overlap")
	}

	tail, err := svc.ListEscalatedForUser(context.Background(), user, 10, 4)
	if err != nil {
		t.Fatalf("tail page: %v", err)
	}
	if len(tail) != 1 {
		t.Errorf("tail page length = %d, want 1", len(tail))
	}
}

func TestListClaims_StatusFilter(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{Response: `{"result":"TRUE","explanation":"ok"}`})
	if _, err := svc.SubmitClaim(context.Background(), "A true claim."); err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	escalatedClaim(t, svc)

	all, err := svc.ListClaims(context.Background(), "")
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered list length = %d, want 2", len(all))
	}

	escalated, err := svc.ListEscalated(context.Background())
	if err != nil {
		t.Fatalf("ListEscalated: %v", err)
	}
	if len(escalated) != 1 || escalated[0].Status != models.StatusEscalated {
		t.Errorf("escalated filter returned %d items", len(escalated))
	}
}

func TestGetClaim_NotFound(t *testing.T) {
	svc, _ := newTestService(&llm.MockLLMClient{})

	_, err := svc.GetClaim(context.Background(), core.NewID())
	if apperrors.GetCode(err) != apperrors.CodeNotFound {
		t.Errorf("GetClaim on missing id: code = %s, want NOT_FOUND", apperrors.GetCode(err))
	}
}

package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/verdict"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// DefaultQueueLimit is the page size for the reviewer queue when the
// caller does not supply one
const DefaultQueueLimit = 20

// ClaimService is the claim lifecycle manager. It orchestrates
// creation, automated judgment, escalation and consensus accounting on
// top of the claim store and vote ledger.
type ClaimService struct {
	claims ports.ClaimRepository
	votes  ports.VoteRepository
	oracle *Oracle
	logger *internal.Logger
}

// NewClaimService creates the lifecycle manager
func NewClaimService(claims ports.ClaimRepository, votes ports.VoteRepository, oracle *Oracle) *ClaimService {
	return &ClaimService{
		claims: claims,
		votes:  votes,
		oracle: oracle,
		logger: internal.DefaultLogger,
	}
}

// SubmitClaim creates a claim record, runs automated judgment and
// persists the resulting status and explanation.
//
// If the oracle is unreachable the claim is NOT lost: it stays
// pending, and the returned error carries the claim so the caller can
// report the id and retry judgment later via JudgeClaim.
func (s *ClaimService) SubmitClaim(ctx context.Context, text string) (*models.Claim, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ValidationError("claim is required")
	}

	claim := &models.Claim{
		ID:     core.NewID(),
		Text:   text,
		Status: models.StatusPending,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, errors.Wrap(err, "failed to create claim")
	}
	s.logger.Info("claim %s created, running automated judgment", claim.ID)

	if err := s.judge(ctx, claim); err != nil {
		// Claim stays pending; surface the id so the caller can retry.
		return claim, errors.Wrapf(err, "judgment failed for claim %s", claim.ID)
	}
	return claim, nil
}

// JudgeClaim re-runs automated judgment for a claim that is still
// pending (a prior submission where the oracle call failed). Claims
// that already have a verdict are not re-judged.
func (s *ClaimService) JudgeClaim(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	claim, err := s.claims.Get(ctx, id)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	if claim.Status != models.StatusPending {
		return nil, errors.PolicyViolation("claim already judged")
	}

	if err := s.judge(ctx, claim); err != nil {
		return nil, errors.Wrapf(err, "judgment failed for claim %s", claim.ID)
	}
	return claim, nil
}

// judge invokes the oracle, applies the transition table and persists
// the outcome onto the claim (in place and in the store).
func (s *ClaimService) judge(ctx context.Context, claim *models.Claim) error {
	result, err := s.oracle.Judge(ctx, claim.Text)
	if err != nil {
		return err
	}

	status := verdict.StatusFor(result.Verdict)
	if err := s.claims.SetJudgment(ctx, claim.ID, status, result.Explanation); err != nil {
		return errors.Wrap(err, "failed to persist judgment")
	}

	claim.Status = status
	claim.Explanation = &result.Explanation
	s.logger.Info("claim %s judged: verdict=%q status=%s", claim.ID, result.Verdict, status)
	return nil
}

// CheckClaim runs the oracle for a claim text without persisting
// anything (the ad-hoc /check-claim path)
func (s *ClaimService) CheckClaim(ctx context.Context, text string) (*verdict.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ValidationError("claim is required")
	}
	return s.oracle.Judge(ctx, text)
}

// CastVote records one fact-checker vote on an escalated claim and
// returns the claim's updated tallies. Duplicate votes are refused,
// never overwritten.
func (s *ClaimService) CastVote(ctx context.Context, claimID, userID uuid.UUID, rawValue string) (*models.VoteReceipt, error) {
	value, ok := models.ParseVoteValue(strings.ToLower(strings.TrimSpace(rawValue)))
	if !ok {
		return nil, errors.ValidationError("vote must be 'true' or 'false'")
	}

	receipt, err := s.votes.Cast(ctx, claimID, userID, value)
	if err != nil {
		return nil, s.mapDomainError(err)
	}

	s.logger.Info("vote recorded: claim=%s user=%s value=%s tallies=%d/%d",
		claimID, userID, value, receipt.TruthCount, receipt.FalseCount)
	return receipt, nil
}

// ListEscalatedForUser returns the reviewer queue for a fact-checker:
// escalated claims they have not voted on yet, ordered by claim id.
func (s *ClaimService) ListEscalatedForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Claim, error) {
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	if offset < 0 {
		offset = 0
	}

	claims, err := s.claims.ListEscalatedExcludingVoter(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list escalation queue")
	}
	return claims, nil
}

// ListClaims returns all claims, optionally filtered by status. Reads
// are unauthenticated; verdicts are public.
func (s *ClaimService) ListClaims(ctx context.Context, statusFilter string) ([]*models.Claim, error) {
	var filter *models.ClaimStatus
	if statusFilter != "" {
		status := models.ClaimStatus(statusFilter)
		filter = &status
	}

	claims, err := s.claims.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list claims")
	}
	return claims, nil
}

// ListEscalated returns every claim currently open for voting
func (s *ClaimService) ListEscalated(ctx context.Context) ([]*models.Claim, error) {
	return s.ListClaims(ctx, string(models.StatusEscalated))
}

// GetClaim retrieves a single claim by id
func (s *ClaimService) GetClaim(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	claim, err := s.claims.Get(ctx, id)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	return claim, nil
}

// mapDomainError translates domain sentinels from the stores into the
// coded application errors the API boundary knows how to render.
func (s *ClaimService) mapDomainError(err error) error {
	switch {
	case core.IsNotFoundError(err):
		return errors.NotFound("claim")
	case core.IsConflictError(err):
		return errors.Conflict("user already voted on this claim")
	case core.IsPolicyError(err):
		return errors.PolicyViolation("voting allowed only on escalated_manual claims")
	default:
		return errors.Wrap(err, "claim store error")
	}
}

package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// memStore is an in-memory claim store + vote ledger that mirrors the
// transactional semantics of the postgres adapters: vote uniqueness is
// enforced at insert time together with the counter increment.
type memStore struct {
	mu     sync.Mutex
	claims map[uuid.UUID]*models.Claim
	votes  map[string]*models.Vote // key: claimID|userID
}

func newMemStore() *memStore {
	return &memStore{
		claims: make(map[uuid.UUID]*models.Claim),
		votes:  make(map[string]*models.Vote),
	}
}

func voteKey(claimID, userID uuid.UUID) string {
	return claimID.String() + "|" + userID.String()
}

func (m *memStore) Create(_ context.Context, claim *models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *claim
	m.claims[claim.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (*models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	claim, ok := m.claims[id]
	if !ok {
		return nil, core.NewNotFoundError("claim", id.String())
	}
	cp := *claim
	return &cp, nil
}

func (m *memStore) List(_ context.Context, status *models.ClaimStatus) ([]*models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Claim{}
	for _, c := range m.claims {
		if status != nil && c.Status != *status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) SetJudgment(_ context.Context, id uuid.UUID, status models.ClaimStatus, explanation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	claim, ok := m.claims[id]
	if !ok {
		return core.NewNotFoundError("claim", id.String())
	}
	claim.Status = status
	claim.Explanation = &explanation
	return nil
}

func (m *memStore) ListEscalatedExcludingVoter(_ context.Context, userID uuid.UUID, limit, offset int) ([]*models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Claim{}
	for _, c := range m.claims {
		if c.Status != models.StatusEscalated {
			continue
		}
		if _, voted := m.votes[voteKey(c.ID, userID)]; voted {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sortByID(out)
	if offset >= len(out) {
		return []*models.Claim{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Cast(_ context.Context, claimID, userID uuid.UUID, value models.VoteValue) (*models.VoteReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	claim, ok := m.claims[claimID]
	if !ok {
		return nil, core.NewNotFoundError("claim", claimID.String())
	}
	if claim.Status != models.StatusEscalated {
		return nil, core.ErrVotingClosed
	}
	key := voteKey(claimID, userID)
	if _, exists := m.votes[key]; exists {
		return nil, core.ErrAlreadyVoted
	}

	m.votes[key] = &models.Vote{
		ID:      core.NewID(),
		ClaimID: claimID,
		UserID:  userID,
		Value:   value,
	}
	if value == models.VoteTrue {
		claim.TruthCount++
	} else {
		claim.FalseCount++
	}

	return &models.VoteReceipt{
		ClaimID:    claimID,
		UserID:     userID,
		Vote:       value,
		TruthCount: claim.TruthCount,
		FalseCount: claim.FalseCount,
	}, nil
}

func (m *memStore) HasVoted(_ context.Context, claimID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.votes[voteKey(claimID, userID)]
	return ok, nil
}

func (m *memStore) CountForClaim(_ context.Context, claimID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, v := range m.votes {
		if v.ClaimID == claimID {
			count++
		}
	}
	return count, nil
}

func sortByID(claims []*models.Claim) {
	sort.Slice(claims, func(i, j int) bool {
		return strings.Compare(claims[i].ID.String(), claims[j].ID.String()) < 0
	})
}

// fakeUserRepo is an in-memory user store
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.FactCheckerUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.FactCheckerUser)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FactCheckerUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.FactCheckerUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return nil, core.NewNotFoundError("user", email)
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.FactCheckerUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return core.ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

// stubRetriever returns a fixed evidence set
type stubRetriever struct {
	hits []ports.EvidenceHit
	err  error
}

func (s *stubRetriever) Search(_ context.Context, _ string, topK int) ([]ports.EvidenceHit, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.hits) > topK {
		return s.hits[:topK], nil
	}
	return s.hits, nil
}

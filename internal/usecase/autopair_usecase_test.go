package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"

	"github.com/google/uuid"
)

type mockPairing struct {
	got  []PairRequest
	err  error
	next repository.Session
}

func (m *mockPairing) Pair(_ context.Context, req PairRequest) (repository.Session, error) {
	m.got = append(m.got, req)
	if m.err != nil {
		return repository.Session{}, m.err
	}
	s := m.next
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.ClientID = req.ClientID
	s.ProfessionalID = req.ProfessionalID
	s.CategoryID = req.CategoryID
	s.Status = repository.SessionStatusPending
	return s, nil
}

func TestAutoPair_Unauthorized(t *testing.T) {
	uc := NewAutoPairUsecase(&mockProfessionalRepo{}, &mockPairing{})
	_, _, err := uc.AutoPair(context.Background(), uuid.Nil, 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAutoPair_InvalidCategory(t *testing.T) {
	uc := NewAutoPairUsecase(&mockProfessionalRepo{}, &mockPairing{})
	_, _, err := uc.AutoPair(context.Background(), uuid.New(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAutoPair_NoCandidates(t *testing.T) {
	uc := NewAutoPairUsecase(&mockProfessionalRepo{}, &mockPairing{})
	_, _, err := uc.AutoPair(context.Background(), uuid.New(), 1)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestAutoPair_CategoryGate(t *testing.T) {
	// Candidate is in category 2; requesting category 1 must not pair.
	pro := onlinePro("Wrong Category", "Tax Law", 2)
	uc := NewAutoPairUsecase(&mockProfessionalRepo{rows: []repository.ProfessionalRow{pro}}, &mockPairing{})

	_, _, err := uc.AutoPair(context.Background(), uuid.New(), 1)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestAutoPair_PairsTopCandidate(t *testing.T) {
	strong := onlinePro("Strong", "Legal Advice", 1)
	weak := onlinePro("Weak", "Legal Advice", 1)
	weak.Online = false
	weakRating := 3.0
	weak.Rating = &weakRating

	pairing := &mockPairing{}
	uc := NewAutoPairUsecase(&mockProfessionalRepo{rows: []repository.ProfessionalRow{weak, strong}}, pairing)

	clientID := uuid.New()
	s, res, err := uc.AutoPair(context.Background(), clientID, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res == nil || res.Candidate.ID != strong.ID {
		t.Fatalf("expected strongest candidate to win")
	}
	if s.ProfessionalID != strong.ID {
		t.Fatalf("expected session with winner, got %s", s.ProfessionalID)
	}
	if len(pairing.got) != 1 {
		t.Fatalf("expected 1 pair call, got %d", len(pairing.got))
	}
	if pairing.got[0].ClientID != clientID || pairing.got[0].CategoryID != 1 {
		t.Fatalf("pair request fields mismatch: %+v", pairing.got[0])
	}
	if pairing.got[0].MatchScore != float64(res.Score) {
		t.Fatalf("expected match score %d forwarded, got %v", res.Score, pairing.got[0].MatchScore)
	}
}

func TestAutoPair_BusyPropagates(t *testing.T) {
	pro := onlinePro("Busy", "Legal Advice", 1)
	pairing := &mockPairing{err: ErrProfessionalBusy}
	uc := NewAutoPairUsecase(&mockProfessionalRepo{rows: []repository.ProfessionalRow{pro}}, pairing)

	_, _, err := uc.AutoPair(context.Background(), uuid.New(), 1)
	if !errors.Is(err, ErrProfessionalBusy) {
		t.Fatalf("expected ErrProfessionalBusy, got %v", err)
	}
}

package usecase

import (
	"context"

	"github.com/eKidenge/QuickConnect-sub000/internal/domain/matchmaking"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"

	"github.com/google/uuid"
)

type AutoPairUsecase interface {
	AutoPair(ctx context.Context, clientID uuid.UUID, categoryID int64) (repository.Session, *matchmaking.MatchResult, error)
}

// AutoPair is the dashboard flow: id-exact category filtering, points
// scoring, top candidate booked immediately.
type AutoPair struct {
	professionals repository.ProfessionalRepository
	pairing       PairingUsecase
}

func NewAutoPairUsecase(professionals repository.ProfessionalRepository, pairing PairingUsecase) *AutoPair {
	return &AutoPair{professionals: professionals, pairing: pairing}
}

func (u *AutoPair) AutoPair(ctx context.Context, clientID uuid.UUID, categoryID int64) (repository.Session, *matchmaking.MatchResult, error) {
	if clientID == uuid.Nil {
		return repository.Session{}, nil, ErrUnauthorized
	}
	if categoryID <= 0 {
		return repository.Session{}, nil, ErrInvalidInput
	}

	pool, err := loadCandidates(ctx, u.professionals, repository.CandidateFilter{CategoryID: &categoryID})
	if err != nil {
		return repository.Session{}, nil, ErrInternal
	}

	res := matchmaking.Match(matchmaking.Request{CategoryID: categoryID, Profile: matchmaking.ProfilePoints}, pool)
	if res == nil {
		return repository.Session{}, nil, ErrNoMatch
	}

	s, err := u.pairing.Pair(ctx, PairRequest{
		ClientID:       clientID,
		ProfessionalID: res.Candidate.ID,
		CategoryID:     categoryID,
		MatchScore:     float64(res.Score),
	})
	if err != nil {
		return repository.Session{}, nil, err
	}
	return s, res, nil
}

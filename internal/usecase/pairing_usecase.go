package usecase

import (
	"context"
	"log"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"

	"github.com/google/uuid"
)

const defaultLockTTL = 30 * time.Second

type PairRequest struct {
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	CategoryID     int64
	MatchScore     float64
}

type PairingUsecase interface {
	Pair(ctx context.Context, req PairRequest) (repository.Session, error)
}

// Pairing turns a matcher winner into a pending consultation session. The
// professional is held with an optimistic cache lock first so two clients
// racing for the same winner cannot both book; the lock is never released
// explicitly, it expires.
type Pairing struct {
	sessions repository.SessionRepository
	cache    MatchCache
	lockTTL  time.Duration
	logger   *log.Logger
}

func NewPairingUsecase(sessions repository.SessionRepository, cache MatchCache, lockTTL time.Duration, logger *log.Logger) *Pairing {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &Pairing{sessions: sessions, cache: cache, lockTTL: lockTTL, logger: logger}
}

func (u *Pairing) Pair(ctx context.Context, req PairRequest) (repository.Session, error) {
	if req.ClientID == uuid.Nil {
		return repository.Session{}, ErrUnauthorized
	}
	if req.ProfessionalID == uuid.Nil || req.CategoryID <= 0 {
		return repository.Session{}, ErrInvalidInput
	}

	lockKey := pairingLockKey(req.ProfessionalID)
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, req.ClientID.String(), u.lockTTL)
		if err == nil && !ok {
			return repository.Session{}, ErrProfessionalBusy
		}
	}

	score := req.MatchScore
	s, err := u.sessions.Create(ctx, repository.Session{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		CategoryID:     req.CategoryID,
		Status:         repository.SessionStatusPending,
		MatchScore:     &score,
	})
	if err != nil {
		if u.cache != nil {
			_ = u.cache.Delete(ctx, lockKey)
		}
		if u.logger != nil {
			u.logger.Printf("pairing failed | professional=%s err=%v", req.ProfessionalID, err)
		}
		return repository.Session{}, ErrInternal
	}

	// The booking changes the professional's load, so cached rankings
	// are stale from here on.
	if u.cache != nil {
		_ = u.cache.InvalidateMatchCache(ctx)
	}

	ws.NotifySessionUpdated(s.ID, s.Status)
	return s, nil
}

func pairingLockKey(professionalID uuid.UUID) string {
	return "pairing:lock:" + professionalID.String()
}

package usecase

import (
	"context"
	"errors"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"

	"github.com/google/uuid"
)

type SessionUsecase interface {
	ListPending(ctx context.Context, clientID uuid.UUID) ([]repository.Session, error)
	UpdateStatus(ctx context.Context, clientID, sessionID uuid.UUID, status string) (repository.Session, error)
}

type Sessions struct {
	sessions repository.SessionRepository
}

func NewSessionUsecase(sessions repository.SessionRepository) *Sessions {
	return &Sessions{sessions: sessions}
}

func (u *Sessions) ListPending(ctx context.Context, clientID uuid.UUID) ([]repository.Session, error) {
	if clientID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.sessions.ListPendingByClient(ctx, clientID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Sessions) UpdateStatus(ctx context.Context, clientID, sessionID uuid.UUID, status string) (repository.Session, error) {
	if clientID == uuid.Nil {
		return repository.Session{}, ErrUnauthorized
	}
	if sessionID == uuid.Nil || !validTransitionTarget(status) {
		return repository.Session{}, ErrInvalidInput
	}

	s, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Session{}, ErrSessionNotFound
		}
		return repository.Session{}, ErrInternal
	}
	if s.ClientID != clientID {
		return repository.Session{}, ErrUnauthorized
	}

	if err := u.sessions.UpdateStatus(ctx, sessionID, status); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Session{}, ErrSessionNotFound
		}
		return repository.Session{}, ErrInternal
	}

	s.Status = status
	ws.NotifySessionUpdated(s.ID, status)
	return s, nil
}

func validTransitionTarget(status string) bool {
	switch status {
	case repository.SessionStatusActive, repository.SessionStatusCompleted, repository.SessionStatusCancelled:
		return true
	default:
		return false
	}
}

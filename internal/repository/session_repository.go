package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	SessionStatusPending   = "pending"
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session is one consultation booking between a client and a professional.
// MatchScore records the aggregate the matcher produced when the pairing
// was made, for later analysis.
type Session struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	CategoryID     int64
	Status         string
	MatchScore     *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	FindByID(ctx context.Context, id uuid.UUID) (Session, error)
	ListPendingByClient(ctx context.Context, clientID uuid.UUID) ([]Session, error)
	ListPending(ctx context.Context, limit int) ([]Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

const sessionSelect = `
	SELECT id, client_id, professional_id, category_id, status, match_score, created_at, updated_at
	FROM sessions`

func (r *PostgresSessionRepository) Create(ctx context.Context, s Session) (Session, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = SessionStatusPending
	}
	now := time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, client_id, professional_id, category_id, status, match_score, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
		s.ID, s.ClientID, s.ProfessionalID, s.CategoryID, s.Status, s.MatchScore, now,
	)
	if err != nil {
		return Session{}, err
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return s, nil
}

func (r *PostgresSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (Session, error) {
	s, err := scanSession(r.db.QueryRow(ctx, sessionSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func (r *PostgresSessionRepository) ListPendingByClient(ctx context.Context, clientID uuid.UUID) ([]Session, error) {
	rows, err := r.db.Query(ctx,
		sessionSelect+` WHERE client_id = $1 AND status = $2 ORDER BY created_at DESC`,
		clientID, SessionStatusPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *PostgresSessionRepository) ListPending(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	rows, err := r.db.Query(ctx,
		sessionSelect+` WHERE status = $1 ORDER BY created_at ASC LIMIT $2`,
		SessionStatusPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *PostgresSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

type sessionScanner interface {
	Scan(dest ...any) error
}

func scanSession(row sessionScanner) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.ClientID, &s.ProfessionalID, &s.CategoryID, &s.Status, &s.MatchScore, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectSessions(rows database.Rows) ([]Session, error) {
	out := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

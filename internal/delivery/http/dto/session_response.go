package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID             uuid.UUID `json:"id"`
	ClientID       uuid.UUID `json:"client_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	CategoryID     int64     `json:"category_id"`
	Status         string    `json:"status"`
	MatchScore     *float64  `json:"match_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

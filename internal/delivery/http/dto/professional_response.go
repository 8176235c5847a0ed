package dto

import "github.com/google/uuid"

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

type ProfessionalResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`

	PrimaryCategory *CategoryResponse  `json:"primary_category,omitempty"`
	Categories      []CategoryResponse `json:"categories"`
	Specialization  string             `json:"specialization,omitempty"`

	Online    bool `json:"online"`
	Available bool `json:"available"`

	Rating          *float64 `json:"rating,omitempty"`
	TotalSessions   *int     `json:"total_sessions,omitempty"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	ResponseBucket  string   `json:"response_bucket,omitempty"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

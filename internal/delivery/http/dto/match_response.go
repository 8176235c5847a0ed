package dto

import "github.com/google/uuid"

type MatchResultResponse struct {
	ProfessionalID   uuid.UUID      `json:"professional_id"`
	ProfessionalName string         `json:"professional_name"`
	Score            int            `json:"score"`
	CategoryScore    float64        `json:"category_score"`
	Dimensions       map[string]int `json:"dimensions"`
	Confidence       float64        `json:"confidence"`
	Justification    string         `json:"justification"`
}

type RankResponse struct {
	Category string                `json:"category"`
	Results  []MatchResultResponse `json:"results"`
}

type AutoPairResponse struct {
	Session SessionResponse     `json:"session"`
	Match   MatchResultResponse `json:"match"`
}

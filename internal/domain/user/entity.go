package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	default:
		return false
	}
}

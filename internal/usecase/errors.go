package usecase

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrNoMatch              = errors.New("no eligible professional")
	ErrProfessionalBusy     = errors.New("professional busy")
	ErrInternal             = errors.New("internal error")
)

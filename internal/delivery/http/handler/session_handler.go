package handler

import (
	"errors"

	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/dto"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/response"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type updateSessionStatusRequest struct {
	Status string `json:"status"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/sessions")
	grp.Get("/pending", h.ListPending)
	grp.Patch("/:session_id/status", h.UpdateStatus)
}

func (h *SessionHandler) ListPending(c fiber.Ctx) error {
	clientID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessions, err := h.uc.ListPending(c.Context(), clientID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	out := dto.SessionListResponse{Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, sessionResponseFrom(s))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SessionHandler) UpdateStatus(c fiber.Ctx) error {
	clientID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateSessionStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.UpdateStatus(c.Context(), clientID, sessionID, req.Status)
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, sessionResponseFrom(s))
}

func sessionResponseFrom(s repository.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:             s.ID,
		ClientID:       s.ClientID,
		ProfessionalID: s.ProfessionalID,
		CategoryID:     s.CategoryID,
		Status:         s.Status,
		MatchScore:     s.MatchScore,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func mapSessionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

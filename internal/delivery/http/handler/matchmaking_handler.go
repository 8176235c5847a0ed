package handler

import (
	"errors"

	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/dto"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/domain/matchmaking"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/response"
	"github.com/eKidenge/QuickConnect-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchmakingHandler struct {
	matching   usecase.MatchmakingUsecase
	autopair   usecase.AutoPairUsecase
	categories usecase.CategoryUsecase
}

type autoPairRequest struct {
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
}

func NewMatchmakingHandler(matching usecase.MatchmakingUsecase, autopair usecase.AutoPairUsecase, categories usecase.CategoryUsecase) *MatchmakingHandler {
	return &MatchmakingHandler{matching: matching, autopair: autopair, categories: categories}
}

func (h *MatchmakingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/matchmaking")
	grp.Get("/match", h.Match)
	grp.Get("/rank", h.Rank)
	grp.Post("/autopair", h.AutoPair)
}

// Match returns the single best professional for ?category=, or 404 when
// nobody passes the eligibility gate.
func (h *MatchmakingHandler) Match(c fiber.Ctx) error {
	clientID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.matching.Match(c.Context(), clientID, c.Query("category"))
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}
	if res == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "No matching professional", nil, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResultResponseFrom(*res))
}

func (h *MatchmakingHandler) Rank(c fiber.Ctx) error {
	clientID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	category := c.Query("category")
	ranked, err := h.matching.Rank(c.Context(), clientID, category)
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}

	out := dto.RankResponse{
		Category: category,
		Results:  make([]dto.MatchResultResponse, 0, len(ranked)),
	}
	for _, res := range ranked {
		out.Results = append(out.Results, matchResultResponseFrom(res))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// AutoPair books the top points-profile candidate for the category in one
// step. The category may come as an id or a name; names are resolved
// before matching.
func (h *MatchmakingHandler) AutoPair(c fiber.Ctx) error {
	clientID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req autoPairRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	categoryID := req.CategoryID
	if categoryID <= 0 && req.Category != "" {
		cat, err := h.categories.Resolve(c.Context(), req.Category)
		if err != nil {
			return mapMatchmakingUsecaseError(err)
		}
		categoryID = cat.ID
	}

	s, res, err := h.autopair.AutoPair(c.Context(), clientID, categoryID)
	if err != nil {
		return mapMatchmakingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AutoPairResponse{
		Session: sessionResponseFrom(s),
		Match:   matchResultResponseFrom(*res),
	})
}

func matchResultResponseFrom(res matchmaking.MatchResult) dto.MatchResultResponse {
	return dto.MatchResultResponse{
		ProfessionalID:   res.Candidate.ID,
		ProfessionalName: res.Candidate.Name,
		Score:            res.Score,
		CategoryScore:    res.CategoryScore,
		Dimensions:       res.Dimensions,
		Confidence:       res.Confidence,
		Justification:    res.Justification,
	}
}

func mapMatchmakingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Category not found", nil, err)
	case errors.Is(err, usecase.ErrNoMatch):
		return middleware.NewAppError(fiber.StatusNotFound, "No matching professional", nil, err)
	case errors.Is(err, usecase.ErrProfessionalBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Professional busy", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

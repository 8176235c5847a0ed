package handler

import (
	"errors"
	"strconv"

	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/dto"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/response"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfessionalHandler struct {
	uc usecase.ProfessionalUsecase
}

func NewProfessionalHandler(uc usecase.ProfessionalUsecase) *ProfessionalHandler {
	return &ProfessionalHandler{uc: uc}
}

func (h *ProfessionalHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/professionals")
	grp.Get("/", h.List)
	grp.Get("/:professional_id", h.Get)
}

func (h *ProfessionalHandler) List(c fiber.Ctx) error {
	f := repository.CandidateFilter{
		OnlineOnly: c.Query("online") == "true",
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		f.CategoryID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		f.Limit = limit
	}

	details, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapProfessionalUsecaseError(err)
	}

	out := dto.ProfessionalListResponse{Professionals: make([]dto.ProfessionalResponse, 0, len(details))}
	for _, d := range details {
		out.Professionals = append(out.Professionals, professionalResponseFrom(d))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfessionalHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("professional_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapProfessionalUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, professionalResponseFrom(d))
}

func professionalResponseFrom(d usecase.ProfessionalDetail) dto.ProfessionalResponse {
	out := dto.ProfessionalResponse{
		ID:              d.Row.ID,
		DisplayName:     d.Row.DisplayName,
		Categories:      make([]dto.CategoryResponse, 0, len(d.Categories)),
		Online:          d.Row.Online,
		Available:       d.Row.Available,
		Rating:          d.Row.Rating,
		TotalSessions:   d.Row.TotalSessions,
		YearsExperience: d.Row.YearsExperience,
	}

	if d.Row.Specialization != nil {
		out.Specialization = *d.Row.Specialization
	}
	if d.Row.ResponseBucket != nil {
		out.ResponseBucket = *d.Row.ResponseBucket
	}
	if d.Row.PrimaryCategoryID != nil || d.Row.PrimaryCategoryName != nil {
		primary := dto.CategoryResponse{IsPrimary: true}
		if d.Row.PrimaryCategoryID != nil {
			primary.ID = *d.Row.PrimaryCategoryID
		}
		if d.Row.PrimaryCategoryName != nil {
			primary.Name = *d.Row.PrimaryCategoryName
		}
		out.PrimaryCategory = &primary
	}
	for _, cat := range d.Categories {
		out.Categories = append(out.Categories, dto.CategoryResponse{
			ID:        cat.CategoryID,
			Name:      cat.CategoryName,
			IsPrimary: cat.IsPrimary,
		})
	}

	return out
}

func mapProfessionalUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrProfessionalNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Professional not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

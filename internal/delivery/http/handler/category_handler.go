package handler

import (
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/dto"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/response"
	"github.com/eKidenge/QuickConnect-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/categories", h.List)
}

func (h *CategoryHandler) List(c fiber.Ctx) error {
	cats, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

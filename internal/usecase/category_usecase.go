package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
)

type CategoryUsecase interface {
	List(ctx context.Context) ([]repository.Category, error)
	Resolve(ctx context.Context, name string) (repository.Category, error)
}

type Categories struct {
	categories repository.CategoryRepository
}

func NewCategoryUsecase(categories repository.CategoryRepository) *Categories {
	return &Categories{categories: categories}
}

func (u *Categories) List(ctx context.Context) ([]repository.Category, error) {
	out, err := u.categories.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Resolve looks a category up by name, case-insensitively.
func (u *Categories) Resolve(ctx context.Context, name string) (repository.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Category{}, ErrInvalidInput
	}

	cat, err := u.categories.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return repository.Category{}, ErrCategoryNotFound
		}
		return repository.Category{}, ErrInternal
	}
	return cat, nil
}

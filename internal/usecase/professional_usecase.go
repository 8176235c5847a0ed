package usecase

import (
	"context"
	"errors"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"

	"github.com/google/uuid"
)

// ProfessionalDetail pairs a professional record with its categories set.
type ProfessionalDetail struct {
	Row        repository.ProfessionalRow
	Categories []repository.ProfessionalCategoryRow
}

type ProfessionalUsecase interface {
	List(ctx context.Context, f repository.CandidateFilter) ([]ProfessionalDetail, error)
	Get(ctx context.Context, id uuid.UUID) (ProfessionalDetail, error)
}

type Professionals struct {
	professionals repository.ProfessionalRepository
}

func NewProfessionalUsecase(professionals repository.ProfessionalRepository) *Professionals {
	return &Professionals{professionals: professionals}
}

func (u *Professionals) List(ctx context.Context, f repository.CandidateFilter) ([]ProfessionalDetail, error) {
	rows, err := u.professionals.ListCandidates(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	catsByID, err := u.professionals.CategoriesByProfessionalIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ProfessionalDetail, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProfessionalDetail{Row: p, Categories: catsByID[p.ID]})
	}
	return out, nil
}

func (u *Professionals) Get(ctx context.Context, id uuid.UUID) (ProfessionalDetail, error) {
	if id == uuid.Nil {
		return ProfessionalDetail{}, ErrInvalidInput
	}

	row, err := u.professionals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfessionalNotFound) {
			return ProfessionalDetail{}, ErrProfessionalNotFound
		}
		return ProfessionalDetail{}, ErrInternal
	}

	catsByID, err := u.professionals.CategoriesByProfessionalIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return ProfessionalDetail{}, ErrInternal
	}

	return ProfessionalDetail{Row: row, Categories: catsByID[id]}, nil
}

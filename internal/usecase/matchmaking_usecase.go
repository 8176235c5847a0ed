package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/domain/matchmaking"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"

	"github.com/google/uuid"
)

const matchCacheTTL = 30 * time.Second

type MatchmakingUsecase interface {
	Match(ctx context.Context, clientID uuid.UUID, category string) (*matchmaking.MatchResult, error)
	Rank(ctx context.Context, clientID uuid.UUID, category string) ([]matchmaking.MatchResult, error)
}

type Matchmaking struct {
	professionals repository.ProfessionalRepository
	cache         MatchCache
}

func NewMatchmakingUsecase(professionals repository.ProfessionalRepository, cache MatchCache) *Matchmaking {
	return &Matchmaking{professionals: professionals, cache: cache}
}

// Match returns the single best professional for the requested category
// under the strict profile, or nil when nobody passes the category gate.
// An empty pool is not an error.
func (u *Matchmaking) Match(ctx context.Context, clientID uuid.UUID, category string) (*matchmaking.MatchResult, error) {
	ranked, err := u.Rank(ctx, clientID, category)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	best := ranked[0]
	return &best, nil
}

// Rank scores the whole candidate pool against the requested category and
// returns the eligible professionals best-first.
func (u *Matchmaking) Rank(ctx context.Context, clientID uuid.UUID, category string) ([]matchmaking.MatchResult, error) {
	if clientID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrInvalidInput
	}

	key := rankCacheKey(category)
	if u.cache != nil {
		var cached []matchmaking.MatchResult
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	pool, err := u.loadPool(ctx, repository.CandidateFilter{})
	if err != nil {
		return nil, ErrInternal
	}

	out := matchmaking.Rank(matchmaking.Request{Category: category, Profile: matchmaking.ProfileStrict}, pool)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, matchCacheTTL)
	}
	return out, nil
}

func (u *Matchmaking) loadPool(ctx context.Context, f repository.CandidateFilter) ([]matchmaking.Candidate, error) {
	return loadCandidates(ctx, u.professionals, f)
}

func rankCacheKey(category string) string {
	return "matchmaking:rank:strict:" + strings.ToLower(strings.TrimSpace(category))
}

// loadCandidates fetches professionals plus their categories set and maps
// them onto engine candidates.
func loadCandidates(ctx context.Context, repo repository.ProfessionalRepository, f repository.CandidateFilter) ([]matchmaking.Candidate, error) {
	rows, err := repo.ListCandidates(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	catsByID, err := repo.CategoriesByProfessionalIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]matchmaking.Candidate, 0, len(rows))
	for _, p := range rows {
		out = append(out, candidateFromRow(p, catsByID[p.ID]))
	}
	return out, nil
}

func candidateFromRow(p repository.ProfessionalRow, cats []repository.ProfessionalCategoryRow) matchmaking.Candidate {
	c := matchmaking.Candidate{
		ID:              p.ID,
		Name:            p.DisplayName,
		Online:          p.Online,
		Available:       p.Available,
		Rating:          p.Rating,
		Sessions:        p.TotalSessions,
		YearsExperience: p.YearsExperience,
		CurrentLoad:     p.CurrentLoad,
		MaxLoad:         p.MaxLoad,
	}

	if p.PrimaryCategoryID != nil || p.PrimaryCategoryName != nil {
		c.PrimaryCategory = &matchmaking.CategoryRef{
			ID:      derefInt64(p.PrimaryCategoryID),
			Name:    derefString(p.PrimaryCategoryName),
			Primary: true,
		}
	}
	if p.LegacyCategoryID != nil || p.LegacyCategoryName != nil {
		c.LegacyCategory = &matchmaking.CategoryRef{
			ID:   derefInt64(p.LegacyCategoryID),
			Name: derefString(p.LegacyCategoryName),
		}
	}
	for _, cat := range cats {
		c.Categories = append(c.Categories, matchmaking.CategoryRef{
			ID:      cat.CategoryID,
			Name:    cat.CategoryName,
			Primary: cat.IsPrimary,
		})
	}

	c.Specialization = derefString(p.Specialization)
	c.ResponseBucket = derefString(p.ResponseBucket)
	return c
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

package repository

import (
	"context"
	"errors"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfessionalNotFound = errors.New("professional not found")

// ProfessionalRow carries a professional record as stored. Quality fields
// stay nullable so the matchmaking engine owns defaulting; the three
// category truth sources are populated independently and may disagree.
type ProfessionalRow struct {
	ID          uuid.UUID
	DisplayName string

	PrimaryCategoryID   *int64
	PrimaryCategoryName *string
	LegacyCategoryID    *int64
	LegacyCategoryName  *string
	Specialization      *string

	Online    bool
	Available bool

	Rating          *float64
	TotalSessions   *int
	YearsExperience *int
	ResponseBucket  *string
	CurrentLoad     int
	MaxLoad         int
}

// ProfessionalCategoryRow is one entry of a professional's categories set.
type ProfessionalCategoryRow struct {
	ProfessionalID uuid.UUID
	CategoryID     int64
	CategoryName   string
	IsPrimary      bool
}

type CandidateFilter struct {
	CategoryID *int64
	OnlineOnly bool
	Limit      int
}

type ProfessionalRepository interface {
	ListCandidates(ctx context.Context, f CandidateFilter) ([]ProfessionalRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (ProfessionalRow, error)
	CategoriesByProfessionalIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ProfessionalCategoryRow, error)
}

type PostgresProfessionalRepository struct {
	db database.DB
}

func NewPostgresProfessionalRepository(db database.DB) *PostgresProfessionalRepository {
	return &PostgresProfessionalRepository{db: db}
}

const professionalSelect = `
	SELECT p.id, p.display_name,
	       p.primary_category_id, pc.name,
	       p.legacy_category_id, lc.name,
	       p.specialization,
	       COALESCE(p.is_online, FALSE), COALESCE(p.is_available, FALSE),
	       p.average_rating, p.total_sessions, p.years_experience,
	       p.response_bucket,
	       COALESCE(p.current_load, 0), COALESCE(p.max_load, 0)
	FROM professionals p
	LEFT JOIN categories pc ON pc.id = p.primary_category_id
	LEFT JOIN categories lc ON lc.id = p.legacy_category_id`

func (r *PostgresProfessionalRepository) ListCandidates(ctx context.Context, f CandidateFilter) ([]ProfessionalRow, error) {
	query := professionalSelect
	args := make([]any, 0, 2)

	where := " WHERE p.is_active = TRUE"
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where += ` AND (p.primary_category_id = $1 OR p.legacy_category_id = $1
			OR EXISTS (SELECT 1 FROM professional_categories x WHERE x.professional_id = p.id AND x.category_id = $1))`
	}
	if f.OnlineOnly {
		where += " AND COALESCE(p.is_online, FALSE) = TRUE"
	}
	query += where + " ORDER BY p.display_name ASC"

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	args = append(args, limit)
	if f.CategoryID != nil {
		query += " LIMIT $2"
	} else {
		query += " LIMIT $1"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProfessionalRow, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (ProfessionalRow, error) {
	row := r.db.QueryRow(ctx, professionalSelect+" WHERE p.id = $1", id)
	p, err := scanProfessional(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfessionalRow{}, ErrProfessionalNotFound
		}
		return ProfessionalRow{}, err
	}
	return p, nil
}

func (r *PostgresProfessionalRepository) CategoriesByProfessionalIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ProfessionalCategoryRow, error) {
	out := make(map[uuid.UUID][]ProfessionalCategoryRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT x.professional_id, x.category_id, c.name, COALESCE(x.is_primary, FALSE)
		 FROM professional_categories x
		 JOIN categories c ON c.id = x.category_id
		 WHERE x.professional_id = ANY($1)
		 ORDER BY x.professional_id, x.category_id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pc ProfessionalCategoryRow
		if err := rows.Scan(&pc.ProfessionalID, &pc.CategoryID, &pc.CategoryName, &pc.IsPrimary); err != nil {
			return nil, err
		}
		out[pc.ProfessionalID] = append(out[pc.ProfessionalID], pc)
	}
	return out, rows.Err()
}

type professionalScanner interface {
	Scan(dest ...any) error
}

func scanProfessional(row professionalScanner) (ProfessionalRow, error) {
	var p ProfessionalRow
	err := row.Scan(
		&p.ID, &p.DisplayName,
		&p.PrimaryCategoryID, &p.PrimaryCategoryName,
		&p.LegacyCategoryID, &p.LegacyCategoryName,
		&p.Specialization,
		&p.Online, &p.Available,
		&p.Rating, &p.TotalSessions, &p.YearsExperience,
		&p.ResponseBucket,
		&p.CurrentLoad, &p.MaxLoad,
	)
	return p, err
}

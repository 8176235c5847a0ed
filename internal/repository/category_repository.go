package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID   int64
	Name string
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindByName(ctx context.Context, name string) (Category, error)
}

type PostgresCategoryRepository struct {
	db database.DB
}

func NewPostgresCategoryRepository(db database.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCategoryRepository) FindByName(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrCategoryNotFound
	}

	var c Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE LOWER(name) = LOWER($1)`,
		name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return c, nil
}

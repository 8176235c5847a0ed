package seeder

import (
	"context"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"
)

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "categories" }

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "categories", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	names := []string{
		"Legal Advice",
		"Tax Law",
		"Family Law",
		"Medical Help",
		"Mental Health",
		"Financial Planning",
		"Career Coaching",
		"Business Strategy",
		"Immigration",
		"Real Estate",
	}

	for _, name := range names {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

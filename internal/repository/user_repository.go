package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	"github.com/eKidenge/QuickConnect-sub000/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userSelect = `SELECT id, email, password_hash, role, created_at, updated_at FROM users`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$5)`,
		u.ID, u.Email, u.PasswordHash, u.Role, now,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, userSelect+` WHERE email = $1`, email))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(row userScanner) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

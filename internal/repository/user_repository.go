package repository

import (
	"context"

	"github.com/campusly/college-management/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles login account data access.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// GetByUsername retrieves an account with its password hash.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	var roles []string
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, roles, created_at, updated_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	u.Roles = make([]model.Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, model.Role(r))
	}
	return u, nil
}

// Create inserts a new account. PasswordHash must already be hashed.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, string(role))
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, roles)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.PasswordHash, roles,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return translate(err)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetUser(ctx context.Context, id int64) (model.User, error) {
	if id <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.User{}, ErrUserNotFound
	}

	var user model.User
	var role string
	err := r.pool.QueryRow(ctx, `
SELECT id, role, verified, created_at, updated_at
FROM users
WHERE id = $1
`, id).Scan(&user.ID, &role, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	parsed, ok := enums.ParseRole(role)
	if !ok {
		return model.User{}, fmt.Errorf("user %d has unknown role %q", id, role)
	}
	user.Role = parsed

	return user, nil
}

func (r *UserRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	if id <= 0 {
		return fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil
	}

	result, err := r.pool.Exec(ctx, `
UPDATE users
SET verified = $2, updated_at = NOW()
WHERE id = $1
`, id, verified)
	if err != nil {
		return fmt.Errorf("set user verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

package users

import (
	"context"
	"errors"

	"github.com/olegsavin/brandmatch/internal/domain/model"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUserNotFound = errors.New("user not found")
)

type Store interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrValidation
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

// SetVerified is the moderation toggle for the verification badge. The
// verified flag feeds both the scorer and the discovery facet, so the
// caller is route-gated to the admin role.
func (s *Service) SetVerified(ctx context.Context, userID int64, verified bool) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrValidation
	}

	if err := s.store.SetVerified(ctx, userID, verified); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	return s.Get(ctx, userID)
}

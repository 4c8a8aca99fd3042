package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
)

const (
	maxHandleLen = 64
	maxNameLen   = 128
	maxBioLen    = 2000
)

var (
	ErrValidation      = errors.New("validation error")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleMismatch    = errors.New("profile role mismatch")
)

type Store interface {
	GetCreatorProfile(ctx context.Context, userID int64) (model.CreatorProfile, error)
	GetBrandProfile(ctx context.Context, userID int64) (model.BrandProfile, error)
	SaveCreatorProfile(ctx context.Context, profile model.CreatorProfile) error
	SaveBrandProfile(ctx context.Context, profile model.BrandProfile) error
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
}

type Service struct {
	store Store
	users UserStore
}

func NewService(store Store, users UserStore) *Service {
	return &Service{store: store, users: users}
}

// SaveCreatorProfile upserts the caller's creator profile. The stored role
// gates which profile kind a user may own.
func (s *Service) SaveCreatorProfile(ctx context.Context, profile model.CreatorProfile) error {
	if err := s.checkRole(ctx, profile.UserID, enums.RoleCreator); err != nil {
		return err
	}
	if utf8.RuneCountInString(profile.InstagramHandle) > maxHandleLen ||
		utf8.RuneCountInString(profile.TiktokHandle) > maxHandleLen {
		return ErrValidation
	}
	if profile.FollowerCountIG < 0 || profile.FollowerCountTiktok < 0 {
		return ErrValidation
	}
	if utf8.RuneCountInString(profile.Bio) > maxBioLen {
		return ErrValidation
	}

	profile.InstagramHandle = strings.TrimSpace(profile.InstagramHandle)
	profile.TiktokHandle = strings.TrimSpace(profile.TiktokHandle)
	profile.Bio = strings.TrimSpace(profile.Bio)

	return s.store.SaveCreatorProfile(ctx, profile)
}

func (s *Service) SaveBrandProfile(ctx context.Context, profile model.BrandProfile) error {
	if err := s.checkRole(ctx, profile.UserID, enums.RoleBrand); err != nil {
		return err
	}
	if strings.TrimSpace(profile.CompanyName) == "" {
		return ErrValidation
	}
	if utf8.RuneCountInString(profile.CompanyName) > maxNameLen ||
		utf8.RuneCountInString(profile.Vertical) > maxNameLen {
		return ErrValidation
	}
	if utf8.RuneCountInString(profile.Bio) > maxBioLen {
		return ErrValidation
	}
	if profile.AdSpendRange != "" {
		if _, ok := enums.ParseAdSpendRange(string(profile.AdSpendRange)); !ok {
			return ErrValidation
		}
	}

	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	profile.Vertical = strings.TrimSpace(profile.Vertical)
	profile.Bio = strings.TrimSpace(profile.Bio)

	return s.store.SaveBrandProfile(ctx, profile)
}

func (s *Service) GetCreatorProfile(ctx context.Context, userID int64) (model.CreatorProfile, error) {
	if userID <= 0 {
		return model.CreatorProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.CreatorProfile{}, fmt.Errorf("profile store is not configured")
	}

	profile, err := s.store.GetCreatorProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.CreatorProfile{}, ErrProfileNotFound
		}
		return model.CreatorProfile{}, err
	}
	return profile, nil
}

func (s *Service) GetBrandProfile(ctx context.Context, userID int64) (model.BrandProfile, error) {
	if userID <= 0 {
		return model.BrandProfile{}, ErrValidation
	}
	if s.store == nil {
		return model.BrandProfile{}, fmt.Errorf("profile store is not configured")
	}

	profile, err := s.store.GetBrandProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.BrandProfile{}, ErrProfileNotFound
		}
		return model.BrandProfile{}, err
	}
	return profile, nil
}

func (s *Service) checkRole(ctx context.Context, userID int64, want enums.Role) error {
	if userID <= 0 {
		return ErrValidation
	}
	if s.store == nil || s.users == nil {
		return fmt.Errorf("profile dependencies are not configured")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != want {
		return ErrRoleMismatch
	}
	return nil
}

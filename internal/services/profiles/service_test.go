package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
)

type stubStore struct {
	creators map[int64]model.CreatorProfile
	brands   map[int64]model.BrandProfile
}

func newStubStore() *stubStore {
	return &stubStore{
		creators: make(map[int64]model.CreatorProfile),
		brands:   make(map[int64]model.BrandProfile),
	}
}

func (s *stubStore) GetCreatorProfile(_ context.Context, userID int64) (model.CreatorProfile, error) {
	profile, ok := s.creators[userID]
	if !ok {
		return model.CreatorProfile{}, pgrepo.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubStore) GetBrandProfile(_ context.Context, userID int64) (model.BrandProfile, error) {
	profile, ok := s.brands[userID]
	if !ok {
		return model.BrandProfile{}, pgrepo.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubStore) SaveCreatorProfile(_ context.Context, profile model.CreatorProfile) error {
	s.creators[profile.UserID] = profile
	return nil
}

func (s *stubStore) SaveBrandProfile(_ context.Context, profile model.BrandProfile) error {
	s.brands[profile.UserID] = profile
	return nil
}

type stubUsers struct {
	users map[int64]model.User
}

func (s *stubUsers) GetUser(_ context.Context, id int64) (model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func fixtureService() (*Service, *stubStore) {
	store := newStubStore()
	users := &stubUsers{users: map[int64]model.User{
		1: {ID: 1, Role: enums.RoleCreator},
		2: {ID: 2, Role: enums.RoleBrand},
	}}
	return NewService(store, users), store
}

func TestSaveCreatorProfileUpsertAndTrim(t *testing.T) {
	svc, store := fixtureService()

	err := svc.SaveCreatorProfile(context.Background(), model.CreatorProfile{
		UserID:          1,
		InstagramHandle: "  @handle  ",
		FollowerCountIG: 1000,
		Bio:             " travel stories ",
	})
	if err != nil {
		t.Fatalf("SaveCreatorProfile: %v", err)
	}

	saved := store.creators[1]
	if saved.InstagramHandle != "@handle" || saved.Bio != "travel stories" {
		t.Fatalf("fields not trimmed: %+v", saved)
	}

	err = svc.SaveCreatorProfile(context.Background(), model.CreatorProfile{
		UserID:          1,
		InstagramHandle: "@handle",
		FollowerCountIG: 2000,
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if store.creators[1].FollowerCountIG != 2000 {
		t.Fatal("upsert did not replace follower count")
	}
}

func TestSaveCreatorProfileValidation(t *testing.T) {
	svc, _ := fixtureService()
	ctx := context.Background()

	if err := svc.SaveCreatorProfile(ctx, model.CreatorProfile{UserID: 1, FollowerCountIG: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative followers: err = %v", err)
	}
	if err := svc.SaveCreatorProfile(ctx, model.CreatorProfile{UserID: 1, Bio: strings.Repeat("x", maxBioLen+1)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("oversized bio: err = %v", err)
	}
	if err := svc.SaveCreatorProfile(ctx, model.CreatorProfile{UserID: 2}); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("brand saving creator profile: err = %v", err)
	}
	if err := svc.SaveCreatorProfile(ctx, model.CreatorProfile{UserID: 99}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: err = %v", err)
	}
}

func TestSaveBrandProfileValidation(t *testing.T) {
	svc, store := fixtureService()
	ctx := context.Background()

	if err := svc.SaveBrandProfile(ctx, model.BrandProfile{UserID: 2}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty company name: err = %v", err)
	}
	if err := svc.SaveBrandProfile(ctx, model.BrandProfile{UserID: 2, CompanyName: "Acme", AdSpendRange: "tons"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad spend bucket: err = %v", err)
	}
	if err := svc.SaveBrandProfile(ctx, model.BrandProfile{UserID: 1, CompanyName: "Acme"}); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("creator saving brand profile: err = %v", err)
	}

	err := svc.SaveBrandProfile(ctx, model.BrandProfile{
		UserID:       2,
		CompanyName:  "Acme",
		Vertical:     "travel",
		AdSpendRange: enums.AdSpend10KTo25K,
	})
	if err != nil {
		t.Fatalf("valid save: %v", err)
	}
	if store.brands[2].Vertical != "travel" {
		t.Fatal("brand profile not stored")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := fixtureService()

	if _, err := svc.GetCreatorProfile(context.Background(), 1); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("creator: err = %v, want ErrProfileNotFound", err)
	}
	if _, err := svc.GetBrandProfile(context.Background(), 2); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("brand: err = %v, want ErrProfileNotFound", err)
	}
}

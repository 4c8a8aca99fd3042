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

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) GetCreatorProfile(ctx context.Context, userID int64) (model.CreatorProfile, error) {
	if userID <= 0 {
		return model.CreatorProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.CreatorProfile{}, ErrProfileNotFound
	}

	var profile model.CreatorProfile
	err := r.pool.QueryRow(ctx, `
SELECT user_id, instagram_handle, tiktok_handle, follower_count_ig, follower_count_tiktok, bio, created_at, updated_at
FROM creator_profiles
WHERE user_id = $1
`, userID).Scan(
		&profile.UserID,
		&profile.InstagramHandle,
		&profile.TiktokHandle,
		&profile.FollowerCountIG,
		&profile.FollowerCountTiktok,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreatorProfile{}, ErrProfileNotFound
		}
		return model.CreatorProfile{}, fmt.Errorf("get creator profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepo) GetBrandProfile(ctx context.Context, userID int64) (model.BrandProfile, error) {
	if userID <= 0 {
		return model.BrandProfile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.BrandProfile{}, ErrProfileNotFound
	}

	var profile model.BrandProfile
	var adSpend string
	err := r.pool.QueryRow(ctx, `
SELECT user_id, company_name, vertical, ad_spend_range, bio, created_at, updated_at
FROM brand_profiles
WHERE user_id = $1
`, userID).Scan(
		&profile.UserID,
		&profile.CompanyName,
		&profile.Vertical,
		&adSpend,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BrandProfile{}, ErrProfileNotFound
		}
		return model.BrandProfile{}, fmt.Errorf("get brand profile: %w", err)
	}

	if bucket, ok := enums.ParseAdSpendRange(adSpend); ok {
		profile.AdSpendRange = bucket
	}

	return profile, nil
}

func (r *ProfileRepo) SaveCreatorProfile(ctx context.Context, profile model.CreatorProfile) error {
	if profile.UserID <= 0 {
		return fmt.Errorf("invalid creator profile payload")
	}
	if r.pool == nil {
		return nil
	}

	const query = `
INSERT INTO creator_profiles (
	user_id,
	instagram_handle,
	tiktok_handle,
	follower_count_ig,
	follower_count_tiktok,
	bio,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (user_id) DO UPDATE SET
	instagram_handle = EXCLUDED.instagram_handle,
	tiktok_handle = EXCLUDED.tiktok_handle,
	follower_count_ig = EXCLUDED.follower_count_ig,
	follower_count_tiktok = EXCLUDED.follower_count_tiktok,
	bio = EXCLUDED.bio,
	updated_at = NOW()
`

	if _, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.InstagramHandle,
		profile.TiktokHandle,
		profile.FollowerCountIG,
		profile.FollowerCountTiktok,
		profile.Bio,
	); err != nil {
		return fmt.Errorf("save creator profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) SaveBrandProfile(ctx context.Context, profile model.BrandProfile) error {
	if profile.UserID <= 0 {
		return fmt.Errorf("invalid brand profile payload")
	}
	if r.pool == nil {
		return nil
	}

	const query = `
INSERT INTO brand_profiles (
	user_id,
	company_name,
	vertical,
	ad_spend_range,
	bio,
	updated_at
) VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (user_id) DO UPDATE SET
	company_name = EXCLUDED.company_name,
	vertical = EXCLUDED.vertical,
	ad_spend_range = EXCLUDED.ad_spend_range,
	bio = EXCLUDED.bio,
	updated_at = NOW()
`

	if _, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.CompanyName,
		profile.Vertical,
		string(profile.AdSpendRange),
		profile.Bio,
	); err != nil {
		return fmt.Errorf("save brand profile: %w", err)
	}

	return nil
}

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

var ErrDiscoveryViewerNotFound = errors.New("discovery viewer not found")

type DiscoveryRepo struct {
	pool *pgxpool.Pool
}

func NewDiscoveryRepo(pool *pgxpool.Pool) *DiscoveryRepo {
	return &DiscoveryRepo{pool: pool}
}

// CandidateRecord is one user of the candidate pool with the role-specific
// profile attached. HasProfile is false when no profile row exists; such
// candidates cannot be scored and are dropped by the filter.
type CandidateRecord struct {
	User       model.User
	HasProfile bool
	Creator    model.CreatorProfile
	Brand      model.BrandProfile
}

func (r *DiscoveryRepo) GetViewer(ctx context.Context, userID int64) (CandidateRecord, error) {
	if userID <= 0 {
		return CandidateRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return CandidateRecord{}, ErrDiscoveryViewerNotFound
	}

	var user model.User
	var role string
	err := r.pool.QueryRow(ctx, `
SELECT id, role, verified, created_at, updated_at
FROM users
WHERE id = $1
`, userID).Scan(&user.ID, &role, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CandidateRecord{}, ErrDiscoveryViewerNotFound
		}
		return CandidateRecord{}, fmt.Errorf("get discovery viewer: %w", err)
	}

	parsed, ok := enums.ParseRole(role)
	if !ok {
		return CandidateRecord{}, fmt.Errorf("viewer %d has unknown role %q", userID, role)
	}
	user.Role = parsed

	record := CandidateRecord{User: user}
	if parsed == enums.RoleCreator {
		profile, err := r.creatorProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return record, nil
			}
			return CandidateRecord{}, err
		}
		record.Creator = profile
		record.HasProfile = true
		return record, nil
	}

	profile, err := r.brandProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record, nil
		}
		return CandidateRecord{}, err
	}
	record.Brand = profile
	record.HasProfile = true
	return record, nil
}

// ListCandidates returns the full population of the given role with profiles
// attached via LEFT JOIN. Exclusion and facet filtering happen in the
// discovery service, scoring needs the whole record anyway.
func (r *DiscoveryRepo) ListCandidates(ctx context.Context, role enums.Role) ([]CandidateRecord, error) {
	if r.pool == nil {
		return []CandidateRecord{}, nil
	}

	if role == enums.RoleCreator {
		return r.listCreators(ctx)
	}
	return r.listBrands(ctx)
}

func (r *DiscoveryRepo) listCreators(ctx context.Context) ([]CandidateRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	u.verified,
	u.created_at,
	u.updated_at,
	p.user_id IS NOT NULL AS has_profile,
	COALESCE(p.instagram_handle, ''),
	COALESCE(p.tiktok_handle, ''),
	COALESCE(p.follower_count_ig, 0),
	COALESCE(p.follower_count_tiktok, 0),
	COALESCE(p.bio, '')
FROM users u
LEFT JOIN creator_profiles p ON p.user_id = u.id
WHERE u.role = 'creator'
ORDER BY u.id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list creator candidates: %w", err)
	}
	defer rows.Close()

	items := make([]CandidateRecord, 0, 128)
	for rows.Next() {
		record := CandidateRecord{User: model.User{Role: enums.RoleCreator}}
		if err := rows.Scan(
			&record.User.ID,
			&record.User.Verified,
			&record.User.CreatedAt,
			&record.User.UpdatedAt,
			&record.HasProfile,
			&record.Creator.InstagramHandle,
			&record.Creator.TiktokHandle,
			&record.Creator.FollowerCountIG,
			&record.Creator.FollowerCountTiktok,
			&record.Creator.Bio,
		); err != nil {
			return nil, fmt.Errorf("scan creator candidate: %w", err)
		}
		record.Creator.UserID = record.User.ID
		items = append(items, record)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate creator candidates: %w", rows.Err())
	}

	return items, nil
}

func (r *DiscoveryRepo) listBrands(ctx context.Context) ([]CandidateRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	u.verified,
	u.created_at,
	u.updated_at,
	p.user_id IS NOT NULL AS has_profile,
	COALESCE(p.company_name, ''),
	COALESCE(p.vertical, ''),
	COALESCE(p.ad_spend_range, ''),
	COALESCE(p.bio, '')
FROM users u
LEFT JOIN brand_profiles p ON p.user_id = u.id
WHERE u.role = 'brand'
ORDER BY u.id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list brand candidates: %w", err)
	}
	defer rows.Close()

	items := make([]CandidateRecord, 0, 128)
	for rows.Next() {
		record := CandidateRecord{User: model.User{Role: enums.RoleBrand}}
		var adSpend string
		if err := rows.Scan(
			&record.User.ID,
			&record.User.Verified,
			&record.User.CreatedAt,
			&record.User.UpdatedAt,
			&record.HasProfile,
			&record.Brand.CompanyName,
			&record.Brand.Vertical,
			&adSpend,
			&record.Brand.Bio,
		); err != nil {
			return nil, fmt.Errorf("scan brand candidate: %w", err)
		}
		record.Brand.UserID = record.User.ID
		if bucket, ok := enums.ParseAdSpendRange(adSpend); ok {
			record.Brand.AdSpendRange = bucket
		}
		items = append(items, record)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate brand candidates: %w", rows.Err())
	}

	return items, nil
}

func (r *DiscoveryRepo) creatorProfile(ctx context.Context, userID int64) (model.CreatorProfile, error) {
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
		return model.CreatorProfile{}, err
	}
	return profile, nil
}

func (r *DiscoveryRepo) brandProfile(ctx context.Context, userID int64) (model.BrandProfile, error) {
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
		return model.BrandProfile{}, err
	}
	if bucket, ok := enums.ParseAdSpendRange(adSpend); ok {
		profile.AdSpendRange = bucket
	}
	return profile, nil
}

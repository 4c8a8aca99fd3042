package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// UpsertDecision records a decision for the pair in one atomic statement.
// The (creator_id, brand_id) unique constraint is the pair identity, so two
// concurrent decisions collapse into one row. On conflict only status and
// updated_at change; match_score keeps its creation-time snapshot.
func (r *MatchRepo) UpsertDecision(ctx context.Context, tx pgx.Tx, creatorID, brandID int64, score float64, status enums.MatchStatus, now time.Time) (model.Match, error) {
	if creatorID <= 0 || brandID <= 0 {
		return model.Match{}, fmt.Errorf("invalid match pair")
	}
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}

	var match model.Match
	var rawStatus string
	err := tx.QueryRow(ctx, `
INSERT INTO matches (
	creator_id,
	brand_id,
	match_score,
	status,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (creator_id, brand_id) DO UPDATE SET
	status = EXCLUDED.status,
	updated_at = EXCLUDED.updated_at
RETURNING id, creator_id, brand_id, match_score, status, created_at, updated_at
`, creatorID, brandID, score, string(status), now.UTC()).Scan(
		&match.ID,
		&match.CreatorID,
		&match.BrandID,
		&match.MatchScore,
		&rawStatus,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return model.Match{}, fmt.Errorf("upsert match decision: %w", err)
	}

	match.Status = enums.MatchStatus(rawStatus)
	return match, nil
}

func (r *MatchRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, matchID int64, status enums.MatchStatus, now time.Time) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}

	var match model.Match
	var rawStatus string
	err := tx.QueryRow(ctx, `
UPDATE matches
SET status = $2, updated_at = $3
WHERE id = $1
RETURNING id, creator_id, brand_id, match_score, status, created_at, updated_at
`, matchID, string(status), now.UTC()).Scan(
		&match.ID,
		&match.CreatorID,
		&match.BrandID,
		&match.MatchScore,
		&rawStatus,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("update match status: %w", err)
	}

	match.Status = enums.MatchStatus(rawStatus)
	return match, nil
}

func (r *MatchRepo) ListByStatus(ctx context.Context, userID int64, role enums.Role, status enums.MatchStatus, limit int) ([]model.Match, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.Match{}, nil
	}

	column := "creator_id"
	if role == enums.RoleBrand {
		column = "brand_id"
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT id, creator_id, brand_id, match_score, status, created_at, updated_at
FROM matches
WHERE %s = $1 AND status = $2
ORDER BY match_score DESC, id ASC
LIMIT $3
`, column), userID, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list matches by status: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0, limit)
	for rows.Next() {
		var match model.Match
		var rawStatus string
		if err := rows.Scan(
			&match.ID,
			&match.CreatorID,
			&match.BrandID,
			&match.MatchScore,
			&rawStatus,
			&match.CreatedAt,
			&match.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		match.Status = enums.MatchStatus(rawStatus)
		items = append(items, match)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

// ExcludedPeers returns every user that already shares a match row with the
// given user, regardless of status. Rejections are match rows too, so this
// single indexed query is the whole permanent exclusion set.
func (r *MatchRepo) ExcludedPeers(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT CASE WHEN creator_id = $1 THEN brand_id ELSE creator_id END AS peer_id
FROM matches
WHERE creator_id = $1 OR brand_id = $1
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list excluded peers: %w", err)
	}
	defer rows.Close()

	peers := make([]int64, 0, 64)
	for rows.Next() {
		var peerID int64
		if err := rows.Scan(&peerID); err != nil {
			return nil, fmt.Errorf("scan excluded peer: %w", err)
		}
		peers = append(peers, peerID)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate excluded peers: %w", rows.Err())
	}

	return peers, nil
}

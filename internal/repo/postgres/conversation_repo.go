package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olegsavin/brandmatch/internal/domain/model"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// GetOrCreate is idempotent: the unique constraint on match_id guarantees at
// most one conversation per match even under concurrent calls.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, matchID int64) (model.Conversation, error) {
	if matchID <= 0 {
		return model.Conversation{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.Conversation{}, fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO conversations (id, match_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (match_id) DO NOTHING
`, uuid.NewString(), matchID); err != nil {
		return model.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}

	var conversation model.Conversation
	err := r.pool.QueryRow(ctx, `
SELECT id, match_id, created_at
FROM conversations
WHERE match_id = $1
`, matchID).Scan(&conversation.ID, &conversation.MatchID, &conversation.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Conversation{}, ErrConversationNotFound
		}
		return model.Conversation{}, fmt.Errorf("get conversation: %w", err)
	}

	return conversation, nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.Conversation{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.match_id, c.created_at
FROM conversations c
JOIN matches m ON m.id = c.match_id
WHERE m.creator_id = $1 OR m.brand_id = $1
ORDER BY c.created_at DESC, c.id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	items := make([]model.Conversation, 0, limit)
	for rows.Next() {
		var conversation model.Conversation
		if err := rows.Scan(&conversation.ID, &conversation.MatchID, &conversation.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		items = append(items, conversation)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate conversations: %w", rows.Err())
	}

	return items, nil
}

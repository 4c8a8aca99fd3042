package conversations

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegsavin/brandmatch/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type Store interface {
	GetOrCreate(ctx context.Context, matchID int64) (model.Conversation, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Conversation, error)
}

type Service struct {
	store     Store
	listLimit int
}

func NewService(store Store, listLimit int) *Service {
	if listLimit <= 0 {
		listLimit = 100
	}
	return &Service{store: store, listLimit: listLimit}
}

func (s *Service) EnsureForMatch(ctx context.Context, matchID int64) (model.Conversation, error) {
	if matchID <= 0 {
		return model.Conversation{}, ErrValidation
	}
	if s.store == nil {
		return model.Conversation{}, fmt.Errorf("conversation store is not configured")
	}
	return s.store.GetOrCreate(ctx, matchID)
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Conversation, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("conversation store is not configured")
	}
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}
	return s.store.ListForUser(ctx, userID, limit)
}

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sid string) error
}

type Service struct {
	jwt          *JWTManager
	sessions     SessionStore
	refreshTTL   time.Duration
	bootstrapKey string
	now          func() time.Time
}

func NewService(jwtManager *JWTManager, sessions SessionStore, refreshTTL time.Duration, bootstrapKey string) *Service {
	if refreshTTL <= 0 {
		refreshTTL = 720 * time.Hour
	}

	return &Service{
		jwt:          jwtManager,
		sessions:     sessions,
		refreshTTL:   refreshTTL,
		bootstrapKey: bootstrapKey,
		now:          time.Now,
	}
}

// IssueSession exchanges the internal bootstrap key for a token pair.
// External identity providers are out of scope; upstream services that
// already authenticated the user call this with the shared key.
func (s *Service) IssueSession(ctx context.Context, bootstrapKey string, userID int64, role string) (TokenPair, error) {
	if userID <= 0 {
		return TokenPair{}, ErrInvalidInput
	}
	if s.jwt == nil || s.sessions == nil {
		return TokenPair{}, fmt.Errorf("auth dependencies are not configured")
	}
	if s.bootstrapKey == "" ||
		subtle.ConstantTimeCompare([]byte(bootstrapKey), []byte(s.bootstrapKey)) != 1 {
		return TokenPair{}, ErrUnauthorized
	}

	sid := uuid.NewString()
	refreshToken := uuid.NewString()
	expiresAt := s.now().UTC().Add(s.refreshTTL)

	if err := s.sessions.Create(ctx, SessionRecord{
		SID:       sid,
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
	}, refreshToken); err != nil {
		return TokenPair{}, fmt.Errorf("create session: %w", err)
	}

	access, accessExpiresAt, err := s.jwt.GenerateAccessToken(userID, sid, role)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, ErrInvalidInput
	}
	if s.jwt == nil || s.sessions == nil {
		return TokenPair{}, fmt.Errorf("auth dependencies are not configured")
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, ErrUnauthorized
	}
	if !session.ExpiresAt.After(s.now().UTC()) {
		return TokenPair{}, ErrUnauthorized
	}

	newRefreshToken := uuid.NewString()
	expiresAt := s.now().UTC().Add(s.refreshTTL)
	if err := s.sessions.RotateRefresh(ctx, refreshToken, newRefreshToken, expiresAt); err != nil {
		return TokenPair{}, fmt.Errorf("rotate refresh: %w", err)
	}

	access, accessExpiresAt, err := s.jwt.GenerateAccessToken(session.UserID, session.SID, session.Role)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: newRefreshToken,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if s.sessions == nil {
		return fmt.Errorf("auth dependencies are not configured")
	}

	return s.sessions.DeleteSession(ctx, sid)
}

func (s *Service) ValidateAccessToken(ctx context.Context, raw string) (AccessClaims, error) {
	if s.jwt == nil || s.sessions == nil {
		return AccessClaims{}, fmt.Errorf("auth dependencies are not configured")
	}

	claims, err := s.jwt.ParseAccessToken(raw)
	if err != nil {
		return AccessClaims{}, err
	}

	session, err := s.sessions.GetSession(ctx, claims.SID)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}
	if session.UserID != claims.UserID {
		return AccessClaims{}, ErrUnauthorized
	}
	if !session.ExpiresAt.After(s.now().UTC()) {
		return AccessClaims{}, ErrUnauthorized
	}

	return claims, nil
}

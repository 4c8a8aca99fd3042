package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	matchessvc "github.com/olegsavin/brandmatch/internal/services/matches"
)

type matchStoreStub struct {
	rows   map[string]model.Match
	nextID int64
}

func newMatchStoreStub() *matchStoreStub {
	return &matchStoreStub{rows: make(map[string]model.Match), nextID: 1}
}

func (s *matchStoreStub) UpsertDecision(_ context.Context, _ pgx.Tx, creatorID, brandID int64, score float64, status enums.MatchStatus, now time.Time) (model.Match, error) {
	key := fmt.Sprintf("%d:%d", creatorID, brandID)
	if existing, ok := s.rows[key]; ok {
		existing.Status = status
		existing.UpdatedAt = now
		s.rows[key] = existing
		return existing, nil
	}
	match := model.Match{ID: s.nextID, CreatorID: creatorID, BrandID: brandID, MatchScore: score, Status: status, CreatedAt: now, UpdatedAt: now}
	s.nextID++
	s.rows[key] = match
	return match, nil
}

func (s *matchStoreStub) UpdateStatus(_ context.Context, _ pgx.Tx, matchID int64, status enums.MatchStatus, now time.Time) (model.Match, error) {
	for key, match := range s.rows {
		if match.ID == matchID {
			match.Status = status
			match.UpdatedAt = now
			s.rows[key] = match
			return match, nil
		}
	}
	return model.Match{}, pgrepo.ErrMatchNotFound
}

func (s *matchStoreStub) ListByStatus(_ context.Context, userID int64, role enums.Role, status enums.MatchStatus, _ int) ([]model.Match, error) {
	out := []model.Match{}
	for _, match := range s.rows {
		if match.Status != status {
			continue
		}
		if role == enums.RoleCreator && match.CreatorID != userID {
			continue
		}
		if role == enums.RoleBrand && match.BrandID != userID {
			continue
		}
		out = append(out, match)
	}
	return out, nil
}

type userStoreStub struct {
	users map[int64]model.User
}

func (s userStoreStub) GetUser(_ context.Context, id int64) (model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

type profileStoreStub struct {
	creators map[int64]model.CreatorProfile
	brands   map[int64]model.BrandProfile
}

func (s profileStoreStub) GetCreatorProfile(_ context.Context, userID int64) (model.CreatorProfile, error) {
	profile, ok := s.creators[userID]
	if !ok {
		return model.CreatorProfile{}, pgrepo.ErrProfileNotFound
	}
	return profile, nil
}

func (s profileStoreStub) GetBrandProfile(_ context.Context, userID int64) (model.BrandProfile, error) {
	profile, ok := s.brands[userID]
	if !ok {
		return model.BrandProfile{}, pgrepo.ErrProfileNotFound
	}
	return profile, nil
}

type conversationStoreStub struct {
	err error
}

func (s conversationStoreStub) GetOrCreate(_ context.Context, matchID int64) (model.Conversation, error) {
	if s.err != nil {
		return model.Conversation{}, s.err
	}
	return model.Conversation{ID: "conv-stub", MatchID: matchID, CreatedAt: time.Now()}, nil
}

func decideFixtureService() *matchessvc.Service {
	return matchessvc.NewService(matchessvc.Dependencies{
		RunTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		},
		Matches: newMatchStoreStub(),
		Users: userStoreStub{users: map[int64]model.User{
			1: {ID: 1, Role: enums.RoleCreator, Verified: true},
			2: {ID: 2, Role: enums.RoleBrand, Verified: true},
		}},
		Profiles: profileStoreStub{
			creators: map[int64]model.CreatorProfile{
				1: {UserID: 1, InstagramHandle: "@c", FollowerCountIG: 45000, Bio: "travel stories"},
			},
			brands: map[int64]model.BrandProfile{
				2: {UserID: 2, CompanyName: "Acme", Vertical: "travel", AdSpendRange: enums.AdSpend10KTo25K, Bio: "travel gear"},
			},
		},
		Conversations: conversationStoreStub{},
	}, matchessvc.Config{})
}

func decideRequest(t *testing.T, identity authsvc.Identity, body map[string]any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/discover/decide", bytes.NewReader(payload))
	return req.WithContext(authsvc.WithIdentity(context.Background(), identity))
}

func TestDecideShortlistReturnsMatchAndConversation(t *testing.T) {
	h := NewDecideHandler(decideFixtureService())

	req := decideRequest(t, authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}, map[string]any{
		"target_id": 2,
		"status":    "shortlisted",
	})
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		OK    bool `json:"ok"`
		Match struct {
			CreatorID  int64   `json:"creator_id"`
			BrandID    int64   `json:"brand_id"`
			MatchScore float64 `json:"match_score"`
			Status     string  `json:"status"`
		} `json:"match"`
		Conversation *struct {
			ID      string `json:"id"`
			MatchID int64  `json:"match_id"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK || payload.Match.Status != "shortlisted" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Match.CreatorID != 1 || payload.Match.BrandID != 2 {
		t.Fatalf("pair not normalized: %+v", payload.Match)
	}
	if payload.Conversation == nil || payload.Conversation.ID == "" {
		t.Fatal("shortlist response missing conversation")
	}
}

func TestDecideRejectsMatchedStatus(t *testing.T) {
	h := NewDecideHandler(decideFixtureService())

	req := decideRequest(t, authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}, map[string]any{
		"target_id": 2,
		"status":    "matched",
	})
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", payload.Code)
	}
}

func TestDecideRequiresAuthentication(t *testing.T) {
	h := NewDecideHandler(decideFixtureService())

	body, _ := json.Marshal(map[string]any{"target_id": 2, "status": "rejected"})
	req := httptest.NewRequest(http.MethodPost, "/discover/decide", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestDecideUnknownTarget(t *testing.T) {
	h := NewDecideHandler(decideFixtureService())

	req := decideRequest(t, authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}, map[string]any{
		"target_id": 77,
		"status":    "rejected",
	})
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

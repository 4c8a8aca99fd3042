package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	discoverysvc "github.com/olegsavin/brandmatch/internal/services/discovery"
)

type discoveryRepoStub struct {
	viewer     pgrepo.CandidateRecord
	candidates []pgrepo.CandidateRecord
}

func (s discoveryRepoStub) GetViewer(_ context.Context, _ int64) (pgrepo.CandidateRecord, error) {
	return s.viewer, nil
}

func (s discoveryRepoStub) ListCandidates(_ context.Context, _ enums.Role) ([]pgrepo.CandidateRecord, error) {
	return s.candidates, nil
}

type exclusionStoreStub struct {
	peers []int64
}

func (s exclusionStoreStub) ExcludedPeers(_ context.Context, _ int64) ([]int64, error) {
	return s.peers, nil
}

func discoverFixtureService() *discoverysvc.Service {
	viewer := pgrepo.CandidateRecord{
		User:       model.User{ID: 1, Role: enums.RoleCreator, Verified: true},
		HasProfile: true,
		Creator:    model.CreatorProfile{UserID: 1, InstagramHandle: "@viewer", FollowerCountIG: 40000, Bio: "travel stories"},
	}
	candidates := []pgrepo.CandidateRecord{
		{
			User:       model.User{ID: 10, Role: enums.RoleBrand, Verified: true},
			HasProfile: true,
			Brand:      model.BrandProfile{UserID: 10, CompanyName: "Acme Travel", Vertical: "travel", AdSpendRange: enums.AdSpend10KTo25K, Bio: "travel gear"},
		},
		{
			User:       model.User{ID: 11, Role: enums.RoleBrand},
			HasProfile: true,
			Brand:      model.BrandProfile{UserID: 11, CompanyName: "Plain Co"},
		},
		{
			User:       model.User{ID: 12, Role: enums.RoleBrand, Verified: true},
			HasProfile: true,
			Brand:      model.BrandProfile{UserID: 12, CompanyName: "Decided", Vertical: "travel", AdSpendRange: enums.AdSpend10KTo25K},
		},
	}

	return discoverysvc.NewService(
		discoveryRepoStub{viewer: viewer, candidates: candidates},
		exclusionStoreStub{peers: []int64{12}},
		nil,
	)
}

func discoverRequest(target string, identity *authsvc.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if identity != nil {
		req = req.WithContext(authsvc.WithIdentity(context.Background(), *identity))
	}
	return req
}

func TestDiscoverReturnsRankedPage(t *testing.T) {
	h := NewDiscoverHandler(discoverFixtureService())

	identity := &authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}
	rr := httptest.NewRecorder()
	h.Handle(rr, discoverRequest("/discover", identity))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Items []struct {
			UserID     int64   `json:"user_id"`
			MatchScore float64 `json:"match_score"`
			Brand      *struct {
				CompanyName string `json:"company_name"`
			} `json:"brand"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.Total != 2 {
		t.Fatalf("total = %d, want 2 (decided peer excluded)", payload.Total)
	}
	if payload.Items[0].UserID != 10 {
		t.Fatalf("top item = %d, want 10", payload.Items[0].UserID)
	}
	if payload.Items[0].MatchScore < payload.Items[1].MatchScore {
		t.Fatal("items not sorted by score descending")
	}
	if payload.Items[0].Brand == nil || payload.Items[0].Brand.CompanyName != "Acme Travel" {
		t.Fatal("brand payload missing from discover item")
	}
}

func TestDiscoverAppliesQueryFacets(t *testing.T) {
	h := NewDiscoverHandler(discoverFixtureService())

	identity := &authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}
	rr := httptest.NewRecorder()
	h.Handle(rr, discoverRequest("/discover?vertical=travel&verified=true", identity))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Items []struct {
			UserID int64 `json:"user_id"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].UserID != 10 {
		t.Fatalf("facets not applied, total = %d", payload.Total)
	}
}

func TestDiscoverRejectsBadFacet(t *testing.T) {
	h := NewDiscoverHandler(discoverFixtureService())

	identity := &authsvc.Identity{UserID: 1, SID: "sid-1", Role: "creator"}
	rr := httptest.NewRecorder()
	h.Handle(rr, discoverRequest("/discover?min_reach=ten", identity))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestDiscoverRequiresAuthentication(t *testing.T) {
	h := NewDiscoverHandler(discoverFixtureService())

	rr := httptest.NewRecorder()
	h.Handle(rr, discoverRequest("/discover", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

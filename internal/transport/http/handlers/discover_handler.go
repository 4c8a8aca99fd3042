package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	discoverysvc "github.com/olegsavin/brandmatch/internal/services/discovery"
	"github.com/olegsavin/brandmatch/internal/transport/http/dto"
	httperrors "github.com/olegsavin/brandmatch/internal/transport/http/errors"
)

type DiscoverHandler struct {
	service *discoverysvc.Service
}

func NewDiscoverHandler(service *discoverysvc.Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

func (h *DiscoverHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	role, ok := enums.ParseRole(identity.Role)
	if !ok {
		writeForbidden(w, "ROLE_REQUIRED", "session has no discovery role")
		return
	}

	query := r.URL.Query()
	facets, ok := facetsFromQuery(query)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid discovery filters")
		return
	}

	page := discoverysvc.Page{
		Limit:  parseIntOrDefault(query.Get("limit"), 0),
		Offset: parseIntOrDefault(query.Get("offset"), 0),
	}

	result, err := h.service.Discover(r.Context(), identity.UserID, role, facets, page)
	if err != nil {
		switch {
		case errors.Is(err, discoverysvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid discovery request")
		case errors.Is(err, discoverysvc.ErrProfileNotFound):
			writeNotFound(w, "PROFILE_REQUIRED", "complete your profile before discovering")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load candidates")
		}
		return
	}

	items := make([]dto.DiscoverItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		out := dto.DiscoverItemResponse{
			UserID:     item.UserID,
			Role:       string(item.Role),
			MatchScore: item.MatchScore,
			Verified:   item.Verified,
		}
		if item.Creator != nil {
			out.Creator = &dto.CreatorProfileResponse{
				UserID:              item.Creator.UserID,
				InstagramHandle:     item.Creator.InstagramHandle,
				TiktokHandle:        item.Creator.TiktokHandle,
				FollowerCountIG:     item.Creator.FollowerCountIG,
				FollowerCountTiktok: item.Creator.FollowerCountTiktok,
				Reach:               item.Creator.Reach(),
				Bio:                 item.Creator.Bio,
			}
		}
		if item.Brand != nil {
			out.Brand = &dto.BrandProfileResponse{
				UserID:       item.Brand.UserID,
				CompanyName:  item.Brand.CompanyName,
				Vertical:     item.Brand.Vertical,
				AdSpendRange: string(item.Brand.AdSpendRange),
				Bio:          item.Brand.Bio,
			}
		}
		items = append(items, out)
	}

	httperrors.Write(w, http.StatusOK, dto.DiscoverResponse{
		Items:  items,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func facetsFromQuery(query map[string][]string) (discoverysvc.Facets, bool) {
	get := func(key string) string {
		values := query[key]
		if len(values) == 0 {
			return ""
		}
		return strings.TrimSpace(values[0])
	}

	facets := discoverysvc.Facets{
		Vertical:     get("vertical"),
		AdSpendRange: get("ad_spend_range"),
		Search:       get("q"),
	}

	if raw := get("min_reach"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			return discoverysvc.Facets{}, false
		}
		facets.MinReach = &value
	}
	if raw := get("max_reach"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			return discoverysvc.Facets{}, false
		}
		facets.MaxReach = &value
	}
	if raw := get("verified"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return discoverysvc.Facets{}, false
		}
		facets.Verified = &value
	}

	return facets, true
}

func parseIntOrDefault(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

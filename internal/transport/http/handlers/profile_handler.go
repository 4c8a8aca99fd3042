package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	"github.com/olegsavin/brandmatch/internal/domain/model"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	profilessvc "github.com/olegsavin/brandmatch/internal/services/profiles"
	"github.com/olegsavin/brandmatch/internal/transport/http/dto"
	httperrors "github.com/olegsavin/brandmatch/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilessvc.Service
}

func NewProfileHandler(service *profilessvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) SaveCreator(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.CreatorProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	err := h.service.SaveCreatorProfile(r.Context(), model.CreatorProfile{
		UserID:              identity.UserID,
		InstagramHandle:     req.InstagramHandle,
		TiktokHandle:        req.TiktokHandle,
		FollowerCountIG:     req.FollowerCountIG,
		FollowerCountTiktok: req.FollowerCountTiktok,
		Bio:                 req.Bio,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SaveProfileResponse{OK: true})
}

func (h *ProfileHandler) SaveBrand(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.BrandProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	var bucket enums.AdSpendRange
	if req.AdSpendRange != "" {
		parsed, ok := enums.ParseAdSpendRange(req.AdSpendRange)
		if !ok {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown ad_spend_range")
			return
		}
		bucket = parsed
	}

	err := h.service.SaveBrandProfile(r.Context(), model.BrandProfile{
		UserID:       identity.UserID,
		CompanyName:  req.CompanyName,
		Vertical:     req.Vertical,
		AdSpendRange: bucket,
		Bio:          req.Bio,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SaveProfileResponse{OK: true})
}

// Get serves GET /profiles/{userID}. The role of the target user decides
// which profile shape comes back.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	if creator, err := h.service.GetCreatorProfile(r.Context(), userID); err == nil {
		httperrors.Write(w, http.StatusOK, dto.CreatorProfileResponse{
			UserID:              creator.UserID,
			InstagramHandle:     creator.InstagramHandle,
			TiktokHandle:        creator.TiktokHandle,
			FollowerCountIG:     creator.FollowerCountIG,
			FollowerCountTiktok: creator.FollowerCountTiktok,
			Reach:               creator.Reach(),
			Bio:                 creator.Bio,
		})
		return
	} else if !errors.Is(err, profilessvc.ErrProfileNotFound) {
		writeInternal(w, "INTERNAL_ERROR", "failed to load profile")
		return
	}

	brand, err := h.service.GetBrandProfile(r.Context(), userID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BrandProfileResponse{
		UserID:       brand.UserID,
		CompanyName:  brand.CompanyName,
		Vertical:     brand.Vertical,
		AdSpendRange: string(brand.AdSpendRange),
		Bio:          brand.Bio,
	})
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "profile validation failed")
	case errors.Is(err, profilessvc.ErrRoleMismatch):
		writeForbidden(w, "ROLE_MISMATCH", "profile kind does not match account role")
	case errors.Is(err, profilessvc.ErrUserNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	case errors.Is(err, profilessvc.ErrProfileNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

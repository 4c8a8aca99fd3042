package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegsavin/brandmatch/internal/domain/model"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	matchessvc "github.com/olegsavin/brandmatch/internal/services/matches"
	"github.com/olegsavin/brandmatch/internal/transport/http/dto"
	httperrors "github.com/olegsavin/brandmatch/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

// List serves GET /matches?status=... for the authenticated user.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "shortlisted"
	}

	items, err := h.service.ListByStatus(r.Context(), identity.UserID, status, parseIntOrDefault(r.URL.Query().Get("limit"), 0))
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid matches request")
		case errors.Is(err, matchessvc.ErrUserNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "user not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load matches")
		}
		return
	}

	responseItems := make([]dto.MatchResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, matchResponse(item))
	}

	httperrors.Write(w, http.StatusOK, dto.MatchesResponse{Items: responseItems})
}

// UpdateStatus serves PUT /matches/{matchID}/status, the moderation
// transition that may set any status including matched.
func (h *MatchesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, err := strconv.ParseInt(chi.URLParam(r, "matchID"), 10, 64)
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.UpdateMatchStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	match, err := h.service.UpdateStatus(r.Context(), identity.UserID, matchID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid status transition")
		case errors.Is(err, matchessvc.ErrMatchNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
		case errors.Is(err, matchessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "not a participant of this match")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update match status")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, matchResponse(match))
}

func matchResponse(match model.Match) dto.MatchResponse {
	return dto.MatchResponse{
		ID:         match.ID,
		CreatorID:  match.CreatorID,
		BrandID:    match.BrandID,
		MatchScore: match.MatchScore,
		Status:     string(match.Status),
		CreatedAt:  match.CreatedAt,
		UpdatedAt:  match.UpdatedAt,
	}
}

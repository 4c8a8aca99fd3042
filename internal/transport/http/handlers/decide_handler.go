package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/olegsavin/brandmatch/internal/domain/enums"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	matchessvc "github.com/olegsavin/brandmatch/internal/services/matches"
	"github.com/olegsavin/brandmatch/internal/transport/http/dto"
	httperrors "github.com/olegsavin/brandmatch/internal/transport/http/errors"
)

type DecideHandler struct {
	service *matchessvc.Service
}

func NewDecideHandler(service *matchessvc.Service) *DecideHandler {
	return &DecideHandler{service: service}
}

func (h *DecideHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	role, ok := enums.ParseRole(identity.Role)
	if !ok {
		writeForbidden(w, "ROLE_REQUIRED", "session has no decision role")
		return
	}

	var req dto.DecideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 || strings.TrimSpace(req.Status) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and status are required")
		return
	}

	decision, err := h.service.RecordDecision(r.Context(), identity.UserID, role, req.TargetID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid decision request")
		case errors.Is(err, matchessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "decision not allowed for this session")
		case errors.Is(err, matchessvc.ErrUserNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "target user not found")
		case errors.Is(err, matchessvc.ErrProfileNotFound):
			writeNotFound(w, "PROFILE_REQUIRED", "both sides need a profile before deciding")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to record decision")
		}
		return
	}

	response := dto.DecideResponse{
		OK:    true,
		Match: matchResponse(decision.Match),
	}
	if decision.Conversation != nil {
		response.Conversation = &dto.ConversationResponse{
			ID:        decision.Conversation.ID,
			MatchID:   decision.Conversation.MatchID,
			CreatedAt: decision.Conversation.CreatedAt,
		}
	}

	httperrors.Write(w, http.StatusOK, response)
}

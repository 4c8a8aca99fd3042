package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	conversationssvc "github.com/olegsavin/brandmatch/internal/services/conversations"
	"github.com/olegsavin/brandmatch/internal/transport/http/dto"
	httperrors "github.com/olegsavin/brandmatch/internal/transport/http/errors"
)

type ConversationsHandler struct {
	service *conversationssvc.Service
}

func NewConversationsHandler(service *conversationssvc.Service) *ConversationsHandler {
	return &ConversationsHandler{service: service}
}

func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONVERSATIONS_SERVICE_UNAVAILABLE", "conversations service is unavailable")
		return
	}

	items, err := h.service.ListForUser(r.Context(), identity.UserID, parseIntOrDefault(r.URL.Query().Get("limit"), 0))
	if err != nil {
		switch {
		case errors.Is(err, conversationssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid conversations request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load conversations")
		}
		return
	}

	responseItems := make([]dto.ConversationResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.ConversationResponse{
			ID:        item.ID,
			MatchID:   item.MatchID,
			CreatedAt: item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.ConversationsResponse{Items: responseItems})
}
